package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "memearena/contexts/meme-arena/contest-engine/application"
	"memearena/contexts/meme-arena/contest-engine/domain/entities"
	domainerrors "memearena/contexts/meme-arena/contest-engine/domain/errors"
	"memearena/contexts/meme-arena/contest-engine/ports"
)

// OpenContestCommand creates a new contest in the open state.
type OpenContestCommand struct {
	Title               string
	SubmissionCap       int
	SubmissionsDeadline *time.Time
	VotingDeadline      *time.Time
}

type OpenContestUseCase struct {
	Contests ports.ContestRepository
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

// Execute opens a contest. The single-active-contest invariant is enforced by
// the repository insert itself, so two concurrent opens cannot both succeed.
func (uc OpenContestUseCase) Execute(ctx context.Context, cmd OpenContestCommand) (entities.Contest, error) {
	logger := application.ResolveLogger(uc.Logger)
	title := strings.TrimSpace(cmd.Title)
	if title == "" {
		logger.Warn("contest open validation failed",
			"event", "contest_open_validation_failed",
			"module", "meme-arena/contest-engine",
			"layer", "application",
		)
		return entities.Contest{}, domainerrors.ErrInvalidContestInput
	}

	submissionCap := cmd.SubmissionCap
	if submissionCap <= 0 {
		submissionCap = entities.DefaultSubmissionCap
	}

	contestID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Contest{}, err
	}
	contest := entities.Contest{
		ContestID:           contestID,
		Title:               title,
		Status:              entities.ContestStatusOpen,
		SubmissionCap:       submissionCap,
		SubmissionsDeadline: cmd.SubmissionsDeadline,
		VotingDeadline:      cmd.VotingDeadline,
		CreatedAt:           uc.Clock.Now().UTC(),
	}
	if err := uc.Contests.CreateContest(ctx, contest); err != nil {
		return entities.Contest{}, err
	}

	logger.Info("contest opened",
		"event", "contest_opened",
		"module", "meme-arena/contest-engine",
		"layer", "application",
		"contest_id", contest.ContestID,
		"submission_cap", contest.SubmissionCap,
	)
	return contest, nil
}
