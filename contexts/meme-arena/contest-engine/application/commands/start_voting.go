package commands

import (
	"context"
	"log/slog"
	"strings"

	application "memearena/contexts/meme-arena/contest-engine/application"
	"memearena/contexts/meme-arena/contest-engine/domain/entities"
	domainerrors "memearena/contexts/meme-arena/contest-engine/domain/errors"
	"memearena/contexts/meme-arena/contest-engine/ports"
)

type StartVotingCommand struct {
	ContestID string
}

type StartVotingUseCase struct {
	Contests ports.ContestRepository
	Logger   *slog.Logger
}

// Execute moves an open contest into voting. Calling it on a contest that is
// already voting is an idempotent no-op; a closed contest is a hard failure.
// The transition is a conditional update, so two concurrent calls cannot both
// observe the open state and race past each other.
func (uc StartVotingUseCase) Execute(ctx context.Context, cmd StartVotingCommand) (entities.Contest, error) {
	logger := application.ResolveLogger(uc.Logger)
	contestID := strings.TrimSpace(cmd.ContestID)
	if contestID == "" {
		return entities.Contest{}, domainerrors.ErrInvalidContestInput
	}

	contest, err := uc.Contests.GetContest(ctx, contestID)
	if err != nil {
		return entities.Contest{}, err
	}
	switch contest.Status {
	case entities.ContestStatusVoting:
		return contest, nil
	case entities.ContestStatusClosed:
		return entities.Contest{}, domainerrors.ErrContestClosed
	}

	changed, err := uc.Contests.TransitionStatus(ctx, contestID,
		[]entities.ContestStatus{entities.ContestStatusOpen},
		entities.ContestStatusVoting,
	)
	if err != nil {
		return entities.Contest{}, err
	}
	if !changed {
		// Lost a race; re-read and decide from the status that won.
		contest, err = uc.Contests.GetContest(ctx, contestID)
		if err != nil {
			return entities.Contest{}, err
		}
		if contest.Status == entities.ContestStatusVoting {
			return contest, nil
		}
		return entities.Contest{}, domainerrors.ErrContestNotOpen
	}

	contest.Status = entities.ContestStatusVoting
	logger.Info("contest voting started",
		"event", "contest_voting_started",
		"module", "meme-arena/contest-engine",
		"layer", "application",
		"contest_id", contestID,
	)
	return contest, nil
}
