package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	application "memearena/contexts/meme-arena/contest-engine/application"
	"memearena/contexts/meme-arena/contest-engine/domain/entities"
	domainerrors "memearena/contexts/meme-arena/contest-engine/domain/errors"
	"memearena/contexts/meme-arena/contest-engine/ports"
)

type CloseContestCommand struct {
	ContestID string
}

// CloseResult carries the terminal contest and the resolved winner. Winner is
// nil when the contest closed with zero entries.
type CloseResult struct {
	Contest entities.Contest
	Winner  *entities.Winner
}

// CloseContestUseCase is the winner resolver. Closing is idempotent: a contest
// that is already closed returns its persisted winner without recomputing, and
// a close that loses the winner-insert race returns the row the other call
// managed to write.
type CloseContestUseCase struct {
	Contests ports.ContestRepository
	Entries  ports.EntryRepository
	Winners  ports.WinnerRepository
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

func (uc CloseContestUseCase) Execute(ctx context.Context, cmd CloseContestCommand) (CloseResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	contestID := strings.TrimSpace(cmd.ContestID)
	if contestID == "" {
		return CloseResult{}, domainerrors.ErrInvalidContestInput
	}

	contest, err := uc.Contests.GetContest(ctx, contestID)
	if err != nil {
		return CloseResult{}, err
	}
	if contest.Status == entities.ContestStatusClosed {
		return uc.existingResult(ctx, contest)
	}

	tallies, err := uc.Entries.ListTallies(ctx, contestID)
	if err != nil {
		return CloseResult{}, err
	}

	if _, err := uc.Contests.TransitionStatus(ctx, contestID,
		[]entities.ContestStatus{entities.ContestStatusOpen, entities.ContestStatusVoting},
		entities.ContestStatusClosed,
	); err != nil {
		return CloseResult{}, err
	}
	contest.Status = entities.ContestStatusClosed

	if len(tallies) == 0 {
		logger.Info("contest closed without entries",
			"event", "contest_closed_empty",
			"module", "meme-arena/contest-engine",
			"layer", "application",
			"contest_id", contestID,
		)
		return CloseResult{Contest: contest}, nil
	}

	top := entities.RankTallies(tallies)[0]
	winnerID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return CloseResult{}, err
	}
	winner := entities.Winner{
		WinnerID:     winnerID,
		ContestID:    contestID,
		EntryID:      top.Entry.EntryID,
		MemeID:       top.Entry.MemeID,
		WinnerHandle: top.Entry.SubmitterHandle,
		WonAt:        uc.Clock.Now().UTC(),
	}
	if err := uc.Winners.CreateWinner(ctx, winner); err != nil {
		if errors.Is(err, domainerrors.ErrWinnerExists) {
			return uc.existingResult(ctx, contest)
		}
		return CloseResult{}, err
	}

	logger.Info("contest closed",
		"event", "contest_closed",
		"module", "meme-arena/contest-engine",
		"layer", "application",
		"contest_id", contestID,
		"winner_entry_id", winner.EntryID,
		"winner_handle", winner.WinnerHandle,
		"winner_votes", top.Votes,
	)
	return CloseResult{Contest: contest, Winner: &winner}, nil
}

func (uc CloseContestUseCase) existingResult(ctx context.Context, contest entities.Contest) (CloseResult, error) {
	winner, found, err := uc.Winners.GetWinnerByContest(ctx, contest.ContestID)
	if err != nil {
		return CloseResult{}, err
	}
	if !found {
		return CloseResult{Contest: contest}, nil
	}
	return CloseResult{Contest: contest, Winner: &winner}, nil
}
