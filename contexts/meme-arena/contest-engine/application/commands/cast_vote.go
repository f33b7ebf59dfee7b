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

type CastVoteCommand struct {
	EntryID     string
	VoterHandle string
}

// CastVoteResult: Duplicate marks the soft idempotent success where the voter
// already voted in the entry's contest, for any entry.
type CastVoteResult struct {
	ContestID string
	Duplicate bool
}

type CastVoteUseCase struct {
	Entries ports.EntryRepository
	Votes   ports.VoteRepository
	Clock   ports.Clock
	IDGen   ports.IDGenerator
	Logger  *slog.Logger
}

func (uc CastVoteUseCase) Execute(ctx context.Context, cmd CastVoteCommand) (CastVoteResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	entryID := strings.TrimSpace(cmd.EntryID)
	if len(entryID) < 8 {
		return CastVoteResult{}, domainerrors.ErrInvalidVoteInput
	}
	voterHandle := entities.NormalizeHandle(cmd.VoterHandle)
	if !entities.IsValidVoterHandle(voterHandle) {
		logger.Warn("vote validation failed",
			"event", "vote_validation_failed",
			"module", "meme-arena/contest-engine",
			"layer", "application",
			"entry_id", entryID,
		)
		return CastVoteResult{}, domainerrors.ErrInvalidVoteInput
	}

	entry, err := uc.Entries.GetEntry(ctx, entryID)
	if err != nil {
		return CastVoteResult{}, err
	}

	voteID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return CastVoteResult{}, err
	}
	vote := entities.Vote{
		VoteID:      voteID,
		ContestID:   entry.ContestID,
		EntryID:     entry.EntryID,
		VoterHandle: voterHandle,
		CreatedAt:   uc.Clock.Now().UTC(),
	}
	if err := uc.Votes.CreateVote(ctx, vote); err != nil {
		if errors.Is(err, domainerrors.ErrDuplicateVote) {
			logger.Info("vote duplicate",
				"event", "vote_duplicate",
				"module", "meme-arena/contest-engine",
				"layer", "application",
				"contest_id", entry.ContestID,
				"voter_handle", voterHandle,
			)
			return CastVoteResult{ContestID: entry.ContestID, Duplicate: true}, nil
		}
		return CastVoteResult{}, err
	}

	logger.Info("vote recorded",
		"event", "vote_recorded",
		"module", "meme-arena/contest-engine",
		"layer", "application",
		"contest_id", entry.ContestID,
		"entry_id", entry.EntryID,
		"voter_handle", voterHandle,
	)
	return CastVoteResult{ContestID: entry.ContestID}, nil
}
