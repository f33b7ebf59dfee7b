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

// SubmitEntryCommand registers one meme for one participant. ContestID may be
// empty, in which case the current open contest is resolved. Exactly one of
// MemeID or ImgURL must be usable; ImgURL is resolved to a meme record through
// the meme catalog.
type SubmitEntryCommand struct {
	ContestID string
	Handle    string
	ImgURL    string
	MemeID    string
}

// SubmitEntryResult: Duplicate marks the soft idempotent success where the
// handle already holds an entry in the contest.
type SubmitEntryResult struct {
	EntryID   string
	ContestID string
	Duplicate bool
}

type SubmitEntryUseCase struct {
	Contests ports.ContestRepository
	Entries  ports.EntryRepository
	Memes    ports.MemeCatalog
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

func (uc SubmitEntryUseCase) Execute(ctx context.Context, cmd SubmitEntryCommand) (SubmitEntryResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	handle := entities.NormalizeHandle(cmd.Handle)
	if handle == "" {
		logger.Warn("entry submit validation failed",
			"event", "entry_submit_validation_failed",
			"module", "meme-arena/contest-engine",
			"layer", "application",
		)
		return SubmitEntryResult{}, domainerrors.ErrInvalidEntryInput
	}

	contestID := strings.TrimSpace(cmd.ContestID)
	if contestID == "" {
		open, found, err := uc.Contests.GetOpenContest(ctx)
		if err != nil {
			return SubmitEntryResult{}, err
		}
		if !found {
			return SubmitEntryResult{}, domainerrors.ErrNoOpenContest
		}
		contestID = open.ContestID
	}

	memeID := strings.TrimSpace(cmd.MemeID)
	if memeID == "" {
		imgURL := strings.TrimSpace(cmd.ImgURL)
		if imgURL == "" {
			return SubmitEntryResult{}, domainerrors.ErrInvalidEntryInput
		}
		meme, err := uc.Memes.FindOrCreateMeme(ctx, handle, imgURL)
		if err != nil {
			return SubmitEntryResult{}, err
		}
		memeID = meme.MemeID
	}

	contest, err := uc.Contests.GetContest(ctx, contestID)
	if err != nil {
		return SubmitEntryResult{}, err
	}
	// Cap check is advisory; the unique constraint below remains the
	// correctness mechanism for duplicate handles.
	count, err := uc.Entries.CountEntries(ctx, contestID)
	if err != nil {
		return SubmitEntryResult{}, err
	}
	if contest.SubmissionCap > 0 && count >= contest.SubmissionCap {
		return SubmitEntryResult{}, domainerrors.ErrSubmissionCapReached
	}

	entryID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return SubmitEntryResult{}, err
	}
	entry := entities.Entry{
		EntryID:         entryID,
		ContestID:       contestID,
		MemeID:          memeID,
		SubmitterHandle: handle,
		CreatedAt:       uc.Clock.Now().UTC(),
	}
	if err := uc.Entries.CreateEntry(ctx, entry); err != nil {
		if errors.Is(err, domainerrors.ErrDuplicateEntry) {
			logger.Info("entry submit duplicate",
				"event", "entry_submit_duplicate",
				"module", "meme-arena/contest-engine",
				"layer", "application",
				"contest_id", contestID,
				"submitter_handle", handle,
			)
			return SubmitEntryResult{ContestID: contestID, Duplicate: true}, nil
		}
		return SubmitEntryResult{}, err
	}

	logger.Info("entry submitted",
		"event", "entry_submitted",
		"module", "meme-arena/contest-engine",
		"layer", "application",
		"contest_id", contestID,
		"entry_id", entry.EntryID,
		"submitter_handle", handle,
	)
	return SubmitEntryResult{EntryID: entry.EntryID, ContestID: contestID}, nil
}
