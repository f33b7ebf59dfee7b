package ports

import (
	"context"
	"time"

	"memearena/contexts/meme-arena/contest-engine/domain/entities"
)

// ContestRepository persists contests. CreateContest must be an atomic
// conditional insert: it fails with domainerrors.ErrActiveContestExists when
// any contest is currently open or voting, enforced by the store rather than
// a check-then-act read.
type ContestRepository interface {
	CreateContest(ctx context.Context, contest entities.Contest) error
	GetContest(ctx context.Context, contestID string) (entities.Contest, error)
	// TransitionStatus updates status only when the current status is one of
	// from; reports whether a row changed.
	TransitionStatus(ctx context.Context, contestID string, from []entities.ContestStatus, to entities.ContestStatus) (bool, error)
	// GetActiveContest returns the most recent open/voting contest, preferring
	// voting over open when both orderings tie on recency.
	GetActiveContest(ctx context.Context) (entities.Contest, bool, error)
	GetOpenContest(ctx context.Context) (entities.Contest, bool, error)
	GetLatestClosedContest(ctx context.Context) (entities.Contest, bool, error)
}

// EntryRepository persists contest entries. CreateEntry maps the
// (contest_id, submitter_handle) unique violation to ErrDuplicateEntry.
type EntryRepository interface {
	CreateEntry(ctx context.Context, entry entities.Entry) error
	GetEntry(ctx context.Context, entryID string) (entities.Entry, error)
	CountEntries(ctx context.Context, contestID string) (int, error)
	// ListEntries returns entries with meme projections, newest first.
	ListEntries(ctx context.Context, contestID string) ([]entities.Entry, map[string]entities.MemeProjection, error)
	// ListTallies joins each entry of the contest with its live vote count and
	// meme projection. Unranked; callers rank via entities.RankTallies.
	ListTallies(ctx context.Context, contestID string) ([]entities.EntryTally, error)
}

// VoteRepository persists votes. CreateVote maps the
// (contest_id, voter_handle) unique violation to ErrDuplicateVote.
type VoteRepository interface {
	CreateVote(ctx context.Context, vote entities.Vote) error
}

// WinnerRepository persists winner records. CreateWinner maps the contest_id
// unique violation to ErrWinnerExists so racing closers can fall back to the
// row that won the race.
type WinnerRepository interface {
	CreateWinner(ctx context.Context, winner entities.Winner) error
	GetWinnerByContest(ctx context.Context, contestID string) (entities.Winner, bool, error)
	ListWinnersByContest(ctx context.Context, contestID string, limit int) ([]entities.Winner, error)
	GetMemeProjection(ctx context.Context, memeID string) (entities.MemeProjection, bool, error)
}

// MemeCatalog is the contract with the meme store collaborator: resolve an
// image URL to a meme record, deduplicating on the normalized URL.
type MemeCatalog interface {
	FindOrCreateMeme(ctx context.Context, handle string, imgURL string) (entities.MemeProjection, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
