package memory

import (
	"context"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"memearena/contexts/meme-arena/contest-engine/domain/entities"
	domainerrors "memearena/contexts/meme-arena/contest-engine/domain/errors"
	"memearena/contexts/meme-arena/contest-engine/ports"

	"github.com/google/uuid"
)

// Store is the in-memory implementation of every contest-engine port. The
// mutex stands in for the relational store's constraint checks, so duplicate
// entries/votes/winners surface the same sentinels the postgres adapter maps
// from unique violations.
type Store struct {
	mu sync.RWMutex

	contests map[string]entities.Contest
	entries  map[string]entities.Entry
	votes    map[string]entities.Vote
	winners  map[string]entities.Winner
	memes    map[string]entities.MemeProjection

	now time.Time
}

func NewStore() *Store {
	return &Store{
		contests: make(map[string]entities.Contest),
		entries:  make(map[string]entities.Entry),
		votes:    make(map[string]entities.Vote),
		winners:  make(map[string]entities.Winner),
		memes:    make(map[string]entities.MemeProjection),
		now:      time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

// Now advances one millisecond per call so records created in sequence carry
// strictly increasing timestamps, which keeps ranking tests deterministic.
func (s *Store) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = s.now.Add(time.Millisecond)
	return s.now
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) SetMeme(meme entities.MemeProjection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memes[strings.TrimSpace(meme.MemeID)] = meme
}

func (s *Store) SetContest(contest entities.Contest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contests[strings.TrimSpace(contest.ContestID)] = contest
}

func (s *Store) CreateContest(_ context.Context, contest entities.Contest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.contests {
		if existing.IsActive() {
			return domainerrors.ErrActiveContestExists
		}
	}
	s.contests[contest.ContestID] = contest
	return nil
}

func (s *Store) GetContest(_ context.Context, contestID string) (entities.Contest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	contest, ok := s.contests[strings.TrimSpace(contestID)]
	if !ok {
		return entities.Contest{}, domainerrors.ErrContestNotFound
	}
	return contest, nil
}

func (s *Store) TransitionStatus(
	_ context.Context,
	contestID string,
	from []entities.ContestStatus,
	to entities.ContestStatus,
) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	contest, ok := s.contests[strings.TrimSpace(contestID)]
	if !ok {
		return false, nil
	}
	for _, status := range from {
		if contest.Status == status {
			contest.Status = to
			s.contests[contest.ContestID] = contest
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) GetActiveContest(_ context.Context) (entities.Contest, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latestWithStatus(entities.ContestStatusOpen, entities.ContestStatusVoting)
}

func (s *Store) GetOpenContest(_ context.Context) (entities.Contest, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latestWithStatus(entities.ContestStatusOpen)
}

func (s *Store) GetLatestClosedContest(_ context.Context) (entities.Contest, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latestWithStatus(entities.ContestStatusClosed)
}

func (s *Store) latestWithStatus(statuses ...entities.ContestStatus) (entities.Contest, bool, error) {
	var latest entities.Contest
	found := false
	for _, contest := range s.contests {
		match := false
		for _, status := range statuses {
			if contest.Status == status {
				match = true
				break
			}
		}
		if !match {
			continue
		}
		if !found || contest.CreatedAt.After(latest.CreatedAt) {
			latest = contest
			found = true
		}
	}
	return latest, found, nil
}

func (s *Store) CreateEntry(_ context.Context, entry entities.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.entries {
		if existing.ContestID == entry.ContestID && existing.SubmitterHandle == entry.SubmitterHandle {
			return domainerrors.ErrDuplicateEntry
		}
	}
	s.entries[entry.EntryID] = entry
	return nil
}

func (s *Store) GetEntry(_ context.Context, entryID string) (entities.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[strings.TrimSpace(entryID)]
	if !ok {
		return entities.Entry{}, domainerrors.ErrEntryNotFound
	}
	return entry, nil
}

func (s *Store) CountEntries(_ context.Context, contestID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, entry := range s.entries {
		if entry.ContestID == strings.TrimSpace(contestID) {
			count++
		}
	}
	return count, nil
}

func (s *Store) ListEntries(
	_ context.Context,
	contestID string,
) ([]entities.Entry, map[string]entities.MemeProjection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Entry, 0)
	memes := make(map[string]entities.MemeProjection)
	for _, entry := range s.entries {
		if entry.ContestID != strings.TrimSpace(contestID) {
			continue
		}
		items = append(items, entry)
		if meme, ok := s.memes[entry.MemeID]; ok {
			memes[entry.MemeID] = meme
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, memes, nil
}

func (s *Store) ListTallies(_ context.Context, contestID string) ([]entities.EntryTally, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tallies := make([]entities.EntryTally, 0)
	for _, entry := range s.entries {
		if entry.ContestID != strings.TrimSpace(contestID) {
			continue
		}
		votes := 0
		for _, vote := range s.votes {
			if vote.EntryID == entry.EntryID {
				votes++
			}
		}
		tallies = append(tallies, entities.EntryTally{
			Entry: entry,
			Meme:  s.memes[entry.MemeID],
			Votes: votes,
		})
	}
	return tallies, nil
}

func (s *Store) CreateVote(_ context.Context, vote entities.Vote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.votes {
		if existing.ContestID == vote.ContestID && existing.VoterHandle == vote.VoterHandle {
			return domainerrors.ErrDuplicateVote
		}
	}
	s.votes[vote.VoteID] = vote
	return nil
}

func (s *Store) CreateWinner(_ context.Context, winner entities.Winner) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.winners {
		if existing.ContestID == winner.ContestID {
			return domainerrors.ErrWinnerExists
		}
	}
	s.winners[winner.WinnerID] = winner
	return nil
}

func (s *Store) GetWinnerByContest(_ context.Context, contestID string) (entities.Winner, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, winner := range s.winners {
		if winner.ContestID == strings.TrimSpace(contestID) {
			return winner, true, nil
		}
	}
	return entities.Winner{}, false, nil
}

func (s *Store) ListWinnersByContest(
	_ context.Context,
	contestID string,
	limit int,
) ([]entities.Winner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Winner, 0)
	for _, winner := range s.winners {
		if winner.ContestID == strings.TrimSpace(contestID) {
			items = append(items, winner)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].WonAt.Before(items[j].WonAt)
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) GetMemeProjection(_ context.Context, memeID string) (entities.MemeProjection, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	meme, ok := s.memes[strings.TrimSpace(memeID)]
	return meme, ok, nil
}

func (s *Store) FindOrCreateMeme(
	_ context.Context,
	handle string,
	imgURL string,
) (entities.MemeProjection, error) {
	cleanURL := normalizeImgURL(imgURL)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, meme := range s.memes {
		if meme.ImgURL == cleanURL {
			return meme, nil
		}
	}
	meme := entities.MemeProjection{
		MemeID: uuid.NewString(),
		Handle: strings.TrimSpace(handle),
		ImgURL: cleanURL,
	}
	s.memes[meme.MemeID] = meme
	return meme, nil
}

func normalizeImgURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Scheme == "" {
		return trimmed
	}
	parsed.Fragment = ""
	return parsed.String()
}

var _ ports.ContestRepository = (*Store)(nil)
var _ ports.EntryRepository = (*Store)(nil)
var _ ports.VoteRepository = (*Store)(nil)
var _ ports.WinnerRepository = (*Store)(nil)
var _ ports.MemeCatalog = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
