package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"memearena/contexts/meme-arena/meme-feed/domain/entities"
	domainerrors "memearena/contexts/meme-arena/meme-feed/domain/errors"
	"memearena/contexts/meme-arena/meme-feed/ports"

	"github.com/google/uuid"
)

// Store is an in-memory implementation of every meme-feed port. It mirrors
// the uniqueness and not-found semantics of the Postgres adapter so use-case
// tests exercise the same error paths.
type Store struct {
	mu    sync.RWMutex
	memes map[string]entities.Meme

	now     time.Time
	nowStep time.Duration
}

func NewStore() *Store {
	return &Store{
		memes:   make(map[string]entities.Meme),
		now:     time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		nowStep: time.Millisecond,
	}
}

func (s *Store) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	current := s.now
	s.now = s.now.Add(s.nowStep)
	return current
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) CreateMeme(_ context.Context, meme entities.Meme) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.memes {
		if existing.Handle == meme.Handle && existing.ImgURL == meme.ImgURL {
			return domainerrors.ErrDuplicateMeme
		}
	}
	if meme.Reactions == nil {
		meme.Reactions = emptyReactions()
	}
	s.memes[meme.MemeID] = meme
	return nil
}

func (s *Store) GetMeme(_ context.Context, memeID string) (entities.Meme, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	meme, ok := s.memes[strings.TrimSpace(memeID)]
	if !ok {
		return entities.Meme{}, domainerrors.ErrMemeNotFound
	}
	return cloneMeme(meme), nil
}

func (s *Store) FindMemeByHandleAndURL(
	_ context.Context,
	handle string,
	imgURL string,
) (entities.Meme, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, meme := range s.memes {
		if meme.Handle == strings.TrimSpace(handle) && meme.ImgURL == strings.TrimSpace(imgURL) {
			return cloneMeme(meme), true, nil
		}
	}
	return entities.Meme{}, false, nil
}

func (s *Store) ListMemes(_ context.Context, handle string, limit int) ([]entities.Meme, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	memes := make([]entities.Meme, 0, len(s.memes))
	for _, meme := range s.memes {
		if handle != "" && meme.Handle != handle {
			continue
		}
		memes = append(memes, cloneMeme(meme))
	}
	sort.SliceStable(memes, func(i, j int) bool {
		if !memes[i].CreatedAt.Equal(memes[j].CreatedAt) {
			return memes[i].CreatedAt.After(memes[j].CreatedAt)
		}
		return memes[i].MemeID < memes[j].MemeID
	})
	if limit > 0 && len(memes) > limit {
		memes = memes[:limit]
	}
	return memes, nil
}

func (s *Store) IncrementReaction(
	_ context.Context,
	memeID string,
	reaction string,
) (map[string]int, error) {
	if !entities.IsAllowedReaction(reaction) {
		return nil, domainerrors.ErrInvalidReaction
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	meme, ok := s.memes[strings.TrimSpace(memeID)]
	if !ok {
		return nil, domainerrors.ErrMemeNotFound
	}
	if meme.Reactions == nil {
		meme.Reactions = emptyReactions()
	}
	meme.Reactions[reaction]++
	s.memes[meme.MemeID] = meme
	return cloneReactions(meme.Reactions), nil
}

// SetMeme seeds a meme directly, bypassing uniqueness checks. Test helper.
func (s *Store) SetMeme(meme entities.Meme) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if meme.Reactions == nil {
		meme.Reactions = emptyReactions()
	}
	s.memes[meme.MemeID] = meme
}

func cloneMeme(meme entities.Meme) entities.Meme {
	meme.Reactions = cloneReactions(meme.Reactions)
	return meme
}

func cloneReactions(reactions map[string]int) map[string]int {
	if reactions == nil {
		return emptyReactions()
	}
	out := make(map[string]int, len(reactions))
	for k, v := range reactions {
		out[k] = v
	}
	return out
}

func emptyReactions() map[string]int {
	return map[string]int{
		entities.ReactionLike: 0,
		entities.ReactionLove: 0,
		entities.ReactionLOL:  0,
		entities.ReactionFire: 0,
		entities.ReactionWow:  0,
	}
}

var _ ports.MemeRepository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
