package queries

import (
	"context"
	"math/rand"
	"strings"

	"memearena/contexts/meme-arena/meme-feed/domain/entities"
	"memearena/contexts/meme-arena/meme-feed/ports"
)

// DefaultFeedLimit bounds how many memes one feed request returns.
const DefaultFeedLimit = 300

// FeedUseCase serves the browse feed: newest memes first, then shuffled so
// reloads do not always surface the same posts on top. MaxLimit overrides
// DefaultFeedLimit when positive.
type FeedUseCase struct {
	Memes    ports.MemeRepository
	MaxLimit int
}

func (uc FeedUseCase) List(ctx context.Context, handle string, limit int) ([]entities.Meme, error) {
	ceiling := uc.MaxLimit
	if ceiling <= 0 {
		ceiling = DefaultFeedLimit
	}
	if limit <= 0 || limit > ceiling {
		limit = ceiling
	}
	memes, err := uc.Memes.ListMemes(ctx, entities.CleanHandle(strings.TrimSpace(handle)), limit)
	if err != nil {
		return nil, err
	}
	rand.Shuffle(len(memes), func(i, j int) {
		memes[i], memes[j] = memes[j], memes[i]
	})
	return memes, nil
}
