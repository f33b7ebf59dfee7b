package ports

import (
	"context"
	"time"

	"memearena/contexts/meme-arena/meme-feed/domain/entities"
)

// MemeRepository persists meme records. CreateMeme maps the
// (handle, img_url) unique violation to ErrDuplicateMeme.
type MemeRepository interface {
	CreateMeme(ctx context.Context, meme entities.Meme) error
	GetMeme(ctx context.Context, memeID string) (entities.Meme, error)
	FindMemeByHandleAndURL(ctx context.Context, handle string, imgURL string) (entities.Meme, bool, error)
	// ListMemes returns newest-first memes, optionally filtered by handle.
	ListMemes(ctx context.Context, handle string, limit int) ([]entities.Meme, error)
	// IncrementReaction applies a single atomic counter bump and returns the
	// updated reaction totals.
	IncrementReaction(ctx context.Context, memeID string, reaction string) (map[string]int, error)
}

// BlobStore stores uploaded image bytes and serves them at a public URL.
// Put is idempotent for a given key; re-uploading existing content succeeds.
type BlobStore interface {
	Put(ctx context.Context, key string, contentType string, data []byte) (string, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
