package commands

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"log/slog"
	"regexp"
	"strings"

	application "memearena/contexts/meme-arena/meme-feed/application"
	"memearena/contexts/meme-arena/meme-feed/domain/entities"
	domainerrors "memearena/contexts/meme-arena/meme-feed/domain/errors"
	"memearena/contexts/meme-arena/meme-feed/ports"

	"github.com/dustin/go-humanize"
)

// MaxUploadBytes caps decoded upload payloads.
const MaxUploadBytes = 6 * 1024 * 1024

var dataURLPattern = regexp.MustCompile(`^data:(.+);base64,(.*)$`)

type UploadMemeCommand struct {
	Handle      string
	ImageBase64 string
}

type UploadMemeResult struct {
	Meme      entities.Meme
	URL       string
	Duplicate bool
}

// UploadMemeUseCase stores an uploaded image under a content-addressed key so
// repeated uploads of the same bytes land on the same blob.
type UploadMemeUseCase struct {
	Memes  ports.MemeRepository
	Blobs  ports.BlobStore
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (uc UploadMemeUseCase) Execute(ctx context.Context, cmd UploadMemeCommand) (UploadMemeResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	handle := entities.CleanHandle(cmd.Handle)
	if handle == "" {
		return UploadMemeResult{}, domainerrors.ErrInvalidHandle
	}

	match := dataURLPattern.FindStringSubmatch(strings.TrimSpace(cmd.ImageBase64))
	if match == nil {
		return UploadMemeResult{}, domainerrors.ErrInvalidImageData
	}
	contentType := match[1]
	data, err := base64.StdEncoding.DecodeString(match[2])
	if err != nil || len(data) == 0 {
		return UploadMemeResult{}, domainerrors.ErrInvalidImageData
	}
	if len(data) > MaxUploadBytes {
		logger.Warn("upload rejected for size",
			"event", "meme_upload_too_large",
			"module", "meme-arena/meme-feed",
			"layer", "application",
			"handle", handle,
			"size", humanize.Bytes(uint64(len(data))),
			"limit", humanize.Bytes(uint64(MaxUploadBytes)),
		)
		return UploadMemeResult{}, domainerrors.ErrImageTooLarge
	}

	sum := sha256.Sum256(data)
	ext := "png"
	if parts := strings.SplitN(contentType, "/", 2); len(parts) == 2 && parts[1] != "" {
		ext = strings.ToLower(parts[1])
	}
	key := hex.EncodeToString(sum[:]) + "." + ext

	publicURL, err := uc.Blobs.Put(ctx, key, contentType, data)
	if err != nil {
		return UploadMemeResult{}, err
	}

	memeID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return UploadMemeResult{}, err
	}
	meme := entities.Meme{
		MemeID:    memeID,
		Handle:    handle,
		ImgURL:    publicURL,
		Source:    entities.MemeSourceUpload,
		CreatedAt: uc.Clock.Now().UTC(),
	}
	if err := uc.Memes.CreateMeme(ctx, meme); err != nil {
		if errors.Is(err, domainerrors.ErrDuplicateMeme) {
			return UploadMemeResult{URL: publicURL, Duplicate: true}, nil
		}
		return UploadMemeResult{}, err
	}

	logger.Info("meme uploaded",
		"event", "meme_uploaded",
		"module", "meme-arena/meme-feed",
		"layer", "application",
		"meme_id", meme.MemeID,
		"handle", handle,
		"size", humanize.Bytes(uint64(len(data))),
	)
	return UploadMemeResult{Meme: meme, URL: publicURL}, nil
}
