package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	application "memearena/contexts/meme-arena/meme-feed/application"
	"memearena/contexts/meme-arena/meme-feed/domain/entities"
	domainerrors "memearena/contexts/meme-arena/meme-feed/domain/errors"
	"memearena/contexts/meme-arena/meme-feed/ports"
)

type SubmitMemeCommand struct {
	Handle string
	ImgURL string
}

// SubmitMemeResult: Duplicate marks the soft success where the handle already
// posted the same normalized URL.
type SubmitMemeResult struct {
	Meme      entities.Meme
	Duplicate bool
}

type SubmitMemeUseCase struct {
	Memes  ports.MemeRepository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (uc SubmitMemeUseCase) Execute(ctx context.Context, cmd SubmitMemeCommand) (SubmitMemeResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	if !entities.StartsWithAt(cmd.Handle) {
		return SubmitMemeResult{}, domainerrors.ErrInvalidHandle
	}
	handle := entities.CleanHandle(cmd.Handle)
	if !entities.IsValidHandle(handle) {
		return SubmitMemeResult{}, domainerrors.ErrInvalidHandle
	}
	if strings.TrimSpace(cmd.ImgURL) == "" {
		return SubmitMemeResult{}, domainerrors.ErrInvalidImgURL
	}
	imgURL := entities.NormalizeImgURL(cmd.ImgURL)

	if existing, found, err := uc.Memes.FindMemeByHandleAndURL(ctx, handle, imgURL); err != nil {
		return SubmitMemeResult{}, err
	} else if found {
		return SubmitMemeResult{Meme: existing, Duplicate: true}, nil
	}

	memeID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return SubmitMemeResult{}, err
	}
	meme := entities.Meme{
		MemeID:    memeID,
		Handle:    handle,
		ImgURL:    imgURL,
		Source:    entities.MemeSourceURL,
		CreatedAt: uc.Clock.Now().UTC(),
	}
	if err := uc.Memes.CreateMeme(ctx, meme); err != nil {
		if errors.Is(err, domainerrors.ErrDuplicateMeme) {
			// Lost an insert race against the same (handle, url) pair.
			existing, _, lookupErr := uc.Memes.FindMemeByHandleAndURL(ctx, handle, imgURL)
			if lookupErr != nil {
				return SubmitMemeResult{}, lookupErr
			}
			return SubmitMemeResult{Meme: existing, Duplicate: true}, nil
		}
		return SubmitMemeResult{}, err
	}

	logger.Info("meme submitted",
		"event", "meme_submitted",
		"module", "meme-arena/meme-feed",
		"layer", "application",
		"meme_id", meme.MemeID,
		"handle", handle,
	)
	return SubmitMemeResult{Meme: meme}, nil
}
