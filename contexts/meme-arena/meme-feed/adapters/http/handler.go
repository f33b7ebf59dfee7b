package httpadapter

import (
	"context"
	"log/slog"

	"memearena/contexts/meme-arena/meme-feed/application/commands"
	"memearena/contexts/meme-arena/meme-feed/application/queries"
	"memearena/contexts/meme-arena/meme-feed/domain/entities"
	httptransport "memearena/contexts/meme-arena/meme-feed/transport/http"
)

type Handler struct {
	Submit commands.SubmitMemeUseCase
	Upload commands.UploadMemeUseCase
	React  commands.ReactUseCase
	Feed   queries.FeedUseCase
	Logger *slog.Logger
}

func (h Handler) FeedHandler(
	ctx context.Context,
	handle string,
	limit int,
) (httptransport.FeedResponse, error) {
	memes, err := h.Feed.List(ctx, handle, limit)
	if err != nil {
		return httptransport.FeedResponse{}, err
	}
	items := make([]httptransport.MemeItem, 0, len(memes))
	for _, meme := range memes {
		items = append(items, memeItem(meme))
	}
	return httptransport.FeedResponse{Items: items}, nil
}

func (h Handler) SubmitMemeHandler(
	ctx context.Context,
	req httptransport.SubmitMemeRequest,
) (httptransport.SubmitMemeResponse, error) {
	result, err := h.Submit.Execute(ctx, commands.SubmitMemeCommand{
		Handle: req.Handle,
		ImgURL: req.ImgURL,
	})
	if err != nil {
		return httptransport.SubmitMemeResponse{}, err
	}
	item := memeItem(result.Meme)
	return httptransport.SubmitMemeResponse{
		OK:        true,
		Meme:      &item,
		Duplicate: result.Duplicate,
	}, nil
}

func (h Handler) UploadMemeHandler(
	ctx context.Context,
	req httptransport.UploadMemeRequest,
) (httptransport.UploadMemeResponse, error) {
	result, err := h.Upload.Execute(ctx, commands.UploadMemeCommand{
		Handle:      req.Handle,
		ImageBase64: req.ImageBase64,
	})
	if err != nil {
		return httptransport.UploadMemeResponse{}, err
	}
	resp := httptransport.UploadMemeResponse{
		OK:        true,
		URL:       result.URL,
		Duplicate: result.Duplicate,
	}
	if !result.Duplicate {
		resp.MemeID = result.Meme.MemeID
		resp.URL = result.Meme.ImgURL
	}
	return resp, nil
}

func (h Handler) ReactHandler(
	ctx context.Context,
	req httptransport.ReactRequest,
) (httptransport.ReactResponse, error) {
	reactions, err := h.React.Execute(ctx, commands.ReactCommand{
		MemeID:   req.MemeID,
		Reaction: req.Reaction,
	})
	if err != nil {
		return httptransport.ReactResponse{}, err
	}
	return httptransport.ReactResponse{OK: true, Reactions: reactions}, nil
}

func memeItem(meme entities.Meme) httptransport.MemeItem {
	return httptransport.MemeItem{
		ID:        meme.MemeID,
		Handle:    meme.Handle,
		ImgURL:    meme.ImgURL,
		Source:    string(meme.Source),
		Reactions: meme.Reactions,
		CreatedAt: meme.CreatedAt,
	}
}
