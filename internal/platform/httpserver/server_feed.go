package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	feederrors "memearena/contexts/meme-arena/meme-feed/domain/errors"
	feedhttp "memearena/contexts/meme-arena/meme-feed/transport/http"
)

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit := 0
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = parsed
	}
	resp, err := s.feed.Handler.FeedHandler(r.Context(), query.Get("handle"), limit)
	if err != nil {
		writeFeedDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSubmitMeme(w http.ResponseWriter, r *http.Request) {
	var req feedhttp.SubmitMemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	resp, err := s.feed.Handler.SubmitMemeHandler(r.Context(), req)
	if err != nil {
		writeFeedDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReact(w http.ResponseWriter, r *http.Request) {
	var req feedhttp.ReactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	resp, err := s.feed.Handler.ReactHandler(r.Context(), req)
	if err != nil {
		writeFeedDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUploadMeme(w http.ResponseWriter, r *http.Request) {
	var req feedhttp.UploadMemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	resp, err := s.feed.Handler.UploadMemeHandler(r.Context(), req)
	if err != nil {
		writeFeedDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeFeedDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, feederrors.ErrInvalidHandle),
		errors.Is(err, feederrors.ErrInvalidImgURL),
		errors.Is(err, feederrors.ErrInvalidImageData),
		errors.Is(err, feederrors.ErrInvalidReaction):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, feederrors.ErrImageTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, feederrors.ErrMemeNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, feederrors.ErrDuplicateMeme):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
