package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	contesterrors "memearena/contexts/meme-arena/contest-engine/domain/errors"
	contesthttp "memearena/contexts/meme-arena/contest-engine/transport/http"
)

func (s *Server) handleActiveContest(w http.ResponseWriter, r *http.Request) {
	resp, err := s.contest.Handler.ActiveContestHandler(r.Context())
	if err != nil {
		writeContestDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleOpenContest(w http.ResponseWriter, r *http.Request) {
	var req contesthttp.OpenContestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	resp, err := s.contest.Handler.OpenContestHandler(r.Context(), req)
	if err != nil {
		writeContestDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStartVoting(w http.ResponseWriter, r *http.Request) {
	var req contesthttp.StartVotingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	resp, err := s.contest.Handler.StartVotingHandler(r.Context(), req)
	if err != nil {
		writeContestDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCloseContest(w http.ResponseWriter, r *http.Request) {
	var req contesthttp.CloseContestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	resp, err := s.contest.Handler.CloseContestHandler(r.Context(), req)
	if err != nil {
		writeContestDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSubmitEntry(w http.ResponseWriter, r *http.Request) {
	var req contesthttp.SubmitEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	resp, err := s.contest.Handler.SubmitEntryHandler(r.Context(), req)
	if err != nil {
		writeContestDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	var req contesthttp.CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}
	resp, err := s.contest.Handler.CastVoteHandler(r.Context(), req)
	if err != nil {
		writeContestDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleContestEntries(w http.ResponseWriter, r *http.Request) {
	contestID := r.URL.Query().Get("contest_id")
	if contestID == "" {
		contestID = r.URL.Query().Get("contestId")
	}
	resp, err := s.contest.Handler.ContestEntriesHandler(r.Context(), contestID)
	if err != nil {
		writeContestDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	contestID := r.URL.Query().Get("contest_id")
	if contestID == "" {
		contestID = r.URL.Query().Get("contestId")
	}
	resp, err := s.contest.Handler.LeaderboardHandler(r.Context(), contestID)
	if err != nil {
		writeContestDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWinners(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = parsed
	}
	resp, err := s.contest.Handler.WinnersHandler(r.Context(), limit)
	if err != nil {
		writeContestDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeContestDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, contesterrors.ErrInvalidContestInput),
		errors.Is(err, contesterrors.ErrInvalidEntryInput),
		errors.Is(err, contesterrors.ErrInvalidVoteInput),
		errors.Is(err, contesterrors.ErrNoOpenContest),
		errors.Is(err, contesterrors.ErrNoActiveContest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, contesterrors.ErrContestNotFound),
		errors.Is(err, contesterrors.ErrEntryNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, contesterrors.ErrActiveContestExists),
		errors.Is(err, contesterrors.ErrContestNotOpen),
		errors.Is(err, contesterrors.ErrContestClosed),
		errors.Is(err, contesterrors.ErrSubmissionCapReached),
		errors.Is(err, contesterrors.ErrWinnerExists):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
