package httpserver

import (
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	contestengine "memearena/contexts/meme-arena/contest-engine"
	memefeed "memearena/contexts/meme-arena/meme-feed"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "memearena/internal/platform/httpserver/docs"
)

// adminTokenHeader gates the contest lifecycle mutations.
const adminTokenHeader = "X-AZ-Admin-Token"

type Server struct {
	mux        *http.ServeMux
	logger     *slog.Logger
	addr       string
	adminToken string
	contest    contestengine.Module
	feed       memefeed.Module
}

type Options struct {
	AdminToken string
	MediaDir   string
}

func New(
	contest contestengine.Module,
	feed memefeed.Module,
	logger *slog.Logger,
	addr string,
	opts Options,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:        http.NewServeMux(),
		logger:     logger,
		addr:       addr,
		adminToken: opts.AdminToken,
		contest:    contest,
		feed:       feed,
	}
	s.registerRoutes(opts.MediaDir)
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the routing mux, used by httptest in server tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes(mediaDir string) {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	if mediaDir != "" {
		s.mux.Handle("GET /media/", http.StripPrefix("/media/", http.FileServer(http.Dir(mediaDir))))
	}

	s.mux.HandleFunc("GET /api/contest/active", s.handleActiveContest)
	s.mux.HandleFunc("POST /api/contest/open", s.requireAdmin(s.handleOpenContest))
	s.mux.HandleFunc("POST /api/contest/start-voting", s.requireAdmin(s.handleStartVoting))
	s.mux.HandleFunc("POST /api/contest/close", s.requireAdmin(s.handleCloseContest))
	s.mux.HandleFunc("POST /api/contest/submit", s.handleSubmitEntry)
	s.mux.HandleFunc("POST /api/contest/vote", s.handleCastVote)
	s.mux.HandleFunc("GET /api/contest/entries", s.handleContestEntries)
	s.mux.HandleFunc("GET /api/contest/leaderboard", s.handleLeaderboard)
	s.mux.HandleFunc("GET /api/contest/winners", s.handleWinners)

	s.mux.HandleFunc("GET /api/memes", s.handleFeed)
	s.mux.HandleFunc("POST /api/submit-meme", s.handleSubmitMeme)
	s.mux.HandleFunc("POST /api/react", s.handleReact)
	s.mux.HandleFunc("POST /api/upload", s.handleUploadMeme)
}

// requireAdmin rejects lifecycle mutations unless the caller presents the
// configured admin token. An unset token disables the surface entirely.
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.adminToken == "" {
			writeError(w, http.StatusUnauthorized, "admin surface disabled")
			return
		}
		provided := strings.TrimSpace(r.Header.Get(adminTokenHeader))
		if subtle.ConstantTimeCompare([]byte(provided), []byte(s.adminToken)) != 1 {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorEnvelope{Error: message})
}

type errorEnvelope struct {
	Error string `json:"error"`
}
