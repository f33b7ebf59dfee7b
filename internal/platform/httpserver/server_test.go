package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	contestengine "memearena/contexts/meme-arena/contest-engine"
	memefeed "memearena/contexts/meme-arena/meme-feed"
)

const testAdminToken = "test-admin-token"

func newTestServer() *Server {
	return New(
		contestengine.NewInMemoryModule(nil),
		memefeed.NewInMemoryModule(nil),
		nil,
		":0",
		Options{AdminToken: testAdminToken},
	)
}

func doJSON(server *Server, method, path, token string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(adminTokenHeader, token)
	}
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	return rr
}

func TestAdminRoutesRejectMissingToken(t *testing.T) {
	server := newTestServer()
	for _, path := range []string{"/api/contest/open", "/api/contest/start-voting", "/api/contest/close"} {
		rr := doJSON(server, http.MethodPost, path, "", `{}`)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d body=%s", path, rr.Code, rr.Body.String())
		}
	}
}

func TestAdminRoutesRejectWrongToken(t *testing.T) {
	server := newTestServer()
	rr := doJSON(server, http.MethodPost, "/api/contest/open", "wrong-token", `{"title":"Week 1"}`)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestAdminSurfaceDisabledWithoutConfiguredToken(t *testing.T) {
	server := New(
		contestengine.NewInMemoryModule(nil),
		memefeed.NewInMemoryModule(nil),
		nil,
		":0",
		Options{},
	)
	rr := doJSON(server, http.MethodPost, "/api/contest/open", testAdminToken, `{"title":"Week 1"}`)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 when no token configured, got %d", rr.Code)
	}
}

func TestContestLifecycleOverHTTP(t *testing.T) {
	server := newTestServer()

	rr := doJSON(server, http.MethodPost, "/api/contest/open", testAdminToken, `{"title":"Week 1"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("open: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var opened struct {
		OK      bool `json:"ok"`
		Contest struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"contest"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &opened); err != nil {
		t.Fatalf("decode open response: %v", err)
	}
	if !opened.OK || opened.Contest.Status != "open" {
		t.Fatalf("unexpected open response: %s", rr.Body.String())
	}

	// A second open conflicts with the single active contest.
	rr = doJSON(server, http.MethodPost, "/api/contest/open", testAdminToken, `{"title":"Week 2"}`)
	if rr.Code != http.StatusConflict {
		t.Fatalf("second open: expected 409, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doJSON(server, http.MethodPost, "/api/contest/submit", "",
		`{"handle":"@alice","imgUrl":"https://img.example/a.png"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("submit: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var submitted struct {
		OK      bool   `json:"ok"`
		EntryID string `json:"entry_id"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &submitted); err != nil {
		t.Fatalf("decode submit response: %v", err)
	}

	rr = doJSON(server, http.MethodPost, "/api/contest/vote", "",
		`{"entry_id":"`+submitted.EntryID+`","voter_handle":"@viewer"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("vote: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doJSON(server, http.MethodPost, "/api/contest/start-voting", testAdminToken,
		`{"contest_id":"`+opened.Contest.ID+`"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("start-voting: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doJSON(server, http.MethodPost, "/api/contest/close", testAdminToken,
		`{"contest_id":"`+opened.Contest.ID+`"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("close: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var closed struct {
		OK     bool `json:"ok"`
		Winner *struct {
			WinnerHandle string `json:"winner_handle"`
		} `json:"winner"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &closed); err != nil {
		t.Fatalf("decode close response: %v", err)
	}
	if closed.Winner == nil || closed.Winner.WinnerHandle != "alice" {
		t.Fatalf("unexpected close response: %s", rr.Body.String())
	}
}

func TestActiveContestEmptyReturnsNull(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/contest/active", nil)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp struct {
		Contest *json.RawMessage `json:"contest"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Contest != nil && string(*resp.Contest) != "null" {
		t.Fatalf("expected null contest, got %s", rr.Body.String())
	}
}

func TestSubmitMemeRejectsInvalidHandleWithEnvelope(t *testing.T) {
	server := newTestServer()
	rr := doJSON(server, http.MethodPost, "/api/submit-meme", "",
		`{"handle":"alice","imgUrl":"https://img.example/a.png"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	if envelope.Error == "" {
		t.Fatalf("expected error message in envelope, got %s", rr.Body.String())
	}
}

func TestSubmitWithoutOpenContestReturnsBadRequest(t *testing.T) {
	server := newTestServer()
	rr := doJSON(server, http.MethodPost, "/api/contest/submit", "",
		`{"handle":"@alice","imgUrl":"https://img.example/a.png"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without an open contest, got %d body=%s", rr.Code, rr.Body.String())
	}
	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	if envelope.Error == "" {
		t.Fatalf("expected error message in envelope, got %s", rr.Body.String())
	}
}

func TestLeaderboardWithoutActiveContestReturnsBadRequest(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/contest/leaderboard", nil)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without an active contest, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestReactUnknownMemeReturnsNotFound(t *testing.T) {
	server := newTestServer()
	rr := doJSON(server, http.MethodPost, "/api/react", "",
		`{"memeId":"missing","reaction":"like"}`)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestWinnersRejectsNonIntegerLimit(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/contest/winners?limit=abc", nil)
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestMalformedJSONBodyRejected(t *testing.T) {
	server := newTestServer()
	rr := doJSON(server, http.MethodPost, "/api/submit-meme", "", `{not json`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestFeedRoundTripOverHTTP(t *testing.T) {
	server := newTestServer()
	rr := doJSON(server, http.MethodPost, "/api/submit-meme", "",
		`{"handle":"@alice","imgUrl":"https://img.example/a.png"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("submit-meme: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/api/memes", nil)
	feedRR := httptest.NewRecorder()
	server.mux.ServeHTTP(feedRR, req)
	if feedRR.Code != http.StatusOK {
		t.Fatalf("feed: expected 200, got %d", feedRR.Code)
	}
	var feed struct {
		Items []struct {
			Handle string `json:"handle"`
		} `json:"items"`
	}
	if err := json.Unmarshal(feedRR.Body.Bytes(), &feed); err != nil {
		t.Fatalf("decode feed: %v", err)
	}
	if len(feed.Items) != 1 || feed.Items[0].Handle != "alice" {
		t.Fatalf("unexpected feed: %s", feedRR.Body.String())
	}
}
