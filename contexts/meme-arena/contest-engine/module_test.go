package contestengine_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	contestengine "memearena/contexts/meme-arena/contest-engine"
	domainerrors "memearena/contexts/meme-arena/contest-engine/domain/errors"
	httptransport "memearena/contexts/meme-arena/contest-engine/transport/http"
)

func openContest(t *testing.T, module contestengine.Module, title string, cap int) httptransport.ContestPayload {
	t.Helper()
	resp, err := module.Handler.OpenContestHandler(context.Background(), httptransport.OpenContestRequest{
		Title:         title,
		SubmissionCap: cap,
	})
	if err != nil {
		t.Fatalf("open contest failed: %v", err)
	}
	return resp.Contest
}

func submitEntry(t *testing.T, module contestengine.Module, contestID, handle, imgURL string) httptransport.SubmitEntryResponse {
	t.Helper()
	resp, err := module.Handler.SubmitEntryHandler(context.Background(), httptransport.SubmitEntryRequest{
		ContestID: contestID,
		Handle:    handle,
		ImgURL:    imgURL,
	})
	if err != nil {
		t.Fatalf("submit entry for %s failed: %v", handle, err)
	}
	return resp
}

func castVote(t *testing.T, module contestengine.Module, entryID, voter string) httptransport.CastVoteResponse {
	t.Helper()
	resp, err := module.Handler.CastVoteHandler(context.Background(), httptransport.CastVoteRequest{
		EntryID:     entryID,
		VoterHandle: voter,
	})
	if err != nil {
		t.Fatalf("vote by %s failed: %v", voter, err)
	}
	return resp
}

func TestOpenContestRejectsSecondActive(t *testing.T) {
	module := contestengine.NewInMemoryModule(nil)
	openContest(t, module, "Week 1", 0)

	_, err := module.Handler.OpenContestHandler(context.Background(), httptransport.OpenContestRequest{
		Title: "Week 2",
	})
	if !errors.Is(err, domainerrors.ErrActiveContestExists) {
		t.Fatalf("expected ErrActiveContestExists, got %v", err)
	}
}

func TestOpenContestDefaultsSubmissionCap(t *testing.T) {
	module := contestengine.NewInMemoryModule(nil)
	contest := openContest(t, module, "Week 1", 0)
	if contest.SubmissionCap != 10 {
		t.Fatalf("expected default cap 10, got %d", contest.SubmissionCap)
	}
	if contest.Status != "open" {
		t.Fatalf("expected open status, got %s", contest.Status)
	}
}

func TestSubmitEntryNormalizesHandleForDuplicates(t *testing.T) {
	module := contestengine.NewInMemoryModule(nil)
	contest := openContest(t, module, "Week 1", 0)

	first := submitEntry(t, module, contest.ID, "@Alice", "https://img.example/a.png")
	if first.Duplicate || first.EntryID == "" {
		t.Fatalf("expected fresh entry, got %+v", first)
	}

	second := submitEntry(t, module, contest.ID, "alice", "https://img.example/b.png")
	if !second.Duplicate {
		t.Fatalf("expected duplicate for same normalized handle, got %+v", second)
	}
}

func TestSubmitEntryUsesOpenContestWhenIDOmitted(t *testing.T) {
	module := contestengine.NewInMemoryModule(nil)
	openContest(t, module, "Week 1", 0)

	resp := submitEntry(t, module, "", "@bob", "https://img.example/bob.png")
	if resp.EntryID == "" {
		t.Fatalf("expected entry against open contest, got %+v", resp)
	}
}

func TestSubmitEntryFailsWithoutOpenContest(t *testing.T) {
	module := contestengine.NewInMemoryModule(nil)
	_, err := module.Handler.SubmitEntryHandler(context.Background(), httptransport.SubmitEntryRequest{
		Handle: "@bob",
		ImgURL: "https://img.example/bob.png",
	})
	if !errors.Is(err, domainerrors.ErrNoOpenContest) {
		t.Fatalf("expected ErrNoOpenContest, got %v", err)
	}
}

func TestSubmitEntryEnforcesSubmissionCap(t *testing.T) {
	module := contestengine.NewInMemoryModule(nil)
	contest := openContest(t, module, "Week 1", 2)

	submitEntry(t, module, contest.ID, "@a1", "https://img.example/1.png")
	submitEntry(t, module, contest.ID, "@a2", "https://img.example/2.png")

	_, err := module.Handler.SubmitEntryHandler(context.Background(), httptransport.SubmitEntryRequest{
		ContestID: contest.ID,
		Handle:    "@a3",
		ImgURL:    "https://img.example/3.png",
	})
	if !errors.Is(err, domainerrors.ErrSubmissionCapReached) {
		t.Fatalf("expected ErrSubmissionCapReached, got %v", err)
	}
}

func TestCastVoteDeduplicatesPerContest(t *testing.T) {
	module := contestengine.NewInMemoryModule(nil)
	contest := openContest(t, module, "Week 1", 0)
	e1 := submitEntry(t, module, contest.ID, "@a1", "https://img.example/1.png")
	e2 := submitEntry(t, module, contest.ID, "@a2", "https://img.example/2.png")

	first := castVote(t, module, e1.EntryID, "@Viewer")
	if first.Duplicate {
		t.Fatalf("expected first vote recorded, got %+v", first)
	}
	// Same voter against a different entry of the same contest.
	second := castVote(t, module, e2.EntryID, "viewer")
	if !second.Duplicate {
		t.Fatalf("expected duplicate vote, got %+v", second)
	}
}

func TestCastVoteValidation(t *testing.T) {
	module := contestengine.NewInMemoryModule(nil)
	contest := openContest(t, module, "Week 1", 0)
	entry := submitEntry(t, module, contest.ID, "@a1", "https://img.example/1.png")

	if _, err := module.Handler.CastVoteHandler(context.Background(), httptransport.CastVoteRequest{
		EntryID:     "short",
		VoterHandle: "viewer",
	}); !errors.Is(err, domainerrors.ErrInvalidVoteInput) {
		t.Fatalf("expected ErrInvalidVoteInput for short entry id, got %v", err)
	}

	if _, err := module.Handler.CastVoteHandler(context.Background(), httptransport.CastVoteRequest{
		EntryID:     entry.EntryID,
		VoterHandle: "not a handle!",
	}); !errors.Is(err, domainerrors.ErrInvalidVoteInput) {
		t.Fatalf("expected ErrInvalidVoteInput for bad voter handle, got %v", err)
	}
}

func TestCloseContestPicksEarliestTopEntry(t *testing.T) {
	module := contestengine.NewInMemoryModule(nil)
	contest := openContest(t, module, "Week 1", 0)

	e1 := submitEntry(t, module, contest.ID, "@a1", "https://img.example/1.png")
	e2 := submitEntry(t, module, contest.ID, "@a2", "https://img.example/2.png")
	e3 := submitEntry(t, module, contest.ID, "@a3", "https://img.example/3.png")

	ballots := []string{
		e1.EntryID, e1.EntryID,
		e2.EntryID, e2.EntryID, e2.EntryID,
		e3.EntryID, e3.EntryID, e3.EntryID,
	}
	for i, entryID := range ballots {
		castVote(t, module, entryID, fmt.Sprintf("voter%d", i))
	}

	resp, err := module.Handler.CloseContestHandler(context.Background(), httptransport.CloseContestRequest{
		ContestID: contest.ID,
	})
	if err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if resp.Winner == nil {
		t.Fatalf("expected winner, got nil")
	}
	// e2 and e3 tie on votes; e2 was submitted first.
	if resp.Winner.WinnerHandle != "a2" {
		t.Fatalf("expected winner a2, got %s", resp.Winner.WinnerHandle)
	}
}

func TestCloseContestIsIdempotent(t *testing.T) {
	module := contestengine.NewInMemoryModule(nil)
	contest := openContest(t, module, "Week 1", 0)
	entry := submitEntry(t, module, contest.ID, "@a1", "https://img.example/1.png")
	castVote(t, module, entry.EntryID, "viewer")

	first, err := module.Handler.CloseContestHandler(context.Background(), httptransport.CloseContestRequest{
		ContestID: contest.ID,
	})
	if err != nil {
		t.Fatalf("first close failed: %v", err)
	}
	second, err := module.Handler.CloseContestHandler(context.Background(), httptransport.CloseContestRequest{
		ContestID: contest.ID,
	})
	if err != nil {
		t.Fatalf("second close failed: %v", err)
	}
	if first.Winner == nil || second.Winner == nil {
		t.Fatalf("expected winner on both closes, got %+v and %+v", first.Winner, second.Winner)
	}
	if first.Winner.WinnerHandle != second.Winner.WinnerHandle {
		t.Fatalf("close not idempotent: %s vs %s", first.Winner.WinnerHandle, second.Winner.WinnerHandle)
	}
}

func TestCloseContestWithoutEntriesHasNoWinner(t *testing.T) {
	module := contestengine.NewInMemoryModule(nil)
	contest := openContest(t, module, "Week 1", 0)

	resp, err := module.Handler.CloseContestHandler(context.Background(), httptransport.CloseContestRequest{
		ContestID: contest.ID,
	})
	if err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if !resp.Closed || resp.Winner != nil {
		t.Fatalf("expected closed contest without winner, got %+v", resp)
	}
}

func TestStartVotingTransitions(t *testing.T) {
	module := contestengine.NewInMemoryModule(nil)
	contest := openContest(t, module, "Week 1", 0)

	first, err := module.Handler.StartVotingHandler(context.Background(), httptransport.StartVotingRequest{
		ContestID: contest.ID,
	})
	if err != nil {
		t.Fatalf("start voting failed: %v", err)
	}
	if first.Contest.Status != "voting" {
		t.Fatalf("expected voting status, got %s", first.Contest.Status)
	}

	// Repeat is a no-op success.
	second, err := module.Handler.StartVotingHandler(context.Background(), httptransport.StartVotingRequest{
		ContestID: contest.ID,
	})
	if err != nil {
		t.Fatalf("repeat start voting failed: %v", err)
	}
	if second.Contest.Status != "voting" {
		t.Fatalf("expected voting status on repeat, got %s", second.Contest.Status)
	}

	if _, err := module.Handler.CloseContestHandler(context.Background(), httptransport.CloseContestRequest{
		ContestID: contest.ID,
	}); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if _, err := module.Handler.StartVotingHandler(context.Background(), httptransport.StartVotingRequest{
		ContestID: contest.ID,
	}); !errors.Is(err, domainerrors.ErrContestClosed) {
		t.Fatalf("expected ErrContestClosed, got %v", err)
	}
}

func TestLeaderboardAgreesWithWinnerResolution(t *testing.T) {
	module := contestengine.NewInMemoryModule(nil)
	contest := openContest(t, module, "Week 1", 0)

	e1 := submitEntry(t, module, contest.ID, "@a1", "https://img.example/1.png")
	e2 := submitEntry(t, module, contest.ID, "@a2", "https://img.example/2.png")
	castVote(t, module, e1.EntryID, "v1")
	castVote(t, module, e2.EntryID, "v2")
	castVote(t, module, e2.EntryID, "v3")

	board, err := module.Handler.LeaderboardHandler(context.Background(), contest.ID)
	if err != nil {
		t.Fatalf("leaderboard failed: %v", err)
	}
	if len(board.Items) != 2 {
		t.Fatalf("expected 2 leaderboard rows, got %d", len(board.Items))
	}

	closed, err := module.Handler.CloseContestHandler(context.Background(), httptransport.CloseContestRequest{
		ContestID: contest.ID,
	})
	if err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if closed.Winner == nil {
		t.Fatalf("expected winner")
	}
	if board.Items[0].SubmitterHandle != closed.Winner.WinnerHandle {
		t.Fatalf("leaderboard top %s disagrees with winner %s",
			board.Items[0].SubmitterHandle, closed.Winner.WinnerHandle)
	}
}

func TestActiveContestLifecycleVisibility(t *testing.T) {
	module := contestengine.NewInMemoryModule(nil)

	empty, err := module.Handler.ActiveContestHandler(context.Background())
	if err != nil {
		t.Fatalf("active contest failed: %v", err)
	}
	if empty.Contest != nil {
		t.Fatalf("expected no active contest, got %+v", empty.Contest)
	}

	contest := openContest(t, module, "Week 1", 0)
	active, err := module.Handler.ActiveContestHandler(context.Background())
	if err != nil {
		t.Fatalf("active contest failed: %v", err)
	}
	if active.Contest == nil || active.Contest.ID != contest.ID {
		t.Fatalf("expected active contest %s, got %+v", contest.ID, active.Contest)
	}

	if _, err := module.Handler.CloseContestHandler(context.Background(), httptransport.CloseContestRequest{
		ContestID: contest.ID,
	}); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	afterClose, err := module.Handler.ActiveContestHandler(context.Background())
	if err != nil {
		t.Fatalf("active contest failed: %v", err)
	}
	if afterClose.Contest != nil {
		t.Fatalf("expected no active contest after close, got %+v", afterClose.Contest)
	}
}

func TestWinnersReturnsLatestClosedContest(t *testing.T) {
	module := contestengine.NewInMemoryModule(nil)
	contest := openContest(t, module, "Week 1", 0)
	entry := submitEntry(t, module, contest.ID, "@a1", "https://img.example/1.png")
	castVote(t, module, entry.EntryID, "viewer")
	if _, err := module.Handler.CloseContestHandler(context.Background(), httptransport.CloseContestRequest{
		ContestID: contest.ID,
	}); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	resp, err := module.Handler.WinnersHandler(context.Background(), 3)
	if err != nil {
		t.Fatalf("winners failed: %v", err)
	}
	if resp.Contest == nil || resp.Contest.ID != contest.ID {
		t.Fatalf("expected latest closed contest %s, got %+v", contest.ID, resp.Contest)
	}
	if len(resp.Winners) != 1 {
		t.Fatalf("expected 1 winner, got %d", len(resp.Winners))
	}
	if resp.Winners[0].Rank != 1 || resp.Winners[0].WinnerHandle != "a1" {
		t.Fatalf("unexpected winner line: %+v", resp.Winners[0])
	}
}

func TestWinnersEmptyWithoutClosedContest(t *testing.T) {
	module := contestengine.NewInMemoryModule(nil)
	openContest(t, module, "Week 1", 0)

	resp, err := module.Handler.WinnersHandler(context.Background(), 3)
	if err != nil {
		t.Fatalf("winners failed: %v", err)
	}
	if resp.Contest != nil || len(resp.Winners) != 0 {
		t.Fatalf("expected empty winners response, got %+v", resp)
	}
}
