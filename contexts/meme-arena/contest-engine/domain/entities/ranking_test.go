package entities

import (
	"testing"
	"time"
)

func tally(entryID string, createdAt time.Time, votes int) EntryTally {
	return EntryTally{
		Entry: Entry{
			EntryID:   entryID,
			CreatedAt: createdAt,
		},
		Votes: votes,
	}
}

func TestRankTalliesOrdersByVotesThenAge(t *testing.T) {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	input := []EntryTally{
		tally("entry-1", base, 2),
		tally("entry-2", base.Add(time.Minute), 3),
		tally("entry-3", base.Add(2*time.Minute), 3),
	}

	ranked := RankTallies(input)

	want := []string{"entry-2", "entry-3", "entry-1"}
	for i, id := range want {
		if ranked[i].Entry.EntryID != id {
			t.Fatalf("rank %d: expected %s, got %s", i+1, id, ranked[i].Entry.EntryID)
		}
	}
}

func TestRankTalliesBreaksExactTiesByEntryID(t *testing.T) {
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	ranked := RankTallies([]EntryTally{
		tally("entry-b", at, 1),
		tally("entry-a", at, 1),
	})
	if ranked[0].Entry.EntryID != "entry-a" {
		t.Fatalf("expected entry-a first on full tie, got %s", ranked[0].Entry.EntryID)
	}
}

func TestRankTalliesDoesNotMutateInput(t *testing.T) {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	input := []EntryTally{
		tally("entry-1", base, 0),
		tally("entry-2", base.Add(time.Minute), 5),
	}

	RankTallies(input)

	if input[0].Entry.EntryID != "entry-1" || input[1].Entry.EntryID != "entry-2" {
		t.Fatalf("input slice mutated: %+v", input)
	}
}

func TestNormalizeHandle(t *testing.T) {
	cases := map[string]string{
		"@Alice":    "alice",
		" alice ":   "alice",
		"@@Bob":     "bob",
		"CHARLIE":   "charlie",
		"@d.e-f_g9": "d.e-f_g9",
	}
	for raw, want := range cases {
		if got := NormalizeHandle(raw); got != want {
			t.Fatalf("NormalizeHandle(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestIsValidVoterHandle(t *testing.T) {
	valid := []string{"alice", "a.b-c_d", "x9"}
	for _, handle := range valid {
		if !IsValidVoterHandle(handle) {
			t.Fatalf("expected %q valid", handle)
		}
	}
	tooLong := ""
	for i := 0; i < 41; i++ {
		tooLong += "a"
	}
	invalid := []string{"", "Alice", "has space", "emoji😀", tooLong}
	for _, handle := range invalid {
		if IsValidVoterHandle(handle) {
			t.Fatalf("expected %q invalid", handle)
		}
	}
}
