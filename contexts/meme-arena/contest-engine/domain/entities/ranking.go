package entities

import "sort"

// EntryTally is one leaderboard line: an entry joined with its live vote count
// and the meme it references.
type EntryTally struct {
	Entry Entry
	Meme  MemeProjection
	Votes int
}

// RankTallies orders tallies by the canonical contest ranking: descending vote
// count, ties broken by ascending entry creation time (earlier submission wins),
// then by entry id so the order is a deterministic total order. The winner
// resolver and the live leaderboard both rank through this function.
func RankTallies(tallies []EntryTally) []EntryTally {
	ranked := append([]EntryTally(nil), tallies...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Votes != ranked[j].Votes {
			return ranked[i].Votes > ranked[j].Votes
		}
		if !ranked[i].Entry.CreatedAt.Equal(ranked[j].Entry.CreatedAt) {
			return ranked[i].Entry.CreatedAt.Before(ranked[j].Entry.CreatedAt)
		}
		return ranked[i].Entry.EntryID < ranked[j].Entry.EntryID
	})
	return ranked
}
