package queries

import (
	"context"
	"strings"

	"memearena/contexts/meme-arena/contest-engine/domain/entities"
	domainerrors "memearena/contexts/meme-arena/contest-engine/domain/errors"
	"memearena/contexts/meme-arena/contest-engine/ports"
)

const (
	defaultWinnersLimit = 3
	maxWinnersLimit     = 12
)

// ContestQueryUseCase serves the read-only projections the frontend consumes.
// Leaderboard ordering is delegated to entities.RankTallies so live standings
// and the winner resolver can never disagree.
type ContestQueryUseCase struct {
	Contests ports.ContestRepository
	Entries  ports.EntryRepository
	Winners  ports.WinnerRepository
}

// EntryView is an entry joined with its meme projection.
type EntryView struct {
	Entry entities.Entry
	Meme  entities.MemeProjection
}

// WinnerLine is one winners-history line with its 1-based rank.
type WinnerLine struct {
	Rank   int
	Winner entities.Winner
	Meme   entities.MemeProjection
}

type WinnersHistory struct {
	Contest *entities.Contest
	Winners []WinnerLine
}

type Leaderboard struct {
	ContestID string
	Items     []entities.EntryTally
}

// ActiveContest returns the single open/voting contest, or found=false.
func (uc ContestQueryUseCase) ActiveContest(ctx context.Context) (entities.Contest, bool, error) {
	return uc.Contests.GetActiveContest(ctx)
}

// ContestEntries lists a contest's entries, newest first.
func (uc ContestQueryUseCase) ContestEntries(ctx context.Context, contestID string) ([]EntryView, error) {
	contestID = strings.TrimSpace(contestID)
	if contestID == "" {
		return nil, domainerrors.ErrInvalidContestInput
	}
	entries, memes, err := uc.Entries.ListEntries(ctx, contestID)
	if err != nil {
		return nil, err
	}
	views := make([]EntryView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, EntryView{Entry: entry, Meme: memes[entry.MemeID]})
	}
	return views, nil
}

// ContestLeaderboard ranks live standings with the canonical ranking. An empty
// contestID falls back to the most recent voting/open contest.
func (uc ContestQueryUseCase) ContestLeaderboard(ctx context.Context, contestID string) (Leaderboard, error) {
	contestID = strings.TrimSpace(contestID)
	if contestID == "" {
		active, found, err := uc.Contests.GetActiveContest(ctx)
		if err != nil {
			return Leaderboard{}, err
		}
		if !found {
			return Leaderboard{}, domainerrors.ErrNoActiveContest
		}
		contestID = active.ContestID
	}
	tallies, err := uc.Entries.ListTallies(ctx, contestID)
	if err != nil {
		return Leaderboard{}, err
	}
	return Leaderboard{
		ContestID: contestID,
		Items:     entities.RankTallies(tallies),
	}, nil
}

// LatestWinners returns the most recent closed contest with its winner
// records ordered by won_at ascending. When no winner rows were persisted the
// top-ranked entry is computed on the fly, matching what the resolver would
// have chosen.
func (uc ContestQueryUseCase) LatestWinners(ctx context.Context, limit int) (WinnersHistory, error) {
	if limit <= 0 {
		limit = defaultWinnersLimit
	}
	if limit > maxWinnersLimit {
		limit = maxWinnersLimit
	}

	contest, found, err := uc.Contests.GetLatestClosedContest(ctx)
	if err != nil {
		return WinnersHistory{}, err
	}
	if !found {
		return WinnersHistory{Winners: []WinnerLine{}}, nil
	}

	winners, err := uc.Winners.ListWinnersByContest(ctx, contest.ContestID, limit)
	if err != nil {
		return WinnersHistory{}, err
	}
	if len(winners) > 0 {
		lines := make([]WinnerLine, 0, len(winners))
		for i, winner := range winners {
			meme, _, err := uc.Winners.GetMemeProjection(ctx, winner.MemeID)
			if err != nil {
				return WinnersHistory{}, err
			}
			lines = append(lines, WinnerLine{Rank: i + 1, Winner: winner, Meme: meme})
		}
		return WinnersHistory{Contest: &contest, Winners: lines}, nil
	}

	tallies, err := uc.Entries.ListTallies(ctx, contest.ContestID)
	if err != nil {
		return WinnersHistory{}, err
	}
	if len(tallies) == 0 {
		return WinnersHistory{Contest: &contest, Winners: []WinnerLine{}}, nil
	}
	top := entities.RankTallies(tallies)[0]
	return WinnersHistory{
		Contest: &contest,
		Winners: []WinnerLine{{
			Rank: 1,
			Winner: entities.Winner{
				ContestID:    contest.ContestID,
				EntryID:      top.Entry.EntryID,
				MemeID:       top.Entry.MemeID,
				WinnerHandle: top.Entry.SubmitterHandle,
				WonAt:        top.Entry.CreatedAt,
			},
			Meme: top.Meme,
		}},
	}, nil
}
