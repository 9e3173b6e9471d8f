package rules

import (
	"cmp"
	"slices"

	"fantasy-league/internal/domain"
)

// RankOptions narrows which teams and players feed a leaderboard.
type RankOptions struct {
	Season int           // 0 = every season
	Region domain.Region // "" = every region
}

// Rank orders entries by total points, breaking exact ties on regions won,
// then first-place players, then world champions. Entries equal on all four
// keep their input order. Ranks are assigned 1..N; the input is not modified.
func Rank(entries []domain.LeaderboardEntry) []domain.LeaderboardEntry {
	out := make([]domain.LeaderboardEntry, len(entries))
	copy(out, entries)

	slices.SortStableFunc(out, compareEntries)

	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

func compareEntries(a, b domain.LeaderboardEntry) int {
	// descending on every key
	if c := cmp.Compare(b.TotalPoints, a.TotalPoints); c != 0 {
		return c
	}
	if c := cmp.Compare(b.RegionsWon, a.RegionsWon); c != 0 {
		return c
	}
	if c := cmp.Compare(b.FirstPlacePlayers, a.FirstPlacePlayers); c != 0 {
		return c
	}
	return cmp.Compare(b.WorldChampions, a.WorldChampions)
}

// BuildEntries derives the raw leaderboard aggregates for each team that
// matches opts. Rank is left at zero; pass the result to Rank.
func BuildEntries(teams []domain.Team, opts RankOptions) []domain.LeaderboardEntry {
	var selected []*domain.Team
	for i := range teams {
		if opts.Season != 0 && teams[i].Season != opts.Season {
			continue
		}
		selected = append(selected, &teams[i])
	}
	if len(selected) == 0 {
		return []domain.LeaderboardEntry{}
	}

	counted := func(p domain.Player) bool {
		return opts.Region == "" || p.Region == opts.Region
	}

	entries := make([]domain.LeaderboardEntry, len(selected))
	// best (lowest) rank each team holds per region
	best := make([]map[domain.Region]int, len(selected))

	for i, team := range selected {
		e := domain.LeaderboardEntry{
			UserID:         team.UserID,
			PointsByRegion: make(map[domain.Region]float64),
			Team:           team,
		}
		best[i] = make(map[domain.Region]int)

		for _, p := range team.Players {
			if !counted(p) {
				continue
			}
			e.TotalPoints += p.Points
			e.PointsByRegion[p.Region] += p.Points
			if p.Rank == 1 {
				e.FirstPlacePlayers++
			}
			if p.IsWorldChampion {
				e.WorldChampions++
			}
			if r, ok := best[i][p.Region]; !ok || p.Rank < r {
				best[i][p.Region] = p.Rank
			}
		}
		entries[i] = e
	}

	for i := range entries {
		for region, rank := range best[i] {
			if outranksOthers(best, i, region, rank) {
				entries[i].RegionsWon++
			}
		}
	}

	return entries
}

func outranksOthers(best []map[domain.Region]int, self int, region domain.Region, rank int) bool {
	for j, other := range best {
		if j == self {
			continue
		}
		if r, ok := other[region]; ok && r <= rank {
			return false
		}
	}
	return true
}
