package rules

import (
	"cmp"
	"slices"

	"fantasy-league/internal/domain"
)

const ReasonNoReplacement = "no replacement available"

type Replacement struct {
	Found     bool
	Candidate domain.PoolEntry
	Reason    string
}

// ReplacementCriteria are the pool filters derived from the player being
// replaced: same region and tranche, inside the rank ceiling, above the
// activity threshold, available.
func (e *Engine) ReplacementCriteria(inactive domain.Player) Criteria {
	return Criteria{
		Region:        inactive.Region,
		Tranche:       inactive.Tranche,
		MaxRank:       e.cfg.RankCeiling,
		MinPoints:     e.cfg.ActivityThreshold,
		AvailableOnly: true,
		ExcludeIDs:    []string{inactive.ID},
	}
}

// FindReplacement picks the best substitute for inactive: most points, then
// best (lowest) rank, then highest win rate. An empty candidate set is
// reported through Found=false, not as an error.
func (e *Engine) FindReplacement(inactive domain.Player, pool PlayerPool) Replacement {
	candidates := pool.Search(e.ReplacementCriteria(inactive))
	if len(candidates) == 0 {
		return Replacement{Reason: ReasonNoReplacement}
	}

	best := slices.MinFunc(candidates, func(a, b domain.PoolEntry) int {
		if c := cmp.Compare(b.Points, a.Points); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Rank, b.Rank); c != 0 {
			return c
		}
		return cmp.Compare(b.Stats.WinRate, a.Stats.WinRate)
	})

	return Replacement{Found: true, Candidate: best}
}
