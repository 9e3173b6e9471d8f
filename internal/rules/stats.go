package rules

import (
	"cmp"
	"math"
	"slices"

	"fantasy-league/internal/domain"
)

// TopPercentileCount returns how many of team's players score at or above
// the points threshold marking the top percentile% of every rostered player
// in allTeams. Ties at the threshold all count, so the result may exceed the
// nominal share of the pool.
func TopPercentileCount(team domain.Team, allTeams []domain.Team, percentile float64) int {
	if len(team.Players) == 0 {
		return 0
	}

	var pool []float64
	for _, t := range allTeams {
		for _, p := range t.Players {
			pool = append(pool, p.Points)
		}
	}
	n := len(pool)
	if n == 0 {
		return 0
	}

	slices.SortFunc(pool, func(a, b float64) int { return cmp.Compare(b, a) })

	switch {
	case math.IsNaN(percentile) || percentile < 0:
		percentile = 0
	case percentile > 100:
		percentile = 100
	}

	idx := int(math.Ceil(float64(n)*percentile/100)) - 1
	idx = max(0, min(idx, n-1))
	threshold := pool[idx]

	count := 0
	for _, p := range team.Players {
		if p.Points >= threshold {
			count++
		}
	}
	return count
}

// RegionPerformanceRatio is regionPoints / regionTotalAvailable, or 0 when
// there is nothing available in the region.
func RegionPerformanceRatio(regionPoints, regionTotalAvailable float64) float64 {
	if regionTotalAvailable == 0 {
		return 0
	}
	return regionPoints / regionTotalAvailable
}

// RegionPerformance maps each region to the share of all rostered points in
// that region that belong to team.
func RegionPerformance(team domain.Team, allTeams []domain.Team) map[domain.Region]float64 {
	totals := make(map[domain.Region]float64)
	for _, t := range allTeams {
		for _, p := range t.Players {
			totals[p.Region] += p.Points
		}
	}

	own := make(map[domain.Region]float64)
	for _, p := range team.Players {
		own[p.Region] += p.Points
	}

	out := make(map[domain.Region]float64, len(domain.Regions))
	for _, r := range domain.Regions {
		out[r] = RegionPerformanceRatio(own[r], totals[r])
	}
	return out
}
