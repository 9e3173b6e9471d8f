package rules

import (
	"math"
	"testing"

	"fantasy-league/internal/domain"
)

func rosterWith(id string, points ...float64) domain.Team {
	t := domain.Team{ID: id}
	for i, p := range points {
		t.Players = append(t.Players, domain.Player{ID: id + "-" + string(rune('a'+i)), Region: domain.RegionEU, Rank: 1, Points: p})
	}
	return t
}

func TestTopPercentileCount(t *testing.T) {
	a := rosterWith("a", 100, 90, 10)
	b := rosterWith("b", 80, 70, 60, 50, 40, 30, 20)
	all := []domain.Team{a, b}

	tests := []struct {
		name       string
		team       domain.Team
		percentile float64
		want       int
	}{
		{name: "Top10", team: a, percentile: 10, want: 1},
		{name: "Top20", team: a, percentile: 20, want: 2},
		{name: "Top30Other", team: b, percentile: 30, want: 1},
		{name: "Full", team: a, percentile: 100, want: 3},
		{name: "FullOther", team: b, percentile: 100, want: 7},
		{name: "ZeroClampsToTop", team: a, percentile: 0, want: 1},
		{name: "AboveHundredClamps", team: b, percentile: 250, want: 7},
		{name: "NaNTreatedAsZero", team: a, percentile: math.NaN(), want: 1},
		{name: "NegativeTreatedAsZero", team: a, percentile: -20, want: 1},
		{name: "InfinityClamps", team: b, percentile: math.Inf(1), want: 7},
		{name: "EmptyRoster", team: domain.Team{ID: "c"}, percentile: 50, want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := TopPercentileCount(tc.team, all, tc.percentile); got != tc.want {
				t.Fatalf("TopPercentileCount(%s, %v)=%d want %d", tc.team.ID, tc.percentile, got, tc.want)
			}
		})
	}
}

func TestTopPercentileCount_TiesIncluded(t *testing.T) {
	a := rosterWith("a", 50, 50, 50)
	b := rosterWith("b", 50, 1)
	// top 20% of 5 players is one slot, but every 50 ties the threshold
	if got := TopPercentileCount(a, []domain.Team{a, b}, 20); got != 3 {
		t.Fatalf("got %d want 3", got)
	}
}

func TestTopPercentileCount_SinglePlayerPool(t *testing.T) {
	owner := rosterWith("owner", 42)
	other := domain.Team{ID: "other"}
	all := []domain.Team{owner, other}

	if got := TopPercentileCount(owner, all, 10); got != 1 {
		t.Errorf("owner count=%d want 1", got)
	}
	if got := TopPercentileCount(other, all, 10); got != 0 {
		t.Errorf("non-owner count=%d want 0", got)
	}
	if got := TopPercentileCount(owner, nil, 10); got != 0 {
		t.Errorf("empty pool count=%d want 0", got)
	}
}

func TestRegionPerformanceRatio(t *testing.T) {
	if got := RegionPerformanceRatio(25, 100); got != 0.25 {
		t.Errorf("ratio=%v want 0.25", got)
	}
	got := RegionPerformanceRatio(10, 0)
	if got != 0 || math.IsNaN(got) {
		t.Errorf("zero denominator ratio=%v want 0", got)
	}
	if got := RegionPerformanceRatio(0, 0); got != 0 {
		t.Errorf("0/0 ratio=%v want 0", got)
	}
}

func TestRegionPerformance(t *testing.T) {
	a := domain.Team{ID: "a", Players: []domain.Player{
		{ID: "1", Region: domain.RegionEU, Points: 30},
		{ID: "2", Region: domain.RegionBR, Points: 10},
	}}
	b := domain.Team{ID: "b", Players: []domain.Player{
		{ID: "3", Region: domain.RegionEU, Points: 90},
	}}

	got := RegionPerformance(a, []domain.Team{a, b})
	if got[domain.RegionEU] != 0.25 {
		t.Errorf("EU=%v want 0.25", got[domain.RegionEU])
	}
	if got[domain.RegionBR] != 1 {
		t.Errorf("BR=%v want 1", got[domain.RegionBR])
	}
	if got[domain.RegionME] != 0 {
		t.Errorf("ME=%v want 0", got[domain.RegionME])
	}
	if len(got) != len(domain.Regions) {
		t.Errorf("got %d regions want %d", len(got), len(domain.Regions))
	}
}
