package rules

import (
	"testing"

	"fantasy-league/internal/domain"
)

func poolEntry(id string, region domain.Region, tranche domain.Tranche, rank int, points, winRate float64, avail bool) domain.PoolEntry {
	return domain.PoolEntry{
		Player:      player(id, region, tranche, rank, points),
		IsAvailable: avail,
		Stats:       domain.PlayerStats{TotalPoints: points, WinRate: winRate},
	}
}

func TestFindReplacement_SelectionOrder(t *testing.T) {
	inactive := player("gone", domain.RegionASIA, "3", 4, 0)
	inactive.IsActive = false

	tests := []struct {
		name    string
		entries []domain.PoolEntry
		want    string
	}{
		{
			name: "MostPoints",
			entries: []domain.PoolEntry{
				poolEntry("p1", domain.RegionASIA, "3", 2, 300, 0.9, true),
				poolEntry("p2", domain.RegionASIA, "3", 9, 450, 0.1, true),
			},
			want: "p2",
		},
		{
			name: "TieOnPointsLowestRank",
			entries: []domain.PoolEntry{
				poolEntry("p1", domain.RegionASIA, "3", 6, 300, 0.9, true),
				poolEntry("p2", domain.RegionASIA, "3", 3, 300, 0.1, true),
			},
			want: "p2",
		},
		{
			name: "TieOnRankHighestWinRate",
			entries: []domain.PoolEntry{
				poolEntry("p1", domain.RegionASIA, "3", 3, 300, 0.4, true),
				poolEntry("p2", domain.RegionASIA, "3", 3, 300, 0.6, true),
			},
			want: "p2",
		},
		{
			name: "FiltersIneligible",
			entries: []domain.PoolEntry{
				poolEntry("gone", domain.RegionASIA, "3", 1, 5000, 1, true),
				poolEntry("wrong-region", domain.RegionEU, "3", 1, 900, 1, true),
				poolEntry("wrong-tranche", domain.RegionASIA, "2", 1, 900, 1, true),
				poolEntry("outside-top", domain.RegionASIA, "3", 11, 900, 1, true),
				poolEntry("inactive-score", domain.RegionASIA, "3", 1, 99, 1, true),
				poolEntry("drafted", domain.RegionASIA, "3", 1, 900, 1, false),
				poolEntry("ok", domain.RegionASIA, "3", 10, 100, 0, true),
			},
			want: "ok",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NewEngine(DefaultConfig()).FindReplacement(inactive, NewPoolSnapshot(tc.entries))
			if !got.Found {
				t.Fatalf("no replacement found: %s", got.Reason)
			}
			if got.Candidate.ID != tc.want {
				t.Fatalf("picked %s want %s", got.Candidate.ID, tc.want)
			}
		})
	}
}

func TestFindReplacement_NoneAvailable(t *testing.T) {
	inactive := player("gone", domain.RegionME, "7", 4, 0)
	pool := NewPoolSnapshot([]domain.PoolEntry{poolEntry("p1", domain.RegionME, "6", 1, 900, 1, true)})

	got := NewEngine(DefaultConfig()).FindReplacement(inactive, pool)
	if got.Found {
		t.Fatalf("unexpected replacement %s", got.Candidate.ID)
	}
	if got.Reason != ReasonNoReplacement {
		t.Errorf("reason=%q want %q", got.Reason, ReasonNoReplacement)
	}
}

func TestPoolSnapshotSearch(t *testing.T) {
	pool := NewPoolSnapshot([]domain.PoolEntry{
		poolEntry("a", domain.RegionEU, "1", 1, 10, 0, true),
		poolEntry("b", domain.RegionEU, "1", 2, 20, 0, false),
		poolEntry("c", domain.RegionNAC, "1", 3, 30, 0, true),
	})

	if pool.Len() != 3 {
		t.Fatalf("len=%d want 3", pool.Len())
	}
	if got := pool.Search(Criteria{Region: domain.RegionEU}); len(got) != 2 {
		t.Errorf("region search returned %d want 2", len(got))
	}
	if got := pool.Search(Criteria{AvailableOnly: true, MinPoints: 15}); len(got) != 1 || got[0].ID != "c" {
		t.Errorf("available search returned %+v", got)
	}
	if _, ok := pool.FindByID("b"); !ok {
		t.Error("FindByID(b) not found")
	}
	if _, ok := pool.FindByID("zz"); ok {
		t.Error("FindByID(zz) should miss")
	}
}
