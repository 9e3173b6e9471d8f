package rules

import (
	"testing"

	"fantasy-league/internal/domain"

	"github.com/google/go-cmp/cmp"
)

func entry(user string, total float64, regionsWon, firsts, champions int) domain.LeaderboardEntry {
	return domain.LeaderboardEntry{
		UserID:            user,
		TotalPoints:       total,
		RegionsWon:        regionsWon,
		FirstPlacePlayers: firsts,
		WorldChampions:    champions,
	}
}

func users(entries []domain.LeaderboardEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.UserID
	}
	return out
}

func TestRank_TieBreakCascade(t *testing.T) {
	in := []domain.LeaderboardEntry{
		entry("zero", 0, 0, 0, 0),
		entry("tie-champ", 500, 1, 1, 0),
		entry("top", 900, 0, 0, 0),
		entry("tie-regions", 500, 2, 0, 0),
		entry("tie-firsts", 500, 1, 2, 0),
		entry("tie-champ-2", 500, 1, 1, 3),
		entry("full-tie-a", 300, 1, 1, 1),
		entry("full-tie-b", 300, 1, 1, 1),
	}

	got := Rank(in)

	want := []string{"top", "tie-regions", "tie-firsts", "tie-champ-2", "tie-champ", "full-tie-a", "full-tie-b", "zero"}
	if diff := cmp.Diff(want, users(got)); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	for i, e := range got {
		if e.Rank != i+1 {
			t.Errorf("entry %s rank=%d want %d", e.UserID, e.Rank, i+1)
		}
	}
	if in[0].Rank != 0 {
		t.Error("Rank mutated its input")
	}
}

func TestRank_StableOnFullTie(t *testing.T) {
	in := []domain.LeaderboardEntry{
		entry("c", 10, 0, 0, 0),
		entry("a", 10, 0, 0, 0),
		entry("b", 10, 0, 0, 0),
	}
	if diff := cmp.Diff([]string{"c", "a", "b"}, users(Rank(in))); diff != "" {
		t.Fatalf("full ties must keep input order (-want +got):\n%s", diff)
	}
}

func TestRank_EmptyAndIdempotent(t *testing.T) {
	if got := Rank(nil); len(got) != 0 {
		t.Fatalf("Rank(nil) returned %d entries", len(got))
	}

	in := []domain.LeaderboardEntry{entry("a", 5, 1, 0, 0), entry("b", 7, 0, 0, 0), entry("c", 5, 1, 0, 1)}
	first := Rank(in)
	second := Rank(in)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("Rank not idempotent (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(first, Rank(first)); diff != "" {
		t.Fatalf("re-ranking ranked output changed it (-first +again):\n%s", diff)
	}
}

func TestRank_OrderingProperty(t *testing.T) {
	in := []domain.LeaderboardEntry{
		entry("a", 10, 2, 1, 0), entry("b", 20, 0, 0, 0), entry("c", 10, 2, 1, 1),
		entry("d", 10, 3, 0, 0), entry("e", 0, 0, 0, 0), entry("f", 20, 0, 1, 0),
	}
	got := Rank(in)
	for i := 1; i < len(got); i++ {
		if compareEntries(got[i-1], got[i]) > 0 {
			t.Errorf("entries %s and %s out of order", got[i-1].UserID, got[i].UserID)
		}
		if got[i].Rank <= got[i-1].Rank {
			t.Errorf("rank not increasing at %d", i)
		}
	}
}

func TestBuildEntries(t *testing.T) {
	teams := []domain.Team{
		{
			ID: "t1", UserID: "u1", Season: 2025,
			Players: []domain.Player{
				{ID: "a", Region: domain.RegionEU, Rank: 1, Points: 100, IsWorldChampion: true},
				{ID: "b", Region: domain.RegionNAW, Rank: 5, Points: 50},
				{ID: "c", Region: domain.RegionBR, Rank: 3, Points: 20},
			},
		},
		{
			ID: "t2", UserID: "u2", Season: 2025,
			Players: []domain.Player{
				{ID: "d", Region: domain.RegionEU, Rank: 2, Points: 90},
				{ID: "e", Region: domain.RegionNAW, Rank: 1, Points: 60},
				{ID: "f", Region: domain.RegionBR, Rank: 3, Points: 20},
			},
		},
		{ID: "t3", UserID: "u3", Season: 2024, Players: []domain.Player{{ID: "g", Region: domain.RegionEU, Rank: 1, Points: 999}}},
	}

	got := BuildEntries(teams, RankOptions{Season: 2025})
	if len(got) != 2 {
		t.Fatalf("got %d entries want 2", len(got))
	}

	e1, e2 := got[0], got[1]
	if e1.TotalPoints != 170 || e2.TotalPoints != 170 {
		t.Errorf("totals=%v,%v want 170,170", e1.TotalPoints, e2.TotalPoints)
	}
	// BR is shared at rank 3 so nobody wins it
	if e1.RegionsWon != 1 || e2.RegionsWon != 1 {
		t.Errorf("regionsWon=%d,%d want 1,1", e1.RegionsWon, e2.RegionsWon)
	}
	if e1.FirstPlacePlayers != 1 || e2.FirstPlacePlayers != 1 {
		t.Errorf("firstPlace=%d,%d want 1,1", e1.FirstPlacePlayers, e2.FirstPlacePlayers)
	}
	if e1.WorldChampions != 1 || e2.WorldChampions != 0 {
		t.Errorf("worldChampions=%d,%d want 1,0", e1.WorldChampions, e2.WorldChampions)
	}
	if e1.PointsByRegion[domain.RegionNAW] != 50 || e1.Team.ID != "t1" {
		t.Errorf("unexpected entry %+v", e1)
	}

	ranked := Rank(got)
	if ranked[0].UserID != "u1" {
		t.Errorf("world champion should break the tie, leader=%s", ranked[0].UserID)
	}
}

func TestBuildEntries_RegionFilter(t *testing.T) {
	teams := []domain.Team{
		{ID: "t1", UserID: "u1", Players: []domain.Player{
			{ID: "a", Region: domain.RegionEU, Rank: 4, Points: 10},
			{ID: "b", Region: domain.RegionOCE, Rank: 1, Points: 500},
		}},
		{ID: "t2", UserID: "u2", Players: []domain.Player{
			{ID: "c", Region: domain.RegionEU, Rank: 2, Points: 40},
		}},
	}

	got := Rank(BuildEntries(teams, RankOptions{Region: domain.RegionEU}))
	if diff := cmp.Diff([]string{"u2", "u1"}, users(got)); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if got[0].RegionsWon != 1 || got[1].RegionsWon != 0 || got[1].FirstPlacePlayers != 0 {
		t.Errorf("region filter leaked other regions: %+v", got)
	}
}

func TestBuildEntries_Empty(t *testing.T) {
	if got := BuildEntries(nil, RankOptions{}); got == nil || len(got) != 0 {
		t.Fatalf("BuildEntries(nil)=%v want empty slice", got)
	}
}
