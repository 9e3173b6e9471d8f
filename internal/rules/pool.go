package rules

import (
	"fantasy-league/internal/domain"
)

// PlayerPool is the read-only view of draftable players the rules consult.
type PlayerPool interface {
	FindByID(id string) (domain.PoolEntry, bool)
	Search(c Criteria) []domain.PoolEntry
}

// Criteria filters pool entries. Zero values disable a filter.
type Criteria struct {
	Region        domain.Region
	Tranche       domain.Tranche
	MaxRank       int
	MinPoints     float64
	AvailableOnly bool
	ExcludeIDs    []string
}

func (c Criteria) Match(e domain.PoolEntry) bool {
	if c.Region != "" && e.Region != c.Region {
		return false
	}
	if c.Tranche != "" && e.Tranche != c.Tranche {
		return false
	}
	if c.MaxRank > 0 && e.Rank > c.MaxRank {
		return false
	}
	if e.Points < c.MinPoints {
		return false
	}
	if c.AvailableOnly && !e.IsAvailable {
		return false
	}
	for _, id := range c.ExcludeIDs {
		if e.ID == id {
			return false
		}
	}
	return true
}

// PoolSnapshot is an in-memory PlayerPool captured at a point in time.
type PoolSnapshot struct {
	entries []domain.PoolEntry
	byID    map[string]int
}

func NewPoolSnapshot(entries []domain.PoolEntry) *PoolSnapshot {
	s := &PoolSnapshot{
		entries: append([]domain.PoolEntry(nil), entries...),
		byID:    make(map[string]int, len(entries)),
	}
	for i, e := range s.entries {
		s.byID[e.ID] = i
	}
	return s
}

func (s *PoolSnapshot) FindByID(id string) (domain.PoolEntry, bool) {
	i, ok := s.byID[id]
	if !ok {
		return domain.PoolEntry{}, false
	}
	return s.entries[i], true
}

func (s *PoolSnapshot) Search(c Criteria) []domain.PoolEntry {
	var out []domain.PoolEntry
	for _, e := range s.entries {
		if c.Match(e) {
			out = append(out, e)
		}
	}
	return out
}

func (s *PoolSnapshot) Len() int {
	return len(s.entries)
}
