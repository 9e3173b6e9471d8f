package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fantasy-league/internal/db"
	"fantasy-league/internal/domain"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrConcurrentUpdate = errors.New("concurrent update")
)

func notFound(err error, what, id string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", what, id, ErrNotFound)
	}
	return fmt.Errorf("failed to get %s %s: %w", what, id, err)
}

func toDomainPlayer(p db.Player) domain.Player {
	return domain.Player{
		ID:              p.ID,
		Nickname:        p.Nickname,
		Region:          domain.Region(p.Region),
		Tranche:         domain.Tranche(p.Tranche),
		Points:          p.Points,
		Rank:            int(p.Rank),
		IsWorldChampion: p.IsWorldChampion,
		IsActive:        p.IsActive,
		LastUpdate:      p.LastUpdate,
	}
}

func toDomainPoolEntry(e db.PoolEntry) domain.PoolEntry {
	return domain.PoolEntry{
		Player:      toDomainPlayer(e.Player),
		IsAvailable: e.IsAvailable,
		Stats: domain.PlayerStats{
			TotalPoints:       e.TotalPoints,
			TournamentsPlayed: int(e.TournamentsPlayed),
			AveragePlacement:  e.AveragePlacement,
			WinRate:           e.WinRate,
		},
	}
}

func upsertPlayerParams(p domain.Player, now time.Time) db.UpsertPlayerParams {
	lastUpdate := p.LastUpdate
	if lastUpdate.IsZero() {
		lastUpdate = now
	}
	return db.UpsertPlayerParams{
		ID:              p.ID,
		Nickname:        p.Nickname,
		Region:          string(p.Region),
		Tranche:         string(p.Tranche),
		Points:          p.Points,
		Rank:            int64(p.Rank),
		IsWorldChampion: p.IsWorldChampion,
		IsActive:        p.IsActive,
		LastUpdate:      lastUpdate.UTC(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
