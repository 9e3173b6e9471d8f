package db

import (
	"context"
	"time"
)

const playerColumns = `p.id, p.nickname, p.region, p.tranche, p.points, p.rank, p.is_world_champion, p.is_active, p.last_update, p.created_at, p.updated_at`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanPlayer(row scanner, extra ...interface{}) (Player, error) {
	var p Player
	dest := append([]interface{}{
		&p.ID,
		&p.Nickname,
		&p.Region,
		&p.Tranche,
		&p.Points,
		&p.Rank,
		&p.IsWorldChampion,
		&p.IsActive,
		&p.LastUpdate,
		&p.CreatedAt,
		&p.UpdatedAt,
	}, extra...)
	err := row.Scan(dest...)
	return p, err
}

const upsertPlayer = `-- name: UpsertPlayer :exec
INSERT INTO players (id, nickname, region, tranche, points, rank, is_world_champion, is_active, last_update, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    nickname = excluded.nickname,
    region = excluded.region,
    tranche = excluded.tranche,
    points = excluded.points,
    rank = excluded.rank,
    is_world_champion = excluded.is_world_champion,
    is_active = excluded.is_active,
    last_update = excluded.last_update,
    updated_at = excluded.updated_at
`

type UpsertPlayerParams struct {
	ID              string
	Nickname        string
	Region          string
	Tranche         string
	Points          float64
	Rank            int64
	IsWorldChampion bool
	IsActive        bool
	LastUpdate      time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (q *Queries) UpsertPlayer(ctx context.Context, arg UpsertPlayerParams) error {
	_, err := q.db.ExecContext(ctx, upsertPlayer,
		arg.ID,
		arg.Nickname,
		arg.Region,
		arg.Tranche,
		arg.Points,
		arg.Rank,
		arg.IsWorldChampion,
		arg.IsActive,
		arg.LastUpdate,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const getPlayer = `-- name: GetPlayer :one
SELECT ` + playerColumns + ` FROM players p WHERE p.id = ?
`

func (q *Queries) GetPlayer(ctx context.Context, id string) (Player, error) {
	row := q.db.QueryRowContext(ctx, getPlayer, id)
	return scanPlayer(row)
}

const upsertPoolEntry = `-- name: UpsertPoolEntry :exec
INSERT INTO player_pool (player_id, is_available, total_points, tournaments_played, average_placement, win_rate, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (player_id) DO UPDATE SET
    is_available = excluded.is_available,
    total_points = excluded.total_points,
    tournaments_played = excluded.tournaments_played,
    average_placement = excluded.average_placement,
    win_rate = excluded.win_rate,
    updated_at = excluded.updated_at
`

type UpsertPoolEntryParams struct {
	PlayerID          string
	IsAvailable       bool
	TotalPoints       float64
	TournamentsPlayed int64
	AveragePlacement  float64
	WinRate           float64
	UpdatedAt         time.Time
}

func (q *Queries) UpsertPoolEntry(ctx context.Context, arg UpsertPoolEntryParams) error {
	_, err := q.db.ExecContext(ctx, upsertPoolEntry,
		arg.PlayerID,
		arg.IsAvailable,
		arg.TotalPoints,
		arg.TournamentsPlayed,
		arg.AveragePlacement,
		arg.WinRate,
		arg.UpdatedAt,
	)
	return err
}

const upsertPoolStats = `-- name: UpsertPoolStats :exec
INSERT INTO player_pool (player_id, is_available, total_points, tournaments_played, average_placement, win_rate, updated_at)
VALUES (?, ? AND NOT EXISTS (SELECT 1 FROM team_players WHERE player_id = ?), ?, ?, ?, ?, ?)
ON CONFLICT (player_id) DO UPDATE SET
    total_points = excluded.total_points,
    tournaments_played = excluded.tournaments_played,
    average_placement = excluded.average_placement,
    win_rate = excluded.win_rate,
    updated_at = excluded.updated_at
`

// UpsertPoolStats refreshes stats without touching availability of an
// existing entry. New entries take IsAvailable from arg unless the player
// is already on a roster.
func (q *Queries) UpsertPoolStats(ctx context.Context, arg UpsertPoolEntryParams) error {
	_, err := q.db.ExecContext(ctx, upsertPoolStats,
		arg.PlayerID,
		arg.IsAvailable,
		arg.PlayerID,
		arg.TotalPoints,
		arg.TournamentsPlayed,
		arg.AveragePlacement,
		arg.WinRate,
		arg.UpdatedAt,
	)
	return err
}

const poolSelect = `SELECT ` + playerColumns + `, pp.is_available, pp.total_points, pp.tournaments_played, pp.average_placement, pp.win_rate
FROM player_pool pp
JOIN players p ON p.id = pp.player_id
`

func scanPoolEntry(row scanner) (PoolEntry, error) {
	var e PoolEntry
	p, err := scanPlayer(row,
		&e.IsAvailable,
		&e.TotalPoints,
		&e.TournamentsPlayed,
		&e.AveragePlacement,
		&e.WinRate,
	)
	e.Player = p
	return e, err
}

const getPoolEntry = `-- name: GetPoolEntry :one
` + poolSelect + `WHERE pp.player_id = ?
`

func (q *Queries) GetPoolEntry(ctx context.Context, playerID string) (PoolEntry, error) {
	row := q.db.QueryRowContext(ctx, getPoolEntry, playerID)
	return scanPoolEntry(row)
}

const listPoolEntries = `-- name: ListPoolEntries :many
` + poolSelect + `ORDER BY p.region, p.rank, p.id
`

func (q *Queries) ListPoolEntries(ctx context.Context) ([]PoolEntry, error) {
	rows, err := q.db.QueryContext(ctx, listPoolEntries)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []PoolEntry
	for rows.Next() {
		e, err := scanPoolEntry(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const upsertPoolAvailability = `-- name: UpsertPoolAvailability :exec
INSERT INTO player_pool (player_id, is_available, total_points, tournaments_played, average_placement, win_rate, updated_at)
VALUES (?, ?, ?, 0, 0, 0, ?)
ON CONFLICT (player_id) DO UPDATE SET
    is_available = excluded.is_available,
    updated_at = excluded.updated_at
`

type UpsertPoolAvailabilityParams struct {
	PlayerID    string
	IsAvailable bool
	TotalPoints float64
	UpdatedAt   time.Time
}

// UpsertPoolAvailability sets availability, creating a stats-less entry when
// the player has never been in the pool.
func (q *Queries) UpsertPoolAvailability(ctx context.Context, arg UpsertPoolAvailabilityParams) error {
	_, err := q.db.ExecContext(ctx, upsertPoolAvailability,
		arg.PlayerID,
		arg.IsAvailable,
		arg.TotalPoints,
		arg.UpdatedAt,
	)
	return err
}

const setPoolAvailability = `-- name: SetPoolAvailability :execrows
UPDATE player_pool SET is_available = ?, updated_at = ? WHERE player_id = ?
`

type SetPoolAvailabilityParams struct {
	IsAvailable bool
	UpdatedAt   time.Time
	PlayerID    string
}

func (q *Queries) SetPoolAvailability(ctx context.Context, arg SetPoolAvailabilityParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, setPoolAvailability, arg.IsAvailable, arg.UpdatedAt, arg.PlayerID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
