package db

import (
	"context"
	"database/sql"
	"time"
)

const teamColumns = `id, name, user_id, season, trades_remaining, last_trade_date, version, created_at, updated_at`

func scanTeam(row scanner) (Team, error) {
	var t Team
	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.UserID,
		&t.Season,
		&t.TradesRemaining,
		&t.LastTradeDate,
		&t.Version,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	return t, err
}

const insertTeam = `-- name: InsertTeam :exec
INSERT INTO teams (id, name, user_id, season, trades_remaining, last_trade_date, version, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, 1, ?, ?)
`

type InsertTeamParams struct {
	ID              string
	Name            string
	UserID          string
	Season          int64
	TradesRemaining int64
	LastTradeDate   sql.NullTime
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (q *Queries) InsertTeam(ctx context.Context, arg InsertTeamParams) error {
	_, err := q.db.ExecContext(ctx, insertTeam,
		arg.ID,
		arg.Name,
		arg.UserID,
		arg.Season,
		arg.TradesRemaining,
		arg.LastTradeDate,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const getTeam = `-- name: GetTeam :one
SELECT ` + teamColumns + ` FROM teams WHERE id = ?
`

func (q *Queries) GetTeam(ctx context.Context, id string) (Team, error) {
	row := q.db.QueryRowContext(ctx, getTeam, id)
	return scanTeam(row)
}

const listTeamsBySeason = `-- name: ListTeamsBySeason :many
SELECT ` + teamColumns + ` FROM teams WHERE season = ? ORDER BY created_at, id
`

func (q *Queries) ListTeamsBySeason(ctx context.Context, season int64) ([]Team, error) {
	rows, err := q.db.QueryContext(ctx, listTeamsBySeason, season)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Team
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateTeamTrade = `-- name: UpdateTeamTrade :execrows
UPDATE teams
SET trades_remaining = ?, last_trade_date = ?, version = version + 1, updated_at = ?
WHERE id = ? AND version = ?
`

type UpdateTeamTradeParams struct {
	TradesRemaining int64
	LastTradeDate   sql.NullTime
	UpdatedAt       time.Time
	ID              string
	Version         int64
}

func (q *Queries) UpdateTeamTrade(ctx context.Context, arg UpdateTeamTradeParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateTeamTrade,
		arg.TradesRemaining,
		arg.LastTradeDate,
		arg.UpdatedAt,
		arg.ID,
		arg.Version,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const setTeamPlayer = `-- name: SetTeamPlayer :exec
INSERT INTO team_players (team_id, position, player_id) VALUES (?, ?, ?)
ON CONFLICT (team_id, position) DO UPDATE SET player_id = excluded.player_id
`

type SetTeamPlayerParams struct {
	TeamID   string
	Position int64
	PlayerID string
}

func (q *Queries) SetTeamPlayer(ctx context.Context, arg SetTeamPlayerParams) error {
	_, err := q.db.ExecContext(ctx, setTeamPlayer, arg.TeamID, arg.Position, arg.PlayerID)
	return err
}

const listTeamPlayers = `-- name: ListTeamPlayers :many
SELECT tp.team_id, tp.position, ` + playerColumns + `
FROM team_players tp
JOIN players p ON p.id = tp.player_id
WHERE tp.team_id = ?
ORDER BY tp.position
`

func (q *Queries) ListTeamPlayers(ctx context.Context, teamID string) ([]TeamPlayer, error) {
	return q.listTeamPlayers(ctx, listTeamPlayers, teamID)
}

const listSeasonTeamPlayers = `-- name: ListSeasonTeamPlayers :many
SELECT tp.team_id, tp.position, ` + playerColumns + `
FROM team_players tp
JOIN players p ON p.id = tp.player_id
JOIN teams t ON t.id = tp.team_id
WHERE t.season = ?
ORDER BY tp.team_id, tp.position
`

func (q *Queries) ListSeasonTeamPlayers(ctx context.Context, season int64) ([]TeamPlayer, error) {
	return q.listTeamPlayers(ctx, listSeasonTeamPlayers, season)
}

func (q *Queries) listTeamPlayers(ctx context.Context, query string, arg interface{}) ([]TeamPlayer, error) {
	rows, err := q.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []TeamPlayer
	for rows.Next() {
		var tp TeamPlayer
		var teamID string
		var position int64
		p, err := scanPlayerAfter(rows, &teamID, &position)
		if err != nil {
			return nil, err
		}
		tp.TeamID = teamID
		tp.Position = position
		tp.Player = p
		items = append(items, tp)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// scanPlayerAfter scans leading columns into prefix before the player columns.
func scanPlayerAfter(row scanner, prefix ...interface{}) (Player, error) {
	var p Player
	dest := append(prefix,
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
	)
	err := row.Scan(dest...)
	return p, err
}
