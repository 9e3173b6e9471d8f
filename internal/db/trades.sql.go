package db

import (
	"context"
	"time"
)

const insertTrade = `-- name: InsertTrade :exec
INSERT INTO trades (id, team_id, player_out_id, player_in_id, executed_at) VALUES (?, ?, ?, ?, ?)
`

type InsertTradeParams struct {
	ID          string
	TeamID      string
	PlayerOutID string
	PlayerInID  string
	ExecutedAt  time.Time
}

func (q *Queries) InsertTrade(ctx context.Context, arg InsertTradeParams) error {
	_, err := q.db.ExecContext(ctx, insertTrade, arg.ID, arg.TeamID, arg.PlayerOutID, arg.PlayerInID, arg.ExecutedAt)
	return err
}

const listTradesByTeam = `-- name: ListTradesByTeam :many
SELECT id, team_id, player_out_id, player_in_id, executed_at
FROM trades
WHERE team_id = ?
ORDER BY executed_at DESC, id
LIMIT ?
`

type ListTradesByTeamParams struct {
	TeamID string
	Limit  int64
}

func (q *Queries) ListTradesByTeam(ctx context.Context, arg ListTradesByTeamParams) ([]Trade, error) {
	rows, err := q.db.QueryContext(ctx, listTradesByTeam, arg.TeamID, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Trade
	for rows.Next() {
		var t Trade
		if err := rows.Scan(&t.ID, &t.TeamID, &t.PlayerOutID, &t.PlayerInID, &t.ExecutedAt); err != nil {
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
