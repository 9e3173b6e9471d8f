package db

import (
	"context"
	"time"
)

const insertLeaderboardSnapshot = `-- name: InsertLeaderboardSnapshot :exec
INSERT INTO leaderboard_snapshots (id, season, region, created_at) VALUES (?, ?, ?, ?)
`

type InsertLeaderboardSnapshotParams struct {
	ID        string
	Season    int64
	Region    string
	CreatedAt time.Time
}

func (q *Queries) InsertLeaderboardSnapshot(ctx context.Context, arg InsertLeaderboardSnapshotParams) error {
	_, err := q.db.ExecContext(ctx, insertLeaderboardSnapshot, arg.ID, arg.Season, arg.Region, arg.CreatedAt)
	return err
}

const insertLeaderboardEntry = `-- name: InsertLeaderboardEntry :exec
INSERT INTO leaderboard_entries (snapshot_id, rank, team_id, user_id, total_points, points_by_region, regions_won, first_place_players, world_champions)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

func (q *Queries) InsertLeaderboardEntry(ctx context.Context, arg LeaderboardEntry) error {
	_, err := q.db.ExecContext(ctx, insertLeaderboardEntry,
		arg.SnapshotID,
		arg.Rank,
		arg.TeamID,
		arg.UserID,
		arg.TotalPoints,
		arg.PointsByRegion,
		arg.RegionsWon,
		arg.FirstPlacePlayers,
		arg.WorldChampions,
	)
	return err
}

const getLatestLeaderboardSnapshot = `-- name: GetLatestLeaderboardSnapshot :one
SELECT id, season, region, created_at
FROM leaderboard_snapshots
WHERE season = ? AND region = ?
ORDER BY created_at DESC, rowid DESC
LIMIT 1
`

type GetLatestLeaderboardSnapshotParams struct {
	Season int64
	Region string
}

func (q *Queries) GetLatestLeaderboardSnapshot(ctx context.Context, arg GetLatestLeaderboardSnapshotParams) (LeaderboardSnapshot, error) {
	row := q.db.QueryRowContext(ctx, getLatestLeaderboardSnapshot, arg.Season, arg.Region)
	var s LeaderboardSnapshot
	err := row.Scan(&s.ID, &s.Season, &s.Region, &s.CreatedAt)
	return s, err
}

const listLeaderboardEntries = `-- name: ListLeaderboardEntries :many
SELECT snapshot_id, rank, team_id, user_id, total_points, points_by_region, regions_won, first_place_players, world_champions
FROM leaderboard_entries
WHERE snapshot_id = ?
ORDER BY rank
`

func (q *Queries) ListLeaderboardEntries(ctx context.Context, snapshotID string) ([]LeaderboardEntry, error) {
	rows, err := q.db.QueryContext(ctx, listLeaderboardEntries, snapshotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(
			&e.SnapshotID,
			&e.Rank,
			&e.TeamID,
			&e.UserID,
			&e.TotalPoints,
			&e.PointsByRegion,
			&e.RegionsWon,
			&e.FirstPlacePlayers,
			&e.WorldChampions,
		); err != nil {
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
