package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"fantasy-league/internal/db"
	"fantasy-league/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type LeaderboardRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewLeaderboardRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *LeaderboardRepository {
	return &LeaderboardRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// Snapshot is a stored leaderboard. Entry.Team only carries the team id and
// owner; rosters are not frozen with the snapshot.
type Snapshot struct {
	ID        string
	Season    int
	Region    domain.Region
	CreatedAt time.Time
	Entries   []domain.LeaderboardEntry
}

func (r *LeaderboardRepository) Save(ctx context.Context, season int, region domain.Region, entries []domain.LeaderboardEntry, at time.Time) (*Snapshot, error) {
	snap := &Snapshot{
		ID:        uuid.New().String(),
		Season:    season,
		Region:    region,
		CreatedAt: at.UTC(),
		Entries:   entries,
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	err = qtx.InsertLeaderboardSnapshot(ctx, db.InsertLeaderboardSnapshotParams{
		ID:        snap.ID,
		Season:    int64(season),
		Region:    string(region),
		CreatedAt: snap.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert leaderboard snapshot: %w", err)
	}

	for _, e := range entries {
		byRegion, err := json.Marshal(e.PointsByRegion)
		if err != nil {
			return nil, fmt.Errorf("failed to encode points by region: %w", err)
		}
		var teamID string
		if e.Team != nil {
			teamID = e.Team.ID
		}
		err = qtx.InsertLeaderboardEntry(ctx, db.LeaderboardEntry{
			SnapshotID:        snap.ID,
			Rank:              int64(e.Rank),
			TeamID:            teamID,
			UserID:            e.UserID,
			TotalPoints:       e.TotalPoints,
			PointsByRegion:    string(byRegion),
			RegionsWon:        int64(e.RegionsWon),
			FirstPlacePlayers: int64(e.FirstPlacePlayers),
			WorldChampions:    int64(e.WorldChampions),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to insert leaderboard entry rank %d: %w", e.Rank, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit leaderboard snapshot: %w", err)
	}

	r.logger.Debug().Str("snapshot_id", snap.ID).Int("entries", len(entries)).Msg("leaderboard snapshot saved")
	return snap, nil
}

func (r *LeaderboardRepository) Latest(ctx context.Context, season int, region domain.Region) (*Snapshot, error) {
	s, err := r.queries.GetLatestLeaderboardSnapshot(ctx, db.GetLatestLeaderboardSnapshotParams{
		Season: int64(season),
		Region: string(region),
	})
	if err != nil {
		return nil, notFound(err, "leaderboard for season", fmt.Sprintf("%d/%s", season, region))
	}

	rows, err := r.queries.ListLeaderboardEntries(ctx, s.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaderboard entries: %w", err)
	}

	snap := &Snapshot{
		ID:        s.ID,
		Season:    int(s.Season),
		Region:    domain.Region(s.Region),
		CreatedAt: s.CreatedAt,
		Entries:   make([]domain.LeaderboardEntry, len(rows)),
	}
	for i, row := range rows {
		byRegion := make(map[domain.Region]float64)
		if err := json.Unmarshal([]byte(row.PointsByRegion), &byRegion); err != nil {
			return nil, fmt.Errorf("failed to decode points by region: %w", err)
		}
		snap.Entries[i] = domain.LeaderboardEntry{
			Rank:              int(row.Rank),
			UserID:            row.UserID,
			TotalPoints:       row.TotalPoints,
			PointsByRegion:    byRegion,
			RegionsWon:        int(row.RegionsWon),
			FirstPlacePlayers: int(row.FirstPlacePlayers),
			WorldChampions:    int(row.WorldChampions),
			Team:              &domain.Team{ID: row.TeamID, UserID: row.UserID, Season: snap.Season},
		}
	}
	return snap, nil
}
