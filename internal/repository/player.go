package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fantasy-league/internal/constants"
	"fantasy-league/internal/db"
	"fantasy-league/internal/domain"
	"fantasy-league/internal/rules"

	"github.com/rs/zerolog"
)

type PlayerPoolRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewPlayerPoolRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *PlayerPoolRepository {
	return &PlayerPoolRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *PlayerPoolRepository) Get(ctx context.Context, playerID string) (*domain.PoolEntry, error) {
	e, err := r.queries.GetPoolEntry(ctx, playerID)
	if err != nil {
		return nil, notFound(err, "pool player", playerID)
	}
	entry := toDomainPoolEntry(e)
	return &entry, nil
}

func (r *PlayerPoolRepository) GetPlayer(ctx context.Context, playerID string) (*domain.Player, error) {
	p, err := r.queries.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, notFound(err, "player", playerID)
	}
	player := toDomainPlayer(p)
	return &player, nil
}

// Snapshot loads the whole pool into memory for one rules evaluation.
func (r *PlayerPoolRepository) Snapshot(ctx context.Context) (*rules.PoolSnapshot, error) {
	rows, err := r.queries.ListPoolEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pool: %w", err)
	}

	entries := make([]domain.PoolEntry, len(rows))
	for i, row := range rows {
		entries[i] = toDomainPoolEntry(row)
	}

	r.logger.Debug().Int("size", len(entries)).Msg("pool snapshot loaded")
	return rules.NewPoolSnapshot(entries), nil
}

func (r *PlayerPoolRepository) Search(ctx context.Context, c rules.Criteria) ([]domain.PoolEntry, error) {
	snap, err := r.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Search(c), nil
}

// Upsert writes the player and its pool entry, availability included.
func (r *PlayerPoolRepository) Upsert(ctx context.Context, entry domain.PoolEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)
	now := time.Now().UTC()

	if err := qtx.UpsertPlayer(ctx, upsertPlayerParams(entry.Player, now)); err != nil {
		return fmt.Errorf("failed to upsert player %s: %w", entry.ID, err)
	}
	if err := qtx.UpsertPoolEntry(ctx, poolParams(entry, now)); err != nil {
		return fmt.Errorf("failed to upsert pool entry %s: %w", entry.ID, err)
	}

	return tx.Commit()
}

// UpsertBatch refreshes players and pool stats. Availability of players
// already in the pool is left alone since it is owned by trades.
func (r *PlayerPoolRepository) UpsertBatch(ctx context.Context, entries []domain.PoolEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)
	now := time.Now().UTC()

	for i := 0; i < len(entries); i += constants.DBBatchSize {
		end := min(i+constants.DBBatchSize, len(entries))

		for _, entry := range entries[i:end] {
			if err := entry.Validate(); err != nil {
				r.logger.Warn().Err(err).Str("player_id", entry.ID).Msg("skipping invalid pool entry")
				continue
			}
			if err := qtx.UpsertPlayer(ctx, upsertPlayerParams(entry.Player, now)); err != nil {
				return fmt.Errorf("failed to upsert player %s: %w", entry.ID, err)
			}
			if err := qtx.UpsertPoolStats(ctx, poolParams(entry, now)); err != nil {
				return fmt.Errorf("failed to upsert pool stats %s: %w", entry.ID, err)
			}
		}

		r.logger.Debug().Int("from", i).Int("to", end).Msg("pool batch written")
	}

	return tx.Commit()
}

func (r *PlayerPoolRepository) SetAvailability(ctx context.Context, playerID string, available bool) error {
	n, err := r.queries.SetPoolAvailability(ctx, db.SetPoolAvailabilityParams{
		IsAvailable: available,
		UpdatedAt:   time.Now().UTC(),
		PlayerID:    playerID,
	})
	if err != nil {
		return fmt.Errorf("failed to set availability for %s: %w", playerID, err)
	}
	if n == 0 {
		return fmt.Errorf("pool player %s: %w", playerID, ErrNotFound)
	}
	return nil
}

func poolParams(entry domain.PoolEntry, now time.Time) db.UpsertPoolEntryParams {
	return db.UpsertPoolEntryParams{
		PlayerID:          entry.ID,
		IsAvailable:       entry.IsAvailable,
		TotalPoints:       entry.Stats.TotalPoints,
		TournamentsPlayed: int64(entry.Stats.TournamentsPlayed),
		AveragePlacement:  entry.Stats.AveragePlacement,
		WinRate:           entry.Stats.WinRate,
		UpdatedAt:         now,
	}
}
