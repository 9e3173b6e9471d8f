package repository

import (
	"context"
	"database/sql"
	"fmt"

	"fantasy-league/internal/db"
	"fantasy-league/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type TradeRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewTradeRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *TradeRepository {
	return &TradeRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// Apply persists an executed trade atomically: the team row (guarded by
// prev.Version), the swapped roster slot, pool availability of both players
// and the trade log. If another writer bumped the team version first the
// whole write is abandoned with ErrConcurrentUpdate.
func (r *TradeRepository) Apply(ctx context.Context, prev, next domain.Team, trade domain.Trade) (domain.Trade, error) {
	pos := prev.PlayerIndex(trade.PlayerOutID)
	if pos < 0 || pos >= len(next.Players) || next.Players[pos].ID != trade.PlayerInID {
		return domain.Trade{}, fmt.Errorf("trade %s -> %s does not match the new roster of team %s",
			trade.PlayerOutID, trade.PlayerInID, prev.ID)
	}

	if trade.ID == "" {
		id, err := gonanoid.New()
		if err != nil {
			return domain.Trade{}, fmt.Errorf("failed to generate nanoid: %w", err)
		}
		trade.ID = id
	}
	trade.TeamID = prev.ID
	trade.ExecutedAt = trade.ExecutedAt.UTC()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Trade{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	n, err := qtx.UpdateTeamTrade(ctx, db.UpdateTeamTradeParams{
		TradesRemaining: int64(next.TradesRemaining),
		LastTradeDate:   nullTime(next.LastTradeDate),
		UpdatedAt:       trade.ExecutedAt,
		ID:              prev.ID,
		Version:         prev.Version,
	})
	if err != nil {
		return domain.Trade{}, fmt.Errorf("failed to update team %s: %w", prev.ID, err)
	}
	if n == 0 {
		r.logger.Warn().Str("team_id", prev.ID).Int64("version", prev.Version).Msg("team changed since snapshot")
		return domain.Trade{}, fmt.Errorf("team %s: %w", prev.ID, ErrConcurrentUpdate)
	}

	err = qtx.SetTeamPlayer(ctx, db.SetTeamPlayerParams{
		TeamID:   prev.ID,
		Position: int64(pos),
		PlayerID: trade.PlayerInID,
	})
	if err != nil {
		return domain.Trade{}, fmt.Errorf("failed to swap roster slot %d: %w", pos, err)
	}

	// the outgoing player may never have had a pool entry
	for _, a := range []struct {
		id        string
		available bool
		points    float64
	}{
		{trade.PlayerOutID, true, prev.Players[pos].Points},
		{trade.PlayerInID, false, next.Players[pos].Points},
	} {
		err := qtx.UpsertPoolAvailability(ctx, db.UpsertPoolAvailabilityParams{
			PlayerID:    a.id,
			IsAvailable: a.available,
			TotalPoints: a.points,
			UpdatedAt:   trade.ExecutedAt,
		})
		if err != nil {
			return domain.Trade{}, fmt.Errorf("failed to set availability for %s: %w", a.id, err)
		}
	}

	err = qtx.InsertTrade(ctx, db.InsertTradeParams{
		ID:          trade.ID,
		TeamID:      trade.TeamID,
		PlayerOutID: trade.PlayerOutID,
		PlayerInID:  trade.PlayerInID,
		ExecutedAt:  trade.ExecutedAt,
	})
	if err != nil {
		return domain.Trade{}, fmt.Errorf("failed to log trade: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.Trade{}, fmt.Errorf("failed to commit trade: %w", err)
	}
	return trade, nil
}

func (r *TradeRepository) ListByTeam(ctx context.Context, teamID string, limit int) ([]domain.Trade, error) {
	rows, err := r.queries.ListTradesByTeam(ctx, db.ListTradesByTeamParams{
		TeamID: teamID,
		Limit:  int64(limit),
	})
	if err != nil {
		return nil, err
	}

	result := make([]domain.Trade, len(rows))
	for i, t := range rows {
		result[i] = domain.Trade{
			ID:          t.ID,
			TeamID:      t.TeamID,
			PlayerOutID: t.PlayerOutID,
			PlayerInID:  t.PlayerInID,
			ExecutedAt:  t.ExecutedAt,
		}
	}
	return result, nil
}
