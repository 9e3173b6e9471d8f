package service

import (
	"context"
	"errors"
	"fmt"

	"fantasy-league/internal/constants"
	"fantasy-league/internal/domain"
	"fantasy-league/internal/repository"
	"fantasy-league/internal/rules"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type TradeService struct {
	engine *rules.Engine
	teams  *repository.TeamRepository
	pool   *repository.PlayerPoolRepository
	trades *repository.TradeRepository
	clock  Clock
	logger zerolog.Logger
}

func NewTradeService(engine *rules.Engine, teams *repository.TeamRepository, pool *repository.PlayerPoolRepository, trades *repository.TradeRepository, clock Clock, logger zerolog.Logger) *TradeService {
	return &TradeService{engine: engine, teams: teams, pool: pool, trades: trades, clock: clock, logger: logger}
}

// Validate checks a proposed trade against the current team and pool.
// The result is informational only; Execute never reuses it.
func (s *TradeService) Validate(ctx context.Context, req rules.TradeRequest) (domain.TradeValidation, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	team, pool, err := s.loadSnapshot(ctx, req.TeamID)
	if err != nil {
		return domain.TradeValidation{}, err
	}

	v, err := s.engine.ValidateTrade(*team, pool, req, s.clock())
	if err != nil {
		s.logger.Warn().Err(err).
			Str("team_id", req.TeamID).
			Str("player_out", req.PlayerOutID).
			Str("player_in", req.PlayerInID).
			Msg("malformed trade request")
		return domain.TradeValidation{}, err
	}

	s.logger.Info().
		Str("team_id", req.TeamID).
		Str("player_out", req.PlayerOutID).
		Str("player_in", req.PlayerInID).
		Bool("valid", v.IsValid).
		Str("reason", v.Reason).
		Msg("trade validated")
	return v, nil
}

// Execute reloads the team and pool, validates again and persists the
// resulting team. A concurrent writer on the same team surfaces as
// repository.ErrConcurrentUpdate.
func (s *TradeService) Execute(ctx context.Context, req rules.TradeRequest) (*domain.Team, domain.Trade, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	team, pool, err := s.loadSnapshot(ctx, req.TeamID)
	if err != nil {
		return nil, domain.Trade{}, err
	}

	now := s.clock()
	next, err := s.engine.ExecuteTrade(*team, pool, req, now)
	if err != nil {
		var rejected *rules.RejectedError
		if errors.As(err, &rejected) {
			s.logger.Info().Str("team_id", req.TeamID).Str("reason", rejected.Reason).Msg("trade rejected at execution")
		} else {
			s.logger.Warn().Err(err).Str("team_id", req.TeamID).Msg("malformed trade request")
		}
		return nil, domain.Trade{}, err
	}

	trade, err := s.trades.Apply(ctx, *team, next, domain.Trade{
		TeamID:      team.ID,
		PlayerOutID: req.PlayerOutID,
		PlayerInID:  req.PlayerInID,
		ExecutedAt:  now,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("team_id", req.TeamID).Msg("failed to persist trade")
		return nil, domain.Trade{}, fmt.Errorf("failed to persist trade: %w", err)
	}

	next.Version = team.Version + 1
	s.logger.Info().
		Str("trade_id", trade.ID).
		Str("team_id", team.ID).
		Int("trades_remaining", next.TradesRemaining).
		Msg("trade executed")
	return &next, trade, nil
}

func (s *TradeService) History(ctx context.Context, teamID string, limit int) ([]domain.Trade, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.trades.ListByTeam(ctx, teamID, limit)
}

func (s *TradeService) loadSnapshot(ctx context.Context, teamID string) (*domain.Team, *rules.PoolSnapshot, error) {
	dbCtx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	g, gCtx := errgroup.WithContext(dbCtx)
	var team *domain.Team
	var pool *rules.PoolSnapshot

	g.Go(func() error {
		var err error
		team, err = s.teams.Get(gCtx, teamID)
		return err
	})

	g.Go(func() error {
		var err error
		pool, err = s.pool.Snapshot(gCtx)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Str("team_id", teamID).Msg("failed to load trade snapshot")
		return nil, nil, fmt.Errorf("failed to load trade snapshot: %w", err)
	}
	return team, pool, nil
}
