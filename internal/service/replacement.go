package service

import (
	"context"
	"fmt"

	"fantasy-league/internal/constants"
	"fantasy-league/internal/domain"
	"fantasy-league/internal/repository"
	"fantasy-league/internal/rules"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type ReplacementService struct {
	engine *rules.Engine
	pool   *repository.PlayerPoolRepository
	teams  *repository.TeamRepository
	logger zerolog.Logger
}

func NewReplacementService(engine *rules.Engine, pool *repository.PlayerPoolRepository, teams *repository.TeamRepository, logger zerolog.Logger) *ReplacementService {
	return &ReplacementService{engine: engine, pool: pool, teams: teams, logger: logger}
}

// Suggest finds the best available substitute for playerID.
func (s *ReplacementService) Suggest(ctx context.Context, playerID string) (rules.Replacement, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)
	var player *domain.Player
	var pool *rules.PoolSnapshot

	g.Go(func() error {
		var err error
		player, err = s.pool.GetPlayer(gCtx, playerID)
		return err
	})

	g.Go(func() error {
		var err error
		pool, err = s.pool.Snapshot(gCtx)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Str("player_id", playerID).Msg("failed to load replacement snapshot")
		return rules.Replacement{}, fmt.Errorf("failed to load replacement snapshot: %w", err)
	}

	if player.IsActive {
		s.logger.Debug().Str("player_id", playerID).Msg("replacement requested for an active player")
	}

	r := s.engine.FindReplacement(*player, pool)
	s.logger.Info().
		Str("player_id", playerID).
		Bool("found", r.Found).
		Str("candidate_id", r.Candidate.ID).
		Msg("replacement search finished")
	return r, nil
}

// SuggestForTeam runs Suggest for every inactive player on the team's roster,
// keyed by the inactive player's id.
func (s *ReplacementService) SuggestForTeam(ctx context.Context, teamID string) (map[string]rules.Replacement, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	team, err := s.teams.Get(ctx, teamID)
	if err != nil {
		return nil, err
	}
	pool, err := s.pool.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	out := make(map[string]rules.Replacement)
	for _, p := range team.Players {
		if p.IsActive {
			continue
		}
		out[p.ID] = s.engine.FindReplacement(p, pool)
	}

	s.logger.Info().Str("team_id", teamID).Int("inactive", len(out)).Msg("team replacements computed")
	return out, nil
}
