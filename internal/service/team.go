package service

import (
	"context"

	"fantasy-league/internal/constants"
	"fantasy-league/internal/domain"
	"fantasy-league/internal/repository"
	"fantasy-league/internal/rules"

	"github.com/rs/zerolog"
)

type TeamService struct {
	engine *rules.Engine
	teams  *repository.TeamRepository
	logger zerolog.Logger
}

func NewTeamService(engine *rules.Engine, teams *repository.TeamRepository, logger zerolog.Logger) *TeamService {
	return &TeamService{engine: engine, teams: teams, logger: logger}
}

// Create registers a team for season with the configured trade budget.
func (s *TeamService) Create(ctx context.Context, id, name, userID string, season int, players []domain.Player) (*domain.Team, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	team, err := s.engine.NewSeasonTeam(id, name, userID, season, players)
	if err != nil {
		return nil, err
	}

	if err := s.teams.Create(ctx, team); err != nil {
		s.logger.Error().Err(err).Str("team_id", id).Msg("failed to create team")
		return nil, err
	}

	s.logger.Info().
		Str("team_id", id).
		Str("user_id", userID).
		Int("season", season).
		Int("trades_remaining", team.TradesRemaining).
		Msg("team created")
	return s.teams.Get(ctx, id)
}
