package service

import (
	"context"
	"fmt"

	"fantasy-league/internal/constants"
	"fantasy-league/internal/domain"
	"fantasy-league/internal/repository"
	"fantasy-league/internal/rules"

	"github.com/rs/zerolog"
)

type StatsService struct {
	teams  *repository.TeamRepository
	logger zerolog.Logger
}

func NewStatsService(teams *repository.TeamRepository, logger zerolog.Logger) *StatsService {
	return &StatsService{teams: teams, logger: logger}
}

// TopPercentile counts the team's players inside the season-wide top
// percentile% of rostered scorers.
func (s *StatsService) TopPercentile(ctx context.Context, teamID string, percentile float64) (int, error) {
	team, all, err := s.load(ctx, teamID)
	if err != nil {
		return 0, err
	}
	return rules.TopPercentileCount(*team, all, percentile), nil
}

func (s *StatsService) RegionPerformance(ctx context.Context, teamID string) (map[domain.Region]float64, error) {
	team, all, err := s.load(ctx, teamID)
	if err != nil {
		return nil, err
	}
	return rules.RegionPerformance(*team, all), nil
}

func (s *StatsService) load(ctx context.Context, teamID string) (*domain.Team, []domain.Team, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	team, err := s.teams.Get(ctx, teamID)
	if err != nil {
		s.logger.Error().Err(err).Str("team_id", teamID).Msg("team not found")
		return nil, nil, err
	}

	all, err := s.teams.ListBySeason(ctx, team.Season)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load season %d: %w", team.Season, err)
	}
	return team, all, nil
}
