package service

import (
	"context"
	"errors"
	"fmt"

	"fantasy-league/internal/cache"
	"fantasy-league/internal/constants"
	"fantasy-league/internal/domain"
	"fantasy-league/internal/repository"
	"fantasy-league/internal/rules"

	"github.com/rs/zerolog"
)

type LeaderboardService struct {
	teams  *repository.TeamRepository
	repo   *repository.LeaderboardRepository
	cache  cache.LeaderboardCache
	clock  Clock
	logger zerolog.Logger
}

func NewLeaderboardService(teams *repository.TeamRepository, repo *repository.LeaderboardRepository, c cache.LeaderboardCache, clock Clock, logger zerolog.Logger) *LeaderboardService {
	return &LeaderboardService{teams: teams, repo: repo, cache: c, clock: clock, logger: logger}
}

// Compute ranks the season's teams without storing anything.
func (s *LeaderboardService) Compute(ctx context.Context, season int, region domain.Region) ([]domain.LeaderboardEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if region != "" && !region.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownRegion, region)
	}

	teams, err := s.teams.ListBySeason(ctx, season)
	if err != nil {
		s.logger.Error().Err(err).Int("season", season).Msg("failed to load teams")
		return nil, err
	}

	return rules.Rank(rules.BuildEntries(teams, rules.RankOptions{Season: season, Region: region})), nil
}

// Refresh recomputes the leaderboard, stores a snapshot and updates the cache.
// A cache failure is logged and does not fail the refresh.
func (s *LeaderboardService) Refresh(ctx context.Context, season int, region domain.Region) (*repository.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	entries, err := s.Compute(ctx, season, region)
	if err != nil {
		return nil, err
	}

	snap, err := s.repo.Save(ctx, season, region, entries, s.clock())
	if err != nil {
		s.logger.Error().Err(err).Int("season", season).Str("region", string(region)).Msg("failed to save leaderboard")
		return nil, err
	}

	if err := s.cache.Store(ctx, season, region, entries); err != nil {
		s.logger.Warn().Err(err).Int("season", season).Str("region", string(region)).Msg("failed to cache leaderboard")
	}

	s.logger.Info().
		Str("snapshot_id", snap.ID).
		Int("season", season).
		Str("region", string(region)).
		Int("entries", len(entries)).
		Msg("leaderboard refreshed")
	return snap, nil
}

func (s *LeaderboardService) Latest(ctx context.Context, season int, region domain.Region) (*repository.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	return s.repo.Latest(ctx, season, region)
}

// Top returns the first n ranks, from the cache when it has them and from
// the latest stored snapshot otherwise. n <= 0 yields an empty result.
func (s *LeaderboardService) Top(ctx context.Context, season int, region domain.Region, n int) ([]cache.Ranked, error) {
	if n <= 0 {
		return []cache.Ranked{}, nil
	}

	top, err := s.cache.Top(ctx, season, region, n)
	if err == nil {
		return top, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		s.logger.Warn().Err(err).Msg("leaderboard cache read failed")
	}

	snap, err := s.Latest(ctx, season, region)
	if err != nil {
		return nil, err
	}

	out := make([]cache.Ranked, 0, min(n, len(snap.Entries)))
	for _, e := range snap.Entries {
		if len(out) == n {
			break
		}
		out = append(out, cache.Ranked{Rank: e.Rank, UserID: e.UserID, TotalPoints: e.TotalPoints})
	}
	return out, nil
}
