package cache

import (
	"context"
	"errors"
	"fmt"

	"fantasy-league/internal/config"
	"fantasy-league/internal/domain"

	"github.com/rs/zerolog"
)

var ErrMiss = errors.New("cache miss")

// Ranked is the slice of a leaderboard entry kept in the cache.
type Ranked struct {
	Rank        int
	UserID      string
	TotalPoints float64
}

type LeaderboardCache interface {
	Store(ctx context.Context, season int, region domain.Region, entries []domain.LeaderboardEntry) error
	Top(ctx context.Context, season int, region domain.Region, n int) ([]Ranked, error)
	Close() error
}

// New returns the Redis cache when REDIS_ADDR is configured, otherwise a no-op.
func New(cfg *config.Config, logger zerolog.Logger) LeaderboardCache {
	if cfg.RedisAddr == "" {
		logger.Info().Msg("leaderboard cache disabled")
		return NewNoop()
	}
	logger.Info().Str("addr", cfg.RedisAddr).Msg("leaderboard cache enabled")
	return NewRedisCache(cfg.RedisAddr, cfg.CacheTTL)
}

func leaderboardKey(season int, region domain.Region) string {
	if region == "" {
		region = "ALL"
	}
	return fmt.Sprintf("leaderboard:%d:%s", season, region)
}

func pointsKey(season int, region domain.Region) string {
	return leaderboardKey(season, region) + ":points"
}

// Noop is used when no cache is configured; every read misses.
type Noop struct{}

func NewNoop() *Noop { return &Noop{} }

func (Noop) Store(context.Context, int, domain.Region, []domain.LeaderboardEntry) error {
	return nil
}

func (Noop) Top(context.Context, int, domain.Region, int) ([]Ranked, error) {
	return nil, ErrMiss
}

func (Noop) Close() error {
	return nil
}
