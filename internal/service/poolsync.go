package service

import (
	"context"
	"fmt"
	"sync"

	"fantasy-league/internal/constants"
	"fantasy-league/internal/domain"
	"fantasy-league/internal/feed"
	"fantasy-league/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// RankingFeed is the upstream source of regional standings.
type RankingFeed interface {
	Enabled() bool
	GetRegionPlayers(ctx context.Context, region domain.Region) ([]domain.PoolEntry, error)
}

type PoolSyncService struct {
	feed   RankingFeed
	pool   *repository.PlayerPoolRepository
	logger zerolog.Logger
}

func NewPoolSyncService(f RankingFeed, pool *repository.PlayerPoolRepository, logger zerolog.Logger) *PoolSyncService {
	return &PoolSyncService{feed: f, pool: pool, logger: logger}
}

// ProvideRankingFeed adapts the concrete feed client for the fx graph.
func ProvideRankingFeed(c *feed.Client) RankingFeed {
	return c
}

// Sync pulls every region from the feed and upserts the pool. Either all
// regions are written or none.
func (s *PoolSyncService) Sync(ctx context.Context) (int, error) {
	if !s.feed.Enabled() {
		s.logger.Debug().Msg("ranking feed disabled, skipping pool sync")
		return 0, feed.ErrDisabled
	}

	apiCtx, cancel := context.WithTimeout(ctx, constants.FeedTimeout)
	defer cancel()

	g, gCtx := errgroup.WithContext(apiCtx)
	g.SetLimit(4)

	var mu sync.Mutex
	var entries []domain.PoolEntry

	for _, region := range domain.Regions {
		region := region
		g.Go(func() error {
			players, err := s.feed.GetRegionPlayers(gCtx, region)
			if err != nil {
				return err
			}
			mu.Lock()
			entries = append(entries, players...)
			mu.Unlock()
			s.logger.Debug().Str("region", string(region)).Int("players", len(players)).Msg("region standings fetched")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch standings")
		return 0, fmt.Errorf("failed to fetch standings: %w", err)
	}

	dbCtx, dbCancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer dbCancel()

	if err := s.pool.UpsertBatch(dbCtx, entries); err != nil {
		s.logger.Error().Err(err).Msg("failed to store standings")
		return 0, fmt.Errorf("failed to store standings: %w", err)
	}

	s.logger.Info().Int("players", len(entries)).Msg("pool synced")
	return len(entries), nil
}
