package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"fantasy-league/internal/domain"

	"github.com/go-redis/redis/v8"
)

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(addr string, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{
			Addr: addr,
		}),
		ttl: ttl,
	}
}

// Store replaces the cached leaderboard. The sorted set is scored by the
// computed rank so ZRANGE returns it in leaderboard order; points live in a
// side hash.
func (c *RedisCache) Store(ctx context.Context, season int, region domain.Region, entries []domain.LeaderboardEntry) error {
	key := leaderboardKey(season, region)
	pkey := pointsKey(season, region)

	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key, pkey)
		if len(entries) == 0 {
			return nil
		}

		members := make([]*redis.Z, len(entries))
		points := make(map[string]interface{}, len(entries))
		for i, e := range entries {
			members[i] = &redis.Z{Score: float64(e.Rank), Member: e.UserID}
			points[e.UserID] = e.TotalPoints
		}
		pipe.ZAdd(ctx, key, members...)
		pipe.HSet(ctx, pkey, points)
		pipe.Expire(ctx, key, c.ttl)
		pipe.Expire(ctx, pkey, c.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to cache leaderboard %s: %w", key, err)
	}
	return nil
}

// Top reads the first n ranks. n <= 0 yields an empty result without a
// round trip; ZRANGE 0 -1 would return the whole board.
func (c *RedisCache) Top(ctx context.Context, season int, region domain.Region, n int) ([]Ranked, error) {
	if n <= 0 {
		return []Ranked{}, nil
	}

	key := leaderboardKey(season, region)

	members, err := c.client.ZRangeWithScores(ctx, key, 0, int64(n)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard %s: %w", key, err)
	}
	if len(members) == 0 {
		return nil, ErrMiss
	}

	fields := make([]string, len(members))
	for i, m := range members {
		fields[i] = fmt.Sprint(m.Member)
	}
	vals, err := c.client.HMGet(ctx, pointsKey(season, region), fields...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard points %s: %w", key, err)
	}

	out := make([]Ranked, len(members))
	for i, m := range members {
		out[i] = Ranked{Rank: int(m.Score), UserID: fields[i]}
		if s, ok := vals[i].(string); ok {
			out[i].TotalPoints, _ = strconv.ParseFloat(s, 64)
		}
	}
	return out, nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
