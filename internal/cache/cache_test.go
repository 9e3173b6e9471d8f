package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"fantasy-league/internal/config"
	"fantasy-league/internal/domain"

	"github.com/rs/zerolog"
)

func TestKeys(t *testing.T) {
	if got := leaderboardKey(2025, ""); got != "leaderboard:2025:ALL" {
		t.Errorf("key=%q", got)
	}
	if got := pointsKey(2025, domain.RegionOCE); got != "leaderboard:2025:OCE:points" {
		t.Errorf("points key=%q", got)
	}
}

func TestNew_SelectsImplementation(t *testing.T) {
	c := New(&config.Config{}, zerolog.Nop())
	if _, ok := c.(*Noop); !ok {
		t.Fatalf("got %T want *Noop", c)
	}

	r := New(&config.Config{RedisAddr: "localhost:6379", CacheTTL: time.Minute}, zerolog.Nop())
	if _, ok := r.(*RedisCache); !ok {
		t.Fatalf("got %T want *RedisCache", r)
	}
	r.Close()
}

func TestNoop(t *testing.T) {
	ctx := context.Background()
	c := NewNoop()
	if err := c.Store(ctx, 2025, "", []domain.LeaderboardEntry{{Rank: 1}}); err != nil {
		t.Fatalf("Store: %v", err)
	}
	if _, err := c.Top(ctx, 2025, "", 10); !errors.Is(err, ErrMiss) {
		t.Fatalf("Top err=%v want ErrMiss", err)
	}
}

func TestRedisCache_TopNonPositive(t *testing.T) {
	// nothing listens here; a non-positive n must not reach the server
	c := NewRedisCache("127.0.0.1:1", time.Minute)
	defer c.Close()

	for _, n := range []int{0, -3} {
		top, err := c.Top(context.Background(), 2025, "", n)
		if err != nil {
			t.Fatalf("Top(%d): %v", n, err)
		}
		if len(top) != 0 {
			t.Errorf("Top(%d) returned %d rows", n, len(top))
		}
	}
}
