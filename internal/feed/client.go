package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"fantasy-league/internal/config"
	"fantasy-league/internal/domain"

	"github.com/valyala/fasthttp"
)

var ErrDisabled = errors.New("ranking feed not configured")

// Client pulls regional player standings from the external ranking feed.
type Client struct {
	baseURL     string
	apiKey      string
	client      *fasthttp.Client
	rateLimitMu sync.RWMutex
	rateLimit   RateLimitInfo
}

type RateLimitInfo struct {
	Limit     int `json:"limit"`
	Remaining int `json:"remaining"`

	// seconds until reset
	Reset int `json:"reset"`

	UpdatedAt time.Time `json:"updated_at"`
}

func NewClient(cfg *config.Config) *Client {
	return newClient(cfg.FeedBaseURL, cfg.FeedAPIKey)
}

func newClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client: &fasthttp.Client{
			MaxConnsPerHost:     16,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		rateLimit: RateLimitInfo{
			Limit:     60,
			Remaining: 60,
			Reset:     60,
			UpdatedAt: time.Now(),
		},
	}
}

func (c *Client) Enabled() bool {
	return c.baseURL != ""
}

func (c *Client) GetRateLimitInfo() RateLimitInfo {
	c.rateLimitMu.RLock()
	defer c.rateLimitMu.RUnlock()
	return c.rateLimit
}

func (c *Client) updateRateLimit(resp *fasthttp.Response) {
	c.rateLimitMu.Lock()
	defer c.rateLimitMu.Unlock()

	if limit := string(resp.Header.Peek("X-Ratelimit-Limit")); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil {
			c.rateLimit.Limit = val
		}
	}
	if remaining := string(resp.Header.Peek("X-Ratelimit-Remaining")); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil {
			c.rateLimit.Remaining = val
		}
	}
	if reset := string(resp.Header.Peek("X-Ratelimit-Reset")); reset != "" {
		if val, err := strconv.Atoi(reset); err == nil {
			c.rateLimit.Reset = val
		}
	}
	c.rateLimit.UpdatedAt = time.Now()
}

// GetRegionPlayers returns the current standings of one region as pool entries.
func (c *Client) GetRegionPlayers(ctx context.Context, region domain.Region) ([]domain.PoolEntry, error) {
	if !c.Enabled() {
		return nil, ErrDisabled
	}

	url := fmt.Sprintf("%s/regions/%s/players", c.baseURL, region)
	resp, err := doRequest[RegionPlayersResponse](ctx, c, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s standings: %w", region, err)
	}

	entries := make([]domain.PoolEntry, 0, len(resp.Data))
	for _, p := range resp.Data {
		e, err := p.toPoolEntry()
		if err != nil {
			return nil, fmt.Errorf("bad player %q in %s standings: %w", p.ID, region, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func doRequest[T any](ctx context.Context, client *Client, url string) (*T, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	if client.apiKey != "" {
		req.Header.Set("Authorization", client.apiKey)
	}

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := client.client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	client.updateRateLimit(resp)

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("API error: %d", resp.StatusCode())
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

type RegionPlayersResponse struct {
	Status int          `json:"status"`
	Data   []FeedPlayer `json:"data"`
}

type FeedPlayer struct {
	ID              string    `json:"id"`
	Nickname        string    `json:"nickname"`
	Region          string    `json:"region"`
	Tranche         string    `json:"tranche"`
	Points          float64   `json:"points"`
	Rank            int       `json:"rank"`
	IsWorldChampion bool      `json:"is_world_champion"`
	IsActive        bool      `json:"is_active"`
	IsAvailable     bool      `json:"is_available"`
	UpdatedAt       time.Time `json:"updated_at"`
	Stats           struct {
		TotalPoints       float64 `json:"total_points"`
		TournamentsPlayed int     `json:"tournaments_played"`
		AveragePlacement  float64 `json:"average_placement"`
		WinRate           float64 `json:"win_rate"`
	} `json:"stats"`
}

func (p FeedPlayer) toPoolEntry() (domain.PoolEntry, error) {
	region, err := domain.ParseRegion(p.Region)
	if err != nil {
		return domain.PoolEntry{}, err
	}
	tranche, err := domain.ParseTranche(p.Tranche)
	if err != nil {
		return domain.PoolEntry{}, err
	}

	e := domain.PoolEntry{
		Player: domain.Player{
			ID:              p.ID,
			Nickname:        p.Nickname,
			Region:          region,
			Tranche:         tranche,
			Points:          p.Points,
			Rank:            p.Rank,
			IsWorldChampion: p.IsWorldChampion,
			IsActive:        p.IsActive,
			LastUpdate:      p.UpdatedAt,
		},
		IsAvailable: p.IsAvailable,
		Stats: domain.PlayerStats{
			TotalPoints:       p.Stats.TotalPoints,
			TournamentsPlayed: p.Stats.TournamentsPlayed,
			AveragePlacement:  p.Stats.AveragePlacement,
			WinRate:           p.Stats.WinRate,
		},
	}
	return e, e.Validate()
}
