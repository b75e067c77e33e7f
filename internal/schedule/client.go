// Package schedule looks up game days and official start times from the
// league schedule API, with a Redis cache in front so the hourly poll does
// not hammer the upstream.
package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
	"gopkg.in/yaml.v3"

	"github.com/shepherdjay/gwg-bot/internal/observability"
)

const (
	defaultBaseURL = "https://statsapi.web.nhl.com"
	defaultTTL     = 6 * time.Hour
	maxAttempts    = 3
	retryBackoff   = 2 * time.Second
)

// ErrNoGame reports a date with no scheduled game for the configured team.
var ErrNoGame = errors.New("no game scheduled")

// Game is one scheduled game in the configured local timezone.
type Game struct {
	GamePk int       `json:"game_pk"`
	Home   string    `json:"home"`
	Away   string    `json:"away"`
	Start  time.Time `json:"start"`
}

// Config selects the team and cache behavior.
type Config struct {
	BaseURL string        `yaml:"base_url"`
	TeamID  int           `yaml:"team_id"`
	TTL     time.Duration `yaml:"-"`
}

// UnmarshalYAML accepts cache_ttl in Go duration syntax ("6h").
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		BaseURL string `yaml:"base_url"`
		TeamID  int    `yaml:"team_id"`
		TTL     string `yaml:"cache_ttl"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	c.BaseURL = raw.BaseURL
	c.TeamID = raw.TeamID
	if raw.TTL != "" {
		d, err := time.ParseDuration(raw.TTL)
		if err != nil {
			return fmt.Errorf("parse cache_ttl: %w", err)
		}
		c.TTL = d
	}
	return nil
}

// Client resolves schedules for one team.
type Client struct {
	httpClient *http.Client
	baseURL    string
	teamID     int
	ttl        time.Duration
	backoff    time.Duration
	loc        *time.Location
	cache      *redis.Client
	group      singleflight.Group
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient builds a schedule client. cache may be nil, which disables
// caching but keeps singleflight dedup.
func NewClient(cfg Config, cache *redis.Client, loc *time.Location, logger *slog.Logger, metrics *observability.Metrics) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
		teamID:     cfg.TeamID,
		ttl:        ttl,
		backoff:    retryBackoff,
		loc:        loc,
		cache:      cache,
		logger:     logger,
		metrics:    metrics,
	}
}

// GameOn returns the team's game on the given date, or ErrNoGame.
func (c *Client) GameOn(ctx context.Context, date time.Time) (Game, error) {
	day := date.In(c.loc).Format("2006-01-02")
	key := fmt.Sprintf("schedule:%d:%s", c.teamID, day)

	if game, ok := c.fromCache(ctx, key); ok {
		c.metrics.ScheduleCacheHits.Inc()
		return game, nil
	}
	c.metrics.ScheduleCacheMisses.Inc()

	v, err, _ := c.group.Do(key, func() (any, error) {
		game, err := c.fetch(ctx, day)
		if err != nil {
			return Game{}, err
		}
		c.store(ctx, key, game)
		return game, nil
	})
	if err != nil {
		return Game{}, err
	}
	return v.(Game), nil
}

// StartTime resolves the official start of the game on the given date.
func (c *Client) StartTime(ctx context.Context, date time.Time) (time.Time, error) {
	game, err := c.GameOn(ctx, date)
	if err != nil {
		return time.Time{}, err
	}
	return game.Start, nil
}

func (c *Client) fromCache(ctx context.Context, key string) (Game, bool) {
	if c.cache == nil {
		return Game{}, false
	}
	raw, err := c.cache.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.WarnContext(ctx, "schedule cache read failed", slog.Any("error", err))
		}
		return Game{}, false
	}
	var game Game
	if err := json.Unmarshal(raw, &game); err != nil {
		return Game{}, false
	}
	return game, true
}

func (c *Client) store(ctx context.Context, key string, game Game) {
	if c.cache == nil {
		return
	}
	raw, err := json.Marshal(game)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "schedule cache write failed", slog.Any("error", err))
	}
}

// scheduleResponse mirrors the slice of the API response the bot reads.
type scheduleResponse struct {
	Dates []struct {
		Games []struct {
			GamePk   int       `json:"gamePk"`
			GameDate time.Time `json:"gameDate"`
			Teams    struct {
				Away struct {
					Team struct {
						Name string `json:"name"`
					} `json:"team"`
				} `json:"away"`
				Home struct {
					Team struct {
						Name string `json:"name"`
					} `json:"team"`
				} `json:"home"`
			} `json:"teams"`
		} `json:"games"`
	} `json:"dates"`
}

func (c *Client) fetch(ctx context.Context, day string) (Game, error) {
	endpoint := fmt.Sprintf("%s/api/v1/schedule?teamId=%d&date=%s", c.baseURL, c.teamID, day)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return Game{}, ctx.Err()
			case <-time.After(c.backoff):
			}
		}

		game, retryable, err := c.fetchOnce(ctx, endpoint)
		if err == nil {
			return game, nil
		}
		lastErr = err
		if !retryable {
			return Game{}, err
		}
		c.logger.WarnContext(ctx, "schedule fetch failed, retrying",
			slog.Int("attempt", attempt),
			slog.Any("error", err),
		)
	}
	return Game{}, fmt.Errorf("schedule for %s: %w", day, lastErr)
}

func (c *Client) fetchOnce(ctx context.Context, endpoint string) (Game, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Game{}, false, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Game{}, true, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 512))
		return Game{}, true, fmt.Errorf("schedule API status %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return Game{}, false, fmt.Errorf("schedule API status %d", resp.StatusCode)
	}

	var decoded scheduleResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Game{}, false, fmt.Errorf("decode schedule: %w", err)
	}

	if len(decoded.Dates) == 0 || len(decoded.Dates[0].Games) == 0 {
		return Game{}, false, ErrNoGame
	}

	g := decoded.Dates[0].Games[0]
	return Game{
		GamePk: g.GamePk,
		Home:   g.Teams.Home.Team.Name,
		Away:   g.Teams.Away.Team.Name,
		Start:  g.GameDate.In(c.loc),
	}, false, nil
}
