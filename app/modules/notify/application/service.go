// Package notifyservice turns contest events into platform posts, comments
// and direct messages.
package notifyservice

import (
	"log/slog"

	"github.com/shepherdjay/gwg-bot/internal/observability"
)

// Config holds the notify module's posting targets.
type Config struct {
	// Subreddit is the community the bot posts in.
	Subreddit string `yaml:"subreddit"`
	// LeaderboardURL is the published standings sheet linked in
	// announcements.
	LeaderboardURL string `yaml:"leaderboard_url"`
	// FormURL is the contest entry form linked in game-day posts.
	FormURL string `yaml:"form_url"`
	// Owners receive operational alerts.
	Owners []string `yaml:"owners"`
}

// NotifyService implements the Service interface.
type NotifyService struct {
	social   Social
	schedule GameSchedule
	registry Registry
	cfg      Config
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewNotifyService creates a new NotifyService.
func NewNotifyService(
	social Social,
	schedule GameSchedule,
	registry Registry,
	cfg Config,
	logger *slog.Logger,
	metrics *observability.Metrics,
) *NotifyService {
	return &NotifyService{
		social:   social,
		schedule: schedule,
		registry: registry,
		cfg:      cfg,
		logger:   logger,
		metrics:  metrics,
	}
}
