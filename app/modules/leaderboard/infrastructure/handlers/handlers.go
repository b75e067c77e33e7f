// Package leaderboardhandlers subscribes the leaderboard service to the
// event bus.
package leaderboardhandlers

import (
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/shepherdjay/gwg-bot/app/eventbus"
	leaderboardservice "github.com/shepherdjay/gwg-bot/app/modules/leaderboard/application"
)

// Handlers is the set of message handlers the leaderboard module registers.
type Handlers interface {
	HandleRoundScored(msg *message.Message) error
}

// LeaderboardHandlers bridges bus messages to the leaderboard service and
// publishes the resulting events.
type LeaderboardHandlers struct {
	service  leaderboardservice.Service
	eventBus eventbus.EventBus
	logger   *slog.Logger
}

// NewLeaderboardHandlers creates a new LeaderboardHandlers.
func NewLeaderboardHandlers(service leaderboardservice.Service, eventBus eventbus.EventBus, logger *slog.Logger) *LeaderboardHandlers {
	return &LeaderboardHandlers{
		service:  service,
		eventBus: eventBus,
		logger:   logger,
	}
}
