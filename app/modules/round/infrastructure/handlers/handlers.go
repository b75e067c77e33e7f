// Package roundhandlers subscribes the round service to the event bus.
package roundhandlers

import (
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/shepherdjay/gwg-bot/app/eventbus"
	roundservice "github.com/shepherdjay/gwg-bot/app/modules/round/application"
)

// Handlers is the set of message handlers the round module registers.
type Handlers interface {
	HandleScoreRequested(msg *message.Message) error
}

// RoundHandlers bridges bus messages to the round service and publishes the
// resulting events.
type RoundHandlers struct {
	service  roundservice.Service
	eventBus eventbus.EventBus
	logger   *slog.Logger
}

// NewRoundHandlers creates a new RoundHandlers.
func NewRoundHandlers(service roundservice.Service, eventBus eventbus.EventBus, logger *slog.Logger) *RoundHandlers {
	return &RoundHandlers{
		service:  service,
		eventBus: eventBus,
		logger:   logger,
	}
}
