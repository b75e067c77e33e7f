// Package notifyhandlers subscribes the notify service to the event bus.
package notifyhandlers

import (
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	leaderboardevents "github.com/shepherdjay/gwg-bot/app/modules/leaderboard/events"
	notifyservice "github.com/shepherdjay/gwg-bot/app/modules/notify/application"
	roundevents "github.com/shepherdjay/gwg-bot/app/modules/round/events"
	"github.com/shepherdjay/gwg-bot/internal/eventutil"
)

// NotifyHandlers bridges bus messages to the notify service. The notify
// module consumes events and talks to the outside world; it publishes
// nothing back.
type NotifyHandlers struct {
	service notifyservice.Service
	logger  *slog.Logger
}

// NewNotifyHandlers creates a new NotifyHandlers.
func NewNotifyHandlers(service notifyservice.Service, logger *slog.Logger) *NotifyHandlers {
	return &NotifyHandlers{service: service, logger: logger}
}

// HandleLeaderboardUpdated announces refreshed standings.
func (h *NotifyHandlers) HandleLeaderboardUpdated(msg *message.Message) error {
	payload, err := eventutil.ParsePayload[leaderboardevents.UpdatedPayload](msg)
	if err != nil {
		return fmt.Errorf("parse leaderboard updated payload: %w", err)
	}

	h.logger.InfoContext(msg.Context(), "announcing standings update",
		slog.String("round", payload.Round),
		slog.String("correlation_id", eventutil.CorrelationID(msg)),
	)
	return h.service.AnnounceStandings(msg.Context(), payload.Round, payload.Players, payload.TotalRounds)
}

// HandleLateEntries messages entrants who missed the cutoff.
func (h *NotifyHandlers) HandleLateEntries(msg *message.Message) error {
	payload, err := eventutil.ParsePayload[roundevents.LateEntriesPayload](msg)
	if err != nil {
		return fmt.Errorf("parse late entries payload: %w", err)
	}
	return h.service.NotifyLateEntrants(msg.Context(), payload.Round, payload.Cutoff, payload.Entrants)
}
