// Package notify wires the announcement module: platform client, game-day
// schedule and bus handlers.
package notify

import (
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/shepherdjay/gwg-bot/app/eventbus"
	leaderboardevents "github.com/shepherdjay/gwg-bot/app/modules/leaderboard/events"
	notifyservice "github.com/shepherdjay/gwg-bot/app/modules/notify/application"
	notifyhandlers "github.com/shepherdjay/gwg-bot/app/modules/notify/infrastructure/handlers"
	roundevents "github.com/shepherdjay/gwg-bot/app/modules/round/events"
	"github.com/shepherdjay/gwg-bot/internal/observability"
)

// Module is the assembled notify module.
type Module struct {
	Service  notifyservice.Service
	handlers *notifyhandlers.NotifyHandlers
}

// NewModule builds the notify module and registers its handlers on the
// router.
func NewModule(
	bus eventbus.EventBus,
	router *message.Router,
	social notifyservice.Social,
	schedule notifyservice.GameSchedule,
	registry notifyservice.Registry,
	cfg notifyservice.Config,
	logger *slog.Logger,
	metrics *observability.Metrics,
) *Module {
	service := notifyservice.NewNotifyService(social, schedule, registry, cfg, logger, metrics)
	handlers := notifyhandlers.NewNotifyHandlers(service, logger)

	router.AddNoPublisherHandler(
		"notify-leaderboard-updated",
		leaderboardevents.Updated,
		bus.Subscriber(),
		handlers.HandleLeaderboardUpdated,
	)
	router.AddNoPublisherHandler(
		"notify-late-entries",
		roundevents.LateEntriesDetected,
		bus.Subscriber(),
		handlers.HandleLateEntries,
	)

	return &Module{
		Service:  service,
		handlers: handlers,
	}
}
