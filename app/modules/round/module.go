// Package round wires the scoring module: scorer service, bun repository,
// record-store and schedule collaborators, bus handlers.
package round

import (
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"

	"github.com/shepherdjay/gwg-bot/app/eventbus"
	roundservice "github.com/shepherdjay/gwg-bot/app/modules/round/application"
	roundevents "github.com/shepherdjay/gwg-bot/app/modules/round/events"
	roundhandlers "github.com/shepherdjay/gwg-bot/app/modules/round/infrastructure/handlers"
	rounddb "github.com/shepherdjay/gwg-bot/app/modules/round/infrastructure/repositories"
	"github.com/shepherdjay/gwg-bot/internal/observability"
)

// Module is the assembled round module.
type Module struct {
	Service  roundservice.Service
	Repo     rounddb.RoundDB
	handlers *roundhandlers.RoundHandlers
}

// NewModule builds the round module and registers its handlers on the
// router.
func NewModule(
	db *bun.DB,
	bus eventbus.EventBus,
	router *message.Router,
	store roundservice.RecordStore,
	schedule roundservice.Schedule,
	logger *slog.Logger,
	metrics *observability.Metrics,
	tracer trace.Tracer,
) *Module {
	repo := &rounddb.RoundDBImpl{DB: db, Metrics: metrics}
	service := roundservice.NewRoundService(repo, store, schedule, logger, metrics, tracer)
	handlers := roundhandlers.NewRoundHandlers(service, bus, logger)

	router.AddNoPublisherHandler(
		"round-score-requested",
		roundevents.ScoreRequested,
		bus.Subscriber(),
		handlers.HandleScoreRequested,
	)

	return &Module{
		Service:  service,
		Repo:     repo,
		handlers: handlers,
	}
}
