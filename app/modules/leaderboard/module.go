// Package leaderboard wires the standings module: merge service, bun
// repository and bus handlers.
package leaderboard

import (
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"

	"github.com/shepherdjay/gwg-bot/app/eventbus"
	leaderboardservice "github.com/shepherdjay/gwg-bot/app/modules/leaderboard/application"
	leaderboardhandlers "github.com/shepherdjay/gwg-bot/app/modules/leaderboard/infrastructure/handlers"
	leaderboarddb "github.com/shepherdjay/gwg-bot/app/modules/leaderboard/infrastructure/repositories"
	roundevents "github.com/shepherdjay/gwg-bot/app/modules/round/events"
	"github.com/shepherdjay/gwg-bot/internal/observability"
)

// Module is the assembled leaderboard module.
type Module struct {
	Service  leaderboardservice.Service
	Repo     leaderboarddb.StandingsDB
	handlers *leaderboardhandlers.LeaderboardHandlers
}

// NewModule builds the leaderboard module and registers its handlers on the
// router.
func NewModule(
	db *bun.DB,
	bus eventbus.EventBus,
	router *message.Router,
	board leaderboardservice.BoardWriter,
	logger *slog.Logger,
	metrics *observability.Metrics,
	tracer trace.Tracer,
	awards map[string]string,
) *Module {
	repo := &leaderboarddb.StandingsDBImpl{DB: db, Metrics: metrics}
	service := leaderboardservice.NewLeaderboardService(repo, board, logger, metrics, tracer, awards)
	handlers := leaderboardhandlers.NewLeaderboardHandlers(service, bus, logger)

	router.AddNoPublisherHandler(
		"leaderboard-round-scored",
		roundevents.RoundScored,
		bus.Subscriber(),
		handlers.HandleRoundScored,
	)

	return &Module{
		Service:  service,
		Repo:     repo,
		handlers: handlers,
	}
}
