package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/shepherdjay/gwg-bot/app/eventbus"
	notifyservice "github.com/shepherdjay/gwg-bot/app/modules/notify/application"
	roundservice "github.com/shepherdjay/gwg-bot/app/modules/round/application"
	roundevents "github.com/shepherdjay/gwg-bot/app/modules/round/events"
	"github.com/shepherdjay/gwg-bot/internal/eventutil"
)

// Poller drives the contest on a timer: each pass asks the registry for
// rounds ready to score and checks whether today's game needs a contest
// thread. Scoring itself happens on the bus so a crashed pass is retried.
type Poller struct {
	rounds   roundservice.Service
	notify   notifyservice.Service
	bus      eventbus.EventBus
	interval time.Duration
	loc      *time.Location
	logger   *slog.Logger
}

func NewPoller(
	rounds roundservice.Service,
	notify notifyservice.Service,
	bus eventbus.EventBus,
	interval time.Duration,
	loc *time.Location,
	logger *slog.Logger,
) *Poller {
	return &Poller{
		rounds:   rounds,
		notify:   notify,
		bus:      bus,
		interval: interval,
		loc:      loc,
		logger:   logger,
	}
}

// Run polls until the context is cancelled. The first pass happens
// immediately.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		if err := p.RunOnce(ctx); err != nil {
			p.logger.ErrorContext(ctx, "poll pass failed", slog.Any("error", err))
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// RunOnce performs a single pass: request scoring for every pending round,
// then make sure today's game day post exists.
func (p *Poller) RunOnce(ctx context.Context) error {
	pending, err := p.rounds.PendingRounds(ctx)
	if err != nil {
		return err
	}

	for _, name := range pending {
		msg, err := eventutil.NewMessage(roundevents.ScoreRequestedPayload{Round: name})
		if err != nil {
			return err
		}
		if err := p.bus.Publish(roundevents.ScoreRequested, msg); err != nil {
			return err
		}
		p.logger.InfoContext(ctx, "requested round scoring", slog.String("round", name))
	}

	if err := p.notify.EnsureGameDayPost(ctx, time.Now().In(p.loc)); err != nil {
		p.logger.WarnContext(ctx, "game day post check failed", slog.Any("error", err))
	}

	return nil
}
