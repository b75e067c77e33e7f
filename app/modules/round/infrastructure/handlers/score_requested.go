package roundhandlers

import (
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	roundservice "github.com/shepherdjay/gwg-bot/app/modules/round/application"
	roundevents "github.com/shepherdjay/gwg-bot/app/modules/round/events"
	"github.com/shepherdjay/gwg-bot/internal/eventutil"
)

// HandleScoreRequested scores the requested round and announces the outcome.
// An empty service result (already scored) publishes nothing.
func (h *RoundHandlers) HandleScoreRequested(msg *message.Message) error {
	payload, err := eventutil.ParsePayload[roundevents.ScoreRequestedPayload](msg)
	if err != nil {
		return fmt.Errorf("parse score request payload: %w", err)
	}

	h.logger.InfoContext(msg.Context(), "scoring requested round",
		slog.String("round", payload.Round),
		slog.String("correlation_id", eventutil.CorrelationID(msg)),
	)

	result, err := h.service.ProcessRound(msg.Context(), payload.Round)
	if err != nil {
		return err
	}

	if result.Failure != nil {
		return h.publishResult(msg, roundevents.ScoringFailed, result.Failure)
	}

	outcome, ok := result.Success.(*roundservice.ScoredOutcome)
	if !ok || outcome.Scored == nil {
		return nil
	}

	if err := h.publishResult(msg, roundevents.RoundScored, outcome.Scored); err != nil {
		return err
	}
	if outcome.Late != nil {
		if err := h.publishResult(msg, roundevents.LateEntriesDetected, outcome.Late); err != nil {
			return err
		}
	}
	return nil
}

func (h *RoundHandlers) publishResult(parent *message.Message, topic string, payload any) error {
	out, err := eventutil.NewResultMessage(parent, payload)
	if err != nil {
		return fmt.Errorf("build %s message: %w", topic, err)
	}
	if err := h.eventBus.Publish(topic, out); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}
