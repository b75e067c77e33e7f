package leaderboardhandlers

import (
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	leaderboarddomain "github.com/shepherdjay/gwg-bot/app/modules/leaderboard/domain"
	leaderboardevents "github.com/shepherdjay/gwg-bot/app/modules/leaderboard/events"
	roundevents "github.com/shepherdjay/gwg-bot/app/modules/round/events"
	"github.com/shepherdjay/gwg-bot/internal/eventutil"
)

// HandleRoundScored folds a freshly scored round into the standings and
// announces the outcome. An empty service result (replayed round) publishes
// nothing.
func (h *LeaderboardHandlers) HandleRoundScored(msg *message.Message) error {
	payload, err := eventutil.ParsePayload[roundevents.RoundScoredPayload](msg)
	if err != nil {
		return fmt.Errorf("parse round scored payload: %w", err)
	}

	h.logger.InfoContext(msg.Context(), "applying round scores to standings",
		slog.String("round", payload.Round),
		slog.Int("players", len(payload.Scores)),
		slog.String("correlation_id", eventutil.CorrelationID(msg)),
	)

	result, err := h.service.ApplyRoundScores(msg.Context(), payload.Round, leaderboarddomain.RoundScore(payload.Scores))
	if err != nil {
		return err
	}

	switch {
	case result.Failure != nil:
		return h.publishResult(msg, leaderboardevents.UpdateFailed, result.Failure)
	case result.Success != nil:
		return h.publishResult(msg, leaderboardevents.Updated, result.Success)
	}
	return nil
}

func (h *LeaderboardHandlers) publishResult(parent *message.Message, topic string, payload any) error {
	out, err := eventutil.NewResultMessage(parent, payload)
	if err != nil {
		return fmt.Errorf("build %s message: %w", topic, err)
	}
	if err := h.eventBus.Publish(topic, out); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}
