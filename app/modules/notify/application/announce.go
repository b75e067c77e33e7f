package notifyservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	roundevents "github.com/shepherdjay/gwg-bot/app/modules/round/events"
)

// threadFragments are tried in order when looking for today's discussion
// thread to comment on.
var threadFragments = []string{"post game", "game thread"}

// AnnounceStandings comments the refreshed standings under the game
// discussion. No thread is not an error: some game days simply have none
// yet, and the next round's announcement carries the same link.
func (s *NotifyService) AnnounceStandings(ctx context.Context, round string, players, totalRounds int) error {
	thread, found, err := s.findDiscussionThread(ctx)
	if err != nil {
		return fmt.Errorf("find discussion thread: %w", err)
	}
	if !found {
		s.logger.InfoContext(ctx, "no discussion thread, skipping standings announcement",
			slog.String("round", round),
		)
		return nil
	}

	body := fmt.Sprintf(
		"The %s leaderboard has been updated. %d players across %d rounds.\n\nFull standings: %s",
		round, players, totalRounds, s.cfg.LeaderboardURL,
	)
	if err := s.social.Comment(ctx, thread, body); err != nil {
		return fmt.Errorf("announce %s standings: %w", round, err)
	}

	s.metrics.StandingsAnnounced.Inc()
	s.logger.InfoContext(ctx, "standings announced",
		slog.String("round", round),
		slog.String("thread", thread),
	)
	return nil
}

// NotifyLateEntrants messages each late entrant. A failed delivery does not
// block the rest of the list.
func (s *NotifyService) NotifyLateEntrants(ctx context.Context, round string, cutoff time.Time, entrants []roundevents.LateEntrant) error {
	subject := fmt.Sprintf("GWG %s: entry received after the cutoff", round)

	var errs []error
	for _, entrant := range entrants {
		body := fmt.Sprintf(
			"Your %s entry came in at %s, after the official start of the game (%s). "+
				"It was recorded but does not count toward the standings.",
			round,
			entrant.SubmittedAt.Format("15:04 MST"),
			cutoff.Format("15:04 MST"),
		)
		if err := s.social.SendMessage(ctx, entrant.Player, subject, body); err != nil {
			s.logger.WarnContext(ctx, "failed to message late entrant",
				slog.String("round", round),
				slog.String("player", entrant.Player),
				slog.Any("error", err),
			)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// alertOwners messages every configured owner.
func (s *NotifyService) alertOwners(ctx context.Context, subject, body string) error {
	var errs []error
	for _, owner := range s.cfg.Owners {
		if err := s.social.SendMessage(ctx, owner, subject, body); err != nil {
			errs = append(errs, err)
			continue
		}
		s.metrics.OwnerAlerts.Inc()
	}
	return errors.Join(errs...)
}

func (s *NotifyService) findDiscussionThread(ctx context.Context) (string, bool, error) {
	for _, fragment := range threadFragments {
		thread, found, err := s.social.FindThread(ctx, s.cfg.Subreddit, fragment)
		if err != nil {
			return "", false, err
		}
		if found {
			return thread, true, nil
		}
	}
	return "", false, nil
}
