package notifyservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shepherdjay/gwg-bot/internal/schedule"
	"github.com/shepherdjay/gwg-bot/internal/sheets"
)

// EnsureGameDayPost checks whether today is a game day and, if so, makes sure
// the contest post exists. A game day without a contest form in the registry
// is an operational problem the owners are alerted about.
func (s *NotifyService) EnsureGameDayPost(ctx context.Context, date time.Time) error {
	game, err := s.schedule.GameOn(ctx, date)
	if err != nil {
		if errors.Is(err, schedule.ErrNoGame) {
			return nil
		}
		return fmt.Errorf("check game day: %w", err)
	}

	sheet, found, err := s.roundForDate(ctx, date)
	if err != nil {
		return err
	}
	if !found {
		s.logger.WarnContext(ctx, "game day without a contest form",
			slog.String("date", date.Format("2006-01-02")),
			slog.String("matchup", game.Away+" @ "+game.Home),
		)
		return s.alertOwners(ctx,
			"GWG: no contest form for today's game",
			fmt.Sprintf("%s @ %s on %s has no contest form in the registry.",
				game.Away, game.Home, date.Format("Jan 2, 2006")),
		)
	}

	title := gameDayTitle(game, date, sheet.Round)
	_, exists, err := s.social.FindThread(ctx, s.cfg.Subreddit, "gwg challenge #"+challengeNumber(sheet.Round))
	if err != nil {
		return fmt.Errorf("check for existing contest post: %w", err)
	}
	if exists {
		return nil
	}

	body := fmt.Sprintf(
		"Guess the winning goal for tonight's game and climb the leaderboard.\n\n"+
			"Enter here before puck drop: %s\n\nCurrent standings: %s",
		s.cfg.FormURL, s.cfg.LeaderboardURL,
	)
	postID, err := s.social.SubmitPost(ctx, s.cfg.Subreddit, title, body)
	if err != nil {
		return fmt.Errorf("create game day post: %w", err)
	}

	s.metrics.GameDayPosts.Inc()
	s.logger.InfoContext(ctx, "game day contest post created",
		slog.String("round", sheet.Round),
		slog.String("post", postID),
	)
	return nil
}

func (s *NotifyService) roundForDate(ctx context.Context, date time.Time) (sheets.RoundSheet, bool, error) {
	registry, err := s.registry.ListRounds(ctx)
	if err != nil {
		return sheets.RoundSheet{}, false, fmt.Errorf("list registry: %w", err)
	}

	year, month, day := date.Date()
	for _, sheet := range registry {
		sy, sm, sd := sheet.Start.Date()
		if sy == year && sm == month && sd == day {
			return sheet, true, nil
		}
	}
	return sheets.RoundSheet{}, false, nil
}

func gameDayTitle(game schedule.Game, date time.Time, round string) string {
	return fmt.Sprintf("%s @ %s %s GWG Challenge #%s",
		game.Away, game.Home, date.Format("Jan 2, 2006"), challengeNumber(round))
}

func challengeNumber(round string) string {
	return strings.TrimPrefix(round, "GM")
}
