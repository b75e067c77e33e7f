package leaderboardservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	leaderboarddomain "github.com/shepherdjay/gwg-bot/app/modules/leaderboard/domain"
	leaderboardevents "github.com/shepherdjay/gwg-bot/app/modules/leaderboard/events"
	leaderboarddb "github.com/shepherdjay/gwg-bot/app/modules/leaderboard/infrastructure/repositories"
)

// ApplyRoundScores folds a scored round into the standings: guard against a
// replay, merge, write everything in one transaction, report the new board
// size. The standings table is never left half-written; a domain failure
// aborts before any write.
func (s *LeaderboardService) ApplyRoundScores(ctx context.Context, round string, scores leaderboarddomain.RoundScore) (LeaderboardOperationResult, error) {
	return s.serviceWrapper(ctx, "ApplyRoundScores", round, func(ctx context.Context) (LeaderboardOperationResult, error) {
		merged, err := s.repo.IsRoundMerged(ctx, round)
		if err != nil {
			return LeaderboardOperationResult{}, fmt.Errorf("check merged rounds: %w", err)
		}
		if merged {
			s.metrics.MergesSkipped.Inc()
			s.logger.InfoContext(ctx, "round already merged, skipping",
				slog.String("round", round),
			)
			return LeaderboardOperationResult{}, nil
		}

		prior, err := s.repo.GetStandings(ctx)
		if err != nil {
			return LeaderboardOperationResult{}, fmt.Errorf("load standings: %w", err)
		}

		standings, err := leaderboarddomain.Merge(scores, prior)
		if err != nil {
			s.metrics.MergesFailed.Inc()
			s.logger.ErrorContext(ctx, "merge aborted",
				slog.String("round", round),
				slog.Any("error", err),
			)
			return LeaderboardOperationResult{
				Failure: &leaderboardevents.UpdateFailedPayload{
					Round:  round,
					Reason: err.Error(),
				},
			}, nil
		}

		if err := s.repo.ReplaceStandings(ctx, round, standings); err != nil {
			if errors.Is(err, leaderboarddb.ErrRoundAlreadyMerged) {
				// Lost a race with a concurrent merge of the same round.
				s.metrics.MergesSkipped.Inc()
				s.logger.InfoContext(ctx, "round merged concurrently, skipping",
					slog.String("round", round),
				)
				return LeaderboardOperationResult{}, nil
			}
			return LeaderboardOperationResult{}, fmt.Errorf("write standings: %w", err)
		}

		totalRounds, err := s.repo.MergedRoundCount(ctx)
		if err != nil {
			return LeaderboardOperationResult{}, fmt.Errorf("count merged rounds: %w", err)
		}

		s.metrics.MergesApplied.Inc()
		s.mirrorBoard(ctx, round)
		s.logger.InfoContext(ctx, "round merged into standings",
			slog.String("round", round),
			slog.Int("players", len(standings)),
			slog.Int("total_rounds", totalRounds),
		)

		return LeaderboardOperationResult{
			Success: &leaderboardevents.UpdatedPayload{
				Round:       round,
				Players:     len(standings),
				TotalRounds: totalRounds,
			},
		}, nil
	})
}
