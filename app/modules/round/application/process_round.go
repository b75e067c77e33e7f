package roundservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	rounddomain "github.com/shepherdjay/gwg-bot/app/modules/round/domain"
	roundevents "github.com/shepherdjay/gwg-bot/app/modules/round/events"
	rounddb "github.com/shepherdjay/gwg-bot/app/modules/round/infrastructure/repositories"
	"github.com/shepherdjay/gwg-bot/internal/sheets"
)

// ProcessRound scores a round end to end. The audit sheet is written before
// the round record: a retry after a partial failure overwrites the same
// history sheet, while the database insert is the idempotence point.
func (s *RoundService) ProcessRound(ctx context.Context, round string) (RoundOperationResult, error) {
	return s.serviceWrapper(ctx, "ProcessRound", round, func(ctx context.Context) (RoundOperationResult, error) {
		alreadyScored, err := s.repo.IsRoundScored(ctx, round)
		if err != nil {
			return RoundOperationResult{}, fmt.Errorf("check round record: %w", err)
		}
		if alreadyScored {
			s.logger.InfoContext(ctx, "round already scored, skipping",
				slog.String("round", round),
			)
			return RoundOperationResult{}, nil
		}

		sheet, err := s.findSheet(ctx, round)
		if err != nil {
			return RoundOperationResult{}, err
		}
		if sheet == nil {
			return failure(round, "round not found in registry"), nil
		}
		if !sheet.Ready {
			return failure(round, "answer key not published"), nil
		}

		cutoff, err := s.resolveCutoff(ctx, sheet)
		if err != nil {
			return RoundOperationResult{}, err
		}

		key, err := rounddomain.NewAnswerKey(round, sheet.Answers, cutoff)
		if err != nil {
			if errors.Is(err, rounddomain.ErrMissingAnswerKey) {
				return failure(round, err.Error()), nil
			}
			return RoundOperationResult{}, err
		}

		rows, err := s.store.Entries(ctx, sheet.Title)
		if err != nil {
			return RoundOperationResult{}, fmt.Errorf("load entries: %w", err)
		}

		entries := make([]rounddomain.Entry, 0, len(rows))
		for _, row := range rows {
			entries = append(entries, rounddomain.Entry{
				SubmittedAt: row.SubmittedAt,
				Player:      row.Player,
				Answers:     row.Answers,
			})
		}

		result, err := rounddomain.ScoreRound(key, entries)
		if err != nil {
			return failure(round, err.Error()), nil
		}

		s.recordScoringStats(ctx, result)

		audit := rounddomain.BuildAuditSheet(result)
		if err := s.store.WriteRoundHistory(ctx, round, historyFromAudit(audit)); err != nil {
			return RoundOperationResult{}, fmt.Errorf("write round history: %w", err)
		}
		if err := s.store.MarkWritten(ctx, *sheet); err != nil {
			// The history itself is written; a stale flag only costs a
			// redundant rewrite on the next pass.
			s.logger.WarnContext(ctx, "failed to flip written flag",
				slog.String("round", round),
				slog.Any("error", err),
			)
		}

		if err := s.repo.RecordRound(ctx, result, cutoff); err != nil {
			if errors.Is(err, rounddb.ErrRoundAlreadyScored) {
				s.logger.InfoContext(ctx, "round scored concurrently, skipping",
					slog.String("round", round),
				)
				return RoundOperationResult{}, nil
			}
			return RoundOperationResult{}, fmt.Errorf("record round: %w", err)
		}

		outcome := &ScoredOutcome{
			Scored: &roundevents.RoundScoredPayload{
				Round:        round,
				Scores:       result.Scores,
				Cutoff:       cutoff,
				TotalEntries: audit.Stats.TotalEntries,
				LateEntries:  audit.Stats.LateEntries,
				ValidEntries: audit.Stats.ValidEntries,
			},
		}
		if len(result.Late) > 0 {
			entrants := make([]roundevents.LateEntrant, 0, len(result.Late))
			for _, late := range result.Late {
				entrants = append(entrants, roundevents.LateEntrant{
					Player:      late.NormalizedPlayer,
					SubmittedAt: late.SubmittedAt,
				})
			}
			outcome.Late = &roundevents.LateEntriesPayload{
				Round:    round,
				Cutoff:   cutoff,
				Entrants: entrants,
			}
		}
		return RoundOperationResult{Success: outcome}, nil
	})
}

// PendingRounds lists registry rounds that are ready to score and not yet
// recorded.
func (s *RoundService) PendingRounds(ctx context.Context) ([]string, error) {
	registry, err := s.store.ListRounds(ctx)
	if err != nil {
		return nil, fmt.Errorf("list registry: %w", err)
	}

	var pending []string
	for _, sheet := range registry {
		if !sheet.Ready {
			continue
		}
		scored, err := s.repo.IsRoundScored(ctx, sheet.Round)
		if err != nil {
			return nil, fmt.Errorf("check round %s: %w", sheet.Round, err)
		}
		if !scored {
			pending = append(pending, sheet.Round)
		}
	}
	return pending, nil
}

// AuditEntries returns a scored round's stored entries for inspection.
func (s *RoundService) AuditEntries(ctx context.Context, round string) ([]rounddb.EntryRecord, error) {
	entries, err := s.repo.ListEntries(ctx, round)
	if err != nil {
		return nil, fmt.Errorf("list entries for %s: %w", round, err)
	}
	return entries, nil
}

func (s *RoundService) findSheet(ctx context.Context, round string) (*sheets.RoundSheet, error) {
	registry, err := s.store.ListRounds(ctx)
	if err != nil {
		return nil, fmt.Errorf("list registry: %w", err)
	}
	for i := range registry {
		if registry[i].Round == round {
			return &registry[i], nil
		}
	}
	return nil, nil
}

// resolveCutoff turns a date-only registry start into the official game
// start.
func (s *RoundService) resolveCutoff(ctx context.Context, sheet *sheets.RoundSheet) (time.Time, error) {
	if !sheet.DateOnly {
		return sheet.Start, nil
	}
	start, err := s.schedule.StartTime(ctx, sheet.Start)
	if err != nil {
		return time.Time{}, fmt.Errorf("resolve start for %s: %w", sheet.Round, err)
	}
	return start, nil
}

func (s *RoundService) recordScoringStats(ctx context.Context, result rounddomain.RoundResult) {
	s.metrics.RoundsScored.Inc()
	s.metrics.EntriesScored.Add(float64(len(result.OnTime) + len(result.Late)))
	s.metrics.LateEntries.Add(float64(len(result.Late)))
	s.metrics.DuplicatePlayers.Add(float64(len(result.DuplicatePlayers)))

	if len(result.DuplicatePlayers) > 0 {
		s.logger.WarnContext(ctx, "duplicate players in round, last entry wins",
			slog.String("round", result.Round),
			slog.Any("players", result.DuplicatePlayers),
		)
	}
	if len(result.OnTime) == 0 {
		s.logger.WarnContext(ctx, "round has no valid on-time entries",
			slog.String("round", result.Round),
		)
	}
}

func historyFromAudit(audit rounddomain.AuditSheet) sheets.RoundHistory {
	return sheets.RoundHistory{
		Columns:  audit.Columns,
		Rows:     audit.Rows,
		LateRows: audit.LateRows,
		Summary: []string{
			"Total: " + strconv.Itoa(audit.Stats.TotalEntries),
			"Late: " + strconv.Itoa(audit.Stats.LateEntries),
			"Valid: " + strconv.Itoa(audit.Stats.ValidEntries),
		},
	}
}

func failure(round, reason string) RoundOperationResult {
	return RoundOperationResult{
		Failure: &roundevents.ScoringFailedPayload{Round: round, Reason: reason},
	}
}
