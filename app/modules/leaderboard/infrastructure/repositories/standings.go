package leaderboarddb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"

	leaderboarddomain "github.com/shepherdjay/gwg-bot/app/modules/leaderboard/domain"
	"github.com/shepherdjay/gwg-bot/internal/observability"
)

// StandingsDBImpl implements StandingsDB on Postgres via bun.
type StandingsDBImpl struct {
	DB      *bun.DB
	Metrics *observability.Metrics
}

var _ StandingsDB = (*StandingsDBImpl)(nil)

// observe times one repository call. Nil metrics is a no-op.
func (s *StandingsDBImpl) observe(query string) func() {
	if s.Metrics == nil {
		return func() {}
	}
	start := time.Now()
	return func() {
		s.Metrics.DBQueryDuration.WithLabelValues(query).Observe(time.Since(start).Seconds())
	}
}

func (s *StandingsDBImpl) GetStandings(ctx context.Context) (leaderboarddomain.Standings, error) {
	defer s.observe("GetStandings")()

	var records []StandingsRecord
	if err := s.DB.NewSelect().Model(&records).Scan(ctx); err != nil {
		return nil, fmt.Errorf("select standings: %w", err)
	}

	standings := make(leaderboarddomain.Standings, len(records))
	for _, record := range records {
		standings[record.Player] = leaderboarddomain.StandingsRow{
			Curr:   record.Curr,
			Last:   record.Last,
			Played: record.Played,
			Rank:   record.Rank,
			Delta:  record.Delta,
		}
	}
	return standings, nil
}

func (s *StandingsDBImpl) ListRows(ctx context.Context) ([]StandingsRecord, error) {
	defer s.observe("ListRows")()

	var records []StandingsRecord
	err := s.DB.NewSelect().
		Model(&records).
		OrderExpr("curr DESC, played ASC, player ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list standings rows: %w", err)
	}
	return records, nil
}

func (s *StandingsDBImpl) ReplaceStandings(ctx context.Context, round string, standings leaderboarddomain.Standings) error {
	defer s.observe("ReplaceStandings")()

	return s.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		// Claim the merged-round mark first so a concurrent or repeated pass
		// bails out before touching the rows.
		_, err := tx.NewInsert().
			Model(&MergedRound{Round: round, Players: len(standings), MergedAt: time.Now()}).
			Exec(ctx)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrRoundAlreadyMerged
			}
			return fmt.Errorf("mark round %s merged: %w", round, err)
		}

		if _, err := tx.NewDelete().Model((*StandingsRecord)(nil)).Where("1 = 1").Exec(ctx); err != nil {
			return fmt.Errorf("clear standings: %w", err)
		}

		records := make([]StandingsRecord, 0, len(standings))
		now := time.Now()
		for player, row := range standings {
			records = append(records, StandingsRecord{
				Player:    player,
				Curr:      row.Curr,
				Last:      row.Last,
				Played:    row.Played,
				Rank:      row.Rank,
				Delta:     row.Delta,
				UpdatedAt: now,
			})
		}
		if len(records) == 0 {
			return nil
		}
		if _, err := tx.NewInsert().Model(&records).Exec(ctx); err != nil {
			return fmt.Errorf("insert standings: %w", err)
		}
		return nil
	})
}

func (s *StandingsDBImpl) IsRoundMerged(ctx context.Context, round string) (bool, error) {
	defer s.observe("IsRoundMerged")()

	exists, err := s.DB.NewSelect().
		Model((*MergedRound)(nil)).
		Where("round = ?", round).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("check merged round %s: %w", round, err)
	}
	return exists, nil
}

func (s *StandingsDBImpl) MergedRoundCount(ctx context.Context) (int, error) {
	defer s.observe("MergedRoundCount")()

	count, err := s.DB.NewSelect().Model((*MergedRound)(nil)).Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count merged rounds: %w", err)
	}
	return count, nil
}

func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	return errors.As(err, &pgErr) && pgErr.IntegrityViolation()
}
