package rounddb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"

	rounddomain "github.com/shepherdjay/gwg-bot/app/modules/round/domain"
	"github.com/shepherdjay/gwg-bot/internal/observability"
)

// ErrRoundAlreadyScored is returned by RecordRound when the round name
// collides with an existing record.
var ErrRoundAlreadyScored = errors.New("round already scored")

// RoundDBImpl implements RoundDB on Postgres via bun.
type RoundDBImpl struct {
	DB      *bun.DB
	Metrics *observability.Metrics
}

var _ RoundDB = (*RoundDBImpl)(nil)

// observe times one repository call. Nil metrics is a no-op.
func (r *RoundDBImpl) observe(query string) func() {
	if r.Metrics == nil {
		return func() {}
	}
	start := time.Now()
	return func() {
		r.Metrics.DBQueryDuration.WithLabelValues(query).Observe(time.Since(start).Seconds())
	}
}

func (r *RoundDBImpl) IsRoundScored(ctx context.Context, round string) (bool, error) {
	defer r.observe("IsRoundScored")()

	exists, err := r.DB.NewSelect().
		Model((*RoundRecord)(nil)).
		Where("name = ?", round).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("check round %s: %w", round, err)
	}
	return exists, nil
}

func (r *RoundDBImpl) RecordRound(ctx context.Context, result rounddomain.RoundResult, cutoff time.Time) error {
	defer r.observe("RecordRound")()

	return r.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		record := &RoundRecord{
			Name:         result.Round,
			Cutoff:       cutoff,
			TotalEntries: len(result.OnTime) + len(result.Late),
			LateEntries:  len(result.Late),
			ValidEntries: len(result.OnTime),
			ScoredAt:     time.Now(),
		}
		if _, err := tx.NewInsert().Model(record).Exec(ctx); err != nil {
			var pgErr pgdriver.Error
			if errors.As(err, &pgErr) && pgErr.IntegrityViolation() {
				return ErrRoundAlreadyScored
			}
			return fmt.Errorf("insert round %s: %w", result.Round, err)
		}

		entries := make([]EntryRecord, 0, len(result.OnTime)+len(result.Late))
		for _, scored := range result.OnTime {
			entries = append(entries, entryRecord(result.Round, scored))
		}
		for _, scored := range result.Late {
			entries = append(entries, entryRecord(result.Round, scored))
		}
		if len(entries) == 0 {
			return nil
		}
		if _, err := tx.NewInsert().Model(&entries).Exec(ctx); err != nil {
			return fmt.Errorf("insert entries for round %s: %w", result.Round, err)
		}
		return nil
	})
}

func (r *RoundDBImpl) ListEntries(ctx context.Context, round string) ([]EntryRecord, error) {
	defer r.observe("ListEntries")()

	var entries []EntryRecord
	err := r.DB.NewSelect().
		Model(&entries).
		Where("round = ?", round).
		OrderExpr("late ASC, submitted_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list entries for round %s: %w", round, err)
	}
	return entries, nil
}

func entryRecord(round string, scored rounddomain.ScoredEntry) EntryRecord {
	return EntryRecord{
		Round:       round,
		Player:      scored.NormalizedPlayer,
		RawPlayer:   scored.Entry.Player,
		SubmittedAt: scored.SubmittedAt,
		Answers:     scored.Answers,
		Points:      scored.Points,
		Late:        scored.Late,
	}
}
