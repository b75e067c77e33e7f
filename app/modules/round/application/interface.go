package roundservice

import (
	"context"
	"time"

	rounddb "github.com/shepherdjay/gwg-bot/app/modules/round/infrastructure/repositories"
	"github.com/shepherdjay/gwg-bot/internal/sheets"
)

// Service is the round module's application surface.
type Service interface {
	// ProcessRound scores one round end to end: answer key, entries, audit
	// sheet, persistence. Already-scored rounds are a no-op with an empty
	// result.
	ProcessRound(ctx context.Context, round string) (RoundOperationResult, error)

	// PendingRounds lists rounds whose answer key is ready but which have not
	// been scored yet.
	PendingRounds(ctx context.Context) ([]string, error)

	// AuditEntries returns the stored entries for a scored round, on-time
	// entries first.
	AuditEntries(ctx context.Context, round string) ([]rounddb.EntryRecord, error)
}

// RecordStore is the slice of the sheets client the round service uses.
type RecordStore interface {
	ListRounds(ctx context.Context) ([]sheets.RoundSheet, error)
	Entries(ctx context.Context, title string) ([]sheets.EntryRow, error)
	WriteRoundHistory(ctx context.Context, round string, history sheets.RoundHistory) error
	MarkWritten(ctx context.Context, sheet sheets.RoundSheet) error
}

// Schedule resolves a round's official start time when the registry holds
// only a date.
type Schedule interface {
	StartTime(ctx context.Context, date time.Time) (time.Time, error)
}
