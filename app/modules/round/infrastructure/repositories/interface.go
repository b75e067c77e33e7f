package rounddb

import (
	"context"
	"time"

	rounddomain "github.com/shepherdjay/gwg-bot/app/modules/round/domain"
)

// RoundDB is the persistence surface the round service depends on.
type RoundDB interface {
	// IsRoundScored reports whether a round record already exists.
	IsRoundScored(ctx context.Context, round string) (bool, error)
	// RecordRound stores the round with all of its scored entries in one
	// transaction.
	RecordRound(ctx context.Context, result rounddomain.RoundResult, cutoff time.Time) error
	// ListEntries returns the audit entries for a round, on-time first.
	ListEntries(ctx context.Context, round string) ([]EntryRecord, error)
}
