package rounddb

import (
	"time"

	"github.com/uptrace/bun"
)

// RoundRecord is a scored round: its cutoff and participation counts.
type RoundRecord struct {
	bun.BaseModel `bun:"table:rounds,alias:r"`

	ID           int64     `bun:"id,pk,autoincrement"`
	Name         string    `bun:"name,notnull,unique"`
	Cutoff       time.Time `bun:"cutoff,notnull"`
	TotalEntries int       `bun:"total_entries,notnull,default:0"`
	LateEntries  int       `bun:"late_entries,notnull,default:0"`
	ValidEntries int       `bun:"valid_entries,notnull,default:0"`
	ScoredAt     time.Time `bun:"scored_at,nullzero,notnull,default:current_timestamp"`
}

// EntryRecord is one scored submission, kept for audit: late entries are
// stored too, flagged, so disputes can be settled from the database alone.
type EntryRecord struct {
	bun.BaseModel `bun:"table:round_entries,alias:re"`

	ID          int64     `bun:"id,pk,autoincrement"`
	Round       string    `bun:"round,notnull"`
	Player      string    `bun:"player,notnull"`
	RawPlayer   string    `bun:"raw_player,notnull"`
	SubmittedAt time.Time `bun:"submitted_at,notnull"`
	Answers     []string  `bun:"answers,array"`
	Points      int       `bun:"points,notnull,default:0"`
	Late        bool      `bun:"late,notnull,default:false"`
}
