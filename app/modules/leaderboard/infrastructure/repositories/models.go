package leaderboarddb

import (
	"time"

	"github.com/uptrace/bun"
)

// StandingsRecord is one player's persisted leaderboard row.
type StandingsRecord struct {
	bun.BaseModel `bun:"table:standings_rows,alias:sr"`

	ID        int64     `bun:"id,pk,autoincrement"`
	Player    string    `bun:"player,notnull,unique"`
	Curr      int       `bun:"curr,notnull,default:0"`
	Last      int       `bun:"last,notnull,default:0"`
	Played    int       `bun:"played,notnull,default:0"`
	Rank      string    `bun:"rank,notnull"`
	Delta     int       `bun:"delta,notnull,default:0"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// MergedRound marks a round as already folded into the standings. It is the
// idempotence guard: the merge service refuses to apply a round listed here.
type MergedRound struct {
	bun.BaseModel `bun:"table:merged_rounds,alias:mr"`

	ID       int64     `bun:"id,pk,autoincrement"`
	Round    string    `bun:"round,notnull,unique"`
	Players  int       `bun:"players,notnull,default:0"`
	MergedAt time.Time `bun:"merged_at,nullzero,notnull,default:current_timestamp"`
}
