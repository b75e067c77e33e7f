package leaderboarddb

import (
	"context"

	leaderboarddomain "github.com/shepherdjay/gwg-bot/app/modules/leaderboard/domain"
)

// StandingsDB is the persistence surface the leaderboard service depends on.
type StandingsDB interface {
	// GetStandings reads the full standings table keyed by player.
	GetStandings(ctx context.Context) (leaderboarddomain.Standings, error)
	// ListRows returns the standings ordered for display: rank ascending,
	// player name as the stable tiebreaker.
	ListRows(ctx context.Context) ([]StandingsRecord, error)
	// ReplaceStandings swaps the whole standings table for the merged result
	// and marks the round merged, in one transaction. The write never
	// partially applies.
	ReplaceStandings(ctx context.Context, round string, standings leaderboarddomain.Standings) error
	// IsRoundMerged reports whether a round was already folded in.
	IsRoundMerged(ctx context.Context, round string) (bool, error)
	// MergedRoundCount returns how many rounds the standings contain.
	MergedRoundCount(ctx context.Context) (int, error)
}
