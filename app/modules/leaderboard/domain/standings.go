package leaderboarddomain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedRank indicates a rank string in persisted standings that cannot
// be parsed back to an integer. Merges must abort on it: defaulting the value
// would corrupt every delta computed afterwards.
var ErrMalformedRank = errors.New("malformed rank")

// TieMarker prefixes the displayed rank of players who share their rank with
// at least one other player ("T2").
const TieMarker = "T"

// UnrankedSentinel is the rank recorded for a player who has never appeared
// on the board before this round.
const UnrankedSentinel = "0"

// RoundScore maps a normalized player identifier to the points earned in a
// single round.
type RoundScore map[string]int

// StandingsRow is one player's cumulative state on the leaderboard.
type StandingsRow struct {
	// Curr is the player's running point total across all rounds.
	Curr int
	// Last is the number of points earned in the most recent merged round,
	// 0 if the player sat that round out.
	Last int
	// Played counts the rounds the player has submitted a valid entry for.
	Played int
	// Rank is the display rank: a bare integer ("4") or a tied rank ("T4").
	Rank string
	// Delta is the number of positions moved since the previous round.
	// Positive means the player climbed.
	Delta int
}

// Standings is the full leaderboard keyed by normalized player identifier.
type Standings map[string]StandingsRow

// ParseRank converts a display rank back to its integer position, stripping a
// single leading tie marker. The unranked sentinel parses to 0.
func ParseRank(rank string) (int, error) {
	trimmed := strings.TrimPrefix(rank, TieMarker)
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("parse rank %q: %w", rank, ErrMalformedRank)
	}
	return n, nil
}

// FormatRank renders an integer position as a display rank.
func FormatRank(position int, tied bool) string {
	if tied {
		return TieMarker + strconv.Itoa(position)
	}
	return strconv.Itoa(position)
}
