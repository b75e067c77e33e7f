package rounddomain

import (
	"strings"
	"time"
)

// Entry is one raw player submission for a round, exactly as it came off the
// response sheet.
type Entry struct {
	SubmittedAt time.Time
	// Player is the raw identifier, possibly carrying a mention prefix
	// ("/u/alice", "u/alice") and stray whitespace.
	Player  string
	Answers []string
}

// NormalizePlayer reduces a raw player identifier to its canonical form:
// mention prefixes and all internal whitespace stripped, lowercased, trimmed.
// Standings and round scores are keyed by this form so "/u/Some Guy" and
// "someguy" are the same player.
func NormalizePlayer(raw string) string {
	name := strings.ReplaceAll(raw, "/u/", "")
	name = strings.ReplaceAll(name, "u/", "")
	name = strings.ReplaceAll(name, " ", "")
	return strings.TrimSpace(strings.ToLower(name))
}
