// Package roundevents defines the topics and payloads the round module
// publishes and consumes.
package roundevents

import "time"

const (
	// ScoreRequested asks the round module to score a pending round.
	ScoreRequested = "round.score.requested.v1"
	// RoundScored announces a freshly scored round with its per-player points.
	RoundScored = "round.scored.v1"
	// ScoringFailed reports a round that could not be scored.
	ScoringFailed = "round.scoring.failed.v1"
	// LateEntriesDetected carries the entrants who missed the cutoff.
	LateEntriesDetected = "round.late.entries.v1"
)

type ScoreRequestedPayload struct {
	Round string `json:"round"`
}

type RoundScoredPayload struct {
	Round string `json:"round"`
	// Scores maps normalized player identifiers to points earned this round.
	// On-time entries only.
	Scores       map[string]int `json:"scores"`
	Cutoff       time.Time      `json:"cutoff"`
	TotalEntries int            `json:"total_entries"`
	LateEntries  int            `json:"late_entries"`
	ValidEntries int            `json:"valid_entries"`
}

type ScoringFailedPayload struct {
	Round  string `json:"round"`
	Reason string `json:"reason"`
}

type LateEntrant struct {
	Player      string    `json:"player"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type LateEntriesPayload struct {
	Round    string        `json:"round"`
	Cutoff   time.Time     `json:"cutoff"`
	Entrants []LateEntrant `json:"entrants"`
}
