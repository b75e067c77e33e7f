// Package leaderboardevents defines the topics and payloads the leaderboard
// module publishes.
package leaderboardevents

const (
	// Updated announces that a round's scores were merged into the standings.
	Updated = "leaderboard.updated.v1"
	// UpdateFailed reports a merge that aborted before writing anything.
	UpdateFailed = "leaderboard.update.failed.v1"
)

type UpdatedPayload struct {
	Round string `json:"round"`
	// Players is the standings size after the merge.
	Players int `json:"players"`
	// TotalRounds is the number of rounds merged so far, this one included.
	TotalRounds int `json:"total_rounds"`
}

type UpdateFailedPayload struct {
	Round  string `json:"round"`
	Reason string `json:"reason"`
}
