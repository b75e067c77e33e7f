package leaderboardservice

// LeaderboardOperationResult carries a business outcome across the service
// boundary. Exactly one of Success or Failure is set when the operation
// produced an event-worthy outcome; both are nil for a deliberate no-op such
// as a replayed round.
type LeaderboardOperationResult struct {
	Success any
	Failure any
}

// SnapshotRow is one display row of the standings, ordered best first.
type SnapshotRow struct {
	Rank   string `json:"rank"`
	Delta  int    `json:"delta"`
	Player string `json:"player"`
	Curr   int    `json:"curr"`
	Last   int    `json:"last"`
	// Played is rendered as "played/totalRounds" ("9/12").
	Played string `json:"played"`
	// Award annotates past champions, empty for everyone else.
	Award string `json:"award,omitempty"`
}

// Snapshot is the standings table as shown to players.
type Snapshot struct {
	Rows        []SnapshotRow `json:"rows"`
	TotalRounds int           `json:"total_rounds"`
}
