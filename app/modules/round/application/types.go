package roundservice

import roundevents "github.com/shepherdjay/gwg-bot/app/modules/round/events"

// RoundOperationResult carries a business outcome across the service
// boundary. Both fields nil means a deliberate no-op (round already scored).
type RoundOperationResult struct {
	Success any
	Failure any
}

// ScoredOutcome is the success payload of ProcessRound: the scored event
// plus, when anyone missed the cutoff, the late-entries event.
type ScoredOutcome struct {
	Scored *roundevents.RoundScoredPayload
	Late   *roundevents.LateEntriesPayload
}
