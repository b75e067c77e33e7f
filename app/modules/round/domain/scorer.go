package rounddomain

import "fmt"

// ScoredEntry is an Entry with its computed points and lateness. Late entries
// keep their points for the audit sheet even though they never reach the
// round score.
type ScoredEntry struct {
	Entry
	NormalizedPlayer string
	Points           int
	Late             bool
}

// RoundResult is the full outcome of scoring one round.
type RoundResult struct {
	Round string
	// Scores maps normalized player to points and contains on-time entries
	// only. Duplicate normalized players overwrite: last value wins.
	Scores map[string]int
	// OnTime and Late partition every scored entry, in input order.
	OnTime []ScoredEntry
	Late   []ScoredEntry
	// DuplicatePlayers lists normalized identifiers that appeared more than
	// once among on-time entries. A data-quality signal for the caller to
	// log, not an error.
	DuplicatePlayers []string
}

// ScoreRound scores every entry against the answer key and partitions the
// entries by the cutoff. Pure: no I/O, inputs untouched.
//
// An entry earns one point per question whose answer is in that question's
// accepted set, compared case-insensitively after trimming. An entry is late
// iff it was submitted strictly after the cutoff; late entries are scored for
// the record but excluded from Scores.
func ScoreRound(key AnswerKey, entries []Entry) (RoundResult, error) {
	if len(key.Slots) != NumQuestions || key.Cutoff.IsZero() {
		return RoundResult{}, fmt.Errorf("round %s: %w", key.Round, ErrMissingAnswerKey)
	}

	result := RoundResult{
		Round:  key.Round,
		Scores: make(map[string]int, len(entries)),
	}

	for _, entry := range entries {
		scored := ScoredEntry{
			Entry:            entry,
			NormalizedPlayer: NormalizePlayer(entry.Player),
			Points:           scoreEntry(key, entry),
			Late:             entry.SubmittedAt.After(key.Cutoff),
		}

		if scored.Late {
			result.Late = append(result.Late, scored)
			continue
		}

		if _, seen := result.Scores[scored.NormalizedPlayer]; seen {
			result.DuplicatePlayers = append(result.DuplicatePlayers, scored.NormalizedPlayer)
		}
		result.Scores[scored.NormalizedPlayer] = scored.Points
		result.OnTime = append(result.OnTime, scored)
	}

	return result, nil
}

func scoreEntry(key AnswerKey, entry Entry) int {
	points := 0
	for i, slot := range key.Slots {
		if i >= len(entry.Answers) {
			break
		}
		if slot.Matches(entry.Answers[i]) {
			points++
		}
	}
	return points
}
