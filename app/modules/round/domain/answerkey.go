package rounddomain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// NumQuestions is the fixed number of answer slots per round.
const NumQuestions = 3

// ErrMissingAnswerKey indicates a round whose accepted answers have not been
// published yet. Scoring cannot proceed; guessing would corrupt the audit
// record.
var ErrMissingAnswerKey = errors.New("missing answer key")

// AnswerKey holds a round's accepted answers and its official cutoff. It is
// immutable once published: the scorer only reads it.
type AnswerKey struct {
	Round  string
	Slots  []AnswerSlot
	Cutoff time.Time
}

// AnswerSlot is the set of accepted answers for one question, stored
// lowercased and trimmed so equivalent correct answers compare equal.
type AnswerSlot struct {
	Accepted map[string]struct{}
}

// NewAnswerKey builds an AnswerKey from raw accepted-answer cells, one per
// question. Each cell may list several equivalent answers separated by commas
// ("canucks, vancouver"). An empty cell means the key is not published yet.
func NewAnswerKey(round string, rawAnswers []string, cutoff time.Time) (AnswerKey, error) {
	if len(rawAnswers) != NumQuestions {
		return AnswerKey{}, fmt.Errorf("round %s: %d answer cells, want %d: %w",
			round, len(rawAnswers), NumQuestions, ErrMissingAnswerKey)
	}
	if cutoff.IsZero() {
		return AnswerKey{}, fmt.Errorf("round %s: no cutoff timestamp: %w", round, ErrMissingAnswerKey)
	}

	slots := make([]AnswerSlot, 0, NumQuestions)
	for i, raw := range rawAnswers {
		slot := AnswerSlot{Accepted: make(map[string]struct{})}
		for _, answer := range strings.Split(raw, ",") {
			answer = strings.ToLower(strings.TrimSpace(answer))
			if answer == "" {
				continue
			}
			slot.Accepted[answer] = struct{}{}
		}
		if len(slot.Accepted) == 0 {
			return AnswerKey{}, fmt.Errorf("round %s: question %d has no accepted answers: %w",
				round, i+1, ErrMissingAnswerKey)
		}
		slots = append(slots, slot)
	}

	return AnswerKey{Round: round, Slots: slots, Cutoff: cutoff}, nil
}

// Matches reports whether the raw answer is accepted for the slot.
func (s AnswerSlot) Matches(raw string) bool {
	_, ok := s.Accepted[strings.ToLower(strings.TrimSpace(raw))]
	return ok
}
