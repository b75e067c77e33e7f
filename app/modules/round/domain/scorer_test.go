package rounddomain

import (
	"errors"
	"testing"
	"time"
)

func testKey(t *testing.T) AnswerKey {
	t.Helper()
	cutoff := time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC)
	key, err := NewAnswerKey("GM1", []string{"jets", "7", "canucks, vancouver"}, cutoff)
	if err != nil {
		t.Fatalf("new answer key: %v", err)
	}
	return key
}

func TestScoreRoundFullMarksOnTime(t *testing.T) {
	key := testKey(t)
	entries := []Entry{{
		SubmittedAt: key.Cutoff.Add(-time.Minute),
		Player:      "alice",
		Answers:     []string{"Jets", "7", "Vancouver"},
	}}

	result, err := ScoreRound(key, entries)
	if err != nil {
		t.Fatalf("score round: %v", err)
	}

	if got := result.Scores["alice"]; got != 3 {
		t.Errorf("expected alice to score 3, got %d", got)
	}
	if len(result.OnTime) != 1 || len(result.Late) != 0 {
		t.Errorf("expected 1 on-time, 0 late, got %d/%d", len(result.OnTime), len(result.Late))
	}
}

func TestScoreRoundLateEntryScoredButExcluded(t *testing.T) {
	key := testKey(t)
	entries := []Entry{{
		SubmittedAt: key.Cutoff.Add(5 * time.Minute),
		Player:      "BOB",
		Answers:     []string{"jets", "8", "canucks"},
	}}

	result, err := ScoreRound(key, entries)
	if err != nil {
		t.Fatalf("score round: %v", err)
	}

	if _, ok := result.Scores["bob"]; ok {
		t.Error("late entry must not contribute to the round score")
	}
	if len(result.Late) != 1 {
		t.Fatalf("expected 1 late entry, got %d", len(result.Late))
	}
	// Still scored for the audit sheet.
	if result.Late[0].Points != 2 {
		t.Errorf("expected late entry to score 2, got %d", result.Late[0].Points)
	}
}

func TestScoreRoundEntryAtCutoffIsOnTime(t *testing.T) {
	key := testKey(t)
	entries := []Entry{{
		SubmittedAt: key.Cutoff,
		Player:      "alice",
		Answers:     []string{"jets", "7", "canucks"},
	}}

	result, err := ScoreRound(key, entries)
	if err != nil {
		t.Fatalf("score round: %v", err)
	}
	if len(result.OnTime) != 1 {
		t.Error("entry exactly at the cutoff must count as on time")
	}
}

func TestScoreRoundPointsBounded(t *testing.T) {
	key := testKey(t)
	entries := []Entry{
		{SubmittedAt: key.Cutoff, Player: "none", Answers: []string{"x", "y", "z"}},
		{SubmittedAt: key.Cutoff, Player: "short", Answers: []string{"jets"}},
		{SubmittedAt: key.Cutoff, Player: "empty"},
	}

	result, err := ScoreRound(key, entries)
	if err != nil {
		t.Fatalf("score round: %v", err)
	}

	for player, points := range result.Scores {
		if points < 0 || points > NumQuestions {
			t.Errorf("player %s: points %d out of [0,%d]", player, points, NumQuestions)
		}
	}
	if result.Scores["short"] != 1 {
		t.Errorf("expected partial entry to score 1, got %d", result.Scores["short"])
	}
}

func TestScoreRoundDuplicatePlayerLastValueWins(t *testing.T) {
	key := testKey(t)
	entries := []Entry{
		{SubmittedAt: key.Cutoff.Add(-2 * time.Minute), Player: "/u/Alice", Answers: []string{"jets", "7", "canucks"}},
		{SubmittedAt: key.Cutoff.Add(-time.Minute), Player: "alice", Answers: []string{"x", "y", "z"}},
	}

	result, err := ScoreRound(key, entries)
	if err != nil {
		t.Fatalf("score round: %v", err)
	}

	if got := result.Scores["alice"]; got != 0 {
		t.Errorf("expected last entry to win with 0 points, got %d", got)
	}
	if len(result.DuplicatePlayers) != 1 || result.DuplicatePlayers[0] != "alice" {
		t.Errorf("expected duplicate report for alice, got %v", result.DuplicatePlayers)
	}
	// Both entries stay on the audit record.
	if len(result.OnTime) != 2 {
		t.Errorf("expected both duplicate entries retained, got %d", len(result.OnTime))
	}
}

func TestScoreRoundMissingKeyFails(t *testing.T) {
	entries := []Entry{{SubmittedAt: time.Now(), Player: "alice"}}

	_, err := ScoreRound(AnswerKey{Round: "GM9"}, entries)
	if !errors.Is(err, ErrMissingAnswerKey) {
		t.Fatalf("expected ErrMissingAnswerKey, got %v", err)
	}
}
