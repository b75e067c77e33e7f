package rounddomain

import (
	"errors"
	"testing"
	"time"
)

func TestNewAnswerKeySplitsEquivalentAnswers(t *testing.T) {
	cutoff := time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC)
	key, err := NewAnswerKey("GM4", []string{"Jets", " 7 ", "Canucks, Vancouver "}, cutoff)
	if err != nil {
		t.Fatalf("new answer key: %v", err)
	}

	if !key.Slots[2].Matches("VANCOUVER") {
		t.Error("expected second equivalent answer to match case-insensitively")
	}
	if !key.Slots[2].Matches(" canucks ") {
		t.Error("expected trimmed answer to match")
	}
	if key.Slots[1].Matches("8") {
		t.Error("unexpected match for wrong answer")
	}
}

func TestNewAnswerKeyRejectsUnpublishedKeys(t *testing.T) {
	cutoff := time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC)

	if _, err := NewAnswerKey("GM4", []string{"jets", "", "canucks"}, cutoff); !errors.Is(err, ErrMissingAnswerKey) {
		t.Errorf("empty cell: expected ErrMissingAnswerKey, got %v", err)
	}
	if _, err := NewAnswerKey("GM4", []string{"jets", "7"}, cutoff); !errors.Is(err, ErrMissingAnswerKey) {
		t.Errorf("short key: expected ErrMissingAnswerKey, got %v", err)
	}
	if _, err := NewAnswerKey("GM4", []string{"jets", "7", "canucks"}, time.Time{}); !errors.Is(err, ErrMissingAnswerKey) {
		t.Errorf("zero cutoff: expected ErrMissingAnswerKey, got %v", err)
	}
	if _, err := NewAnswerKey("GM4", []string{"jets", "7", " , ,"}, cutoff); !errors.Is(err, ErrMissingAnswerKey) {
		t.Errorf("blank-only cell: expected ErrMissingAnswerKey, got %v", err)
	}
}

func TestNormalizePlayer(t *testing.T) {
	tests := []struct{ in, want string }{
		{"/u/Alice", "alice"},
		{"u/Alice", "alice"},
		{"  Bob Smith ", "bobsmith"},
		{"/u/ some guy", "someguy"},
		{"CAROL", "carol"},
	}
	for _, tt := range tests {
		if got := NormalizePlayer(tt.in); got != tt.want {
			t.Errorf("NormalizePlayer(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildAuditSheetStats(t *testing.T) {
	key := testKey(t)
	entries := []Entry{
		{SubmittedAt: key.Cutoff.Add(-time.Minute), Player: "alice", Answers: []string{"jets", "7", "canucks"}},
		{SubmittedAt: key.Cutoff.Add(time.Minute), Player: "bob", Answers: []string{"jets", "7", "canucks"}},
	}
	result, err := ScoreRound(key, entries)
	if err != nil {
		t.Fatalf("score round: %v", err)
	}

	sheet := BuildAuditSheet(result)
	if sheet.Stats.TotalEntries != 2 || sheet.Stats.LateEntries != 1 || sheet.Stats.ValidEntries != 1 {
		t.Errorf("unexpected stats: %+v", sheet.Stats)
	}
	if len(sheet.Rows) != 1 || len(sheet.LateRows) != 1 {
		t.Errorf("expected 1 on-time and 1 late row, got %d/%d", len(sheet.Rows), len(sheet.LateRows))
	}
	if len(sheet.Columns) != NumQuestions+3 {
		t.Errorf("unexpected column count %d", len(sheet.Columns))
	}
}
