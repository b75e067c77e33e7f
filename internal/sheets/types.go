package sheets

import "time"

// RoundSheet is one row of the contest registry: a round, its answer key
// cells and its lifecycle flags.
type RoundSheet struct {
	// Round is the normalized round name ("GM3").
	Round string
	// Title is the raw spreadsheet title ("GM 3 (Responses)").
	Title string
	// Start is the official start of the round; the cutoff for entries.
	Start time.Time
	// DateOnly is set when the registry holds a bare date and the start time
	// must be resolved from the game schedule.
	DateOnly bool
	// Questions and Answers are the three question prompts and their
	// accepted-answer cells. An answer cell may hold several comma-separated
	// equivalents.
	Questions []string
	Answers   []string
	// Ready reports that the answer key has been published.
	Ready bool
	// Written reports that the round's history sheet was already written.
	Written bool
	// RowIndex is the 1-based registry row the sheet was read from, used to
	// flip the written flag in place.
	RowIndex int
}

// EntryRow is one raw response row, exactly as submitted.
type EntryRow struct {
	SubmittedAt time.Time
	Player      string
	Answers     []string
}

// RoundHistory is the audit record written back for a scored round.
type RoundHistory struct {
	Columns  []string
	Rows     [][]string
	LateRows [][]string
	Summary  []string
}
