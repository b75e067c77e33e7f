package sheets

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

const (
	startLayout    = "2006/01/02 15:04:05"
	dateOnlyLayout = "2006/01/02"
	entryLayout    = "2006/01/02 15:04:05"
)

// RoundName normalizes a response-sheet title to its round name:
// "GM 3 (Responses)" becomes "GM3". Titles without digits normalize to an
// empty string.
func RoundName(title string) string {
	var digits strings.Builder
	for _, r := range title {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return ""
	}
	return "GM" + digits.String()
}

// parseRegistryRow decodes one registry row:
// title, start, q1, a1, q2, a2, q3, a3, ready, written.
func parseRegistryRow(row []string, rowIndex int, loc *time.Location) (RoundSheet, error) {
	if len(row) < 8 {
		return RoundSheet{}, fmt.Errorf("registry row has %d cells, want at least 8", len(row))
	}

	title := strings.TrimSpace(row[0])
	round := RoundName(title)
	if round == "" {
		return RoundSheet{}, fmt.Errorf("title %q has no round number", title)
	}

	start, dateOnly, err := parseStart(strings.TrimSpace(row[1]), loc)
	if err != nil {
		return RoundSheet{}, err
	}

	sheet := RoundSheet{
		Round:     round,
		Title:     title,
		Start:     start,
		DateOnly:  dateOnly,
		Questions: []string{row[2], row[4], row[6]},
		Answers:   []string{row[3], row[5], row[7]},
		RowIndex:  rowIndex,
	}
	if len(row) > 8 {
		sheet.Ready = parseFlag(row[8])
	}
	if len(row) > 9 {
		sheet.Written = parseFlag(row[9])
	}
	return sheet, nil
}

// parseEntryRow decodes one response row: timestamp, player, then answers.
func parseEntryRow(row []string, loc *time.Location) (EntryRow, error) {
	if len(row) < 2 {
		return EntryRow{}, fmt.Errorf("response row has %d cells, want at least 2", len(row))
	}

	submittedAt, err := time.ParseInLocation(entryLayout, strings.TrimSpace(row[0]), loc)
	if err != nil {
		return EntryRow{}, fmt.Errorf("parse submission time %q: %w", row[0], err)
	}

	return EntryRow{
		SubmittedAt: submittedAt,
		Player:      row[1],
		Answers:     row[2:],
	}, nil
}

// parseStart accepts a full timestamp or a bare date. A bare date means the
// official start time has to come from the game schedule.
func parseStart(raw string, loc *time.Location) (time.Time, bool, error) {
	if t, err := time.ParseInLocation(startLayout, raw, loc); err == nil {
		return t, false, nil
	}
	if t, err := time.ParseInLocation(dateOnlyLayout, raw, loc); err == nil {
		return t, true, nil
	}
	return time.Time{}, false, fmt.Errorf("parse start %q: unrecognized format", raw)
}

func parseFlag(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "yes", "1", "x":
		return true
	}
	return false
}
