package rounddomain

import "strconv"

// auditTimeLayout matches the timestamp format written to round history
// sheets.
const auditTimeLayout = "2006/01/02 15:04:05"

// AuditSheet is the per-round history record written back to the record
// store: every scored entry with its points, late entries separated out, and
// summary counts. This is display/audit data only; the merge never reads it.
type AuditSheet struct {
	Round    string
	Columns  []string
	Rows     [][]string
	LateRows [][]string
	Stats    AuditStats
}

// AuditStats summarizes a round's participation.
type AuditStats struct {
	TotalEntries int
	LateEntries  int
	ValidEntries int
}

// BuildAuditSheet renders a scored round into its audit sheet.
func BuildAuditSheet(result RoundResult) AuditSheet {
	columns := []string{"Submitted", "Player"}
	for q := 1; q <= NumQuestions; q++ {
		columns = append(columns, "Q"+strconv.Itoa(q))
	}
	columns = append(columns, "Points")

	sheet := AuditSheet{
		Round:   result.Round,
		Columns: columns,
		Stats: AuditStats{
			TotalEntries: len(result.OnTime) + len(result.Late),
			LateEntries:  len(result.Late),
			ValidEntries: len(result.OnTime),
		},
	}
	for _, entry := range result.OnTime {
		sheet.Rows = append(sheet.Rows, auditRow(entry))
	}
	for _, entry := range result.Late {
		sheet.LateRows = append(sheet.LateRows, auditRow(entry))
	}
	return sheet
}

func auditRow(entry ScoredEntry) []string {
	row := []string{entry.SubmittedAt.Format(auditTimeLayout), entry.NormalizedPlayer}
	for q := 0; q < NumQuestions; q++ {
		if q < len(entry.Answers) {
			row = append(row, entry.Answers[q])
		} else {
			row = append(row, "")
		}
	}
	return append(row, strconv.Itoa(entry.Points))
}
