package leaderboardservice

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const exportSheetName = "Leaderboard"

// exportColumns matches the column order of the published standings sheet.
var exportColumns = []any{"Rank", "+/-", "Player", "Points", "Last Round", "Played", "Award"}

// ExportXLSX renders the current standings as an xlsx workbook.
func (s *LeaderboardService) ExportXLSX(ctx context.Context) ([]byte, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(exportSheetName, "A1", &exportColumns); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, row := range snapshot.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		values := []any{row.Rank, row.Delta, row.Player, row.Curr, row.Last, row.Played, row.Award}
		if err := f.SetSheetRow(exportSheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
