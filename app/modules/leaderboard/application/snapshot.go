package leaderboardservice

import (
	"context"
	"fmt"
)

// Snapshot returns the standings in display order with the "played/total"
// column rendered and award annotations applied.
func (s *LeaderboardService) Snapshot(ctx context.Context) (Snapshot, error) {
	rows, err := s.repo.ListRows(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list standings: %w", err)
	}

	totalRounds, err := s.repo.MergedRoundCount(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("count merged rounds: %w", err)
	}

	snapshot := Snapshot{
		Rows:        make([]SnapshotRow, 0, len(rows)),
		TotalRounds: totalRounds,
	}
	for _, row := range rows {
		snapshot.Rows = append(snapshot.Rows, SnapshotRow{
			Rank:   row.Rank,
			Delta:  row.Delta,
			Player: row.Player,
			Curr:   row.Curr,
			Last:   row.Last,
			Played: fmt.Sprintf("%d/%d", row.Played, totalRounds),
			Award:  s.awards[row.Player],
		})
	}
	return snapshot, nil
}
