package leaderboardservice

import (
	"context"
	"log/slog"
	"strconv"
)

// boardHeader matches exportColumns; the published sheet and the xlsx export
// stay column-for-column identical.
var boardHeader = []string{"Rank", "+/-", "Player", "Points", "Last Round", "Played", "Award"}

// mirrorBoard pushes the standings to the published spreadsheet. Failures are
// logged and swallowed: the merge already committed, and the next merge
// rewrites the whole sheet anyway.
func (s *LeaderboardService) mirrorBoard(ctx context.Context, round string) {
	if s.board == nil {
		return
	}

	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "skipping leaderboard sheet mirror",
			slog.String("round", round),
			slog.Any("error", err),
		)
		return
	}

	rows := make([][]string, 0, len(snapshot.Rows)+1)
	rows = append(rows, boardHeader)
	for _, row := range snapshot.Rows {
		rows = append(rows, []string{
			row.Rank,
			strconv.Itoa(row.Delta),
			row.Player,
			strconv.Itoa(row.Curr),
			strconv.Itoa(row.Last),
			row.Played,
			row.Award,
		})
	}

	if err := s.board.WriteLeaderboard(ctx, rows); err != nil {
		s.logger.WarnContext(ctx, "failed to mirror leaderboard sheet",
			slog.String("round", round),
			slog.Any("error", err),
		)
	}
}
