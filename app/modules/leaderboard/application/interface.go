package leaderboardservice

import (
	"context"

	leaderboarddomain "github.com/shepherdjay/gwg-bot/app/modules/leaderboard/domain"
)

// BoardWriter mirrors the standings to the published spreadsheet. The
// database stays the source of truth; the mirror is best effort.
type BoardWriter interface {
	WriteLeaderboard(ctx context.Context, rows [][]string) error
}

// Service is the leaderboard module's application surface.
type Service interface {
	// ApplyRoundScores folds one round's scores into the cumulative standings.
	// A round that was already merged is a no-op with an empty result.
	ApplyRoundScores(ctx context.Context, round string, scores leaderboarddomain.RoundScore) (LeaderboardOperationResult, error)

	// Snapshot returns the standings ordered for display.
	Snapshot(ctx context.Context) (Snapshot, error)

	// ExportXLSX renders the standings as a spreadsheet workbook.
	ExportXLSX(ctx context.Context) ([]byte, error)

	// RenderChart renders the top players' point totals as a PNG bar chart.
	RenderChart(ctx context.Context, topN int) ([]byte, error)
}
