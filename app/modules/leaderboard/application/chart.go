package leaderboardservice

import (
	"bytes"
	"context"

	"github.com/wcharczuk/go-chart/v2"
)

// DefaultChartTopN bounds the announcement chart to a readable bar count.
const DefaultChartTopN = 10

// RenderChart renders the top players' cumulative points as a PNG bar chart
// for standings announcements. topN <= 0 falls back to DefaultChartTopN.
func (s *LeaderboardService) RenderChart(ctx context.Context, topN int) ([]byte, error) {
	if topN <= 0 {
		topN = DefaultChartTopN
	}

	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	rows := snapshot.Rows
	if len(rows) > topN {
		rows = rows[:topN]
	}

	if len(rows) == 0 {
		return renderEmptyBoard()
	}

	bars := make([]chart.Value, 0, len(rows))
	maxCurr := 0.0
	for _, row := range rows {
		bars = append(bars, chart.Value{
			Label: row.Player,
			Value: float64(row.Curr),
		})
		if float64(row.Curr) > maxCurr {
			maxCurr = float64(row.Curr)
		}
	}
	if maxCurr <= 0 {
		maxCurr = 1
	}

	graph := chart.BarChart{
		Title:    "Season standings",
		Width:    900,
		Height:   450,
		BarWidth: 50,
		XAxis: chart.Style{
			TextRotationDegrees: 45,
		},
		// Tied leaders make every bar equal; an auto-computed Y range would
		// be zero and the render fails.
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: maxCurr * 1.1},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderEmptyBoard draws a placeholder before the first round is merged.
func renderEmptyBoard() ([]byte, error) {
	graph := chart.Chart{
		Title:  "No rounds scored yet",
		Width:  400,
		Height: 200,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: 1},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: []float64{0, 1},
				YValues: []float64{0, 0},
			},
		},
	}
	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
