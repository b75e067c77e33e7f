package leaderboardservice

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	leaderboarddb "github.com/shepherdjay/gwg-bot/app/modules/leaderboard/infrastructure/repositories"
	"github.com/xuri/excelize/v2"
)

func standingsFixture() []leaderboarddb.StandingsRecord {
	return []leaderboarddb.StandingsRecord{
		{Player: "alice", Curr: 20, Last: 3, Played: 8, Rank: "T1", Delta: 0},
		{Player: "bob", Curr: 20, Last: 2, Played: 8, Rank: "T1", Delta: 1},
		{Player: "carol", Curr: 15, Last: 0, Played: 6, Rank: "2", Delta: -1},
	}
}

func TestSnapshotRendersPlayedAndAwards(t *testing.T) {
	repo := NewFakeStandingsDB()
	repo.ListRowsFunc = func(ctx context.Context) ([]leaderboarddb.StandingsRecord, error) {
		return standingsFixture(), nil
	}
	repo.MergedRoundCountFunc = func(ctx context.Context) (int, error) { return 9, nil }

	svc := newTestService(repo, map[string]string{"carol": "2024-25 champion"})
	snapshot, err := svc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	want := Snapshot{
		TotalRounds: 9,
		Rows: []SnapshotRow{
			{Rank: "T1", Delta: 0, Player: "alice", Curr: 20, Last: 3, Played: "8/9"},
			{Rank: "T1", Delta: 1, Player: "bob", Curr: 20, Last: 2, Played: "8/9"},
			{Rank: "2", Delta: -1, Player: "carol", Curr: 15, Last: 0, Played: "6/9", Award: "2024-25 champion"},
		},
	}
	if diff := cmp.Diff(want, snapshot); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestSnapshotEmptyBoard(t *testing.T) {
	svc := newTestService(NewFakeStandingsDB(), nil)
	snapshot, err := svc.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if len(snapshot.Rows) != 0 || snapshot.TotalRounds != 0 {
		t.Errorf("empty board snapshot = %+v", snapshot)
	}
}

func TestExportXLSXRoundTrips(t *testing.T) {
	repo := NewFakeStandingsDB()
	repo.ListRowsFunc = func(ctx context.Context) ([]leaderboarddb.StandingsRecord, error) {
		return standingsFixture(), nil
	}
	repo.MergedRoundCountFunc = func(ctx context.Context) (int, error) { return 9, nil }

	svc := newTestService(repo, nil)
	data, err := svc.ExportXLSX(context.Background())
	if err != nil {
		t.Fatalf("ExportXLSX() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(exportSheetName)
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("exported %d rows, want header + 3", len(rows))
	}
	if rows[1][2] != "alice" || rows[1][0] != "T1" {
		t.Errorf("first data row = %v", rows[1])
	}
	if rows[3][5] != "6/9" {
		t.Errorf("played cell = %q, want 6/9", rows[3][5])
	}
}

func TestRenderChartProducesPNG(t *testing.T) {
	repo := NewFakeStandingsDB()
	repo.ListRowsFunc = func(ctx context.Context) ([]leaderboarddb.StandingsRecord, error) {
		return standingsFixture(), nil
	}

	svc := newTestService(repo, nil)
	// topN 1 draws a single bar and topN 2 draws the tied leaders; both give
	// every bar the same value.
	for _, topN := range []int{0, 1, 2} {
		data, err := svc.RenderChart(context.Background(), topN)
		if err != nil {
			t.Fatalf("RenderChart(%d) error = %v", topN, err)
		}
		if !bytes.HasPrefix(data, []byte("\x89PNG")) {
			t.Errorf("RenderChart(%d) did not produce a PNG", topN)
		}
	}
}

func TestRenderChartAllZeroPoints(t *testing.T) {
	repo := NewFakeStandingsDB()
	repo.ListRowsFunc = func(ctx context.Context) ([]leaderboarddb.StandingsRecord, error) {
		return []leaderboarddb.StandingsRecord{
			{Player: "alice", Curr: 0, Played: 1, Rank: "T1"},
			{Player: "bob", Curr: 0, Played: 1, Rank: "T1"},
		}, nil
	}

	svc := newTestService(repo, nil)
	data, err := svc.RenderChart(context.Background(), 0)
	if err != nil {
		t.Fatalf("RenderChart() error = %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("zero-point chart is not a PNG")
	}
}

func TestRenderChartEmptyBoard(t *testing.T) {
	svc := newTestService(NewFakeStandingsDB(), nil)
	data, err := svc.RenderChart(context.Background(), 5)
	if err != nil {
		t.Fatalf("RenderChart() error = %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("placeholder chart is not a PNG")
	}
}
