package leaderboarddb

import (
	"testing"

	"github.com/shepherdjay/gwg-bot/internal/observability"
)

func dbQuerySampleCount(t *testing.T, m *observability.Metrics) uint64 {
	t.Helper()
	families, err := m.Registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, family := range families {
		if family.GetName() != "gwg_db_query_duration_seconds" {
			continue
		}
		var total uint64
		for _, metric := range family.GetMetric() {
			total += metric.GetHistogram().GetSampleCount()
		}
		return total
	}
	return 0
}

func TestObserveRecordsQueryDuration(t *testing.T) {
	m := observability.NewMetrics()
	repo := &StandingsDBImpl{Metrics: m}

	repo.observe("GetStandings")()
	repo.observe("ReplaceStandings")()

	if got := dbQuerySampleCount(t, m); got != 2 {
		t.Fatalf("db query samples = %d, want 2", got)
	}
}

func TestObserveWithoutMetricsIsNoOp(t *testing.T) {
	repo := &StandingsDBImpl{}
	repo.observe("GetStandings")()
}
