package leaderboardservice

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	leaderboarddomain "github.com/shepherdjay/gwg-bot/app/modules/leaderboard/domain"
	leaderboardevents "github.com/shepherdjay/gwg-bot/app/modules/leaderboard/events"
	leaderboarddb "github.com/shepherdjay/gwg-bot/app/modules/leaderboard/infrastructure/repositories"
	"github.com/shepherdjay/gwg-bot/internal/observability"
)

func newTestService(repo leaderboarddb.StandingsDB, awards map[string]string) *LeaderboardService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewLeaderboardService(repo, nil, logger, observability.NewMetrics(), observability.Tracer("test"), awards)
}

func TestApplyRoundScoresMergesAndReports(t *testing.T) {
	repo := NewFakeStandingsDB()
	repo.GetStandingsFunc = func(ctx context.Context) (leaderboarddomain.Standings, error) {
		return leaderboarddomain.Standings{
			"alice": {Curr: 5, Last: 2, Played: 3, Rank: "1", Delta: 0},
			"bob":   {Curr: 3, Last: 0, Played: 3, Rank: "2", Delta: 1},
		}, nil
	}
	repo.MergedRoundCountFunc = func(ctx context.Context) (int, error) { return 4, nil }

	svc := newTestService(repo, nil)
	result, err := svc.ApplyRoundScores(context.Background(), "GM4", leaderboarddomain.RoundScore{
		"bob":   3,
		"carol": 2,
	})
	if err != nil {
		t.Fatalf("ApplyRoundScores() error = %v", err)
	}

	success, ok := result.Success.(*leaderboardevents.UpdatedPayload)
	if !ok {
		t.Fatalf("result.Success = %T, want *UpdatedPayload", result.Success)
	}
	want := &leaderboardevents.UpdatedPayload{Round: "GM4", Players: 3, TotalRounds: 4}
	if diff := cmp.Diff(want, success); diff != "" {
		t.Errorf("success payload mismatch (-want +got):\n%s", diff)
	}

	if repo.LastReplaced == nil {
		t.Fatal("ReplaceStandings was not called")
	}
	if got := repo.LastReplaced["bob"]; got.Curr != 6 || got.Played != 4 {
		t.Errorf("bob after merge = %+v, want Curr 6 Played 4", got)
	}
	if got := repo.LastReplaced["carol"]; got.Curr != 2 || got.Played != 1 {
		t.Errorf("carol after merge = %+v, want Curr 2 Played 1", got)
	}

	wantTrace := []string{"IsRoundMerged", "GetStandings", "ReplaceStandings", "MergedRoundCount"}
	if diff := cmp.Diff(wantTrace, repo.Trace()); diff != "" {
		t.Errorf("call trace mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyRoundScoresSkipsMergedRound(t *testing.T) {
	repo := NewFakeStandingsDB()
	repo.IsRoundMergedFunc = func(ctx context.Context, round string) (bool, error) { return true, nil }

	svc := newTestService(repo, nil)
	result, err := svc.ApplyRoundScores(context.Background(), "GM2", leaderboarddomain.RoundScore{"alice": 1})
	if err != nil {
		t.Fatalf("ApplyRoundScores() error = %v", err)
	}
	if result.Success != nil || result.Failure != nil {
		t.Errorf("replayed round produced a result: %+v", result)
	}

	wantTrace := []string{"IsRoundMerged"}
	if diff := cmp.Diff(wantTrace, repo.Trace()); diff != "" {
		t.Errorf("call trace mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyRoundScoresSkipsOnConcurrentMerge(t *testing.T) {
	repo := NewFakeStandingsDB()
	repo.ReplaceStandingsFunc = func(ctx context.Context, round string, standings leaderboarddomain.Standings) error {
		return leaderboarddb.ErrRoundAlreadyMerged
	}

	svc := newTestService(repo, nil)
	result, err := svc.ApplyRoundScores(context.Background(), "GM2", leaderboarddomain.RoundScore{"alice": 1})
	if err != nil {
		t.Fatalf("ApplyRoundScores() error = %v", err)
	}
	if result.Success != nil || result.Failure != nil {
		t.Errorf("concurrently merged round produced a result: %+v", result)
	}
}

func TestApplyRoundScoresFailsOnMalformedRank(t *testing.T) {
	repo := NewFakeStandingsDB()
	repo.GetStandingsFunc = func(ctx context.Context) (leaderboarddomain.Standings, error) {
		return leaderboarddomain.Standings{
			"alice": {Curr: 5, Played: 2, Rank: "first"},
		}, nil
	}

	svc := newTestService(repo, nil)
	result, err := svc.ApplyRoundScores(context.Background(), "GM3", leaderboarddomain.RoundScore{"alice": 2})
	if err != nil {
		t.Fatalf("ApplyRoundScores() error = %v", err)
	}

	failure, ok := result.Failure.(*leaderboardevents.UpdateFailedPayload)
	if !ok {
		t.Fatalf("result.Failure = %T, want *UpdateFailedPayload", result.Failure)
	}
	if failure.Round != "GM3" {
		t.Errorf("failure.Round = %q, want GM3", failure.Round)
	}

	for _, step := range repo.Trace() {
		if step == "ReplaceStandings" {
			t.Fatal("standings were written despite merge failure")
		}
	}
}

func TestApplyRoundScoresPropagatesRepoError(t *testing.T) {
	repoErr := errors.New("connection refused")
	repo := NewFakeStandingsDB()
	repo.GetStandingsFunc = func(ctx context.Context) (leaderboarddomain.Standings, error) {
		return nil, repoErr
	}

	svc := newTestService(repo, nil)
	_, err := svc.ApplyRoundScores(context.Background(), "GM3", leaderboarddomain.RoundScore{"alice": 2})
	if !errors.Is(err, repoErr) {
		t.Errorf("ApplyRoundScores() error = %v, want wrapped %v", err, repoErr)
	}
}
