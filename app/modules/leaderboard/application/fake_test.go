package leaderboardservice

import (
	"context"

	leaderboarddomain "github.com/shepherdjay/gwg-bot/app/modules/leaderboard/domain"
	leaderboarddb "github.com/shepherdjay/gwg-bot/app/modules/leaderboard/infrastructure/repositories"
)

// FakeStandingsDB is a programmable stub for the leaderboarddb.StandingsDB
// interface. Every call is recorded in the trace; behavior is overridden per
// test through the Func fields.
type FakeStandingsDB struct {
	trace []string

	GetStandingsFunc     func(ctx context.Context) (leaderboarddomain.Standings, error)
	ListRowsFunc         func(ctx context.Context) ([]leaderboarddb.StandingsRecord, error)
	ReplaceStandingsFunc func(ctx context.Context, round string, standings leaderboarddomain.Standings) error
	IsRoundMergedFunc    func(ctx context.Context, round string) (bool, error)
	MergedRoundCountFunc func(ctx context.Context) (int, error)

	// LastReplaced captures the standings passed to the most recent
	// ReplaceStandings call.
	LastReplaced leaderboarddomain.Standings
}

func NewFakeStandingsDB() *FakeStandingsDB {
	return &FakeStandingsDB{trace: []string{}}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeStandingsDB) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeStandingsDB) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeStandingsDB) GetStandings(ctx context.Context) (leaderboarddomain.Standings, error) {
	f.record("GetStandings")
	if f.GetStandingsFunc != nil {
		return f.GetStandingsFunc(ctx)
	}
	return leaderboarddomain.Standings{}, nil
}

func (f *FakeStandingsDB) ListRows(ctx context.Context) ([]leaderboarddb.StandingsRecord, error) {
	f.record("ListRows")
	if f.ListRowsFunc != nil {
		return f.ListRowsFunc(ctx)
	}
	return nil, nil
}

func (f *FakeStandingsDB) ReplaceStandings(ctx context.Context, round string, standings leaderboarddomain.Standings) error {
	f.record("ReplaceStandings")
	f.LastReplaced = standings
	if f.ReplaceStandingsFunc != nil {
		return f.ReplaceStandingsFunc(ctx, round, standings)
	}
	return nil
}

func (f *FakeStandingsDB) IsRoundMerged(ctx context.Context, round string) (bool, error) {
	f.record("IsRoundMerged")
	if f.IsRoundMergedFunc != nil {
		return f.IsRoundMergedFunc(ctx, round)
	}
	return false, nil
}

func (f *FakeStandingsDB) MergedRoundCount(ctx context.Context) (int, error) {
	f.record("MergedRoundCount")
	if f.MergedRoundCountFunc != nil {
		return f.MergedRoundCountFunc(ctx)
	}
	return 0, nil
}

var _ leaderboarddb.StandingsDB = (*FakeStandingsDB)(nil)
