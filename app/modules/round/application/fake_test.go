package roundservice

import (
	"context"
	"time"

	rounddomain "github.com/shepherdjay/gwg-bot/app/modules/round/domain"
	rounddb "github.com/shepherdjay/gwg-bot/app/modules/round/infrastructure/repositories"
	"github.com/shepherdjay/gwg-bot/internal/sheets"
)

// FakeRoundDB is a programmable stub for the rounddb.RoundDB interface.
type FakeRoundDB struct {
	trace []string

	IsRoundScoredFunc func(ctx context.Context, round string) (bool, error)
	RecordRoundFunc   func(ctx context.Context, result rounddomain.RoundResult, cutoff time.Time) error
	ListEntriesFunc   func(ctx context.Context, round string) ([]rounddb.EntryRecord, error)

	// LastRecorded captures the result passed to the most recent RecordRound
	// call.
	LastRecorded *rounddomain.RoundResult
	LastCutoff   time.Time
}

func NewFakeRoundDB() *FakeRoundDB {
	return &FakeRoundDB{trace: []string{}}
}

func (f *FakeRoundDB) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeRoundDB) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeRoundDB) IsRoundScored(ctx context.Context, round string) (bool, error) {
	f.record("IsRoundScored")
	if f.IsRoundScoredFunc != nil {
		return f.IsRoundScoredFunc(ctx, round)
	}
	return false, nil
}

func (f *FakeRoundDB) RecordRound(ctx context.Context, result rounddomain.RoundResult, cutoff time.Time) error {
	f.record("RecordRound")
	f.LastRecorded = &result
	f.LastCutoff = cutoff
	if f.RecordRoundFunc != nil {
		return f.RecordRoundFunc(ctx, result, cutoff)
	}
	return nil
}

func (f *FakeRoundDB) ListEntries(ctx context.Context, round string) ([]rounddb.EntryRecord, error) {
	f.record("ListEntries")
	if f.ListEntriesFunc != nil {
		return f.ListEntriesFunc(ctx, round)
	}
	return nil, nil
}

var _ rounddb.RoundDB = (*FakeRoundDB)(nil)

// FakeRecordStore is a programmable stub for the RecordStore interface.
type FakeRecordStore struct {
	trace []string

	ListRoundsFunc        func(ctx context.Context) ([]sheets.RoundSheet, error)
	EntriesFunc           func(ctx context.Context, title string) ([]sheets.EntryRow, error)
	WriteRoundHistoryFunc func(ctx context.Context, round string, history sheets.RoundHistory) error
	MarkWrittenFunc       func(ctx context.Context, sheet sheets.RoundSheet) error

	LastHistory sheets.RoundHistory
}

func NewFakeRecordStore() *FakeRecordStore {
	return &FakeRecordStore{trace: []string{}}
}

func (f *FakeRecordStore) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeRecordStore) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeRecordStore) ListRounds(ctx context.Context) ([]sheets.RoundSheet, error) {
	f.record("ListRounds")
	if f.ListRoundsFunc != nil {
		return f.ListRoundsFunc(ctx)
	}
	return nil, nil
}

func (f *FakeRecordStore) Entries(ctx context.Context, title string) ([]sheets.EntryRow, error) {
	f.record("Entries")
	if f.EntriesFunc != nil {
		return f.EntriesFunc(ctx, title)
	}
	return nil, nil
}

func (f *FakeRecordStore) WriteRoundHistory(ctx context.Context, round string, history sheets.RoundHistory) error {
	f.record("WriteRoundHistory")
	f.LastHistory = history
	if f.WriteRoundHistoryFunc != nil {
		return f.WriteRoundHistoryFunc(ctx, round, history)
	}
	return nil
}

func (f *FakeRecordStore) MarkWritten(ctx context.Context, sheet sheets.RoundSheet) error {
	f.record("MarkWritten")
	if f.MarkWrittenFunc != nil {
		return f.MarkWrittenFunc(ctx, sheet)
	}
	return nil
}

var _ RecordStore = (*FakeRecordStore)(nil)

// FakeSchedule is a programmable stub for the Schedule interface.
type FakeSchedule struct {
	StartTimeFunc func(ctx context.Context, date time.Time) (time.Time, error)
}

func (f *FakeSchedule) StartTime(ctx context.Context, date time.Time) (time.Time, error) {
	if f.StartTimeFunc != nil {
		return f.StartTimeFunc(ctx, date)
	}
	return date, nil
}

var _ Schedule = (*FakeSchedule)(nil)
