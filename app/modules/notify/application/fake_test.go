package notifyservice

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/shepherdjay/gwg-bot/internal/observability"
	"github.com/shepherdjay/gwg-bot/internal/schedule"
	"github.com/shepherdjay/gwg-bot/internal/sheets"
)

type sentMessage struct {
	Recipient string
	Subject   string
	Body      string
}

// FakeSocial is a programmable stub for the Social interface.
type FakeSocial struct {
	SubmitPostFunc func(ctx context.Context, subreddit, title, body string) (string, error)
	CommentFunc    func(ctx context.Context, parentFullname, body string) error
	FindThreadFunc func(ctx context.Context, subreddit, titleFragment string) (string, bool, error)
	SendMessageFunc func(ctx context.Context, recipient, subject, body string) error

	Posts    []string
	Comments []string
	Messages []sentMessage
}

func (f *FakeSocial) SubmitPost(ctx context.Context, subreddit, title, body string) (string, error) {
	f.Posts = append(f.Posts, title)
	if f.SubmitPostFunc != nil {
		return f.SubmitPostFunc(ctx, subreddit, title, body)
	}
	return "t3_new", nil
}

func (f *FakeSocial) Comment(ctx context.Context, parentFullname, body string) error {
	f.Comments = append(f.Comments, body)
	if f.CommentFunc != nil {
		return f.CommentFunc(ctx, parentFullname, body)
	}
	return nil
}

func (f *FakeSocial) SendMessage(ctx context.Context, recipient, subject, body string) error {
	f.Messages = append(f.Messages, sentMessage{Recipient: recipient, Subject: subject, Body: body})
	if f.SendMessageFunc != nil {
		return f.SendMessageFunc(ctx, recipient, subject, body)
	}
	return nil
}

func (f *FakeSocial) FindThread(ctx context.Context, subreddit, titleFragment string) (string, bool, error) {
	if f.FindThreadFunc != nil {
		return f.FindThreadFunc(ctx, subreddit, titleFragment)
	}
	return "", false, nil
}

var _ Social = (*FakeSocial)(nil)

// FakeGameSchedule is a programmable stub for the GameSchedule interface.
type FakeGameSchedule struct {
	GameOnFunc func(ctx context.Context, date time.Time) (schedule.Game, error)
}

func (f *FakeGameSchedule) GameOn(ctx context.Context, date time.Time) (schedule.Game, error) {
	if f.GameOnFunc != nil {
		return f.GameOnFunc(ctx, date)
	}
	return schedule.Game{}, schedule.ErrNoGame
}

var _ GameSchedule = (*FakeGameSchedule)(nil)

// FakeRegistry is a programmable stub for the Registry interface.
type FakeRegistry struct {
	ListRoundsFunc func(ctx context.Context) ([]sheets.RoundSheet, error)
}

func (f *FakeRegistry) ListRounds(ctx context.Context) ([]sheets.RoundSheet, error) {
	if f.ListRoundsFunc != nil {
		return f.ListRoundsFunc(ctx)
	}
	return nil, nil
}

var _ Registry = (*FakeRegistry)(nil)

func newTestService(social *FakeSocial, sched *FakeGameSchedule, registry *FakeRegistry) *NotifyService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := Config{
		Subreddit:      "canucks",
		LeaderboardURL: "https://sheets.example/leaderboard",
		FormURL:        "https://forms.example/gwg",
		Owners:         []string{"owner1", "owner2"},
	}
	return NewNotifyService(social, sched, registry, cfg, logger, observability.NewMetrics())
}
