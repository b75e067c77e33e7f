package notifyservice

import (
	"context"
	"time"

	roundevents "github.com/shepherdjay/gwg-bot/app/modules/round/events"
	"github.com/shepherdjay/gwg-bot/internal/schedule"
	"github.com/shepherdjay/gwg-bot/internal/sheets"
)

// Service is the notify module's application surface.
type Service interface {
	// AnnounceStandings comments the refreshed standings on the game-day
	// discussion thread.
	AnnounceStandings(ctx context.Context, round string, players, totalRounds int) error

	// NotifyLateEntrants messages everyone who missed the cutoff.
	NotifyLateEntrants(ctx context.Context, round string, cutoff time.Time, entrants []roundevents.LateEntrant) error

	// EnsureGameDayPost creates the contest post for a game day, or alerts
	// the owners when no contest form exists for it.
	EnsureGameDayPost(ctx context.Context, date time.Time) error
}

// Social is the slice of the platform client the notify service uses.
type Social interface {
	SubmitPost(ctx context.Context, subreddit, title, body string) (string, error)
	Comment(ctx context.Context, parentFullname, body string) error
	SendMessage(ctx context.Context, recipient, subject, body string) error
	FindThread(ctx context.Context, subreddit, titleFragment string) (string, bool, error)
}

// GameSchedule reports the game scheduled on a date, if any.
type GameSchedule interface {
	GameOn(ctx context.Context, date time.Time) (schedule.Game, error)
}

// Registry is the slice of the record store the notify service reads.
type Registry interface {
	ListRounds(ctx context.Context) ([]sheets.RoundSheet, error)
}
