package notifyservice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shepherdjay/gwg-bot/internal/schedule"
	"github.com/shepherdjay/gwg-bot/internal/sheets"
)

var gameDay = time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)

func flamesAtCanucks() *FakeGameSchedule {
	return &FakeGameSchedule{
		GameOnFunc: func(ctx context.Context, date time.Time) (schedule.Game, error) {
			return schedule.Game{
				GamePk: 2026020123,
				Away:   "Calgary Flames",
				Home:   "Vancouver Canucks",
				Start:  time.Date(2026, 1, 2, 19, 0, 0, 0, time.UTC),
			}, nil
		},
	}
}

func registryWithGM7() *FakeRegistry {
	return &FakeRegistry{
		ListRoundsFunc: func(ctx context.Context) ([]sheets.RoundSheet, error) {
			return []sheets.RoundSheet{{
				Round: "GM7",
				Title: "GM 7 (Responses)",
				Start: time.Date(2026, 1, 2, 19, 0, 0, 0, time.UTC),
				Ready: false,
			}}, nil
		},
	}
}

func TestEnsureGameDayPostCreatesContestPost(t *testing.T) {
	social := &FakeSocial{}
	svc := newTestService(social, flamesAtCanucks(), registryWithGM7())

	require.NoError(t, svc.EnsureGameDayPost(context.Background(), gameDay))
	require.Len(t, social.Posts, 1)
	assert.Equal(t, "Calgary Flames @ Vancouver Canucks Jan 2, 2026 GWG Challenge #7", social.Posts[0])
	assert.Empty(t, social.Messages)
}

func TestEnsureGameDayPostSkipsExistingPost(t *testing.T) {
	social := &FakeSocial{
		FindThreadFunc: func(ctx context.Context, subreddit, fragment string) (string, bool, error) {
			return "t3_existing", fragment == "gwg challenge #7", nil
		},
	}
	svc := newTestService(social, flamesAtCanucks(), registryWithGM7())

	require.NoError(t, svc.EnsureGameDayPost(context.Background(), gameDay))
	assert.Empty(t, social.Posts)
}

func TestEnsureGameDayPostAlertsOwnersWhenNoForm(t *testing.T) {
	social := &FakeSocial{}
	svc := newTestService(social, flamesAtCanucks(), &FakeRegistry{})

	require.NoError(t, svc.EnsureGameDayPost(context.Background(), gameDay))
	assert.Empty(t, social.Posts)
	require.Len(t, social.Messages, 2)
	assert.Equal(t, "owner1", social.Messages[0].Recipient)
	assert.Contains(t, social.Messages[0].Body, "no contest form")
}

func TestEnsureGameDayPostNoGameIsQuiet(t *testing.T) {
	social := &FakeSocial{}
	svc := newTestService(social, &FakeGameSchedule{}, registryWithGM7())

	require.NoError(t, svc.EnsureGameDayPost(context.Background(), gameDay))
	assert.Empty(t, social.Posts)
	assert.Empty(t, social.Messages)
}
