package notifyservice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shepherdjay/gwg-bot/internal/observability"
)

func counterValue(t *testing.T, m *observability.Metrics, name string) float64 {
	t.Helper()
	families, err := m.Registry.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		var total float64
		for _, metric := range family.GetMetric() {
			total += metric.GetCounter().GetValue()
		}
		return total
	}
	return 0
}

func TestGameDayPostIsCounted(t *testing.T) {
	social := &FakeSocial{}
	svc := newTestService(social, flamesAtCanucks(), registryWithGM7())

	require.NoError(t, svc.EnsureGameDayPost(context.Background(), gameDay))
	assert.Equal(t, 1.0, counterValue(t, svc.metrics, "gwg_gameday_posts_total"))
}

func TestExistingGameDayPostIsNotCounted(t *testing.T) {
	social := &FakeSocial{
		FindThreadFunc: func(ctx context.Context, subreddit, fragment string) (string, bool, error) {
			return "t3_existing", fragment == "gwg challenge #7", nil
		},
	}
	svc := newTestService(social, flamesAtCanucks(), registryWithGM7())

	require.NoError(t, svc.EnsureGameDayPost(context.Background(), gameDay))
	assert.Equal(t, 0.0, counterValue(t, svc.metrics, "gwg_gameday_posts_total"))
}

func TestStandingsAnnouncementIsCounted(t *testing.T) {
	social := &FakeSocial{
		FindThreadFunc: func(ctx context.Context, subreddit, fragment string) (string, bool, error) {
			return "t3_postgame", fragment == "post game", nil
		},
	}
	svc := newTestService(social, &FakeGameSchedule{}, &FakeRegistry{})

	require.NoError(t, svc.AnnounceStandings(context.Background(), "GM7", 42, 7))
	assert.Equal(t, 1.0, counterValue(t, svc.metrics, "gwg_standings_announced_total"))
}

func TestOwnerAlertsAreCounted(t *testing.T) {
	social := &FakeSocial{}
	svc := newTestService(social, flamesAtCanucks(), &FakeRegistry{})

	require.NoError(t, svc.EnsureGameDayPost(context.Background(), gameDay))
	assert.Equal(t, 2.0, counterValue(t, svc.metrics, "gwg_owner_alerts_total"))
}
