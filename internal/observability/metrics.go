package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every Prometheus collector the bot records. One instance is
// shared by all modules; the registry it was built against is what the HTTP
// server exposes on /metrics.
type Metrics struct {
	Registry *prometheus.Registry

	RoundsScored     prometheus.Counter
	EntriesScored    prometheus.Counter
	LateEntries      prometheus.Counter
	DuplicatePlayers prometheus.Counter

	MergesApplied prometheus.Counter
	MergesSkipped prometheus.Counter
	MergesFailed  prometheus.Counter

	NotifyAttempts *prometheus.CounterVec
	NotifyFailures *prometheus.CounterVec

	GameDayPosts       prometheus.Counter
	StandingsAnnounced prometheus.Counter
	OwnerAlerts        prometheus.Counter

	ScheduleCacheHits   prometheus.Counter
	ScheduleCacheMisses prometheus.Counter

	OperationDuration *prometheus.HistogramVec
	DBQueryDuration   *prometheus.HistogramVec
}

// NewMetrics registers all collectors against a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		RoundsScored: factory.NewCounter(prometheus.CounterOpts{
			Name: "gwg_rounds_scored_total",
			Help: "Rounds scored against their answer key.",
		}),
		EntriesScored: factory.NewCounter(prometheus.CounterOpts{
			Name: "gwg_entries_scored_total",
			Help: "Player entries scored, late entries included.",
		}),
		LateEntries: factory.NewCounter(prometheus.CounterOpts{
			Name: "gwg_late_entries_total",
			Help: "Entries submitted after the round cutoff.",
		}),
		DuplicatePlayers: factory.NewCounter(prometheus.CounterOpts{
			Name: "gwg_duplicate_players_total",
			Help: "Rounds entries whose normalized player collided with another entry.",
		}),
		MergesApplied: factory.NewCounter(prometheus.CounterOpts{
			Name: "gwg_leaderboard_merges_applied_total",
			Help: "Round scores folded into the standings.",
		}),
		MergesSkipped: factory.NewCounter(prometheus.CounterOpts{
			Name: "gwg_leaderboard_merges_skipped_total",
			Help: "Merge requests skipped because the round was already merged.",
		}),
		MergesFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "gwg_leaderboard_merges_failed_total",
			Help: "Merges aborted before any standings write.",
		}),
		NotifyAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gwg_notify_attempts_total",
			Help: "Social-platform calls attempted.",
		}, []string{"kind"}),
		NotifyFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "gwg_notify_failures_total",
			Help: "Social-platform calls that exhausted their retries.",
		}, []string{"kind"}),
		GameDayPosts: factory.NewCounter(prometheus.CounterOpts{
			Name: "gwg_gameday_posts_total",
			Help: "Contest posts created for game days.",
		}),
		StandingsAnnounced: factory.NewCounter(prometheus.CounterOpts{
			Name: "gwg_standings_announced_total",
			Help: "Standings announcements commented under discussion threads.",
		}),
		OwnerAlerts: factory.NewCounter(prometheus.CounterOpts{
			Name: "gwg_owner_alerts_total",
			Help: "Operational alert messages sent to the bot owners.",
		}),
		ScheduleCacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "gwg_schedule_cache_hits_total",
			Help: "Schedule lookups served from cache.",
		}),
		ScheduleCacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "gwg_schedule_cache_misses_total",
			Help: "Schedule lookups that had to hit the upstream API.",
		}),
		OperationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gwg_operation_duration_seconds",
			Help:    "Duration of service operations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gwg_db_query_duration_seconds",
			Help:    "Duration of repository calls.",
			Buckets: prometheus.DefBuckets,
		}, []string{"query"}),
	}
}
