package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Every series is exported as idle_tracker_<subsystem>_<name>
const (
	namespace = "idle_tracker"

	subsystemHTTP    = "http"
	subsystemEvents  = "events"
	subsystemTracker = "tracker"
	subsystemStorage = "storage"
)

// httpLatencyBuckets span 1ms to 10s
var httpLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

func counterVec(subsystem, name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: subsystem, Name: name, Help: help,
	}, labels)
}

func gaugeVec(subsystem, name, help string, labels ...string) *prometheus.GaugeVec {
	return promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace, Subsystem: subsystem, Name: name, Help: help,
	}, labels)
}

// HTTP
var (
	HTTPRequestsTotal = counterVec(subsystemHTTP, "requests_total",
		"HTTP requests by method, route pattern and status", LabelMethod, LabelPath, LabelStatus)

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystemHTTP,
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency",
		Buckets:   httpLatencyBuckets,
	}, []string{LabelMethod, LabelPath})

	HTTPRequestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystemHTTP,
		Name:      "requests_in_flight",
		Help:      "HTTP requests currently being served",
	})
)

// Event bus
var (
	EventsPublished    = counterVec(subsystemEvents, "published_total", "Events seen on the bus", LabelType)
	EventHandlerErrors = counterVec(subsystemEvents, "handler_errors_total", "Event handler failures", LabelType)
)

// Tracker
var (
	ActionCompletions = counterVec(subsystemTracker, "action_completions_total", "Completed action cycles", LabelSkill, LabelAction)
	XPGained          = counterVec(subsystemTracker, "xp_gained_total", "Experience credited", LabelSkill, LabelSource)
	CoinsEarned       = counterVec(subsystemTracker, "coins_earned_total", "Coins earned from actions and tasks", LabelSource)
	LevelUps          = counterVec(subsystemTracker, "level_ups_total", "Level ups", LabelSkill)
	TasksCompleted    = counterVec(subsystemTracker, "tasks_completed_total", "One-off tasks claimed", LabelSkill)
	TitlesPurchased   = counterVec(subsystemTracker, "titles_purchased_total", "Titles bought in the shop", LabelTitle)
	ActiveAction      = gaugeVec(subsystemTracker, "active_action", "1 for the action currently being trained", LabelSkill, LabelAction)
	SkillLevel        = gaugeVec(subsystemTracker, "skill_level", "Latest level reached per skill", LabelSkill)

	CoinsSpent = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystemTracker,
		Name:      "coins_spent_total",
		Help:      "Coins spent in the shop",
	})
)

// SaveFailures counts saves the store could not write
var SaveFailures = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: subsystemStorage,
	Name:      "save_failures_total",
	Help:      "Failed save writes",
})
