package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	MatchesRecorded    prometheus.Counter
	GamesRecorded      prometheus.Counter
	RecordFailures     prometheus.Counter
	RecordDuration     prometheus.Histogram
	RatedPlayers       prometheus.Gauge
	EventPublishFailed prometheus.Counter
	SlackNotifSent     prometheus.Counter
	SlackNotifFailed   prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}
