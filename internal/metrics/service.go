package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		MatchesRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ladder_matches_recorded_total",
			Help: "The total number of matches recorded, counting a doubled match once.",
		}),
		GamesRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ladder_games_recorded_total",
			Help: "The total number of game rows committed together with their ratings.",
		}),
		RecordFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ladder_record_failures_total",
			Help: "The total number of match recordings that were rejected or rolled back.",
		}),
		RecordDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ladder_record_duration_seconds",
			Help:    "The duration of recording a match, including all of its passes.",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		RatedPlayers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ladder_rated_players",
			Help: "The number of players on the most recently computed leaderboard.",
		}),
		EventPublishFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ladder_event_publish_failures_total",
			Help: "The total number of match events that could not be published.",
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ladder_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ladder_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ladder_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.MatchesRecorded,
		s.GamesRecorded,
		s.RecordFailures,
		s.RecordDuration,
		s.RatedPlayers,
		s.EventPublishFailed,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncMatchesRecorded() {
	s.MatchesRecorded.Inc()
}

func (s *Service) IncGamesRecorded() {
	s.GamesRecorded.Inc()
}

func (s *Service) IncRecordFailures() {
	s.RecordFailures.Inc()
}

func (s *Service) ObserveRecordDuration(duration float64) {
	s.RecordDuration.Observe(duration)
}

func (s *Service) SetRatedPlayers(count int) {
	s.RatedPlayers.Set(float64(count))
}

func (s *Service) IncEventPublishFailures() {
	s.EventPublishFailed.Inc()
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
