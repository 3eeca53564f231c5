package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncMatchesRecorded()
	IncGamesRecorded()
	IncRecordFailures()
	ObserveRecordDuration(duration float64)
	SetRatedPlayers(count int)
	IncEventPublishFailures()
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}
