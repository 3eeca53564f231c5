package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                 sync.Mutex
	matchesRecorded    int
	gamesRecorded      int
	recordFailures     int
	recordDurations    []float64
	ratedPlayers       int
	eventPublishFailed int
	slackNotifSent     int
	slackNotifFailed   int
	startupTime        float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		recordDurations: make([]float64, 0),
	}
}

func (m *Mock) IncMatchesRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesRecorded++
}

func (m *Mock) IncGamesRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gamesRecorded++
}

func (m *Mock) IncRecordFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recordFailures++
}

func (m *Mock) ObserveRecordDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recordDurations = append(m.recordDurations, duration)
}

func (m *Mock) SetRatedPlayers(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ratedPlayers = count
}

func (m *Mock) IncEventPublishFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventPublishFailed++
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// MatchesRecorded returns the number of times IncMatchesRecorded was called.
func (m *Mock) MatchesRecorded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesRecorded
}

// GamesRecorded returns the number of times IncGamesRecorded was called.
func (m *Mock) GamesRecorded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gamesRecorded
}

// RecordFailures returns the number of times IncRecordFailures was called.
func (m *Mock) RecordFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recordFailures
}

// RecordDurations returns every observed recording duration.
func (m *Mock) RecordDurations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.recordDurations...)
}

// RatedPlayers returns the last value passed to SetRatedPlayers.
func (m *Mock) RatedPlayers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ratedPlayers
}

// EventPublishFailures returns the number of times IncEventPublishFailures was called.
func (m *Mock) EventPublishFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eventPublishFailed
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
