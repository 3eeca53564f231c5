package notifier

import (
	"sync"

	"github.com/mauv0809/doubles-ladder/internal/ledger"
)

var _ Notifier = (*Mock)(nil)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies
	SendMatchResultFunc              func(result MatchResult, dryRun bool) error
	SendLeaderboardFunc              func(standings []ledger.Standing, dryRun bool) error
	FormatLeaderboardResponseFunc    func(standings []ledger.Standing) (any, error)
	FormatPlayerSummaryResponseFunc  func(summary *ledger.Summary) (any, error)
	FormatPlayerNotFoundResponseFunc func(query string) (any, error)

	// Call records
	SendMatchResultCalls      []MatchResult
	SendLeaderboardCalls      [][]ledger.Standing
	FormatLeaderboardCalls    [][]ledger.Standing
	FormatPlayerNotFoundCalls []string
	LastPlayerSummaryResponse any
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchResultCalls = nil
	m.SendLeaderboardCalls = nil
	m.FormatLeaderboardCalls = nil
	m.FormatPlayerNotFoundCalls = nil
	m.LastPlayerSummaryResponse = nil
}

func (m *Mock) SendMatchResult(result MatchResult, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchResultCalls = append(m.SendMatchResultCalls, result)
	if m.SendMatchResultFunc != nil {
		return m.SendMatchResultFunc(result, dryRun)
	}
	return nil
}

func (m *Mock) SendLeaderboard(standings []ledger.Standing, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendLeaderboardCalls = append(m.SendLeaderboardCalls, standings)
	if m.SendLeaderboardFunc != nil {
		return m.SendLeaderboardFunc(standings, dryRun)
	}
	return nil
}

func (m *Mock) FormatLeaderboardResponse(standings []ledger.Standing) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FormatLeaderboardCalls = append(m.FormatLeaderboardCalls, standings)
	if m.FormatLeaderboardResponseFunc != nil {
		return m.FormatLeaderboardResponseFunc(standings)
	}
	return "formatted_leaderboard", nil
}

func (m *Mock) FormatPlayerSummaryResponse(summary *ledger.Summary) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatPlayerSummaryResponseFunc != nil {
		resp, err := m.FormatPlayerSummaryResponseFunc(summary)
		m.LastPlayerSummaryResponse = resp
		return resp, err
	}
	return "formatted_player_summary", nil
}

func (m *Mock) FormatPlayerNotFoundResponse(query string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FormatPlayerNotFoundCalls = append(m.FormatPlayerNotFoundCalls, query)
	if m.FormatPlayerNotFoundResponseFunc != nil {
		return m.FormatPlayerNotFoundResponseFunc(query)
	}
	return "formatted_player_not_found", nil
}
