package skill

import "sync"

// Mock is a mock implementation of the Engine interface for testing.
// It is safe for concurrent use. Without a RateFunc it returns its inputs.
type Mock struct {
	mu sync.Mutex

	RateFunc           func(a, b Team, winner Side) (Team, Team, error)
	WinProbabilityFunc func(a, b Team) (float64, error)

	RateCalls []RateCall
}

// RateCall holds the arguments for a call to Rate.
type RateCall struct {
	A, B   Team
	Winner Side
}

// NewMock creates a new mock engine.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Rate(a, b Team, winner Side) (Team, Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RateCalls = append(m.RateCalls, RateCall{A: a, B: b, Winner: winner})
	if m.RateFunc != nil {
		return m.RateFunc(a, b, winner)
	}
	return a, b, nil
}

func (m *Mock) WinProbability(a, b Team) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WinProbabilityFunc != nil {
		return m.WinProbabilityFunc(a, b)
	}
	return 0.5, nil
}
