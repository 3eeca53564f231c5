package game

import (
	"context"
	"sync"
	"time"
)

// MockLog is a mock implementation of the Log interface for testing.
// It is safe for concurrent use.
type MockLog struct {
	mu sync.Mutex

	AppendFunc         func(ctx context.Context, winners, losers Pair, at time.Time) (*Game, error)
	GetFunc            func(ctx context.Context, id string) (*Game, error)
	ListAllFunc        func(ctx context.Context) ([]Game, error)
	ListForPlayerFunc  func(ctx context.Context, playerID string, filter Filter) ([]Game, error)
	CountForPlayerFunc func(ctx context.Context, playerID string, filter Filter) (int, error)
	RecordsFunc        func(ctx context.Context) (map[string]Record, error)

	AppendCalls []struct {
		Winners, Losers Pair
		At              time.Time
	}
}

// NewMock creates a new mock instance.
func NewMock() *MockLog {
	return &MockLog{}
}

func (m *MockLog) Append(ctx context.Context, winners, losers Pair, at time.Time) (*Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AppendCalls = append(m.AppendCalls, struct {
		Winners, Losers Pair
		At              time.Time
	}{winners, losers, at})
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, winners, losers, at)
	}
	return &Game{ID: "mock-game", Winners: winners, Losers: losers, Date: at}, nil
}

func (m *MockLog) Get(ctx context.Context, id string) (*Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, ErrNotFound
}

func (m *MockLog) ListAll(ctx context.Context) ([]Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return []Game{}, nil
}

func (m *MockLog) ListForPlayer(ctx context.Context, playerID string, filter Filter) ([]Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListForPlayerFunc != nil {
		return m.ListForPlayerFunc(ctx, playerID, filter)
	}
	return []Game{}, nil
}

func (m *MockLog) CountForPlayer(ctx context.Context, playerID string, filter Filter) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CountForPlayerFunc != nil {
		return m.CountForPlayerFunc(ctx, playerID, filter)
	}
	return 0, nil
}

func (m *MockLog) Records(ctx context.Context) (map[string]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RecordsFunc != nil {
		return m.RecordsFunc(ctx)
	}
	return map[string]Record{}, nil
}
