package player

import (
	"context"
	"sync"
)

// MockDirectory is a mock implementation of the Directory interface for testing.
// It is safe for concurrent use.
type MockDirectory struct {
	mu sync.Mutex

	ListFunc           func(ctx context.Context) ([]Player, error)
	CreateFunc         func(ctx context.Context, name string) (*Player, error)
	GetFunc            func(ctx context.Context, id string) (*Player, error)
	SearchByPrefixFunc func(ctx context.Context, prefix string) ([]Player, error)

	CreateCalls         []string
	SearchByPrefixCalls []string
}

// NewMock creates a new mock instance.
func NewMock() *MockDirectory {
	return &MockDirectory{}
}

func (m *MockDirectory) List(ctx context.Context) ([]Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []Player{}, nil
}

func (m *MockDirectory) Create(ctx context.Context, name string) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls = append(m.CreateCalls, name)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, name)
	}
	return &Player{ID: "mock-" + NormalizeName(name), Name: NormalizeName(name)}, nil
}

func (m *MockDirectory) Get(ctx context.Context, id string) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, ErrNotFound
}

func (m *MockDirectory) SearchByPrefix(ctx context.Context, prefix string) ([]Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SearchByPrefixCalls = append(m.SearchByPrefixCalls, prefix)
	if m.SearchByPrefixFunc != nil {
		return m.SearchByPrefixFunc(ctx, prefix)
	}
	return []Player{}, nil
}
