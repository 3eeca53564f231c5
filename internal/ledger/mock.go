package ledger

import (
	"context"
	"sync"

	"github.com/mauv0809/doubles-ladder/internal/game"
	"github.com/mauv0809/doubles-ladder/internal/rating"
)

// MockService is a mock implementation of the Service interface for testing.
// It is safe for concurrent use.
type MockService struct {
	mu sync.Mutex

	RecordMatchFunc   func(ctx context.Context, winners, losers game.Pair, doubled bool) ([]rating.Snapshot, error)
	LeaderboardFunc   func(ctx context.Context) ([]Standing, error)
	PlayerSummaryFunc func(ctx context.Context, playerID string) (*Summary, error)
	PredictFunc       func(ctx context.Context, teamA, teamB game.Pair) (*Prediction, error)

	RecordMatchCalls []RecordMatchCall
}

// RecordMatchCall holds the arguments for a call to RecordMatch.
type RecordMatchCall struct {
	Winners game.Pair
	Losers  game.Pair
	Doubled bool
}

// NewMock creates a new mock instance.
func NewMock() *MockService {
	return &MockService{}
}

func (m *MockService) RecordMatch(ctx context.Context, winners, losers game.Pair, doubled bool) ([]rating.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordMatchCalls = append(m.RecordMatchCalls, RecordMatchCall{Winners: winners, Losers: losers, Doubled: doubled})
	if m.RecordMatchFunc != nil {
		return m.RecordMatchFunc(ctx, winners, losers, doubled)
	}
	return []rating.Snapshot{}, nil
}

func (m *MockService) Leaderboard(ctx context.Context) ([]Standing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LeaderboardFunc != nil {
		return m.LeaderboardFunc(ctx)
	}
	return []Standing{}, nil
}

func (m *MockService) PlayerSummary(ctx context.Context, playerID string) (*Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PlayerSummaryFunc != nil {
		return m.PlayerSummaryFunc(ctx, playerID)
	}
	return nil, ErrNotFound
}

func (m *MockService) Predict(ctx context.Context, teamA, teamB game.Pair) (*Prediction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PredictFunc != nil {
		return m.PredictFunc(ctx, teamA, teamB)
	}
	return &Prediction{TeamA: teamA, TeamB: teamB, ProbabilityA: 0.5, ProbabilityB: 0.5}, nil
}
