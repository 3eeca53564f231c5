package ledger

import (
	"context"

	"github.com/mauv0809/doubles-ladder/internal/game"
	"github.com/mauv0809/doubles-ladder/internal/rating"
)

// Service is the application boundary for recording results and reading the
// ladder. Transports depend on this rather than on the stores.
type Service interface {
	// RecordMatch rates and stores a decided match. A doubled match is
	// recorded as two consecutive games, the second one rated on top of the
	// first.
	RecordMatch(ctx context.Context, winners, losers game.Pair, doubled bool) ([]rating.Snapshot, error)
	Leaderboard(ctx context.Context) ([]Standing, error)
	PlayerSummary(ctx context.Context, playerID string) (*Summary, error)
	Predict(ctx context.Context, teamA, teamB game.Pair) (*Prediction, error)
}
