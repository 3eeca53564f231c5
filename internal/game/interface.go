package game

import (
	"context"
	"time"
)

// Log is the append-only record of completed matches.
type Log interface {
	// Append records a game. A zero at means now.
	Append(ctx context.Context, winners, losers Pair, at time.Time) (*Game, error)
	Get(ctx context.Context, id string) (*Game, error)
	ListAll(ctx context.Context) ([]Game, error)
	ListForPlayer(ctx context.Context, playerID string, filter Filter) ([]Game, error)
	CountForPlayer(ctx context.Context, playerID string, filter Filter) (int, error)
	// Records returns the win/loss tally of every player with at least one
	// game, keyed by player id, in a single pass over the log.
	Records(ctx context.Context) (map[string]Record, error)
}
