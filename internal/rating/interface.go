package rating

import "context"

// Store is the append-only history of rating snapshots. The current rating of
// a player is the snapshot with the greatest id.
type Store interface {
	// Latest returns the player's current snapshot, or Prior when the player
	// has none.
	Latest(ctx context.Context, playerID string) (Snapshot, error)
	// LatestAll returns the current snapshot of every rated player.
	LatestAll(ctx context.Context) ([]Snapshot, error)
	// Insert stores one snapshot per entry for gameID, in entry order.
	Insert(ctx context.Context, gameID string, entries []Entry) ([]Snapshot, error)
	ListForGame(ctx context.Context, gameID string) ([]Snapshot, error)
	ListForPlayer(ctx context.Context, playerID string) ([]Snapshot, error)
}
