package player

import "context"

// Directory is the identity registry for competitors.
type Directory interface {
	List(ctx context.Context) ([]Player, error)
	// Create inserts a player with the normalized name. Duplicate names are
	// allowed; telling them apart is the caller's job.
	Create(ctx context.Context, name string) (*Player, error)
	Get(ctx context.Context, id string) (*Player, error)
	// SearchByPrefix returns every player whose normalized name starts with
	// prefix. Zero or several matches are not an error.
	SearchByPrefix(ctx context.Context, prefix string) ([]Player, error)
}
