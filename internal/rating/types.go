package rating

import (
	"errors"

	"github.com/mauv0809/doubles-ladder/internal/database"
	"github.com/mauv0809/doubles-ladder/internal/skill"
)

var ErrInvalidRating = errors.New("sigma must be positive and finite")

// Snapshot is one immutable belief about a player's skill, produced by a game.
// The prior snapshot has ID 0 and no GameID and is never stored.
type Snapshot struct {
	ID       int64   `json:"id" msgpack:"id"`
	GameID   string  `json:"game_id,omitempty" msgpack:"game_id"`
	PlayerID string  `json:"player_id" msgpack:"player_id"`
	Mu       float64 `json:"mu" msgpack:"mu"`
	Sigma    float64 `json:"sigma" msgpack:"sigma"`
}

// Rating returns the belief held by the snapshot.
func (s Snapshot) Rating() skill.Rating {
	return skill.Rating{Mu: s.Mu, Sigma: s.Sigma}
}

// IsPrior reports whether the snapshot is the synthetic default belief.
func (s Snapshot) IsPrior() bool {
	return s.ID == 0
}

// Prior returns the synthetic snapshot of a player who has never played.
func Prior(playerID string) Snapshot {
	p := skill.Prior()
	return Snapshot{PlayerID: playerID, Mu: p.Mu, Sigma: p.Sigma}
}

// Entry is a new belief to be stored for a player.
type Entry struct {
	PlayerID string
	Rating   skill.Rating
}

// store handles rating persistence.
type store struct {
	db database.DBTX
}
