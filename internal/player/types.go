package player

import (
	"errors"

	"github.com/mauv0809/doubles-ladder/internal/database"
)

var (
	ErrNotFound    = errors.New("player not found")
	ErrInvalidName = errors.New("player name must not be empty")
)

// Player is a competitor. Names are stored lowercase; display casing is left
// to the caller.
type Player struct {
	ID        string `json:"id" msgpack:"id"`
	Name      string `json:"name" msgpack:"name"`
	CreatedAt int64  `json:"created_at" msgpack:"created_at"`
}

// store handles player persistence.
type store struct {
	db database.DBTX
}
