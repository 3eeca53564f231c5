package game

import (
	"errors"
	"time"

	"github.com/mauv0809/doubles-ladder/internal/database"
)

var (
	ErrNotFound      = errors.New("game not found")
	ErrInvalidFilter = errors.New("unknown game filter")
)

// Pair is the two player ids of one side.
type Pair [2]string

// Contains reports whether playerID is on this side.
func (p Pair) Contains(playerID string) bool {
	return p[0] == playerID || p[1] == playerID
}

// Game is a completed doubles match with a strict winner/loser split.
type Game struct {
	ID      string    `json:"id" msgpack:"id"`
	Winners Pair      `json:"winners" msgpack:"winners"`
	Losers  Pair      `json:"losers" msgpack:"losers"`
	Date    time.Time `json:"date" msgpack:"date"`
}

// Record is a player's win/loss tally.
type Record struct {
	Wins   int
	Losses int
}

// Filter selects the role a player must have had in a game.
type Filter int

const (
	FilterAny Filter = iota
	FilterWinsOnly
	FilterLossesOnly
)

func (f Filter) String() string {
	switch f {
	case FilterAny:
		return "any"
	case FilterWinsOnly:
		return "wins"
	case FilterLossesOnly:
		return "losses"
	default:
		return "unknown"
	}
}

// ParseFilter maps "any", "wins" and "losses" (or "") to a Filter.
func ParseFilter(s string) (Filter, error) {
	switch s {
	case "", "any":
		return FilterAny, nil
	case "wins":
		return FilterWinsOnly, nil
	case "losses":
		return FilterLossesOnly, nil
	default:
		return FilterAny, ErrInvalidFilter
	}
}

// dateLayout is how games.date is stored: fixed-width ISO-8601 in UTC, so
// ordering by the text column is chronological.
const dateLayout = "2006-01-02T15:04:05.000000000Z07:00"

// store handles game persistence.
type store struct {
	db  database.DBTX
	now func() time.Time
}
