package ledger

import (
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/mauv0809/doubles-ladder/internal/game"
	"github.com/mauv0809/doubles-ladder/internal/metrics"
	"github.com/mauv0809/doubles-ladder/internal/player"
	"github.com/mauv0809/doubles-ladder/internal/pubsub"
	"github.com/mauv0809/doubles-ladder/internal/rating"
	"github.com/mauv0809/doubles-ladder/internal/skill"
)

var (
	// ErrInvalidOutcome means the four ids of a match are not four distinct,
	// non-empty players.
	ErrInvalidOutcome = errors.New("a match needs four distinct players")
	// ErrNotFound wraps player.ErrNotFound for a referenced player that does
	// not exist.
	ErrNotFound = errors.New("not found")
	// ErrPersistence wraps any storage failure. Nothing of the failed pass is
	// visible after it.
	ErrPersistence = errors.New("persistence failure")
)

// Ledger records matches and derives standings from the stored history.
type Ledger struct {
	db        *sql.DB
	engine    skill.Engine
	metrics   metrics.Metrics
	publisher pubsub.PubSubClient
	now       func() time.Time

	// mu serializes writers. Reads go straight to the database.
	mu sync.Mutex
}

// Option configures a Ledger.
type Option func(*Ledger)

// Standing is one line of the leaderboard.
type Standing struct {
	Player player.Player `json:"player"`
	Mu     float64       `json:"mu"`
	Sigma  float64       `json:"sigma"`
	Wins   int           `json:"wins"`
	Losses int           `json:"losses"`
	// WinPct is in percent, 0 to 100.
	WinPct float64 `json:"win_pct"`
}

// Summary is a player's current rating, record and rating history.
type Summary struct {
	Player  player.Player     `json:"player"`
	Rating  rating.Snapshot   `json:"rating"`
	Wins    int               `json:"wins"`
	Losses  int               `json:"losses"`
	WinPct  float64           `json:"win_pct"`
	History []rating.Snapshot `json:"history"`
	Games   []game.Game       `json:"games"`
}

// Prediction is the expected outcome of a match between two pairs.
type Prediction struct {
	TeamA        game.Pair `json:"team_a"`
	TeamB        game.Pair `json:"team_b"`
	ProbabilityA float64   `json:"probability_a"`
	ProbabilityB float64   `json:"probability_b"`
}

// MatchRecorded is the event published after a match has been committed.
type MatchRecorded struct {
	Games      []game.Game       `json:"games" msgpack:"games"`
	Snapshots  []rating.Snapshot `json:"snapshots" msgpack:"snapshots"`
	Doubled    bool              `json:"doubled" msgpack:"doubled"`
	RecordedAt int64             `json:"recorded_at" msgpack:"recorded_at"`
}
