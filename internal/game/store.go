package game

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/doubles-ladder/internal/database"
)

var _ Log = (*store)(nil)

const selectGames = `SELECT id, winner1, winner2, loser1, loser2, date FROM games`

// New creates a Log backed by db, which may be a transaction.
func New(db database.DBTX) Log {
	return &store{db: db, now: time.Now}
}

func (s *store) Append(ctx context.Context, winners, losers Pair, at time.Time) (*Game, error) {
	if at.IsZero() {
		at = s.now()
	}
	g := &Game{
		ID:      uuid.New().String(),
		Winners: winners,
		Losers:  losers,
		Date:    at.UTC(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO games (id, winner1, winner2, loser1, loser2, date)
		VALUES (?, ?, ?, ?, ?, ?)
	`, g.ID, g.Winners[0], g.Winners[1], g.Losers[0], g.Losers[1], g.Date.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to append game: %w", err)
	}

	log.FromContext(ctx).Debug("Appended game", "gameID", g.ID, "winners", g.Winners, "losers", g.Losers)
	return g, nil
}

func (s *store) Get(ctx context.Context, id string) (*Game, error) {
	g, err := scanGame(s.db.QueryRowContext(ctx, selectGames+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	return g, nil
}

func (s *store) ListAll(ctx context.Context) ([]Game, error) {
	rows, err := s.db.QueryContext(ctx, selectGames+` ORDER BY date, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	return scanGames(rows)
}

func (s *store) ListForPlayer(ctx context.Context, playerID string, filter Filter) ([]Game, error) {
	where, args, err := playerPredicate(playerID, filter)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, selectGames+` WHERE `+where+` ORDER BY date, id`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list games for player: %w", err)
	}
	return scanGames(rows)
}

func (s *store) CountForPlayer(ctx context.Context, playerID string, filter Filter) (int, error) {
	where, args, err := playerPredicate(playerID, filter)
	if err != nil {
		return 0, err
	}
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM games WHERE `+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count games for player: %w", err)
	}
	return n, nil
}

// recordsQuery unpivots every game into one row per player and role.
const recordsQuery = `
SELECT player_id, SUM(won), SUM(1 - won) FROM (
	SELECT winner1 AS player_id, 1 AS won FROM games
	UNION ALL SELECT winner2, 1 FROM games
	UNION ALL SELECT loser1, 0 FROM games
	UNION ALL SELECT loser2, 0 FROM games
) GROUP BY player_id`

func (s *store) Records(ctx context.Context) (map[string]Record, error) {
	rows, err := s.db.QueryContext(ctx, recordsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to tally records: %w", err)
	}
	defer rows.Close()

	records := make(map[string]Record)
	for rows.Next() {
		var (
			playerID string
			r        Record
		)
		if err := rows.Scan(&playerID, &r.Wins, &r.Losses); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records[playerID] = r
	}
	return records, rows.Err()
}

// playerPredicate builds the WHERE clause selecting the player's games in the
// role the filter asks for.
func playerPredicate(playerID string, filter Filter) (string, []any, error) {
	switch filter {
	case FilterAny:
		return `(winner1 = ? OR winner2 = ? OR loser1 = ? OR loser2 = ?)`, []any{playerID, playerID, playerID, playerID}, nil
	case FilterWinsOnly:
		return `(winner1 = ? OR winner2 = ?)`, []any{playerID, playerID}, nil
	case FilterLossesOnly:
		return `(loser1 = ? OR loser2 = ?)`, []any{playerID, playerID}, nil
	default:
		return "", nil, fmt.Errorf("%w: %d", ErrInvalidFilter, int(filter))
	}
}

func scanGame(scanner interface{ Scan(...any) error }) (*Game, error) {
	var g Game
	var date string
	if err := scanner.Scan(&g.ID, &g.Winners[0], &g.Winners[1], &g.Losers[0], &g.Losers[1], &date); err != nil {
		return nil, err
	}
	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("failed to parse date of game %s: %w", g.ID, err)
	}
	g.Date = parsed
	return &g, nil
}

func scanGames(rows *sql.Rows) ([]Game, error) {
	defer rows.Close()

	games := make([]Game, 0)
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, *g)
	}
	return games, rows.Err()
}
