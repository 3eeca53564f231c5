package rating

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/doubles-ladder/internal/database"
)

var _ Store = (*store)(nil)

// New creates a Store backed by db. Insert should run inside a transaction so
// the latest_ratings pointer moves together with the new rows.
func New(db database.DBTX) Store {
	return &store{db: db}
}

func (s *store) Latest(ctx context.Context, playerID string) (Snapshot, error) {
	var snap Snapshot
	var gameID sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT r.id, r.game_id, r.player_id, r.mu, r.sigma
		FROM latest_ratings lr
		JOIN ratings r ON r.id = lr.rating_id
		WHERE lr.player_id = ?
	`, playerID).Scan(&snap.ID, &gameID, &snap.PlayerID, &snap.Mu, &snap.Sigma)
	if errors.Is(err, sql.ErrNoRows) {
		return Prior(playerID), nil
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to get latest rating: %w", err)
	}
	snap.GameID = gameID.String
	return snap, nil
}

func (s *store) LatestAll(ctx context.Context) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.game_id, r.player_id, r.mu, r.sigma
		FROM latest_ratings lr
		JOIN ratings r ON r.id = lr.rating_id
		ORDER BY r.id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list latest ratings: %w", err)
	}
	return scanSnapshots(rows)
}

func (s *store) Insert(ctx context.Context, gameID string, entries []Entry) ([]Snapshot, error) {
	for _, e := range entries {
		if !(e.Rating.Sigma > 0) || math.IsInf(e.Rating.Sigma, 0) || math.IsNaN(e.Rating.Mu) || math.IsInf(e.Rating.Mu, 0) {
			return nil, fmt.Errorf("%w: player %s", ErrInvalidRating, e.PlayerID)
		}
	}

	snaps := make([]Snapshot, 0, len(entries))
	for _, e := range entries {
		res, err := s.db.ExecContext(ctx, `INSERT INTO ratings (game_id, player_id, mu, sigma) VALUES (?, ?, ?, ?)`,
			gameID, e.PlayerID, e.Rating.Mu, e.Rating.Sigma)
		if err != nil {
			return nil, fmt.Errorf("failed to insert rating: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("failed to read rating id: %w", err)
		}

		// Keep the current-rating pointer monotonic even if rows are replayed
		// out of order.
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO latest_ratings (player_id, rating_id) VALUES (?, ?)
			ON CONFLICT(player_id) DO UPDATE SET rating_id = excluded.rating_id
			WHERE excluded.rating_id > latest_ratings.rating_id
		`, e.PlayerID, id)
		if err != nil {
			return nil, fmt.Errorf("failed to update latest rating: %w", err)
		}

		snaps = append(snaps, Snapshot{
			ID:       id,
			GameID:   gameID,
			PlayerID: e.PlayerID,
			Mu:       e.Rating.Mu,
			Sigma:    e.Rating.Sigma,
		})
	}

	log.FromContext(ctx).Debug("Inserted ratings", "gameID", gameID, "count", len(snaps))
	return snaps, nil
}

func (s *store) ListForGame(ctx context.Context, gameID string) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, game_id, player_id, mu, sigma FROM ratings WHERE game_id = ? ORDER BY id
	`, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings for game: %w", err)
	}
	return scanSnapshots(rows)
}

func (s *store) ListForPlayer(ctx context.Context, playerID string) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, game_id, player_id, mu, sigma FROM ratings WHERE player_id = ? ORDER BY id
	`, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings for player: %w", err)
	}
	return scanSnapshots(rows)
}

func scanSnapshots(rows *sql.Rows) ([]Snapshot, error) {
	defer rows.Close()

	snaps := make([]Snapshot, 0)
	for rows.Next() {
		var snap Snapshot
		var gameID sql.NullString
		if err := rows.Scan(&snap.ID, &gameID, &snap.PlayerID, &snap.Mu, &snap.Sigma); err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		snap.GameID = gameID.String
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}
