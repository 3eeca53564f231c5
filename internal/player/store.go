package player

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/doubles-ladder/internal/database"
)

var _ Directory = (*store)(nil)

// New creates a Directory backed by db, which may be a transaction.
func New(db database.DBTX) Directory {
	return &store{db: db}
}

// NormalizeName is the form names are stored and searched in.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (s *store) List(ctx context.Context) ([]Player, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, created_at FROM players ORDER BY name, created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return scanPlayers(rows)
}

func (s *store) Create(ctx context.Context, name string) (*Player, error) {
	name = NormalizeName(name)
	if name == "" {
		return nil, ErrInvalidName
	}

	p := &Player{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().Unix(),
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO players (id, name, created_at) VALUES (?, ?, ?)`, p.ID, p.Name, p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	log.Info("Created player", "id", p.ID, "name", p.Name)
	return p, nil
}

func (s *store) Get(ctx context.Context, id string) (*Player, error) {
	var p Player
	err := s.db.QueryRowContext(ctx, `SELECT id, name, created_at FROM players WHERE id = ?`, id).
		Scan(&p.ID, &p.Name, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return &p, nil
}

func (s *store) SearchByPrefix(ctx context.Context, prefix string) ([]Player, error) {
	pattern := escapeLike(NormalizeName(prefix)) + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, created_at FROM players
		WHERE name LIKE ? ESCAPE '\'
		ORDER BY name, created_at
	`, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search players: %w", err)
	}
	players, err := scanPlayers(rows)
	if err != nil {
		return nil, err
	}
	log.FromContext(ctx).Debug("Searched players by prefix", "prefix", prefix, "matches", len(players))
	return players, nil
}

// escapeLike makes the user's prefix match literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func scanPlayers(rows *sql.Rows) ([]Player, error) {
	defer rows.Close()

	players := make([]Player, 0)
	for rows.Next() {
		var p Player
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}
