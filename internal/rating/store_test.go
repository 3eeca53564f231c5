package rating_test

import (
	"context"
	"database/sql"
	"math"
	"testing"

	"github.com/mauv0809/doubles-ladder/internal/database"
	"github.com/mauv0809/doubles-ladder/internal/rating"
	"github.com/mauv0809/doubles-ladder/internal/skill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory SQLite database with four players and two games.
func setupTestDB(t *testing.T) (rating.Store, *sql.DB) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	t.Cleanup(teardown)

	_, err = db.Exec(`INSERT INTO players (id, name, created_at) VALUES
		('p1', 'one', 0), ('p2', 'two', 0), ('p3', 'three', 0), ('p4', 'four', 0)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO games (id, winner1, winner2, loser1, loser2, date) VALUES
		('g1', 'p1', 'p2', 'p3', 'p4', '2024-01-01T00:00:00.000000000Z'),
		('g2', 'p3', 'p4', 'p1', 'p2', '2024-01-02T00:00:00.000000000Z')`)
	require.NoError(t, err)

	return rating.New(db), db
}

func entries(mus ...float64) []rating.Entry {
	out := make([]rating.Entry, 0, len(mus))
	for i, mu := range mus {
		out = append(out, rating.Entry{
			PlayerID: []string{"p1", "p2", "p3", "p4"}[i],
			Rating:   skill.Rating{Mu: mu, Sigma: 150},
		})
	}
	return out
}

func TestLatest_DefaultsToPrior(t *testing.T) {
	store, _ := setupTestDB(t)

	snap, err := store.Latest(context.Background(), "p1")
	require.NoError(t, err)
	assert.True(t, snap.IsPrior())
	assert.Equal(t, "p1", snap.PlayerID)
	assert.Equal(t, 500.0, snap.Mu)
	assert.Equal(t, 200.0, snap.Sigma)
	assert.Empty(t, snap.GameID)
}

func TestInsert_AssignsMonotonicIDs(t *testing.T) {
	store, _ := setupTestDB(t)
	ctx := context.Background()

	first, err := store.Insert(ctx, "g1", entries(510, 520, 490, 480))
	require.NoError(t, err)
	require.Len(t, first, 4)
	second, err := store.Insert(ctx, "g2", entries(505, 515, 495, 485))
	require.NoError(t, err)
	require.Len(t, second, 4)

	all := append(first, second...)
	for i := 1; i < len(all); i++ {
		assert.Greater(t, all[i].ID, all[i-1].ID)
	}
	assert.Equal(t, "g2", second[0].GameID)
	assert.Equal(t, "p3", second[2].PlayerID)
}

func TestLatest_FollowsInsertionOrder(t *testing.T) {
	store, _ := setupTestDB(t)
	ctx := context.Background()

	_, err := store.Insert(ctx, "g1", entries(510, 520, 490, 480))
	require.NoError(t, err)
	second, err := store.Insert(ctx, "g2", entries(505, 515, 495, 485))
	require.NoError(t, err)

	for i, playerID := range []string{"p1", "p2", "p3", "p4"} {
		snap, err := store.Latest(ctx, playerID)
		require.NoError(t, err)
		assert.Equal(t, second[i], snap)
		assert.False(t, snap.IsPrior())
	}

	latest, err := store.LatestAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, latest)
}

func TestLatest_PointerMatchesMaxID(t *testing.T) {
	store, db := setupTestDB(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := store.Insert(ctx, "g1", entries(500+float64(i), 500, 500, 500))
		require.NoError(t, err)
	}

	var maxID int64
	require.NoError(t, db.QueryRow(`SELECT MAX(id) FROM ratings WHERE player_id = 'p1'`).Scan(&maxID))
	snap, err := store.Latest(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, maxID, snap.ID)
	assert.Equal(t, 502.0, snap.Mu)
}

func TestInsert_RejectsInvalidSigma(t *testing.T) {
	store, db := setupTestDB(t)
	ctx := context.Background()

	bad := entries(500, 500, 500, 500)
	bad[3].Rating.Sigma = 0
	_, err := store.Insert(ctx, "g1", bad)
	assert.ErrorIs(t, err, rating.ErrInvalidRating)

	bad[3].Rating.Sigma = math.Inf(1)
	_, err = store.Insert(ctx, "g1", bad)
	assert.ErrorIs(t, err, rating.ErrInvalidRating)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM ratings`).Scan(&n))
	assert.Equal(t, 0, n, "validation happens before any row is written")
}

func TestListForGameAndPlayer(t *testing.T) {
	store, _ := setupTestDB(t)
	ctx := context.Background()

	first, err := store.Insert(ctx, "g1", entries(510, 520, 490, 480))
	require.NoError(t, err)
	second, err := store.Insert(ctx, "g2", entries(505, 515, 495, 485))
	require.NoError(t, err)

	forGame, err := store.ListForGame(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, first, forGame)

	history, err := store.ListForPlayer(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, []rating.Snapshot{first[1], second[1]}, history)

	none, err := store.ListForGame(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, none)
}
