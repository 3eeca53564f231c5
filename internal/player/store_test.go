package player_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/mauv0809/doubles-ladder/internal/database"
	"github.com/mauv0809/doubles-ladder/internal/player"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (player.Directory, *sql.DB) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	t.Cleanup(teardown)

	return player.New(db), db
}

func names(players []player.Player) []string {
	out := make([]string, 0, len(players))
	for _, p := range players {
		out = append(out, p.Name)
	}
	return out
}

func TestCreateAndGet(t *testing.T) {
	dir, _ := setupTestDB(t)
	ctx := context.Background()

	created, err := dir.Create(ctx, "  Alice Smith ")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "alice smith", created.Name)

	got, err := dir.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestCreate_RejectsEmptyName(t *testing.T) {
	dir, _ := setupTestDB(t)

	_, err := dir.Create(context.Background(), "   ")
	assert.ErrorIs(t, err, player.ErrInvalidName)
}

func TestCreate_AllowsDuplicateNames(t *testing.T) {
	dir, _ := setupTestDB(t)
	ctx := context.Background()

	a, err := dir.Create(ctx, "Bob")
	require.NoError(t, err)
	b, err := dir.Create(ctx, "bob")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)

	all, err := dir.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGet_NotFound(t *testing.T) {
	dir, _ := setupTestDB(t)

	_, err := dir.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, player.ErrNotFound)
}

func TestList_Empty(t *testing.T) {
	dir, _ := setupTestDB(t)

	all, err := dir.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSearchByPrefix(t *testing.T) {
	dir, _ := setupTestDB(t)
	ctx := context.Background()

	for _, name := range []string{"Mads", "Magnus", "Mathilde", "Anna", "ma_x", "100%"} {
		_, err := dir.Create(ctx, name)
		require.NoError(t, err)
	}

	tests := []struct {
		name     string
		prefix   string
		expected []string
	}{
		{"several matches", "ma", []string{"ma_x", "mads", "magnus", "mathilde"}},
		{"case insensitive", "MAG", []string{"magnus"}},
		{"no match", "zed", []string{}},
		{"underscore is literal", "ma_", []string{"ma_x"}},
		{"percent is literal", "100%", []string{"100%"}},
		{"empty prefix matches all", "", []string{"100%", "anna", "ma_x", "mads", "magnus", "mathilde"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			players, err := dir.SearchByPrefix(ctx, tc.prefix)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, names(players))
		})
	}
}

func TestNew_WithTransaction(t *testing.T) {
	_, db := setupTestDB(t)
	ctx := context.Background()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	_, err = player.New(tx).Create(ctx, "Ghost")
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	all, err := player.New(db).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all, "rolled back player should not be visible")
}
