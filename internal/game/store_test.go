package game_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/mauv0809/doubles-ladder/internal/database"
	"github.com/mauv0809/doubles-ladder/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory SQLite database with players p1..p6.
func setupTestDB(t *testing.T) (game.Log, *sql.DB) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	t.Cleanup(teardown)

	_, err = db.Exec(`INSERT INTO players (id, name, created_at) VALUES
		('p1', 'one', 0), ('p2', 'two', 0), ('p3', 'three', 0),
		('p4', 'four', 0), ('p5', 'five', 0), ('p6', 'six', 0)`)
	require.NoError(t, err)

	return game.New(db), db
}

func ids(games []game.Game) []string {
	out := make([]string, 0, len(games))
	for _, g := range games {
		out = append(out, g.ID)
	}
	return out
}

func TestAppendAndGet(t *testing.T) {
	log, _ := setupTestDB(t)
	ctx := context.Background()
	at := time.Date(2024, 5, 1, 18, 30, 0, 0, time.FixedZone("CEST", 2*60*60))

	appended, err := log.Append(ctx, game.Pair{"p1", "p2"}, game.Pair{"p3", "p4"}, at)
	require.NoError(t, err)
	assert.NotEmpty(t, appended.ID)
	assert.True(t, at.Equal(appended.Date))

	got, err := log.Get(ctx, appended.ID)
	require.NoError(t, err)
	assert.Equal(t, appended.ID, got.ID)
	assert.Equal(t, game.Pair{"p1", "p2"}, got.Winners)
	assert.Equal(t, game.Pair{"p3", "p4"}, got.Losers)
	assert.True(t, at.Equal(got.Date))
	assert.Equal(t, time.UTC, got.Date.Location())
}

func TestAppend_DefaultsToNow(t *testing.T) {
	log, _ := setupTestDB(t)

	before := time.Now()
	g, err := log.Append(context.Background(), game.Pair{"p1", "p2"}, game.Pair{"p3", "p4"}, time.Time{})
	require.NoError(t, err)

	assert.WithinDuration(t, before, g.Date, 5*time.Second)
}

func TestAppend_UnknownPlayerViolatesForeignKey(t *testing.T) {
	log, _ := setupTestDB(t)

	_, err := log.Append(context.Background(), game.Pair{"p1", "ghost"}, game.Pair{"p3", "p4"}, time.Time{})
	assert.Error(t, err)
}

func TestGet_NotFound(t *testing.T) {
	log, _ := setupTestDB(t)

	_, err := log.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, game.ErrNotFound)
}

func TestListAll_OrderedByDate(t *testing.T) {
	log, _ := setupTestDB(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	late, err := log.Append(ctx, game.Pair{"p1", "p2"}, game.Pair{"p3", "p4"}, base.Add(time.Hour))
	require.NoError(t, err)
	early, err := log.Append(ctx, game.Pair{"p1", "p2"}, game.Pair{"p3", "p4"}, base)
	require.NoError(t, err)
	middle, err := log.Append(ctx, game.Pair{"p1", "p2"}, game.Pair{"p3", "p4"}, base.Add(500*time.Millisecond))
	require.NoError(t, err)

	all, err := log.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{early.ID, middle.ID, late.ID}, ids(all))
}

func TestListAndCountForPlayer(t *testing.T) {
	log, _ := setupTestDB(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	g1, err := log.Append(ctx, game.Pair{"p1", "p2"}, game.Pair{"p3", "p4"}, base)
	require.NoError(t, err)
	g2, err := log.Append(ctx, game.Pair{"p3", "p5"}, game.Pair{"p1", "p6"}, base.Add(time.Minute))
	require.NoError(t, err)
	g3, err := log.Append(ctx, game.Pair{"p2", "p1"}, game.Pair{"p5", "p6"}, base.Add(2*time.Minute))
	require.NoError(t, err)

	tests := []struct {
		name     string
		playerID string
		filter   game.Filter
		expected []string
	}{
		{"any", "p1", game.FilterAny, []string{g1.ID, g2.ID, g3.ID}},
		{"wins only", "p1", game.FilterWinsOnly, []string{g1.ID, g3.ID}},
		{"losses only", "p1", game.FilterLossesOnly, []string{g2.ID}},
		{"second slot wins", "p5", game.FilterWinsOnly, []string{g2.ID}},
		{"no games", "p4", game.FilterWinsOnly, []string{}},
		{"unknown player", "ghost", game.FilterAny, []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			games, err := log.ListForPlayer(ctx, tc.playerID, tc.filter)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, ids(games))

			n, err := log.CountForPlayer(ctx, tc.playerID, tc.filter)
			require.NoError(t, err)
			assert.Equal(t, len(tc.expected), n)
		})
	}
}

func TestRecords_TalliesEveryRole(t *testing.T) {
	log, _ := setupTestDB(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	_, err := log.Append(ctx, game.Pair{"p1", "p2"}, game.Pair{"p3", "p4"}, base)
	require.NoError(t, err)
	_, err = log.Append(ctx, game.Pair{"p3", "p5"}, game.Pair{"p1", "p6"}, base.Add(time.Minute))
	require.NoError(t, err)
	_, err = log.Append(ctx, game.Pair{"p2", "p1"}, game.Pair{"p5", "p6"}, base.Add(2*time.Minute))
	require.NoError(t, err)

	records, err := log.Records(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]game.Record{
		"p1": {Wins: 2, Losses: 1},
		"p2": {Wins: 2, Losses: 0},
		"p3": {Wins: 1, Losses: 1},
		"p4": {Wins: 0, Losses: 1},
		"p5": {Wins: 1, Losses: 1},
		"p6": {Wins: 0, Losses: 2},
	}, records)

	// Records agrees with the per-player counts.
	for id, rec := range records {
		wins, err := log.CountForPlayer(ctx, id, game.FilterWinsOnly)
		require.NoError(t, err)
		losses, err := log.CountForPlayer(ctx, id, game.FilterLossesOnly)
		require.NoError(t, err)
		assert.Equal(t, game.Record{Wins: wins, Losses: losses}, rec, id)
	}
}

func TestRecords_EmptyLog(t *testing.T) {
	log, _ := setupTestDB(t)

	records, err := log.Records(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestListForPlayer_RejectsUnknownFilter(t *testing.T) {
	log, _ := setupTestDB(t)

	_, err := log.ListForPlayer(context.Background(), "p1", game.Filter(42))
	assert.ErrorIs(t, err, game.ErrInvalidFilter)

	_, err = log.CountForPlayer(context.Background(), "p1", game.Filter(-1))
	assert.ErrorIs(t, err, game.ErrInvalidFilter)
}

func TestParseFilter(t *testing.T) {
	for input, expected := range map[string]game.Filter{
		"":       game.FilterAny,
		"any":    game.FilterAny,
		"wins":   game.FilterWinsOnly,
		"losses": game.FilterLossesOnly,
	} {
		f, err := game.ParseFilter(input)
		require.NoError(t, err)
		assert.Equal(t, expected, f)
		if input != "" {
			assert.Equal(t, input, f.String())
		}
	}

	_, err := game.ParseFilter("draws")
	assert.ErrorIs(t, err, game.ErrInvalidFilter)
}

func TestPairContains(t *testing.T) {
	p := game.Pair{"a", "b"}
	assert.True(t, p.Contains("a"))
	assert.True(t, p.Contains("b"))
	assert.False(t, p.Contains("c"))
}
