package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/mauv0809/doubles-ladder/internal/game"
	"github.com/mauv0809/doubles-ladder/internal/ledger"
	"github.com/mauv0809/doubles-ladder/internal/notifier"
	"github.com/mauv0809/doubles-ladder/internal/player"
	"github.com/mauv0809/doubles-ladder/internal/pubsub"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) PingContext(ctx context.Context) error { return f(ctx) }

func slashCommand(text string) *http.Request {
	form := url.Values{"text": {text}}
	req := httptest.NewRequest(http.MethodPost, "/slack/command/rating", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestHealthCheckHandler_DatabaseDown(t *testing.T) {
	handler := HealthCheckHandler(pingFunc(func(ctx context.Context) error {
		return errors.New("connection refused")
	}))

	rr := httptest.NewRecorder()
	handler(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestLeaderboardCommandHandler_LedgerFailure(t *testing.T) {
	svc := ledger.NewMock()
	svc.LeaderboardFunc = func(ctx context.Context) ([]ledger.Standing, error) {
		return nil, ledger.ErrPersistence
	}
	n := notifier.NewMock()

	rr := httptest.NewRecorder()
	LeaderboardCommandHandler(svc, n)(rr, httptest.NewRequest(http.MethodPost, "/slack/command/leaderboard", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Empty(t, n.FormatLeaderboardCalls)
}

func TestRatingCommandHandler(t *testing.T) {
	alice := player.Player{ID: "p-alice", Name: "alice"}
	alicia := player.Player{ID: "p-alicia", Name: "alicia"}

	newDeps := func(candidates []player.Player) (*ledger.MockService, *player.MockDirectory, *notifier.Mock) {
		svc := ledger.NewMock()
		svc.PlayerSummaryFunc = func(ctx context.Context, playerID string) (*ledger.Summary, error) {
			return &ledger.Summary{Player: player.Player{ID: playerID}}, nil
		}
		players := player.NewMock()
		players.SearchByPrefixFunc = func(ctx context.Context, prefix string) ([]player.Player, error) {
			return candidates, nil
		}
		n := notifier.NewMock()
		n.FormatPlayerSummaryResponseFunc = func(summary *ledger.Summary) (any, error) {
			return slack.Message{Msg: slack.Msg{Text: summary.Player.ID}}, nil
		}
		n.FormatPlayerNotFoundResponseFunc = func(query string) (any, error) {
			return slack.Message{Msg: slack.Msg{Text: "not found"}}, nil
		}
		return svc, players, n
	}

	t.Run("exact name wins over longer names", func(t *testing.T) {
		svc, players, n := newDeps([]player.Player{alice, alicia})

		rr := httptest.NewRecorder()
		RatingCommandHandler(svc, players, n)(rr, slashCommand("Alice"))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "p-alice")
		assert.Equal(t, []string{"Alice"}, players.SearchByPrefixCalls)
	})

	t.Run("ambiguous prefix", func(t *testing.T) {
		svc, players, n := newDeps([]player.Player{alice, alicia})

		rr := httptest.NewRecorder()
		RatingCommandHandler(svc, players, n)(rr, slashCommand("ali"))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "not found")
		assert.Equal(t, []string{"ali"}, n.FormatPlayerNotFoundCalls)
	})

	t.Run("empty text", func(t *testing.T) {
		svc, players, n := newDeps(nil)

		rr := httptest.NewRecorder()
		RatingCommandHandler(svc, players, n)(rr, slashCommand("  "))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Empty(t, players.SearchByPrefixCalls)
	})
}

func TestMatchRecordedHandler_UnknownPlayersShownByID(t *testing.T) {
	players := player.NewMock()
	players.GetFunc = func(ctx context.Context, id string) (*player.Player, error) {
		if id == "w1" {
			return &player.Player{ID: id, Name: "alice"}, nil
		}
		return nil, player.ErrNotFound
	}
	n := notifier.NewMock()
	client := pubsub.NewMock()

	event := ledger.MatchRecorded{Games: []game.Game{{ID: "g1", Winners: game.Pair{"w1", "w2"}, Losers: game.Pair{"l1", "l2"}}}}
	data, err := pubsub.Encode(event)
	require.NoError(t, err)
	body, err := pubsub.EncodePushBody("sub", data)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	MatchRecordedHandler(players, n, client, true)(rr, httptest.NewRequest(http.MethodPost, "/pubsub/match-recorded", strings.NewReader(string(body))))

	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, n.SendMatchResultCalls, 1)
	result := n.SendMatchResultCalls[0]
	assert.Equal(t, "Alice", result.Name("w1"))
	assert.Equal(t, "w2", result.Name("w2"))
}

func TestMatchRecordedHandler_InvalidEnvelope(t *testing.T) {
	n := notifier.NewMock()

	rr := httptest.NewRecorder()
	MatchRecordedHandler(player.NewMock(), n, pubsub.NewMock(), true)(rr, httptest.NewRequest(http.MethodPost, "/pubsub/match-recorded", strings.NewReader(`{"message":{}}`)))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, n.SendMatchResultCalls)
}
