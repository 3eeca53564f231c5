package http

import (
	"net/http"

	"github.com/mauv0809/doubles-ladder/internal/config"
	"github.com/mauv0809/doubles-ladder/internal/game"
	"github.com/mauv0809/doubles-ladder/internal/http/handlers"
	"github.com/mauv0809/doubles-ladder/internal/ledger"
	"github.com/mauv0809/doubles-ladder/internal/metrics"
	"github.com/mauv0809/doubles-ladder/internal/notifier"
	"github.com/mauv0809/doubles-ladder/internal/player"
	"github.com/mauv0809/doubles-ladder/internal/pubsub"
)

func NewServer(svc ledger.Service, players player.Directory, games game.Log, db handlers.Pinger, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Ledger:         svc,
		Players:        players,
		Games:          games,
		DB:             db,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	slackAuth := slackVerifier(s.Cfg.Slack.SigningSecret)

	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(handlers.HealthCheckHandler(s.DB), paramsMiddleware))

	s.Router.Handle("GET /players", Chain(s.ListPlayersHandler(), paramsMiddleware))
	s.Router.Handle("POST /players", Chain(s.CreatePlayerHandler(), paramsMiddleware))
	s.Router.Handle("GET /players/{id}", Chain(s.PlayerSummaryHandler(), paramsMiddleware))
	s.Router.Handle("GET /games", Chain(s.ListGamesHandler(), paramsMiddleware))
	s.Router.Handle("GET /games/{id}", Chain(s.GetGameHandler(), paramsMiddleware))
	s.Router.Handle("POST /matches", Chain(s.RecordMatchHandler(), paramsMiddleware))
	s.Router.Handle("GET /leaderboard", Chain(s.LeaderboardHandler(), paramsMiddleware))
	s.Router.Handle("GET /predict", Chain(s.PredictHandler(), paramsMiddleware))

	if s.pubsub != nil {
		s.Router.Handle("POST /pubsub/match-recorded", Chain(
			handlers.MatchRecordedHandler(s.Players, s.Notifier, s.pubsub, !s.Cfg.SlackEnabled()),
			paramsMiddleware,
		))
	}
	s.Router.Handle("POST /slack/command/leaderboard", Chain(handlers.LeaderboardCommandHandler(s.Ledger, s.Notifier), paramsMiddleware, slackAuth))
	s.Router.Handle("POST /slack/command/rating", Chain(handlers.RatingCommandHandler(s.Ledger, s.Players, s.Notifier), paramsMiddleware, slackAuth))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
