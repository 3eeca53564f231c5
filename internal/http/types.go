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
	"github.com/mauv0809/doubles-ladder/internal/rating"
)

type Server struct {
	Ledger         ledger.Service
	Players        player.Directory
	Games          game.Log
	DB             handlers.Pinger
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}

// recordMatchRequest is the body of POST /matches.
type recordMatchRequest struct {
	Winners []string `json:"winners"`
	Losers  []string `json:"losers"`
	Doubled bool     `json:"doubled"`
}

type recordMatchResponse struct {
	Snapshots []rating.Snapshot `json:"snapshots"`
}

type createPlayerRequest struct {
	Name string `json:"name"`
}

type errorResponse struct {
	Error string `json:"error"`
	// Snapshots holds what was committed before the failure, if anything.
	Snapshots []rating.Snapshot `json:"snapshots,omitempty"`
}
