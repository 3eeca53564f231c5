package handlers

import (
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/doubles-ladder/internal/ledger"
	"github.com/mauv0809/doubles-ladder/internal/notifier"
	"github.com/mauv0809/doubles-ladder/internal/player"
	"github.com/mauv0809/doubles-ladder/internal/pubsub"
)

// MatchRecordedHandler receives match-recorded events from a Pub/Sub push
// subscription and posts the result to Slack. With forceDryRun the message is
// only logged.
func MatchRecordedHandler(players player.Directory, n notifier.Notifier, pubsubClient pubsub.PubSubClient, forceDryRun bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.FromContext(r.Context()).Debug("Received match recorded message", "body", string(bodyBytes))

		rawData, err := pubsub.DecodePushBody(bodyBytes)
		if err != nil {
			log.Error("Failed to decode push message", "error", err)
			http.Error(w, "Invalid push message", http.StatusBadRequest)
			return
		}

		var event ledger.MatchRecorded
		if err := pubsubClient.ProcessMessage(rawData, &event); err != nil {
			http.Error(w, "Invalid event payload", http.StatusBadRequest)
			return
		}

		result := notifier.MatchResult{
			MatchRecorded: event,
			Names:         resolveNames(r, players, event),
		}
		isDryRun := forceDryRun || IsDryRunFromContext(r)
		if err := n.SendMatchResult(result, isDryRun); err != nil {
			log.Error("Failed to notify result", "error", err)
			http.Error(w, "Failed to notify result", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

// resolveNames looks up every player of the event. Unknown ids are left out
// and shown as ids.
func resolveNames(r *http.Request, players player.Directory, event ledger.MatchRecorded) map[string]string {
	names := make(map[string]string)
	for _, g := range event.Games {
		for _, id := range []string{g.Winners[0], g.Winners[1], g.Losers[0], g.Losers[1]} {
			if _, done := names[id]; done {
				continue
			}
			p, err := players.Get(r.Context(), id)
			if err != nil {
				log.Warn("Could not resolve player name", "playerID", id, "error", err)
				continue
			}
			names[id] = p.Name
		}
	}
	return names
}
