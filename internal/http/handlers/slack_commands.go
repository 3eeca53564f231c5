package handlers

import (
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/doubles-ladder/internal/ledger"
	"github.com/mauv0809/doubles-ladder/internal/notifier"
	"github.com/mauv0809/doubles-ladder/internal/player"
	"github.com/slack-go/slack"
)

func LeaderboardCommandHandler(svc ledger.Service, notifier notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		standings, err := svc.Leaderboard(r.Context())
		if err != nil {
			http.Error(w, "Failed to get leaderboard", http.StatusInternalServerError)
			log.Error("Failed to get leaderboard", "error", err)
			return
		}

		msg, err := notifier.FormatLeaderboardResponse(standings)
		if err != nil {
			http.Error(w, "Failed to format leaderboard", http.StatusInternalServerError)
			log.Error("Failed to format leaderboard", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}

		respondWithSlackMsg(w, slackMsg)
	}
}

// RatingCommandHandler answers /rating <name prefix> with the player's
// current rating and record.
func RatingCommandHandler(svc ledger.Service, players player.Directory, notifier notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}

		query := strings.TrimSpace(r.FormValue("text"))
		if query == "" {
			http.Error(w, "Player name is required.", http.StatusBadRequest)
			return
		}

		log.Info("Received rating command", "query", query)
		matches, err := players.SearchByPrefix(r.Context(), query)
		if err != nil {
			http.Error(w, "Failed to search players", http.StatusInternalServerError)
			log.Error("Failed to search players", "error", err)
			return
		}

		var msg any
		if p, ok := pickPlayer(matches, query); ok {
			summary, err := svc.PlayerSummary(r.Context(), p.ID)
			if err != nil {
				http.Error(w, "Failed to get player summary", http.StatusInternalServerError)
				log.Error("Failed to get player summary", "error", err)
				return
			}
			msg, err = notifier.FormatPlayerSummaryResponse(summary)
			if err != nil {
				http.Error(w, "Failed to format player summary", http.StatusInternalServerError)
				log.Error("Failed to format player summary", "error", err)
				return
			}
		} else {
			log.Warn("Could not resolve player", "query", query, "candidates", len(matches))
			msg, err = notifier.FormatPlayerNotFoundResponse(query)
			if err != nil {
				http.Error(w, "Failed to format response", http.StatusInternalServerError)
				return
			}
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}
		respondWithSlackMsg(w, slackMsg)
	}
}

// pickPlayer resolves a prefix search to one player: the only candidate, or
// the single candidate whose full name equals the query.
func pickPlayer(candidates []player.Player, query string) (player.Player, bool) {
	if len(candidates) == 1 {
		return candidates[0], true
	}
	var exact []player.Player
	for _, c := range candidates {
		if c.Name == player.NormalizeName(query) {
			exact = append(exact, c)
		}
	}
	if len(exact) == 1 {
		return exact[0], true
	}
	return player.Player{}, false
}
