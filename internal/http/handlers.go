package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/doubles-ladder/internal/game"
	"github.com/mauv0809/doubles-ladder/internal/ledger"
	"github.com/mauv0809/doubles-ladder/internal/player"
	"github.com/mauv0809/doubles-ladder/internal/rating"
)

// respondJSON writes v as the JSON response body.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// respondError maps domain errors to status codes.
func respondError(w http.ResponseWriter, err error, committed []rating.Snapshot) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ledger.ErrInvalidOutcome),
		errors.Is(err, player.ErrInvalidName),
		errors.Is(err, game.ErrInvalidFilter):
		status = http.StatusBadRequest
	case errors.Is(err, ledger.ErrNotFound),
		errors.Is(err, player.ErrNotFound),
		errors.Is(err, game.ErrNotFound):
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		log.Error("Request failed", "error", err)
	}
	respondJSON(w, status, errorResponse{Error: err.Error(), Snapshots: committed})
}

func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			players []player.Player
			err     error
		)
		if prefix := r.URL.Query().Get("prefix"); prefix != "" {
			players, err = s.Players.SearchByPrefix(r.Context(), prefix)
		} else {
			players, err = s.Players.List(r.Context())
		}
		if err != nil {
			respondError(w, err, nil)
			return
		}
		respondJSON(w, http.StatusOK, players)
	}
}

func (s *Server) CreatePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPlayerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		p, err := s.Players.Create(r.Context(), req.Name)
		if err != nil {
			respondError(w, err, nil)
			return
		}
		respondJSON(w, http.StatusCreated, p)
	}
}

func (s *Server) PlayerSummaryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := s.Ledger.PlayerSummary(r.Context(), r.PathValue("id"))
		if err != nil {
			respondError(w, err, nil)
			return
		}
		respondJSON(w, http.StatusOK, summary)
	}
}

func (s *Server) ListGamesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := game.ParseFilter(r.URL.Query().Get("filter"))
		if err != nil {
			respondError(w, err, nil)
			return
		}

		var games []game.Game
		if playerID := r.URL.Query().Get("player"); playerID != "" {
			games, err = s.Games.ListForPlayer(r.Context(), playerID, filter)
		} else {
			games, err = s.Games.ListAll(r.Context())
		}
		if err != nil {
			respondError(w, err, nil)
			return
		}
		respondJSON(w, http.StatusOK, games)
	}
}

func (s *Server) GetGameHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g, err := s.Games.Get(r.Context(), r.PathValue("id"))
		if err != nil {
			respondError(w, err, nil)
			return
		}
		respondJSON(w, http.StatusOK, g)
	}
}

func (s *Server) RecordMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req recordMatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		winners, err := toPair(req.Winners)
		if err != nil {
			respondError(w, err, nil)
			return
		}
		losers, err := toPair(req.Losers)
		if err != nil {
			respondError(w, err, nil)
			return
		}

		snaps, err := s.Ledger.RecordMatch(r.Context(), winners, losers, req.Doubled)
		if err != nil {
			respondError(w, err, snaps)
			return
		}
		respondJSON(w, http.StatusCreated, recordMatchResponse{Snapshots: snaps})
	}
}

func (s *Server) LeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		standings, err := s.Ledger.Leaderboard(r.Context())
		if err != nil {
			respondError(w, err, nil)
			return
		}
		respondJSON(w, http.StatusOK, standings)
	}
}

func (s *Server) PredictHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamA, err := toPair(splitIDs(r.URL.Query().Get("a")))
		if err != nil {
			respondError(w, err, nil)
			return
		}
		teamB, err := toPair(splitIDs(r.URL.Query().Get("b")))
		if err != nil {
			respondError(w, err, nil)
			return
		}

		prediction, err := s.Ledger.Predict(r.Context(), teamA, teamB)
		if err != nil {
			respondError(w, err, nil)
			return
		}
		respondJSON(w, http.StatusOK, prediction)
	}
}

func toPair(ids []string) (game.Pair, error) {
	if len(ids) != 2 {
		return game.Pair{}, fmt.Errorf("%w: a team has exactly two players, got %d", ledger.ErrInvalidOutcome, len(ids))
	}
	return game.Pair{ids[0], ids[1]}, nil
}

func splitIDs(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
