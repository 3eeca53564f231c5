package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/doubles-ladder/internal/database"
	"github.com/mauv0809/doubles-ladder/internal/game"
	"github.com/mauv0809/doubles-ladder/internal/ledger"
	"github.com/mauv0809/doubles-ladder/internal/metrics"
	"github.com/mauv0809/doubles-ladder/internal/player"
	"github.com/mauv0809/doubles-ladder/internal/skill"
	"github.com/prometheus/client_golang/prometheus"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"TURSO_PRIMARY_URL": "",
		"TURSO_AUTH_TOKEN":  "",
		"SEED_PLAYERS":      "12",
		"SEED_MATCHES":      "200",
		"SEED":              strconv.FormatInt(time.Now().UnixNano(), 10),
	}
	for key := range config {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			config[key] = value
		}
	}

	if value, ok := os.LookupEnv("DB_NAME"); ok {
		config["DB_NAME"] = value
	} else {
		log.Fatalf("Error: Required environment variable %s is not set.", "DB_NAME")
	}
	return config
}

func mustInt(cfg map[string]string, key string) int {
	n, err := strconv.Atoi(cfg[key])
	if err != nil || n < 0 {
		log.Fatalf("Error: %s must be a non-negative integer, got %q", key, cfg[key])
	}
	return n
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	numPlayers := mustInt(cfg, "SEED_PLAYERS")
	numMatches := mustInt(cfg, "SEED_MATCHES")
	seed, err := strconv.ParseInt(cfg["SEED"], 10, 64)
	if err != nil {
		log.Fatalf("Error: SEED must be an integer: %s", err)
	}
	if numPlayers < 4 {
		log.Fatalf("Error: SEED_PLAYERS must be at least 4, got %d", numPlayers)
	}

	ctx := context.Background()
	rng := rand.New(rand.NewSource(seed))
	svc := ledger.New(db, skill.NewDefault(), metrics.NewService(prometheus.NewRegistry()))

	seeded, err := seedPlayers(ctx, player.New(db), numPlayers, rng)
	if err != nil {
		log.Fatalf("Failed to seed players: %s", err)
	}
	log.Info("Seeded players", "count", len(seeded))

	startTime := time.Now()
	for i := 0; i < numMatches; i++ {
		winners, losers := playMatch(seeded, rng)
		doubled := rng.Intn(10) == 0
		if _, err := svc.RecordMatch(ctx, winners, losers, doubled); err != nil {
			log.Fatalf("Failed to record match %d: %s", i+1, err)
		}
		if (i+1)%50 == 0 {
			log.Info("Recorded matches", "completed", i+1, "total", numMatches)
		}
	}
	log.Info("Successfully recorded all dummy matches.", "duration", time.Since(startTime), "seed", seed)
}

// seededPlayer is a stored player with the hidden strength used to decide
// simulated matches.
type seededPlayer struct {
	ID       string
	Strength float64
}

func seedPlayers(ctx context.Context, players player.Directory, n int, rng *rand.Rand) ([]seededPlayer, error) {
	out := make([]seededPlayer, 0, n)
	for i := 0; i < n; i++ {
		p, err := players.Create(ctx, fmt.Sprintf("seeder player %02d", i+1))
		if err != nil {
			return nil, err
		}
		out = append(out, seededPlayer{ID: p.ID, Strength: skill.DefaultMu + rng.NormFloat64()*skill.DefaultSigma/2})
	}
	return out, nil
}

// playMatch draws four distinct players and decides the winner from their
// hidden strengths plus per-player performance noise.
func playMatch(players []seededPlayer, rng *rand.Rand) (winners, losers game.Pair) {
	picked := rng.Perm(len(players))[:4]
	a := [2]seededPlayer{players[picked[0]], players[picked[1]]}
	b := [2]seededPlayer{players[picked[2]], players[picked[3]]}

	perf := func(team [2]seededPlayer) float64 {
		return team[0].Strength + team[1].Strength + rng.NormFloat64()*skill.DefaultBeta*2
	}
	if perf(a) >= perf(b) {
		return game.Pair{a[0].ID, a[1].ID}, game.Pair{b[0].ID, b[1].ID}
	}
	return game.Pair{b[0].ID, b[1].ID}, game.Pair{a[0].ID, a[1].ID}
}
