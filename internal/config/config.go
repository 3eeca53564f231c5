package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/doubles-ladder/internal/skill"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	cfg, err := FromEnv()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	return cfg
}

// FromEnv builds the configuration from the process environment only.
func FromEnv() (Config, error) {
	var missing []string
	// A helper function to get a required env var.
	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			return value
		}
		missing = append(missing, key)
		return ""
	}
	optional := func(key, fallback string) string {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			return value
		}
		return fallback
	}

	cfg := Config{
		DBName: getEnv("DB_NAME"),
		Port:   getEnv("PORT"),
		Slack: SlackConfig{
			Token:         optional("SLACK_BOT_TOKEN", ""),
			ChannelID:     optional("SLACK_CHANNEL_ID", ""),
			SigningSecret: optional("SLACK_SIGNING_SECRET", ""),
		},
		Turso: TursoConfig{
			PrimaryURL: optional("TURSO_PRIMARY_URL", ""),
			AuthToken:  optional("TURSO_AUTH_TOKEN", ""),
		},
		ProjectID: optional("GCP_PROJECT", ""),
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %v", missing)
	}

	beta, err := strconv.ParseFloat(optional("RATING_BETA", strconv.FormatFloat(skill.DefaultBeta, 'f', -1, 64)), 64)
	if err != nil {
		return Config{}, fmt.Errorf("invalid RATING_BETA: %w", err)
	}
	tau, err := strconv.ParseFloat(optional("RATING_TAU", "0"), 64)
	if err != nil {
		return Config{}, fmt.Errorf("invalid RATING_TAU: %w", err)
	}
	cfg.Rating = RatingConfig{Beta: beta, Tau: tau}
	return cfg, nil
}

// SkillParams returns the engine parameters for this configuration.
func (c Config) SkillParams() skill.Params {
	p := skill.DefaultParams()
	if c.Rating.Beta != 0 {
		p.Beta = c.Rating.Beta
	}
	p.Tau = c.Rating.Tau
	return p
}
