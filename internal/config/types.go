package config

// Config holds all configuration for the application.
type Config struct {
	DBName    string
	Port      string
	Slack     SlackConfig
	Turso     TursoConfig
	Rating    RatingConfig
	ProjectID string
}
type SlackConfig struct {
	Token         string
	ChannelID     string
	SigningSecret string
}
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

// RatingConfig tunes the rating engine. Zero values are replaced by the
// engine defaults.
type RatingConfig struct {
	Beta float64
	Tau  float64
}

// SlackEnabled reports whether notifications can be posted.
func (c Config) SlackEnabled() bool {
	return c.Slack.Token != "" && c.Slack.ChannelID != ""
}

// PubSubEnabled reports whether match events should be published.
func (c Config) PubSubEnabled() bool {
	return c.ProjectID != ""
}
