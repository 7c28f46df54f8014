package config

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	Turso         TursoConfig
	Slack         SlackConfig
	ProjectID     string
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

type SlackConfig struct {
	Token     string
	ChannelID string
}

// Enabled reports whether announcements can be posted to Slack.
func (c SlackConfig) Enabled() bool {
	return c.Token != "" && c.ChannelID != ""
}
