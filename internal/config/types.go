package config

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	Turso         TursoConfig
	ProjectID     string
	Topics        TopicsConfig
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

// TopicsConfig names the Pub/Sub topics the engine publishes to.
type TopicsConfig struct {
	RewardDispatch string
	WeekClosed     string
}
