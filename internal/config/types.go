package config

// Config holds all configuration for the application.
type Config struct {
	DBName    string
	GroupSize int
	Turso     TursoConfig
	ProjectID string
}

// TursoConfig selects a remote libsql primary instead of a local file.
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
