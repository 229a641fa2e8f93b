package config

import (
	"os"
)

// Config is the process configuration, loaded from the environment.
type Config struct {
	Port        string
	Environment string

	// SurrealDB connection
	SurrealURL       string
	SurrealNamespace string
	SurrealDatabase  string
	SurrealUser      string
	SurrealPass      string

	CORSOrigins string

	// StaticDir is the frontend asset directory served at /. Empty
	// disables static serving.
	StaticDir string

	// CookieSecure marks the session cookie Secure; off by default so
	// plain-HTTP dev setups keep working.
	CookieSecure bool
}

// Load reads configuration from the environment with dev defaults.
func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "dev"),

		SurrealURL:       getEnv("SURREAL_URL", "ws://localhost:8000/rpc"),
		SurrealNamespace: getEnv("SURREAL_NAMESPACE", "marginalia"),
		SurrealDatabase:  getEnv("SURREAL_DATABASE", "marginalia"),
		SurrealUser:      getEnv("SURREAL_USER", "root"),
		SurrealPass:      getEnv("SURREAL_PASS", "root"),

		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
		StaticDir:   getEnv("STATIC_DIR", "./public"),

		CookieSecure: getEnv("COOKIE_SECURE", "false") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
