package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config collects everything the server and the CLI read from the
// environment. A .env file in the working directory is honored if present.
type Config struct {
	Port        string
	DatabaseDSN string
	LogLevel    string
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads the configuration from the environment. DATABASE_URL wins over
// the individual DB_* variables.
func Load() Config {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			getenv("DB_HOST", "localhost"),
			getenv("DB_USER", "postgres"),
			getenv("DB_PASSWORD", "password"),
			getenv("DB_NAME", "applytrack"),
			getenv("DB_PORT", "5432"),
			getenv("DB_SSLMODE", "disable"),
		)
	}

	return Config{
		Port:        getenv("PORT", "8080"),
		DatabaseDSN: dsn,
		LogLevel:    getenv("LOG_LEVEL", "info"),
	}
}
