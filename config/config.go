package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Configuration values loaded from the environment (.env in development)
var (
	ServerPort string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string

	RedisAddress  string
	RedisPassword string

	JWTSecret       string
	DefaultPassword string

	OracBaseURL      string
	OracFetchTimeout time.Duration
)

// LoadConfig reads the .env file if present and populates the configuration
// variables, falling back to defaults for anything unset
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	ServerPort = getEnv("SERVER_PORT", "8080")

	PostgresHost = getEnv("POSTGRES_HOST", "localhost")
	PostgresPort = getEnv("POSTGRES_PORT", "5432")
	PostgresUser = getEnv("POSTGRES_USER", "tracker")
	PostgresPassword = getEnv("POSTGRES_PASSWORD", "tracker")
	PostgresDB = getEnv("POSTGRES_DB", "tracker")

	RedisAddress = getEnv("REDIS_ADDRESS", "localhost:6379")
	RedisPassword = getEnv("REDIS_PASSWORD", "")

	JWTSecret = getEnv("JWT_SECRET", "")
	if JWTSecret == "" {
		log.Println("JWT_SECRET is not set, tokens will not survive restarts")
	}
	DefaultPassword = getEnv("DEFAULT_PASSWORD", "")

	OracBaseURL = getEnv("ORAC_BASE_URL", "http://orac.amt.edu.au")
	OracFetchTimeout = time.Duration(getEnvInt("ORAC_FETCH_TIMEOUT_SECONDS", 30)) * time.Second
}

func getEnv(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid integer for %s: %q, using default %d", key, value, fallback)
		return fallback
	}
	return n
}
