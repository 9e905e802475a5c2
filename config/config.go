package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	PostgresEnabled  bool
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	MaxConcurrency int
	MaxRetries     int
	AsOfYear       int
	TopN           int
	LogLevel       string

	InputCSVPath    string
	OutputCSVPath   string
	MarketDataPath  string
	ModelParamsPath string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		PostgresEnabled:  getEnvBool("POSTGRES_ENABLED", false),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "optimizer"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "optimizer123"),
		PostgresDB:       getEnv("POSTGRES_DB", "yield_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 4),
		MaxRetries:     getEnvInt("MAX_RETRIES", 3),
		AsOfYear:       getEnvInt("AS_OF_YEAR", time.Now().Year()),
		TopN:           getEnvInt("TOP_N", 5),
		LogLevel:       getEnv("LOG_LEVEL", "info"),

		InputCSVPath:    getEnv("INPUT_CSV_PATH", "./data/enriched_listings.csv"),
		OutputCSVPath:   getEnv("OUTPUT_CSV_PATH", "./output/final_rankings.csv"),
		MarketDataPath:  getEnv("MARKET_DATA_PATH", "./config/market_data.yaml"),
		ModelParamsPath: getEnv("MODEL_PARAMS_PATH", "./config/model_params.yaml"),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(val))
		if err == nil {
			return b
		}
	}
	return fallback
}
