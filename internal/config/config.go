package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Catalog  CatalogConfig
	Matching MatchingConfig
	Logging  LoggingConfig
	OpenAI   OpenAIConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
	AllowedMethods string
	AllowedHeaders string
}

// CatalogConfig holds property catalog source configuration.
// When PostgresDSN is set the catalog is loaded from Postgres at startup,
// otherwise from the CSV file. Either source failing substitutes the
// built-in sample catalog.
type CatalogConfig struct {
	CSVPath            string
	PostgresDSN        string
	MaxConnections     int
	MaxIdleConnections int
}

// MatchingConfig holds requirement extraction and matching configuration
type MatchingConfig struct {
	TopN int
	// PeopleRatio selects how people counts convert to square footage:
	// "point" (125 sqft per person) or "range" (100-200 sqft per person).
	PeopleRatio string
	// EmotionFormula selects the composite emotion score formula:
	// "composite" or "legacy". The two formulas coexisted in earlier
	// deployments and remain selectable.
	EmotionFormula string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// OpenAIConfig holds OpenAI API configuration
type OpenAIConfig struct {
	APIKey          string
	ChatModel       string
	WhisperModel    string
	ChatTemperature float64
	ChatTopP        float64
	ChatMaxTokens   int
	Timeout         int
	RateLimit       float64 // requests per second against the API
	RateBurst       int
	Enabled         bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8000),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			AllowedMethods: getEnv("CORS_ALLOWED_METHODS", "GET,POST,PUT,DELETE,OPTIONS"),
			AllowedHeaders: getEnv("CORS_ALLOWED_HEADERS", "Content-Type,Authorization"),
		},
		Catalog: CatalogConfig{
			CSVPath:            getEnv("PROPERTIES_CSV_PATH", "data/properties.csv"),
			PostgresDSN:        getEnv("DATABASE_URL", getEnv("PG_DSN", "")),
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 5),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 2),
		},
		Matching: MatchingConfig{
			TopN:           getEnvAsInt("MATCH_TOP_N", 3),
			PeopleRatio:    getEnv("SIZE_PEOPLE_RATIO", "point"),
			EmotionFormula: getEnv("EMOTION_SCORE_FORMULA", "composite"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		OpenAI: OpenAIConfig{
			APIKey:          getEnv("OPENAI_API_KEY", ""),
			ChatModel:       getEnv("OPENAI_CHAT_MODEL", "gpt-4-turbo-preview"),
			WhisperModel:    getEnv("OPENAI_WHISPER_MODEL", "whisper-1"),
			ChatTemperature: getEnvAsFloat("OPENAI_CHAT_TEMPERATURE", 0.7),
			ChatTopP:        getEnvAsFloat("OPENAI_CHAT_TOP_P", 1.0),
			ChatMaxTokens:   getEnvAsInt("OPENAI_CHAT_MAX_TOKENS", 4096),
			Timeout:         getEnvAsInt("OPENAI_TIMEOUT", 30),
			RateLimit:       getEnvAsFloat("OPENAI_RATE_LIMIT", 3),
			RateBurst:       getEnvAsInt("OPENAI_RATE_BURST", 5),
			Enabled:         getEnv("OPENAI_API_KEY", "") != "",
		},
	}

	return cfg, nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float value for %s, using default %f", key, defaultValue)
		return defaultValue
	}
	return value
}
