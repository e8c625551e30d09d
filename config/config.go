package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// LLMConfig holds the connection settings for the chat-completion backend.
type LLMConfig struct {
	BaseURL     string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// BotServiceConfig configures the expense processing service.
type BotServiceConfig struct {
	Port           string
	DatabaseURL    string
	MaxDBConns     int
	InternalAPIKey string
	LogLevel       string
	LLM            LLMConfig
}

// ConnectorConfig configures the Telegram connector service.
type ConnectorConfig struct {
	Port           string
	TelegramToken  string
	BotServiceURL  string
	InternalAPIKey string
	RequestTimeout time.Duration
	LogLevel       string
}

// LoadBotService reads the bot service configuration from the environment.
func LoadBotService() (*BotServiceConfig, error) {
	loadDotenv()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	return &BotServiceConfig{
		Port:           envOr("BOT_SERVICE_PORT", "8000"),
		DatabaseURL:    dbURL,
		MaxDBConns:     envIntOr("DB_MAX_CONNS", 10),
		InternalAPIKey: os.Getenv("INTERNAL_API_KEY"),
		LogLevel:       envOr("LOG_LEVEL", "info"),
		LLM: LLMConfig{
			BaseURL:     envOr("OLLAMA_BASE_URL", "http://ollama:11434"),
			Model:       envOr("OLLAMA_MODEL", "llama2"),
			Temperature: 0,
			Timeout:     envDurationOr("LLM_TIMEOUT", 60*time.Second),
		},
	}, nil
}

// LoadConnector reads the connector configuration from the environment.
func LoadConnector() (*ConnectorConfig, error) {
	loadDotenv()

	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is required")
	}

	return &ConnectorConfig{
		Port:           envOr("CONNECTOR_SERVICE_PORT", "8001"),
		TelegramToken:  token,
		BotServiceURL:  envOr("BOT_SERVICE_URL", "http://bot-service:8000"),
		InternalAPIKey: os.Getenv("INTERNAL_API_KEY"),
		RequestTimeout: envDurationOr("BOT_SERVICE_TIMEOUT", 60*time.Second),
		LogLevel:       envOr("LOG_LEVEL", "info"),
	}, nil
}

func loadDotenv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}
