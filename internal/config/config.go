package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Ai       AIConfig
	Search   SearchConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	AiLogFilePath      string
	CorsAllowedOrigins string
	NatsURL            string
	EmbedTopicName     string
	JwtSecret          string
}

type DatabaseConfig struct {
	Connection string
	// Startup ping retries before giving up, no backoff between attempts.
	ConnectRetries int
}

type AIConfig struct {
	EmbeddingProvider string // "ollama"
	OllamaBaseURL     string
	OllamaModel       string
	LLMProvider       string // "ollama", "openai"
	LLMModel          string // e.g. "llama3", "qwen2.5"
	OpenAIBaseURL     string
	OpenAIKey         string
	// Generation parameters for conversational turns.
	LLMTemperature float64
	LLMMaxTokens   int
}

type SearchConfig struct {
	// Minimum similarity a semantic hit must reach, tunable per deploy.
	Certainty float64
	Limit     int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			AiLogFilePath:      getEnv("AI_LOG_FILE_PATH", "ai.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			EmbedTopicName:     getEnv("EMBED_DOCUMENT_TOPIC_NAME", "EMBED_DOCUMENT_CONTENT"),
			JwtSecret:          getEnv("JWT_SECRET", ""),
		},
		Database: DatabaseConfig{
			Connection:     getEnv("DB_CONNECTION_STRING", ""),
			ConnectRetries: getEnvAsInt("DB_CONNECT_RETRIES", 5),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:          getEnv("LLM_MODEL", "llama3"),
			OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", ""),
			OpenAIKey:         getEnv("OPENAI_API_KEY", ""),
			LLMTemperature:    getEnvAsFloat("LLM_TEMPERATURE", 0.7),
			LLMMaxTokens:      getEnvAsInt("LLM_MAX_TOKENS", 1000),
		},
		Search: SearchConfig{
			Certainty: getEnvAsFloat("SEARCH_CERTAINTY", 0.5),
			Limit:     getEnvAsInt("SEARCH_LIMIT", 5),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
