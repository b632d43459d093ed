package main

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds environment-based configuration for the MCP server
type Config struct {
	OpenAIAPIKey string
	OpenAIModel  string

	// AWSDefaultRegion is used when a credential bundle carries no region
	AWSDefaultRegion string

	LogLevel string
}

// LoadConfig reads configuration from a .env file (if present) and the
// environment
func LoadConfig() *Config {
	// a missing .env file is fine, the environment still applies
	_ = godotenv.Load()

	return &Config{
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:      os.Getenv("OPENAI_MODEL"),
		AWSDefaultRegion: getEnvOrDefault("AWS_DEFAULT_REGION", "us-east-1"),
		LogLevel:         getEnvOrDefault("LOG_LEVEL", "info"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
