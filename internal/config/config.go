package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	DatabaseURL  string // optional Postgres DSN; empty means local SQLite file
	DataFile     string // SQLite file backing the key-value store
	AIGatewayURL string
	AIGatewayKey string
	AIModel      string
}

func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Println("[Config] Loaded environment from .env")
	}

	cfg := Config{
		Port:         getEnv("PORT", "8080"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DataFile:     getEnv("DATA_FILE", "neurolearn.db"),
		AIGatewayURL: getEnv("AI_GATEWAY_URL", "https://ai.gateway.lovable.dev/v1/chat/completions"),
		AIGatewayKey: os.Getenv("AI_GATEWAY_KEY"),
		AIModel:      getEnv("AI_MODEL", "google/gemini-2.5-flash"),
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
