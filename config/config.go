package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port   string
	DBPath string

	EmbEndpoint  string
	EmbAPIKey    string
	EmbModel     string
	EmbBatchSize int

	ChunkSize    int
	ChunkOverlap int

	LLMEndpoint string
	LLMAPIKey   string
	LLMModel    string
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	getInt := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}

	cfg := AppConfig{
		Port:         get("PORT", "8080"),
		DBPath:       get("DB_PATH", "vyron.db"),
		EmbEndpoint:  get("EMB_ENDPOINT", "https://api.openai.com"),
		EmbAPIKey:    get("EMB_API_KEY", os.Getenv("OPENAI_API_KEY")),
		EmbModel:     get("EMB_MODEL", "text-embedding-3-small"),
		EmbBatchSize: getInt("EMB_BATCH_SIZE", 50),
		ChunkSize:    getInt("CHUNK_SIZE", 1000),
		ChunkOverlap: getInt("CHUNK_OVERLAP", 150),
		LLMEndpoint:  get("LLM_ENDPOINT", "https://api.openai.com"),
		LLMAPIKey:    get("LLM_API_KEY", os.Getenv("OPENAI_API_KEY")),
		LLMModel:     get("LLM_MODEL", "gpt-4o-mini"),
	}
	log.Printf("[cfg] port=%s db=%s emb_model=%s chunk=%d/%d batch=%d",
		cfg.Port, cfg.DBPath, cfg.EmbModel, cfg.ChunkSize, cfg.ChunkOverlap, cfg.EmbBatchSize)
	return cfg
}
