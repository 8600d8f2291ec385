package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Generator backends for dish explanations. GeneratorNone disables the
// external call entirely; every explanation then uses the templated fallback.
const (
	GeneratorGemini = "gemini"
	GeneratorGroq   = "groq"
	GeneratorNone   = "none"
)

// Config holds the configuration for the application.
type Config struct {
	Generator    string
	GeminiAPIKey string
	GroqAPIKey   string

	DatabasePath string
	MenuPath     string // empty means the embedded corpus

	TopK           int
	ExplainTimeout time.Duration
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	cfg := &Config{
		Generator:      GeneratorNone,
		DatabasePath:   "./data/meal-recommender.db",
		TopK:           2,
		ExplainTimeout: 15 * time.Second,
	}

	if gen := os.Getenv("EXPLAIN_GENERATOR"); gen != "" {
		switch gen {
		case GeneratorGemini, GeneratorGroq, GeneratorNone:
			cfg.Generator = gen
		default:
			return nil, fmt.Errorf("EXPLAIN_GENERATOR must be one of gemini, groq, none; got %q", gen)
		}
	}

	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	if cfg.Generator == GeneratorGemini && cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	cfg.GroqAPIKey = os.Getenv("GROQ_API_KEY")
	if cfg.Generator == GeneratorGroq && cfg.GroqAPIKey == "" {
		return nil, fmt.Errorf("GROQ_API_KEY environment variable not set")
	}

	if path := os.Getenv("DATABASE_PATH"); path != "" {
		cfg.DatabasePath = path
	}
	cfg.MenuPath = os.Getenv("MENU_PATH")

	if topK := os.Getenv("TOP_K"); topK != "" {
		k, err := strconv.Atoi(topK)
		if err != nil || k <= 0 {
			return nil, fmt.Errorf("TOP_K must be a positive integer, got %q", topK)
		}
		cfg.TopK = k
	}

	if timeout := os.Getenv("EXPLAIN_TIMEOUT_SECONDS"); timeout != "" {
		secs, err := strconv.Atoi(timeout)
		if err != nil || secs <= 0 {
			return nil, fmt.Errorf("EXPLAIN_TIMEOUT_SECONDS must be a positive integer, got %q", timeout)
		}
		cfg.ExplainTimeout = time.Duration(secs) * time.Second
	}

	return cfg, nil
}
