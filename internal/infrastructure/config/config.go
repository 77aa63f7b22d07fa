package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// JWTSecret signs identity tokens; the process must not start without it.
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=1h"`

	// PublicReads restores the legacy token-less read behaviour.
	PublicReads bool `env:"PUBLIC_READS, default=false"`

	ReminderWorkers int           `env:"REMINDER_WORKERS,  default=4"`
	SummaryCacheTTL time.Duration `env:"SUMMARY_CACHE_TTL, default=15m"`

	Mongo  MongoConfig
	Redis  RedisConfig
	OpenAI OpenAIConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, required"`
	Database string `env:"MONGO_DB,  default=patient_records"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type OpenAIConfig struct {
	APIKey  string        `env:"OPENAI_API_KEY"`
	Model   string        `env:"OPENAI_MODEL,   default=gpt-3.5-turbo"`
	Timeout time.Duration `env:"OPENAI_TIMEOUT, default=30s"`
}

// Load reads configuration from environment variables using go-envconfig.
// Missing required values surface as an error; the caller must treat that as
// fatal before serving.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
