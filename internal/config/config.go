package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	HistoryBackendMemory = "memory"
	HistoryBackendRedis  = "redis"
)

type Config struct {
	Server  ServerConfig
	OpenAI  OpenAIConfig
	History HistoryConfig
	Redis   RedisConfig
	Log     LogConfig
}

type ServerConfig struct {
	Port            string        `env:"SERVER_PORT" envDefault:"8080"`
	Timeout         time.Duration `env:"SERVER_TIMEOUT" envDefault:"3m"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	ThrottleLimit   int           `env:"SERVER_THROTTLE_LIMIT" envDefault:"50"`
	MaxBodyBytes    int64         `env:"SERVER_MAX_BODY_BYTES" envDefault:"10485760"`
}

type OpenAIConfig struct {
	APIKey       string        `env:"OPENAI_API_KEY,required,notEmpty"`
	BaseURL      string        `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	TextModel    string        `env:"OPENAI_TEXT_MODEL" envDefault:"gpt-4o-mini"`
	ImageModel   string        `env:"OPENAI_IMAGE_MODEL" envDefault:"gpt-image-1"`
	TextTimeout  time.Duration `env:"OPENAI_TEXT_TIMEOUT" envDefault:"45s"`
	ImageTimeout time.Duration `env:"OPENAI_IMAGE_TIMEOUT" envDefault:"60s"`
	Temperature  float64       `env:"OPENAI_TEMPERATURE" envDefault:"1"`
}

type HistoryConfig struct {
	Backend string        `env:"HISTORY_BACKEND" envDefault:"memory"`
	Limit   int           `env:"HISTORY_LIMIT" envDefault:"10"`
	TTL     time.Duration `env:"HISTORY_TTL" envDefault:"1h"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"redis:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type LogConfig struct {
	Level       string `env:"LOG_LEVEL" envDefault:"info"`
	Development bool   `env:"LOG_DEVELOPMENT" envDefault:"false"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.History.Backend {
	case HistoryBackendMemory, HistoryBackendRedis:
	default:
		return fmt.Errorf("unsupported history backend {%s}", c.History.Backend)
	}
	if c.History.Limit <= 0 {
		return fmt.Errorf("history limit must be positive, got %d", c.History.Limit)
	}
	if c.OpenAI.TextTimeout <= 0 || c.OpenAI.ImageTimeout <= 0 {
		return fmt.Errorf("openai stage timeouts must be positive")
	}
	if c.History.TTL <= 0 {
		return fmt.Errorf("history ttl must be positive, got %v", c.History.TTL)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body size must be positive, got %d", c.Server.MaxBodyBytes)
	}
	return nil
}
