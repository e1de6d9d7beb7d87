package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Server.Port)
	}
	if cfg.History.Backend != HistoryBackendMemory {
		t.Fatalf("expected memory history backend, got %q", cfg.History.Backend)
	}
	if cfg.History.Limit != 10 {
		t.Fatalf("expected history limit 10, got %d", cfg.History.Limit)
	}
	if cfg.OpenAI.TextTimeout != 45*time.Second {
		t.Fatalf("expected text timeout 45s, got %v", cfg.OpenAI.TextTimeout)
	}
	if cfg.History.TTL != time.Hour {
		t.Fatalf("expected history ttl 1h, got %v", cfg.History.TTL)
	}
	if cfg.Server.MaxBodyBytes != 10<<20 {
		t.Fatalf("expected 10MiB body limit, got %d", cfg.Server.MaxBodyBytes)
	}
}

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without OPENAI_API_KEY")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("HISTORY_BACKEND", "redis")
	t.Setenv("HISTORY_LIMIT", "3")
	t.Setenv("OPENAI_IMAGE_TIMEOUT", "5s")
	t.Setenv("HISTORY_TTL", "15m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.History.Backend != HistoryBackendRedis || cfg.History.Limit != 3 {
		t.Fatalf("unexpected history config: %+v", cfg.History)
	}
	if cfg.History.TTL != 15*time.Minute {
		t.Fatalf("expected history ttl 15m, got %v", cfg.History.TTL)
	}
	if cfg.OpenAI.ImageTimeout != 5*time.Second {
		t.Fatalf("expected image timeout 5s, got %v", cfg.OpenAI.ImageTimeout)
	}
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Server:  ServerConfig{MaxBodyBytes: 1 << 20},
			OpenAI:  OpenAIConfig{TextTimeout: time.Second, ImageTimeout: time.Second},
			History: HistoryConfig{Backend: HistoryBackendMemory, Limit: 10, TTL: time.Minute},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "unknown backend", mutate: func(c *Config) { c.History.Backend = "sqlite" }, wantErr: true},
		{name: "zero limit", mutate: func(c *Config) { c.History.Limit = 0 }, wantErr: true},
		{name: "zero text timeout", mutate: func(c *Config) { c.OpenAI.TextTimeout = 0 }, wantErr: true},
		{name: "memory without ttl", mutate: func(c *Config) { c.History.TTL = 0 }, wantErr: true},
		{name: "redis without ttl", mutate: func(c *Config) {
			c.History.Backend = HistoryBackendRedis
			c.History.TTL = 0
		}, wantErr: true},
		{name: "zero body limit", mutate: func(c *Config) { c.Server.MaxBodyBytes = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
