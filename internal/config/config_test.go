package config_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/petasbytes/retail-agent/internal/config"
)

func TestDefault_NeedsOnlyAPIKey(t *testing.T) {
	cfg := config.Default()
	if err := cfg.Validate(); !errors.Is(err, config.ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
	cfg.AnthropicAPIKey = "test-key"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults with a key should be valid: %v", err)
	}
}

func TestValidate_Bounds(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"blank key", func(c *config.Config) { c.AnthropicAPIKey = "  " }, "ANTHROPIC_API_KEY"},
		{"empty model", func(c *config.Config) { c.Model = "" }, "model is empty"},
		{"zero max tokens", func(c *config.Config) { c.MaxTokens = 0 }, "max_tokens"},
		{"zero tool rounds", func(c *config.Config) { c.MaxToolRounds = 0 }, "max_tool_rounds"},
		{"negative token budget", func(c *config.Config) { c.TokenBudget = -5 }, "token_budget"},
		{"negative history", func(c *config.Config) { c.HistoryMaxMessages = -1 }, "history_max_messages"},
		{"zero timeout", func(c *config.Config) { c.Timeout = 0 * time.Second }, "timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.AnthropicAPIKey = "test-key"
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}
