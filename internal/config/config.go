package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	coreconfig "github.com/go-core-fx/config"
)

var ErrMissingAPIKey = errors.New("missing ANTHROPIC_API_KEY; export it before running")

// Config is loaded once at startup and passed by value; nothing mutates it afterwards.
type Config struct {
	AnthropicAPIKey    string        `koanf:"anthropic_api_key"`
	Model              string        `koanf:"model"`
	MaxTokens          int64         `koanf:"max_tokens"`
	MaxToolRounds      int           `koanf:"max_tool_rounds"`
	TokenBudget        int           `koanf:"token_budget"`
	HistoryMaxMessages int           `koanf:"history_max_messages"`
	ConversationFile   string        `koanf:"conversation_file"`
	EventsFile         string        `koanf:"events_file"`
	LogFile            string        `koanf:"log_file"`
	Debug              bool          `koanf:"debug"`
	Timeout            time.Duration `koanf:"timeout"`
}

func Default() Config {
	return Config{
		Model:              string(anthropic.ModelClaude3_7SonnetLatest),
		MaxTokens:          1024,
		MaxToolRounds:      8,
		HistoryMaxMessages: 40,
		ConversationFile:   ".agent/conversation.json",
		Timeout:            60 * time.Second,
	}
}

func New() (Config, error) {
	cfg := Default()

	if err := coreconfig.Load(&cfg); err != nil {
		return Config{}, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.AnthropicAPIKey) == "" {
		return ErrMissingAPIKey
	}
	if strings.TrimSpace(c.Model) == "" {
		return errors.New("invalid configuration: model is empty")
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("invalid configuration: max_tokens must be positive, got %d", c.MaxTokens)
	}
	if c.MaxToolRounds <= 0 {
		return fmt.Errorf("invalid configuration: max_tool_rounds must be positive, got %d", c.MaxToolRounds)
	}
	if c.TokenBudget < 0 {
		return fmt.Errorf("invalid configuration: token_budget must not be negative, got %d", c.TokenBudget)
	}
	if c.HistoryMaxMessages < 0 {
		return fmt.Errorf("invalid configuration: history_max_messages must not be negative, got %d", c.HistoryMaxMessages)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid configuration: timeout must be positive, got %s", c.Timeout)
	}
	return nil
}
