package provider

import (
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/petasbytes/retail-agent/internal/config"
	"go.uber.org/zap"
)

// NewAnthropicClient returns a client using the API key and timeout from cfg.
func NewAnthropicClient(cfg config.Config, logger *zap.Logger, opts ...option.RequestOption) *anthropic.Client {
	logger.Named("provider").Debug("anthropic client configured",
		zap.String("model", cfg.Model),
		zap.Duration("timeout", cfg.Timeout),
	)
	base := []option.RequestOption{
		option.WithAPIKey(cfg.AnthropicAPIKey),
		option.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	}
	c := anthropic.NewClient(append(base, opts...)...)
	return &c
}

const DefaultModel = anthropic.ModelClaude3_7SonnetLatest
