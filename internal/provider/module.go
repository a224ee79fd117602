package provider

import (
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/petasbytes/retail-agent/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Module() fx.Option {
	return fx.Module(
		"provider",
		fx.Provide(func(cfg config.Config, logger *zap.Logger) *anthropic.Client {
			return NewAnthropicClient(cfg, logger)
		}),
	)
}
