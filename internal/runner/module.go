package runner

import (
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/petasbytes/retail-agent/internal/config"
	"github.com/petasbytes/retail-agent/internal/telemetry"
	"github.com/petasbytes/retail-agent/tools"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Module() fx.Option {
	return fx.Module(
		"runner",
		fx.Provide(func(client *anthropic.Client, cfg config.Config, logger *zap.Logger, rec *telemetry.Recorder) *Runner {
			return New(client, tools.Registry(),
				WithModel(anthropic.Model(cfg.Model)),
				WithMaxTokens(cfg.MaxTokens),
				WithMaxToolRounds(cfg.MaxToolRounds),
				WithTokenBudget(cfg.TokenBudget),
				WithLogger(logger.Named("runner")),
				WithRecorder(rec),
			)
		}),
	)
}
