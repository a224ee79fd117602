package cli

import (
	"github.com/petasbytes/retail-agent/internal/config"
	"github.com/petasbytes/retail-agent/internal/runner"
	"github.com/petasbytes/retail-agent/internal/telemetry"
	"github.com/petasbytes/retail-agent/memory"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Module() fx.Option {
	return fx.Module(
		"cli",
		fx.Provide(func(r *runner.Runner, cfg config.Config, logger *zap.Logger, rec *telemetry.Recorder) *Session {
			opts := []Option{
				WithHistoryMax(cfg.HistoryMaxMessages),
				WithLogger(logger.Named("cli")),
				WithRecorder(rec),
			}
			if cfg.ConversationFile != "" {
				opts = append(opts, WithStore(memory.NewStore(cfg.ConversationFile)))
			}
			return NewSession(r, opts...)
		}),
	)
}
