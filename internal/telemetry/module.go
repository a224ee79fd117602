package telemetry

import (
	"context"

	"github.com/petasbytes/retail-agent/internal/config"
	"github.com/petasbytes/retail-agent/internal/logging"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"telemetry",
		fx.Provide(func(lc fx.Lifecycle, cfg config.Config) (*Recorder, error) {
			file, err := logging.OpenFile(cfg.EventsFile)
			if err != nil {
				return nil, err
			}
			if file == nil {
				return NewRecorder(nil), nil
			}
			rec := NewRecorder(file)
			lc.Append(fx.Hook{
				OnStop: func(_ context.Context) error {
					_ = rec.Sync()
					return file.Close()
				},
			})
			return rec, nil
		}),
	)
}
