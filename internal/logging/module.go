package logging

import (
	"context"

	"github.com/petasbytes/retail-agent/internal/config"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module tees the application logger into cfg.LogFile. The decorator is
// registered at the root scope; inside an fx.Module it would only reach that
// module's own constructors.
func Module() fx.Option {
	return fx.Decorate(func(lc fx.Lifecycle, base *zap.Logger, cfg config.Config) (*zap.Logger, error) {
		file, err := OpenFile(cfg.LogFile)
		if err != nil {
			return nil, err
		}
		if file == nil {
			return base, nil
		}
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				return file.Close()
			},
		})
		return AttachFile(base, file, cfg.Debug), nil
	})
}
