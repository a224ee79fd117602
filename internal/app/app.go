// Package app assembles the interactive agent from its fx modules.
package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-core-fx/logger"
	"github.com/petasbytes/retail-agent/internal/cli"
	"github.com/petasbytes/retail-agent/internal/config"
	"github.com/petasbytes/retail-agent/internal/logging"
	"github.com/petasbytes/retail-agent/internal/provider"
	"github.com/petasbytes/retail-agent/internal/runner"
	"github.com/petasbytes/retail-agent/internal/telemetry"
	"go.uber.org/fx"
)

func Run() error {
	var session *cli.Session

	app := fx.New(
		logger.Module(),
		logger.WithFxDefaultLogger(),
		config.Module(),
		logging.Module(),
		telemetry.Module(),
		provider.Module(),
		runner.Module(),
		cli.Module(),
		fx.Populate(&session),
	)
	if err := app.Err(); err != nil {
		return err
	}

	// Graceful shutdown on Ctrl-C (SIGINT) / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Start(ctx); err != nil {
		return err
	}
	defer func() {
		_ = app.Stop(context.Background())
	}()

	return session.Run(ctx)
}
