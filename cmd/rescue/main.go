package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/wprescue/wp-rescue/config"
	"github.com/wprescue/wp-rescue/internal/api"
	"github.com/wprescue/wp-rescue/internal/logging"
	"github.com/wprescue/wp-rescue/internal/metrics"
	"github.com/wprescue/wp-rescue/internal/plugin"
	"github.com/wprescue/wp-rescue/internal/service"
	"github.com/wprescue/wp-rescue/internal/storage/mysql"
	"github.com/wprescue/wp-rescue/internal/wpconfig"
)

func main() {
	cfg, err := config.GetConfigure()
	if err != nil {
		panic(err)
	}

	logger := logging.NewLogger(cfg.LogFormat)
	logger.WithField("root", cfg.WordPress.Root).
		Warn("emergency plugin rescue running, remove it when the admin interface works again")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var registry *metrics.Registry
	if cfg.Metrics.Enabled {
		registry = metrics.NewRegistry(logger)
	}

	svc := service.NewPluginService(
		wpconfig.NewFileSource(cfg.WordPress.ConfigFile()),
		plugin.NewDirScanner(cfg.WordPress.PluginsDir(), logger),
		mysql.NewConnector(logger),
		logger,
	)

	server := api.NewServer(*cfg, svc, registry, logger)
	if err := server.Start(ctx); err != nil {
		panic(err)
	}
}
