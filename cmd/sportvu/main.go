package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/sportvu/internal/config"
	"github.com/okian/sportvu/pkg/logger"
	"github.com/okian/sportvu/pkg/metrics"
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Use plain stderr since the logger isn't available yet
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Initialize logging; reports own stdout
	if err := logger.Init(logger.WithWriter(os.Stderr), logger.WithJSON(cfg.LogFormat == "json")); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	loggerInstance := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	app := newApp(&runner{cfg: cfg, out: os.Stdout})
	runErr := app.RunContext(ctx, os.Args)

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			loggerInstance.Error(ctx, "failed to write metrics", logger.String("path", cfg.MetricsFile), logger.Error(err))
		}
	}
	_ = logger.Sync()

	if runErr != nil {
		os.Stderr.WriteString("error: " + runErr.Error() + "\n")
		os.Exit(1)
	}
}
