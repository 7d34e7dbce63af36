package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	configloader "github.com/foxseedlab/jimaku/external/config"
	mediaimpl "github.com/foxseedlab/jimaku/external/media"
	repositoryimpl "github.com/foxseedlab/jimaku/external/repository"
	storageimpl "github.com/foxseedlab/jimaku/external/storage"
	transcriberimpl "github.com/foxseedlab/jimaku/external/transcriber"
	webhookimpl "github.com/foxseedlab/jimaku/external/webhook"
	"github.com/foxseedlab/jimaku/internal/config"
	"github.com/foxseedlab/jimaku/internal/pipeline"
	"github.com/samber/do/v2"
)

func main() {
	slog.Info("startup: loading configuration")
	cfg := mustLoadConfig()
	initLogger(cfg)
	slog.Info("startup: configuration loaded", "env", cfg.Env)

	slog.Info("startup: building dependency graph")
	injector := setupDI(cfg)

	if err := run(cfg, injector); err != nil {
		os.Exit(1)
	}
}

func mustLoadConfig() *config.Config {
	cfg, err := configloader.Load()
	if err != nil {
		slog.Error("config validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

func initLogger(cfg *config.Config) {
	logLevel := slog.LevelInfo
	if cfg.IsDevelopment() {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))
}

func setupDI(cfg *config.Config) do.Injector {
	injector := do.New()

	do.ProvideValue(injector, cfg)
	repositoryimpl.RegisterDI(injector)
	mediaimpl.RegisterDI(injector)
	storageimpl.RegisterDI(injector)
	transcriberimpl.RegisterDI(injector)
	webhookimpl.RegisterDI(injector)
	pipeline.RegisterDI(injector)

	return injector
}

func run(cfg *config.Config, injector do.Injector) error {
	runner, err := do.Invoke[*pipeline.Runner](injector)
	if err != nil {
		slog.Error("failed to resolve pipeline runner", "error", err)
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := runner.Run(ctx, pipeline.JobFromConfig(cfg))
	if err != nil {
		slog.Error("subtitle pipeline failed", "error", err)
		return err
	}
	slog.Info("subtitle pipeline finished", "run_id", result.RunID, "cues", len(result.Cues), "subtitles", cfg.SubtitlePath, "output", cfg.OutputVideoPath)
	return nil
}
