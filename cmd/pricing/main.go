package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/wyfcoding/exactpricing/internal/pricing/application"
	"github.com/wyfcoding/exactpricing/pkg/config"
	"github.com/wyfcoding/exactpricing/pkg/logger"
)

const BootstrapName = "pricing"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          BootstrapName,
		Short:        "European option exact pricing (generalized Black-Scholes-Merton)",
		SilenceUsage: true,
	}
	root.PersistentFlags().String("config", "configs/pricing.toml", "Path to the TOML config file.")
	root.PersistentFlags().String("env-file", ".env", "Optional .env file loaded before the config.")

	root.AddCommand(newServeCmd(), newDemoCmd())
	return root
}

// loadConfig 按 .env -> TOML -> APP_ 环境变量的顺序加载配置并初始化日志
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	envFile, err := cmd.Flags().GetString("env-file")
	if err != nil {
		return nil, err
	}
	if err := config.LoadEnvFile(envFile); err != nil {
		return nil, err
	}
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadWithDefaults(path)
	if err != nil {
		return nil, err
	}

	if err := logger.Init(logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		FilePath:   cfg.Logger.FilePath,
		MaxSize:    cfg.Logger.MaxSize,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAge:     cfg.Logger.MaxAge,
		Compress:   cfg.Logger.Compress,
		WithCaller: cfg.Logger.WithCaller,
	}); err != nil {
		return nil, err
	}
	logger.Debug(context.Background(), "config loaded", "path", path, "environment", cfg.Environment)
	return cfg, nil
}

func serviceOptions(cfg *config.Config) application.Options {
	return application.Options{
		DeltaStep:     cfg.Pricing.DeltaStep,
		GammaStep:     cfg.Pricing.GammaStep,
		MaxMeshPoints: cfg.Pricing.MaxMeshPoints,
		MaxBatchSize:  cfg.Pricing.MaxBatchSize,
	}
}
