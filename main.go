package main

import (
	"flag"
	"fmt"
	"os"

	"ordering/cmd"
	"ordering/config"
	"ordering/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Log, cfg.App.Env); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	app, err := cmd.NewBuilder(cfg).Build()
	if err != nil {
		logger.Error("Application startup failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}

	if err := app.Run(); err != nil {
		logger.Error("Application exited with error", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}
