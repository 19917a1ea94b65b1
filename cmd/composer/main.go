// ====================================
// File: cmd/composer/main.go
// ====================================
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/rovshanmuradov/solana-composer/internal/trader"
	"github.com/rovshanmuradov/solana-composer/internal/utils/logger"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	logCfg := logger.DefaultConfig()
	logCfg.Development = *debug
	log, err := logger.New(logCfg)
	if err != nil {
		os.Exit(1)
	}
	defer log.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("Starting trade composer")

	runner := trader.NewRunner(log)
	if err := runner.Initialize(*configPath); err != nil {
		log.Error("Failed to initialize", zap.Error(err))
		os.Exit(1)
	}

	if err := runner.Run(ctx); err != nil {
		log.Error("Trade execution failed", zap.Error(err))
		os.Exit(1)
	}

	log.Info("Trade completed")
}
