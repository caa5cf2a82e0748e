package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/beesaferoot/dorm-ledger/internal/commands"
	"github.com/beesaferoot/dorm-ledger/internal/config"
	"github.com/beesaferoot/dorm-ledger/internal/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "dorm")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	rootCmd := commands.RootCmd(commands.NewApp(cfg, log))
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		_ = log.Sync()
		os.Exit(1)
	}
}
