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

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "student")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := commands.StudentRootCmd(commands.NewApp(cfg, log)).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		_ = log.Sync()
		os.Exit(1)
	}
}
