package main

import (
	"context"
	"database/sql"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"customer-ledger/internal/cli"
	"customer-ledger/internal/config"
	"customer-ledger/internal/repository"
	"customer-ledger/internal/service"
)

func main() {
	logger := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("failed to load configuration: %v", err)
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warnf("unknown log level %q, using info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	if cfg.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	db, err := sql.Open("sqlite3", cfg.DBPath)
	if err != nil {
		logger.Fatalf("failed to open database %s: %v", cfg.DBPath, err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatalf("failed to reach database %s: %v", cfg.DBPath, err)
	}

	ctx := context.Background()

	// Without its schema the ledger cannot serve anything; a failure
	// here ends the process before any operation runs.
	if err := repository.EnsureSchema(ctx, db, logger); err != nil {
		logger.Fatalf("schema initialization failed: %v", err)
	}

	customers := repository.NewCustomerRepository(db, logger)
	transactions := repository.NewTransactionRepository(db, logger)
	ledger := service.NewLedger(db, customers, transactions, logger)

	root := cli.New(ledger)
	if err := root.ExecuteContext(ctx); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
