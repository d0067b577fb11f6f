package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"bilancio/internal/config"
	"bilancio/internal/core"
	"bilancio/internal/export"
	applog "bilancio/internal/log"
	"bilancio/internal/storage"
)

func main() {
	budgetFlag := flag.String("budget", "latest", `budget id to export, or "latest" for the most recently saved`)
	formatFlag := flag.String("format", "csv", "output format: csv, json, or pdf")
	outFlag := flag.String("out", "", "output directory (defaults to EXPORT_DIR)")
	flag.Parse()

	// A .env file is optional; deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	logger := applog.Setup(cfg.LogLevel, cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	format, err := export.ParseFormat(*formatFlag)
	if err != nil {
		logger.Error("Invalid format flag", "error", err)
		os.Exit(1)
	}

	outDir := *outFlag
	if outDir == "" {
		outDir = cfg.ExportDir
	}

	store, err := storage.Open(cfg.StorePath)
	if err != nil {
		logger.Error("Failed to open store", "error", err, "path", cfg.StorePath)
		os.Exit(1)
	}
	budgets := storage.NewBudgets(store)

	ctx := context.Background()

	var b core.Budget
	if *budgetFlag == "latest" {
		b, err = budgets.Latest(ctx)
	} else {
		var id uuid.UUID
		id, err = uuid.Parse(*budgetFlag)
		if err == nil {
			b, err = budgets.Get(ctx, id)
		}
	}
	if err != nil {
		logger.Error("Failed to load budget", "error", err, "budget", *budgetFlag)
		os.Exit(1)
	}

	report := export.NewReport(b, time.Now())
	path, err := export.WriteFile(outDir, format, report)
	if err != nil {
		logger.Error("Export failed", "error", err, "format", string(format))
		os.Exit(1)
	}

	logger.Info("Budget exported",
		applog.FieldComponent, applog.ComponentExport,
		applog.FieldBudgetID, b.ID,
		applog.FieldFormat, string(format),
		"path", path)
	fmt.Printf("Exported budget %s to %s\n", b.ID, path)
}
