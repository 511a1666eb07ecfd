// Command export fetches all six sources once, summarizes them, and
// writes the summary tables as CSV files and an xlsx workbook.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"opsdash/internal/config"
	"opsdash/internal/dataprocessing"
	"opsdash/internal/exporter"
	"opsdash/internal/fetch"
	"opsdash/internal/infrastructure"
	"opsdash/internal/services"
	"opsdash/pkg/contracts/domain"
)

func main() {
	outDir := flag.String("out", "exports", "output directory for CSV and xlsx files")
	start := flag.String("start", "", "inclusive start date (YYYY-MM-DD), empty for all")
	end := flag.String("end", "", "inclusive end date (YYYY-MM-DD), empty for all")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("failed to initialize logger", "error", err)
		os.Exit(1)
	}

	fetcher := fetch.NewClient(fetch.Options{
		BaseURL: cfg.Sheets.BaseURL,
		Timeout: cfg.Fetch.Timeout,
		RPS:     cfg.Fetch.RPS,
		Burst:   cfg.Fetch.Burst,
	}, logger)

	svc := services.NewDashboardService(fetcher, cfg.Sheets.GIDs, nil, logger)

	ctx := context.Background()
	if err := svc.Reload(ctx); err != nil {
		logger.Error("fetch failed", "error", err)
		os.Exit(1)
	}
	snap := svc.Snapshot()

	iv := domain.DateInterval{Start: *start, End: *end}
	tables := buildTables(snap, iv)

	writer := exporter.NewCSVWriter(*outDir)
	if err := writer.WriteTables(tables); err != nil {
		logger.Error("CSV export failed", "error", err)
		os.Exit(1)
	}

	workbook := filepath.Join(*outDir, "dashboard.xlsx")
	if err := exporter.WriteWorkbook(workbook, tables); err != nil {
		logger.Error("workbook export failed", "error", err)
		os.Exit(1)
	}

	logger.Info("export complete",
		"out_dir", *outDir,
		"workbook", workbook,
		"tables", len(tables))
}

func buildTables(snap *services.Snapshot, iv domain.DateInterval) []exporter.Table {
	filteredSheet := domain.ChargebackSheet{
		Summary: snap.Chargebacks.Summary,
		Total:   snap.Chargebacks.Total,
		Details: dataprocessing.FilterByDate(snap.Chargebacks.Details, iv),
	}
	return []exporter.Table{
		exporter.QATable(dataprocessing.FilterByDate(snap.QA, iv)),
		exporter.ProductivityTable(dataprocessing.FilterByDate(snap.Productivity, iv)),
		exporter.CsatTable(dataprocessing.FilterByDate(snap.Csat, iv)),
		exporter.RefundsTable(dataprocessing.FilterByDate(snap.Refunds, iv)),
		exporter.ChargebacksTable(filteredSheet),
		exporter.BusinessTable(dataprocessing.FilterByDate(snap.Business, iv)),
	}
}
