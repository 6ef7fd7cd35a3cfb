// Command zakatku-export writes the full record set to a CSV or Excel file
// straight from the database, for offline archiving or hand-off to the
// mosque administration.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"zakatku/internal/cli"
	"zakatku/internal/export"
)

func main() {
	format := flag.String("format", "xlsx", "output format: csv or xlsx")
	out := flag.String("out", "", "output file (default data-zakat-<date>.<format>)")
	flag.Parse()

	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	if *format != "csv" && *format != "xlsx" {
		logger.Error("Unsupported format", "format", *format)
		os.Exit(1)
	}

	cfg := cli.LoadAndValidateConfig(logger)

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	recs, err := repo.ListRecords(ctx)
	if err != nil {
		logger.Error("Failed to load records", "error", err)
		os.Exit(1)
	}

	path := *out
	if path == "" {
		path = fmt.Sprintf("data-zakat-%s.%s", time.Now().Format("20060102"), *format)
	}

	f, err := os.Create(path)
	if err != nil {
		logger.Error("Failed to create output file", "error", err, "path", path)
		os.Exit(1)
	}
	defer f.Close()

	switch *format {
	case "csv":
		err = export.WriteCSV(f, recs)
	case "xlsx":
		err = export.WriteXLSX(f, recs)
	}
	if err != nil {
		logger.Error("Export failed", "error", err, "format", *format)
		os.Exit(1)
	}

	logger.Info("Export complete", "path", path, "records", len(recs), "format", *format)
}
