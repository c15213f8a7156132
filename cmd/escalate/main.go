// Command escalate performs a single escalation scan and exits. It is
// intended for an external scheduler, or for operators replaying a scan at a
// given instant.
//
// Usage:
//
//	escalate [--now=2025-03-01T12:00:00Z]
//
// Exit codes: 0 = scan completed (individual failures are logged),
// 1 = the scan could not run.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/correspondence-backend/internal/app"
	"github.com/heartmarshall/correspondence-backend/internal/config"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (default: $CONFIG_PATH or ./config.yaml)")
	nowFlag := flag.String("now", "", "scan instant in RFC 3339 (default: current time)")
	flag.Parse()

	now := time.Now().UTC()
	if *nowFlag != "" {
		t, err := time.Parse(time.RFC3339, *nowFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid --now %q: %v\n", *nowFlag, err)
			os.Exit(1)
		}
		now = t.UTC()
	}

	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("initialize", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer a.Close()

	res, err := a.ScanOnce(ctx, now)
	if err != nil {
		logger.Error("escalation scan failed", slog.String("error", err.Error()))
		a.Close()
		os.Exit(1)
	}

	fmt.Printf("scanned=%d processed=%d throttled=%d skipped=%d failed=%d\n",
		res.Scanned, res.Processed, res.Throttled, res.Skipped, res.Failed)
}
