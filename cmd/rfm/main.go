package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/maralthesage/RFM-Pipeline/internal/config"
	"github.com/maralthesage/RFM-Pipeline/internal/server"
	"github.com/maralthesage/RFM-Pipeline/internal/service"
	"github.com/maralthesage/RFM-Pipeline/internal/store"
)

var (
	serve     = flag.Bool("serve", false, "start the HTTP API instead of a batch run")
	port      = flag.Int("port", 0, "HTTP port (overrides config.toml)")
	country   = flag.String("country", "", "score a single country instead of all configured ones")
	reference = flag.String("reference", "", "reference date YYYY-MM-DD (default: today)")
	sourceDir = flag.String("sourceDir", "", "source extract directory (overrides config.toml)")
)

func main() {
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("Failed to load config, using defaults: %v", err)
		cfg = config.DefaultConfig()
	}

	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *sourceDir != "" {
		cfg.Data.SourceDir = *sourceDir
	}

	if *serve {
		runServer(cfg)
		return
	}
	runBatch(cfg)
}

func runServer(cfg *config.AppConfig) {
	srv := server.NewServer(cfg)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		fmt.Printf("Listening on %s ...\n", addr)
		if err := srv.Run(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down...")
	if err := srv.Close(); err != nil {
		log.Printf("Failed to close database: %v", err)
	}
}

func runBatch(cfg *config.AppConfig) {
	ref, err := resolveReference(cfg)
	if err != nil {
		log.Fatalf("Invalid reference date: %v", err)
	}

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(filepath.Join(dataDir, "rfm.db"))
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer st.Close()

	svc := service.New(cfg, st)

	countries := cfg.Business.Countries
	if *country != "" {
		countries = []string{*country}
	}

	for _, c := range countries {
		fmt.Printf("Scoring %s at %s\n", c, ref.Format("2006-01-02"))

		var bar *progressbar.ProgressBar
		progress := func(done, total int) {
			if bar == nil {
				bar = progressbar.Default(int64(total), c)
			}
			_ = bar.Set(done)
		}

		summary, err := svc.RunCountry(c, ref, progress)
		if err != nil {
			log.Fatalf("Run for %s failed: %v", c, err)
		}
		if bar != nil {
			_ = bar.Finish()
		}
		fmt.Printf("%s: period %d, %d customers, run %s\n",
			summary.Country, summary.PeriodNumber, summary.Customers, summary.RunID)
		fmt.Printf("  %s\n  %s\n", summary.SegmentsFile, summary.SummaryFile)
	}
}

func resolveReference(cfg *config.AppConfig) (time.Time, error) {
	raw := *reference
	if raw == "" {
		raw = cfg.Business.ReferenceDate
	}
	if raw == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.ParseInLocation("2006-01-02", raw, time.UTC)
}
