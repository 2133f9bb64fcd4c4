// solar-ingest - load the per-country irradiance CSVs into the dashboard stores
//
// Reads benin_clean.csv, sierra_leone_clean.csv and togo_clean.csv (or their
// .csv.gz variants) from -data-dir and replaces the contents of the SQLite
// and/or ClickHouse observation tables with them.
//
// Build: CGO_ENABLED=0 go build -ldflags="-s -w" -o build/solar-ingest ./cmd/solar-ingest

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Danielmituku/solar-challenge-week0/internal/database"
	"github.com/Danielmituku/solar-challenge-week0/internal/dataset"
	"github.com/Danielmituku/solar-challenge-week0/internal/ingest"
	"github.com/Danielmituku/solar-challenge-week0/internal/middleware"
	"github.com/Danielmituku/solar-challenge-week0/internal/models"
	"github.com/Danielmituku/solar-challenge-week0/internal/repository"
)

// Version can be overridden at build time via -ldflags
var Version = "1.0.0"

func main() {
	dataDir := flag.String("data-dir", "data", "Directory holding the cleaned country CSVs")
	dbPath := flag.String("db", "./data/solar.db", "SQLite database path (empty to skip)")
	useCH := flag.Bool("clickhouse", false, "Also load into ClickHouse")
	chHost := flag.String("ch-host", "127.0.0.1:9000", "ClickHouse address")
	chDB := flag.String("ch-db", "default", "ClickHouse database")
	chUser := flag.String("ch-user", "default", "ClickHouse user")
	chPassword := flag.String("ch-password", "", "ClickHouse password")
	chTable := flag.String("ch-table", "solar_observations", "ClickHouse table")
	dryRun := flag.Bool("dry-run", false, "Parse and report only, write nothing")
	verify := flag.Bool("verify", true, "Read the SQLite rows back and check the counts")
	issueToken := flag.Bool("issue-admin-token", false, "Print an admin JWT signed with $JWT_SECRET and exit")
	tokenTTL := flag.Duration("token-ttl", 24*time.Hour, "Lifetime of the issued admin token")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "solar-ingest v%s - Solar Irradiance Ingester\n\n", Version)
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Loads the Benin, Sierra Leone and Togo irradiance CSVs into SQLite and/or ClickHouse.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *issueToken {
		token, err := middleware.IssueToken(os.Getenv("JWT_SECRET"), "solar-ingest", middleware.AdminRole, *tokenTTL)
		if err != nil {
			log.Fatalf("Cannot issue token: %v", err)
		}
		fmt.Println(token)
		return
	}

	log.Println("=========================================================")
	log.Printf("Solar Ingest v%s", Version)
	log.Println("=========================================================")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var sinks []ingest.Sink
	var repo *repository.ObservationRepository

	if !*dryRun && *dbPath != "" {
		db, err := database.OpenSQLite(*dbPath)
		if err != nil {
			log.Fatalf("SQLite open failed: %v", err)
		}
		defer db.Close()
		repo = repository.NewObservationRepository(db)
		sinks = append(sinks, repo)
		log.Printf("SQLite:     %s", *dbPath)
	}

	if !*dryRun && *useCH {
		log.Printf("Connecting to ClickHouse at %s...", *chHost)
		w, err := ingest.DialClickHouse(ctx, *chHost, *chDB, *chUser, *chPassword, *chTable)
		if err != nil {
			log.Fatalf("ClickHouse connection failed: %v", err)
		}
		defer w.Close()
		sinks = append(sinks, w)
		log.Printf("ClickHouse: %s.%s", *chDB, *chTable)
	}

	if *dryRun {
		log.Println("Dry run: nothing will be written")
	} else if len(sinks) == 0 {
		log.Fatal("No destination: set -db and/or -clickhouse")
	}

	startTime := time.Now()
	report, err := ingest.Run(ctx, dataset.NewLoader(*dataDir), sinks...)
	if err != nil {
		log.Fatalf("Ingest failed: %v", err)
	}

	if repo != nil && *verify {
		if err := ingest.Verify(ctx, repo, report); err != nil {
			log.Fatalf("Verification failed: %v", err)
		}
	}

	if repo != nil {
		if err := repo.RecordRun(ctx, report.Source, report.Records, startTime, time.Now()); err != nil {
			log.Printf("Could not record ingest run: %v", err)
		}
	}

	elapsed := time.Since(startTime)

	log.Println()
	log.Println("=========================================================")
	log.Println("Final Statistics")
	log.Println("=========================================================")
	for _, c := range models.AllCountries {
		log.Printf("%-13s %d rows", c+":", report.ByCountry[c])
	}
	log.Printf("Total Records: %d", report.Records)
	log.Printf("Destinations:  %v", report.Sinks)
	log.Printf("Elapsed:       %v", elapsed.Round(time.Millisecond))
	if secs := elapsed.Seconds(); secs > 0 {
		log.Printf("Rate:          %.0f records/sec", float64(report.Records)/secs)
	}
	log.Println("=========================================================")
}
