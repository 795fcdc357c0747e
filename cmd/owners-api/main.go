package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Quantiphi-INC/Counties-trasform-scripts/internal/httpapi"
	"github.com/Quantiphi-INC/Counties-trasform-scripts/internal/metrics"
	"github.com/Quantiphi-INC/Counties-trasform-scripts/pkg/deeds"
	"github.com/Quantiphi-INC/Counties-trasform-scripts/pkg/deeds/config"
	"github.com/Quantiphi-INC/Counties-trasform-scripts/pkg/deeds/owners"
	"github.com/Quantiphi-INC/Counties-trasform-scripts/pkg/deeds/store"
	"github.com/Quantiphi-INC/Counties-trasform-scripts/pkg/deeds/store/memstore"
	"github.com/Quantiphi-INC/Counties-trasform-scripts/pkg/deeds/store/sqlite"
)

// main wires the ledger behind the HTTP API and keeps the server
// lifecycle small. Parsing and persistence live in pkg/deeds.
func main() {
	var (
		configPath = flag.String("config", "", "Optional YAML config path")
		addr       = flag.String("addr", "", "Listen address (overrides config)")
		dbPath     = flag.String("db", "", "SQLite database path (overrides config)")
	)
	flag.Parse()

	loader := config.Loader{Paths: []string{*configPath}}
	cfg, err := loader.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	if *addr != "" {
		cfg.HTTP.Addr = *addr
	}
	if *dbPath != "" {
		cfg.Store.Driver = "sqlite"
		cfg.Store.DSN = *dbPath
	}

	ctx := context.Background()

	st, err := openStore(ctx, *cfg)
	if err != nil {
		log.Fatal("Failed to open store:", err)
	}

	parser, err := owners.New(cfg.OwnerRules())
	if err != nil {
		log.Fatal("Failed to build parser:", err)
	}

	ledger := deeds.New(deeds.Options{Store: st, Parser: parser})
	defer ledger.Close()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	handler := httpapi.New(ledger, logger, metrics.New())

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      handler.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	logger.Info("starting owners-api", "addr", cfg.HTTP.Addr, "driver", cfg.Store.Driver)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("graceful shutdown failed:", err)
	}
	logger.Info("owners-api stopped")
}

func openStore(ctx context.Context, cfg config.Settings) (store.Store, error) {
	if cfg.Store.Driver == "memory" {
		return memstore.New(), nil
	}
	return sqlite.OpenSQLite(ctx, cfg.Store.DSN)
}
