package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Quantiphi-INC/Counties-trasform-scripts/internal/records"
	"github.com/Quantiphi-INC/Counties-trasform-scripts/pkg/deeds"
	"github.com/Quantiphi-INC/Counties-trasform-scripts/pkg/deeds/config"
	"github.com/Quantiphi-INC/Counties-trasform-scripts/pkg/deeds/owners"
	"github.com/Quantiphi-INC/Counties-trasform-scripts/pkg/deeds/store/sqlite"
)

func main() {
	var (
		dir        = flag.String("dir", "", "Directory of county record files (required)")
		dbPath     = flag.String("db", "", "Database path (required)")
		configPath = flag.String("config", "", "Optional YAML config with extra parser rules")
		workers    = flag.Int("workers", 4, "Concurrent extraction workers")
	)
	flag.Parse()

	if *dir == "" {
		log.Fatal("--dir required")
	}
	if *dbPath == "" {
		log.Fatal("--db required")
	}
	if *workers < 1 {
		*workers = 1
	}

	ctx := context.Background()

	parser := owners.NewDefault()
	if *configPath != "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Fatal("Failed to load config:", err)
		}
		parser, err = owners.New(cfg.OwnerRules())
		if err != nil {
			log.Fatal("Failed to build parser:", err)
		}
	}

	st, err := sqlite.OpenSQLite(ctx, *dbPath)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}

	ledger := deeds.New(deeds.Options{Store: st, Parser: parser})
	defer ledger.Close()

	paths, err := findRecordFiles(*dir)
	if err != nil {
		log.Fatal("Failed to scan directory:", err)
	}
	if len(paths) == 0 {
		log.Fatalf("No .html, .pdf or .jsonl files under %s", *dir)
	}

	log.Printf("Indexing %d record files with %d workers", len(paths), *workers)
	start := time.Now()

	var tally indexTally
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(*workers)
	for _, path := range paths {
		path := path
		g.Go(func() error {
			indexFile(gctx, ledger, path, &tally)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal("Indexing aborted:", err)
	}

	log.Printf("✓ Indexed %d records from %d files in %s: %d owners, %d invalid fragments, %d failures",
		tally.records, len(paths), time.Since(start).Round(time.Millisecond),
		tally.owners, tally.invalids, tally.failures)
}

func findRecordFiles(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".html", ".htm", ".pdf", ".jsonl":
			paths = append(paths, path)
		}
		return nil
	})
	return paths, err
}

func indexFile(ctx context.Context, ledger *deeds.Ledger, path string, tally *indexTally) {
	recs, err := extract(path)
	if err != nil {
		log.Printf("skip %s: %v", path, err)
		tally.fail()
		return
	}

	for _, rec := range recs {
		if rec.SourcePath == "" {
			rec.SourcePath = path
		}
		sum, err := ledger.IngestRecord(ctx, toLedgerRecord(rec))
		if err != nil {
			log.Printf("skip record %q in %s: %v", rec.ParcelID, path, err)
			tally.fail()
			continue
		}
		tally.add(sum)
	}
}

func extract(path string) ([]records.Record, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		rec, err := records.ExtractHTMLFile(path)
		if err != nil {
			return nil, err
		}
		return []records.Record{*rec}, nil
	case ".pdf":
		rec, err := records.ExtractPDF(path)
		if err != nil {
			return nil, err
		}
		return []records.Record{*rec}, nil
	case ".jsonl":
		return records.LoadFromJSONL(path)
	}
	return nil, fmt.Errorf("unsupported file type: %s", path)
}

func toLedgerRecord(rec records.Record) deeds.Record {
	out := deeds.Record{
		ParcelID:   rec.ParcelID,
		Situs:      rec.Situs,
		County:     rec.County,
		OwnerName:  rec.OwnerName,
		SourcePath: rec.SourcePath,
	}
	for _, tx := range rec.Transactions {
		out.Transactions = append(out.Transactions, deeds.Transaction{
			Date:    tx.Date,
			DocType: tx.DocType,
			Amount:  tx.Amount,
			Grantee: tx.Grantee,
		})
	}
	return out
}

type indexTally struct {
	mu       sync.Mutex
	records  int
	owners   int
	invalids int
	failures int
}

func (t *indexTally) add(sum deeds.Summary) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.records++
	t.owners += sum.Owners()
	t.invalids += sum.Invalids
}

func (t *indexTally) fail() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failures++
}
