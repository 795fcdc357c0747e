package deeds

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Quantiphi-INC/Counties-trasform-scripts/pkg/deeds/owners"
	"github.com/Quantiphi-INC/Counties-trasform-scripts/pkg/deeds/store/sqlite"
)

// TestEndToEnd demonstrates the complete ledger workflow:
// 1. Parser configuration
// 2. Record ingestion
// 3. Ownership queries
// 4. Corpus statistics
func TestEndToEnd(t *testing.T) {
	ctx := context.Background()

	// === Phase 1: Setup Parser and Store ===

	rules := owners.DefaultRules()
	rules.CompanyIndicators = append(rules.CompanyIndicators, "hoa")

	parser, err := owners.New(rules)
	if err != nil {
		t.Fatalf("Failed to build parser: %v", err)
	}

	st, err := sqlite.OpenSQLite(ctx, filepath.Join(t.TempDir(), "deeds.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}

	l := New(Options{Store: st, Parser: parser})
	defer l.Close()

	// === Phase 2: Ingest Records ===

	recs := []Record{
		{
			ParcelID:  "R0491-002",
			Situs:     "402 E MAIN ST",
			County:    "Tulsa",
			OwnerName: "SMITH JOHN ROBERT & ANN MARIE",
			Transactions: []Transaction{
				{Date: "01/02/2019", DocType: "WD", Amount: "$125,000", Grantee: "PENA JUAN"},
				{Date: "2010-06-15", DocType: "QCD", Grantee: "RIVERBEND ESTATES HOA"},
			},
		},
		{
			ParcelID:  "R0491-003",
			OwnerName: "ACME HOLDINGS LLC",
		},
		{
			ParcelID:  "R0491-004",
			OwnerName: "JOHNSON",
		},
	}

	for _, rec := range recs {
		sum, err := l.IngestRecord(ctx, rec)
		if err != nil {
			t.Fatalf("Failed to ingest parcel %s: %v", rec.ParcelID, err)
		}
		t.Logf("✓ Ingested %s: %d owners, %d invalids", sum.ParcelID, sum.Owners(), sum.Invalids)
	}

	// === Phase 3: Ownership Queries ===

	current, err := l.OwnersOf(ctx, "R0491-002")
	if err != nil {
		t.Fatalf("OwnersOf failed: %v", err)
	}
	if len(current) != 2 {
		t.Fatalf("got %d current owners, want 2", len(current))
	}
	for _, row := range current {
		if row.LastName != "Smith" {
			t.Errorf("shared surname not applied: %+v", row)
		}
	}

	history, err := l.History(ctx, "R0491-002")
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("got %d history rows, want 2", len(history))
	}
	if history[0].RecordDate != "2019-01-02" {
		t.Errorf("history not newest first: %+v", history)
	}
	if history[1].Kind != "company" || history[1].CompanyName != "Riverbend Estates Hoa" {
		t.Errorf("custom indicator did not classify HOA grantee: %+v", history[1])
	}

	t.Logf("✓ Queried current owners and transfer history")

	// === Phase 4: Corpus Statistics ===

	stats, err := l.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Properties != 3 {
		t.Errorf("properties = %d, want 3", stats.Properties)
	}
	if stats.Persons != 3 || stats.Companies != 2 {
		t.Errorf("stats = %+v, want 3 persons and 2 companies", stats)
	}
	if stats.Invalids != 1 {
		t.Errorf("invalids = %d, want 1", stats.Invalids)
	}
	if stats.OrphanedParcels != 1 {
		t.Errorf("orphaned parcels = %d, want 1 (lone-surname record)", stats.OrphanedParcels)
	}

	surnames, err := l.TopSurnames(ctx, 5)
	if err != nil {
		t.Fatalf("TopSurnames failed: %v", err)
	}
	if len(surnames) == 0 || surnames[0].Name != "Smith" || surnames[0].Count != 2 {
		t.Errorf("top surnames = %+v, want Smith x2 first", surnames)
	}

	invalids, err := l.Invalids(ctx, 10)
	if err != nil {
		t.Fatalf("Invalids failed: %v", err)
	}
	if len(invalids) != 1 || invalids[0].Raw != "JOHNSON" {
		t.Errorf("invalids = %+v, want the lone JOHNSON fragment", invalids)
	}

	t.Logf("✓ Stats over %d properties, %d owners", stats.Properties, stats.Owners)
}
