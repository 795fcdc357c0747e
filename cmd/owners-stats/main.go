package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"

	"github.com/fatih/color"

	"github.com/Quantiphi-INC/Counties-trasform-scripts/pkg/deeds/store/sqlite"
)

type report struct {
	Properties      int64          `json:"properties"`
	Owners          int64          `json:"owners"`
	Persons         int64          `json:"persons"`
	Companies       int64          `json:"companies"`
	Invalids        int64          `json:"invalids"`
	OrphanedParcels int64          `json:"orphaned_parcels"`
	TopSurnames     []surnameEntry `json:"top_surnames"`
	ReviewQueue     []reviewEntry  `json:"review_queue,omitempty"`
}

type surnameEntry struct {
	Surname string `json:"surname"`
	Count   int64  `json:"count"`
}

type reviewEntry struct {
	ParcelID string `json:"parcel_id"`
	Raw      string `json:"raw"`
	Reason   string `json:"reason"`
}

func main() {
	var (
		dbPath  = flag.String("db", "", "Database path (required)")
		top     = flag.Int("top", 10, "How many surnames to rank")
		review  = flag.Int("review", 0, "Include up to N unresolved fragments")
		jsonOut = flag.Bool("json", false, "Emit the report as JSON")
		noColor = flag.Bool("no-color", false, "Disable colored output")
	)
	flag.Parse()

	if *dbPath == "" {
		log.Fatal("--db required")
	}
	if *noColor {
		color.NoColor = true
	}

	ctx := context.Background()

	st, err := sqlite.OpenSQLite(ctx, *dbPath)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer st.Close()

	stats, err := st.Stats(ctx)
	if err != nil {
		log.Fatal("Failed to read stats:", err)
	}

	surnames, err := st.TopSurnames(ctx, *top)
	if err != nil {
		log.Fatal("Failed to rank surnames:", err)
	}

	rep := report{
		Properties:      stats.Properties,
		Owners:          stats.Owners,
		Persons:         stats.Persons,
		Companies:       stats.Companies,
		Invalids:        stats.Invalids,
		OrphanedParcels: stats.OrphanedParcels,
	}
	for _, nc := range surnames {
		rep.TopSurnames = append(rep.TopSurnames, surnameEntry{Surname: nc.Name, Count: nc.Count})
	}

	if *review > 0 {
		rows, err := st.Invalids(ctx, *review)
		if err != nil {
			log.Fatal("Failed to read review queue:", err)
		}
		for _, row := range rows {
			rep.ReviewQueue = append(rep.ReviewQueue, reviewEntry{
				ParcelID: row.ParcelID,
				Raw:      row.Raw,
				Reason:   row.Reason,
			})
		}
	}

	if *jsonOut {
		out, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			log.Fatal("Failed to marshal report:", err)
		}
		fmt.Println(string(out))
		return
	}

	printReport(rep)
}

func printReport(rep report) {
	header := color.New(color.FgWhite, color.Bold)

	header.Println("Deed ownership corpus")
	fmt.Printf("  properties        %d\n", rep.Properties)
	fmt.Printf("  owners            %d (%d persons, %d companies)\n", rep.Owners, rep.Persons, rep.Companies)
	fmt.Printf("  invalid fragments %d\n", rep.Invalids)
	fmt.Printf("  orphaned parcels  %d\n", rep.OrphanedParcels)

	if len(rep.TopSurnames) > 0 {
		header.Println("Top surnames")
		for i, s := range rep.TopSurnames {
			fmt.Printf("  %2d. %-20s %d\n", i+1, s.Surname, s.Count)
		}
	}

	if len(rep.ReviewQueue) > 0 {
		header.Println("Review queue")
		warn := color.New(color.FgRed)
		for _, r := range rep.ReviewQueue {
			warn.Printf("  %-14s %q (%s)\n", r.ParcelID, r.Raw, r.Reason)
		}
	}
}
