package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Quantiphi-INC/Counties-trasform-scripts/internal/records"
)

func main() {
	var (
		base    = flag.String("base", "", "Base URL of the county parcel site (required)")
		parcels = flag.String("parcels", "", "File of parcel IDs, one per line (required)")
		out     = flag.String("out", "testdata/records/records.jsonl", "Output JSONL path")
		delay   = flag.Duration("delay", 250*time.Millisecond, "Pause between requests")
		timeout = flag.Duration("timeout", 15*time.Second, "Per-request timeout")
	)
	flag.Parse()

	if *base == "" {
		log.Fatal("--base required")
	}
	if *parcels == "" {
		log.Fatal("--parcels required")
	}

	ids, err := readParcelIDs(*parcels)
	if err != nil {
		log.Fatal("Failed to read parcel list:", err)
	}
	if len(ids) == 0 {
		log.Fatalf("No parcel IDs in %s", *parcels)
	}

	log.Printf("Fetching %d parcel records from %s", len(ids), *base)

	if err := os.MkdirAll(filepath.Dir(*out), 0755); err != nil {
		log.Fatal("Failed to create output directory:", err)
	}
	outFile, err := os.Create(*out)
	if err != nil {
		log.Fatal("Failed to create output file:", err)
	}
	defer outFile.Close()

	client := &http.Client{Timeout: *timeout}
	encoder := json.NewEncoder(outFile)
	fetched := 0

	for i, id := range ids {
		url := strings.TrimRight(*base, "/") + "/" + id
		rec, err := fetchRecord(client, url)
		if err != nil {
			log.Printf("Failed to fetch parcel %s: %v", id, err)
			continue
		}

		if err := encoder.Encode(rec); err != nil {
			log.Printf("Failed to encode parcel %s: %v", id, err)
			continue
		}

		fetched++
		if (i+1)%10 == 0 {
			log.Printf("Fetched %d/%d parcels...", fetched, len(ids))
		}

		// Be nice to the county site
		time.Sleep(*delay)
	}

	log.Printf("✓ Fetched %d of %d parcel records to %s", fetched, len(ids), *out)
}

// readParcelIDs loads the parcel list, skipping blanks and # comments
func readParcelIDs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var ids []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ids = append(ids, line)
	}
	return ids, scanner.Err()
}

func fetchRecord(client *http.Client, url string) (*records.Record, error) {
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	rec, err := records.ExtractHTML(resp.Body)
	if err != nil {
		return nil, err
	}
	rec.SourcePath = url
	return rec, nil
}
