package records

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
)

// Transaction is one recorded transfer on a property record
type Transaction struct {
	Date    string `json:"date"`
	DocType string `json:"doc_type,omitempty"`
	Amount  string `json:"amount,omitempty"`
	Grantee string `json:"grantee"`
}

// Record is the raw text of one county property record, reduced to the
// fields the owner parser consumes
type Record struct {
	ParcelID     string        `json:"parcel_id"`
	Situs        string        `json:"situs,omitempty"`
	County       string        `json:"county,omitempty"`
	OwnerName    string        `json:"owner_name"`
	Transactions []Transaction `json:"transactions,omitempty"`
	SourcePath   string        `json:"source_path,omitempty"`
}

// LoadFromJSONL loads records from a JSONL file with proper error handling
func LoadFromJSONL(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}

	var recs []Record
	lines := strings.Split(string(data), "\n")

	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var rec Record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			log.Printf("Warning: skipping malformed JSON at line %d in %s: %v", i+1, path, err)
			continue
		}
		recs = append(recs, rec)
	}

	if len(recs) == 0 {
		return nil, fmt.Errorf("no valid records found in %s", path)
	}

	return recs, nil
}
