package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Quantiphi-INC/Counties-trasform-scripts/pkg/deeds/internalerr"
	"github.com/Quantiphi-INC/Counties-trasform-scripts/pkg/deeds/store"
)

// Store is an in-memory implementation of store.Store for tests and
// small one-shot runs.
type Store struct {
	mu         sync.RWMutex
	properties map[string]store.Property
	owners     map[string][]store.OwnerRow
	invalids   map[string][]store.InvalidRow
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		properties: make(map[string]store.Property),
		owners:     make(map[string][]store.OwnerRow),
		invalids:   make(map[string][]store.InvalidRow),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// UpsertProperty writes the parcel and replaces its owners and invalids.
func (s *Store) UpsertProperty(ctx context.Context, p store.Property, owners []store.OwnerRow, invalids []store.InvalidRow) error {
	if p.ParcelID == "" {
		return fmt.Errorf("parcel id: %w", internalerr.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.properties[p.ParcelID] = p
	s.owners[p.ParcelID] = copyOwners(owners)
	s.invalids[p.ParcelID] = copyInvalids(invalids)
	return nil
}

// GetProperty returns a parcel record by id.
func (s *Store) GetProperty(ctx context.Context, parcelID string) (store.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.properties[parcelID]; ok {
		return p, nil
	}
	return store.Property{}, fmt.Errorf("parcel %s: %w", parcelID, internalerr.ErrNotFound)
}

// CurrentOwners returns owners parsed from the record's owner field.
func (s *Store) CurrentOwners(ctx context.Context, parcelID string) ([]store.OwnerRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []store.OwnerRow
	for _, r := range s.owners[parcelID] {
		if r.RecordDate == "" {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// History returns dated grantee rows, newest first.
func (s *Store) History(ctx context.Context, parcelID string) ([]store.OwnerRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []store.OwnerRow
	for _, r := range s.owners[parcelID] {
		if r.RecordDate != "" {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RecordDate != out[j].RecordDate {
			return out[i].RecordDate > out[j].RecordDate
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Invalids returns unresolved fragments across all parcels, oldest first.
func (s *Store) Invalids(ctx context.Context, limit int) ([]store.InvalidRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}

	var out []store.InvalidRow
	for _, rows := range s.invalids {
		out = append(out, rows...)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// TopSurnames returns the most frequent person surnames.
func (s *Store) TopSurnames(ctx context.Context, k int) ([]store.NameCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if k <= 0 {
		k = 10
	}

	counts := make(map[string]int64)
	for _, rows := range s.owners {
		for _, r := range rows {
			if r.Kind == "person" && r.LastName != "" {
				counts[r.LastName]++
			}
		}
	}

	out := make([]store.NameCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, store.NameCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > k {
		out = out[:k]
	}
	return out, nil
}

// Stats summarizes the stored corpus.
func (s *Store) Stats(ctx context.Context) (store.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var st store.Stats
	st.Properties = int64(len(s.properties))
	for parcel := range s.properties {
		if len(s.owners[parcel]) == 0 {
			st.OrphanedParcels++
		}
	}
	for _, rows := range s.owners {
		for _, r := range rows {
			st.Owners++
			switch r.Kind {
			case "person":
				st.Persons++
			case "company":
				st.Companies++
			}
		}
	}
	for _, rows := range s.invalids {
		st.Invalids += int64(len(rows))
	}
	return st, nil
}

func copyOwners(rows []store.OwnerRow) []store.OwnerRow {
	out := make([]store.OwnerRow, len(rows))
	copy(out, rows)
	return out
}

func copyInvalids(rows []store.InvalidRow) []store.InvalidRow {
	out := make([]store.InvalidRow, len(rows))
	copy(out, rows)
	return out
}
