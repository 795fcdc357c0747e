package deeds

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/Quantiphi-INC/Counties-trasform-scripts/pkg/deeds/internalerr"
	"github.com/Quantiphi-INC/Counties-trasform-scripts/pkg/deeds/owners"
	"github.com/Quantiphi-INC/Counties-trasform-scripts/pkg/deeds/store"
	"github.com/Quantiphi-INC/Counties-trasform-scripts/pkg/deeds/store/memstore"
)

// Ledger is the main deed ownership facade
type Ledger struct {
	store  store.Store
	parser *owners.Parser
	now    func() time.Time

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// Options configures a Ledger instance
type Options struct {
	Store  store.Store
	Parser *owners.Parser
	Now    func() time.Time
}

// New creates a Ledger with the given dependencies. A nil Store falls
// back to an in-memory store and a nil Parser to the default rules.
func New(opts Options) *Ledger {
	if opts.Store == nil {
		opts.Store = memstore.New()
	}
	if opts.Parser == nil {
		opts.Parser = owners.NewDefault()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Ledger{
		store:   opts.Store,
		parser:  opts.Parser,
		now:     opts.Now,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Close cleanly shuts down the Ledger instance
func (l *Ledger) Close() error {
	return l.store.Close()
}

// ParseOwners classifies a raw owner-name field without persisting
// anything.
func (l *Ledger) ParseOwners(text string) owners.ParseResult {
	return l.parser.Parse(text)
}

// Record represents a property record to be ingested
type Record struct {
	ParcelID     string
	Situs        string
	County       string
	OwnerName    string
	Transactions []Transaction
	SourcePath   string
}

// Transaction is one recorded transfer on a Record
type Transaction struct {
	Date    string
	DocType string
	Amount  string
	Grantee string
}

// Summary reports what one ingested record produced
type Summary struct {
	ParcelID     string
	Persons      int
	Companies    int
	Invalids     int
	Transactions int
}

// Owners returns the total owner rows the record produced
func (s Summary) Owners() int {
	return s.Persons + s.Companies
}

// IngestRecord parses the record's owner field and transaction grantees
// and replaces the parcel's stored rows. Owners repeated across the
// record are written once, first occurrence wins.
func (l *Ledger) IngestRecord(ctx context.Context, rec Record) (Summary, error) {
	parcelID := strings.TrimSpace(rec.ParcelID)
	if parcelID == "" {
		return Summary{}, fmt.Errorf("record has no parcel id: %w", internalerr.ErrInvalidInput)
	}

	now := l.now().UTC()
	prop := store.Property{
		ParcelID:   parcelID,
		Situs:      rec.Situs,
		County:     rec.County,
		SourcePath: rec.SourcePath,
		FetchedAt:  now,
	}

	sum := Summary{ParcelID: parcelID}
	seen := make(map[string]struct{})
	var rows []store.OwnerRow
	var invalids []store.InvalidRow

	collect := func(res owners.ParseResult, recordDate, role string) {
		for _, o := range res.Owners {
			key := owners.Key(o)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			rows = append(rows, store.OwnerRow{
				ID:          l.newID(),
				ParcelID:    parcelID,
				Kind:        string(o.Kind),
				FirstName:   o.FirstName,
				MiddleName:  o.MiddleName,
				LastName:    o.LastName,
				CompanyName: o.CompanyName,
				NormKey:     key,
				RecordDate:  recordDate,
				Role:        role,
				CreatedAt:   now,
			})
			if o.Kind == owners.KindCompany {
				sum.Companies++
			} else {
				sum.Persons++
			}
		}
		for _, inv := range res.Invalids {
			invalids = append(invalids, store.InvalidRow{
				ID:         l.newID(),
				ParcelID:   parcelID,
				Raw:        inv.Raw,
				Reason:     inv.Reason,
				RecordDate: recordDate,
				CreatedAt:  now,
			})
			sum.Invalids++
		}
	}

	collect(l.parser.Parse(rec.OwnerName), "", "owner")

	for _, tx := range rec.Transactions {
		if strings.TrimSpace(tx.Grantee) == "" {
			continue
		}
		collect(l.parser.Parse(tx.Grantee), normalizeDate(tx.Date), "grantee")
		sum.Transactions++
	}

	if err := l.store.UpsertProperty(ctx, prop, rows, invalids); err != nil {
		return Summary{}, fmt.Errorf("persist parcel %s: %w", parcelID, err)
	}
	return sum, nil
}

// Property returns the stored parcel record
func (l *Ledger) Property(ctx context.Context, parcelID string) (store.Property, error) {
	return l.store.GetProperty(ctx, parcelID)
}

// OwnersOf returns the parcel's current owners, parsed from the
// record's owner field.
func (l *Ledger) OwnersOf(ctx context.Context, parcelID string) ([]store.OwnerRow, error) {
	return l.store.CurrentOwners(ctx, parcelID)
}

// History returns the parcel's dated grantee rows, newest first
func (l *Ledger) History(ctx context.Context, parcelID string) ([]store.OwnerRow, error) {
	return l.store.History(ctx, parcelID)
}

// Invalids returns up to limit unresolved name fragments for review
func (l *Ledger) Invalids(ctx context.Context, limit int) ([]store.InvalidRow, error) {
	return l.store.Invalids(ctx, limit)
}

// TopSurnames returns the k most frequent stored surnames
func (l *Ledger) TopSurnames(ctx context.Context, k int) ([]store.NameCount, error) {
	return l.store.TopSurnames(ctx, k)
}

// Stats summarizes the stored corpus
func (l *Ledger) Stats(ctx context.Context) (store.Stats, error) {
	return l.store.Stats(ctx)
}

// normalizeDate rewrites county date spellings to ISO form so that
// lexical ordering on record_date is chronological. Unrecognized
// spellings are stored as-is.
func normalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range []string{"2006-01-02", "1/2/2006", "1/2/06"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return s
}

// newID issues a ULID. The entropy source is monotonic and not safe for
// concurrent use, so issuance is serialized.
func (l *Ledger) newID() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(l.now()), l.entropy).String()
}
