package store

import (
	"context"
	"time"
)

// Store persists parsed ownership for county property records
type Store interface {
	Close() error

	// UpsertProperty writes the parcel row and replaces its parsed
	// owners and invalid fragments in one transaction, so re-ingesting
	// a record never accumulates duplicates.
	UpsertProperty(ctx context.Context, p Property, owners []OwnerRow, invalids []InvalidRow) error

	GetProperty(ctx context.Context, parcelID string) (Property, error)

	// CurrentOwners returns the owners parsed from the record's owner
	// field; History returns the dated grantee rows, newest first.
	CurrentOwners(ctx context.Context, parcelID string) ([]OwnerRow, error)
	History(ctx context.Context, parcelID string) ([]OwnerRow, error)

	Invalids(ctx context.Context, limit int) ([]InvalidRow, error)
	TopSurnames(ctx context.Context, k int) ([]NameCount, error)
	Stats(ctx context.Context) (Stats, error)
}

// Property is one county parcel record
type Property struct {
	ParcelID   string
	Situs      string
	County     string
	SourcePath string
	FetchedAt  time.Time
}

// OwnerRow is one parsed owner bound to a parcel. RecordDate is empty
// for the current-owner field and carries the transaction date for
// grantee rows.
type OwnerRow struct {
	ID          string
	ParcelID    string
	Kind        string // "person" or "company"
	FirstName   string
	MiddleName  string
	LastName    string
	CompanyName string
	NormKey     string
	RecordDate  string
	Role        string // "owner" or "grantee"
	CreatedAt   time.Time
}

// InvalidRow preserves an unresolved name fragment for manual review
type InvalidRow struct {
	ID         string
	ParcelID   string
	Raw        string
	Reason     string
	RecordDate string
	CreatedAt  time.Time
}

// NameCount pairs a surname with its frequency
type NameCount struct {
	Name  string
	Count int64
}

// Stats summarizes the stored corpus
type Stats struct {
	Properties      int64
	Owners          int64
	Persons         int64
	Companies       int64
	Invalids        int64
	OrphanedParcels int64 // properties with no parsed owners at all
}
