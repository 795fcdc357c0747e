package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Quantiphi-INC/Counties-trasform-scripts/pkg/deeds/internalerr"
	"github.com/Quantiphi-INC/Counties-trasform-scripts/pkg/deeds/store"
)

func personRow(id, parcel, last, recordDate string) store.OwnerRow {
	role := "owner"
	if recordDate != "" {
		role = "grantee"
	}
	return store.OwnerRow{
		ID:         id,
		ParcelID:   parcel,
		Kind:       "person",
		FirstName:  "Ann",
		LastName:   last,
		NormKey:    "ann " + last,
		RecordDate: recordDate,
		Role:       role,
		CreatedAt:  time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC),
	}
}

func TestMemstoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New()

	prop := store.Property{ParcelID: "77-1", Situs: "12 OAK AVE"}
	require.NoError(t, s.UpsertProperty(ctx, prop, []store.OwnerRow{
		personRow("A", "77-1", "Smith", ""),
		personRow("B", "77-1", "Jones", "2020-02-02"),
	}, []store.InvalidRow{
		{ID: "C", ParcelID: "77-1", Raw: "X", Reason: "ambiguous_or_incomplete_person_name"},
	}))

	got, err := s.GetProperty(ctx, "77-1")
	require.NoError(t, err)
	assert.Equal(t, "12 OAK AVE", got.Situs)

	current, err := s.CurrentOwners(ctx, "77-1")
	require.NoError(t, err)
	require.Len(t, current, 1)
	assert.Equal(t, "Smith", current[0].LastName)

	history, err := s.History(ctx, "77-1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "2020-02-02", history[0].RecordDate)

	review, err := s.Invalids(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, review, 1)
}

func TestMemstoreNotFound(t *testing.T) {
	s := New()
	_, err := s.GetProperty(context.Background(), "nope")
	assert.ErrorIs(t, err, internalerr.ErrNotFound)
}

func TestMemstoreRejectsEmptyParcelID(t *testing.T) {
	s := New()
	err := s.UpsertProperty(context.Background(), store.Property{}, nil, nil)
	assert.ErrorIs(t, err, internalerr.ErrInvalidInput)
}

func TestMemstoreReingestReplaces(t *testing.T) {
	ctx := context.Background()
	s := New()

	prop := store.Property{ParcelID: "88-2"}
	require.NoError(t, s.UpsertProperty(ctx, prop, []store.OwnerRow{
		personRow("A", "88-2", "Smith", ""),
		personRow("B", "88-2", "Jones", ""),
	}, nil))
	require.NoError(t, s.UpsertProperty(ctx, prop, []store.OwnerRow{
		personRow("C", "88-2", "Garcia", ""),
	}, nil))

	current, err := s.CurrentOwners(ctx, "88-2")
	require.NoError(t, err)
	require.Len(t, current, 1)
	assert.Equal(t, "Garcia", current[0].LastName)
}

func TestMemstoreCallerCannotMutateStoredRows(t *testing.T) {
	ctx := context.Background()
	s := New()

	rows := []store.OwnerRow{personRow("A", "99-3", "Smith", "")}
	require.NoError(t, s.UpsertProperty(ctx, store.Property{ParcelID: "99-3"}, rows, nil))

	// Mutating the slice handed in must not reach the stored copy.
	rows[0].LastName = "Changed"

	current, err := s.CurrentOwners(ctx, "99-3")
	require.NoError(t, err)
	require.Len(t, current, 1)
	assert.Equal(t, "Smith", current[0].LastName)
}

func TestMemstoreHistoryNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.UpsertProperty(ctx, store.Property{ParcelID: "55-4"}, []store.OwnerRow{
		personRow("A", "55-4", "Early", "2001-01-01"),
		personRow("B", "55-4", "Late", "2019-09-09"),
		personRow("C", "55-4", "Middle", "2010-05-05"),
	}, nil))

	history, err := s.History(ctx, "55-4")
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "Late", history[0].LastName)
	assert.Equal(t, "Middle", history[1].LastName)
	assert.Equal(t, "Early", history[2].LastName)
}

func TestMemstoreStats(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.UpsertProperty(ctx, store.Property{ParcelID: "S-1"}, []store.OwnerRow{
		personRow("A", "S-1", "Smith", ""),
		{ID: "B", ParcelID: "S-1", Kind: "company", CompanyName: "Acme Llc", NormKey: "acme llc", Role: "owner"},
	}, nil))
	require.NoError(t, s.UpsertProperty(ctx, store.Property{ParcelID: "S-2"}, nil, nil))

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Properties)
	assert.Equal(t, int64(2), stats.Owners)
	assert.Equal(t, int64(1), stats.Persons)
	assert.Equal(t, int64(1), stats.Companies)
	assert.Equal(t, int64(1), stats.OrphanedParcels)

	top, err := s.TopSurnames(ctx, 3)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, store.NameCount{Name: "Smith", Count: 1}, top[0])
}
