package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Quantiphi-INC/Counties-trasform-scripts/pkg/deeds/internalerr"
	"github.com/Quantiphi-INC/Counties-trasform-scripts/pkg/deeds/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled and the
// schema initialized.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	// Enable foreign keys
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS properties (
	parcel_id TEXT PRIMARY KEY,
	situs TEXT,
	county TEXT,
	source_path TEXT,
	fetched_at TEXT
);

CREATE TABLE IF NOT EXISTS owners (
	id TEXT PRIMARY KEY,
	parcel_id TEXT NOT NULL,
	kind TEXT NOT NULL,
	first_name TEXT,
	middle_name TEXT,
	last_name TEXT,
	company_name TEXT,
	norm_key TEXT NOT NULL,
	record_date TEXT NOT NULL DEFAULT '',
	role TEXT NOT NULL,
	created_at TEXT NOT NULL,
	FOREIGN KEY(parcel_id) REFERENCES properties(parcel_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_owners_parcel ON owners(parcel_id);
CREATE INDEX IF NOT EXISTS idx_owners_norm_key ON owners(norm_key);

CREATE TABLE IF NOT EXISTS invalids (
	id TEXT PRIMARY KEY,
	parcel_id TEXT NOT NULL,
	raw TEXT NOT NULL,
	reason TEXT NOT NULL,
	record_date TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	FOREIGN KEY(parcel_id) REFERENCES properties(parcel_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_invalids_parcel ON invalids(parcel_id);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// UpsertProperty writes the parcel row and replaces its owners and
// invalids in one transaction
func (s *sqliteStore) UpsertProperty(ctx context.Context, p store.Property, owners []store.OwnerRow, invalids []store.InvalidRow) error {
	if p.ParcelID == "" {
		return fmt.Errorf("parcel id: %w", internalerr.ErrInvalidInput)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const stmt = `
INSERT INTO properties (parcel_id, situs, county, source_path, fetched_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(parcel_id) DO UPDATE SET
	situs=excluded.situs,
	county=excluded.county,
	source_path=excluded.source_path,
	fetched_at=excluded.fetched_at;
`

	_, err = tx.ExecContext(
		ctx,
		stmt,
		p.ParcelID,
		p.Situs,
		p.County,
		p.SourcePath,
		p.FetchedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return err
	}

	if err := replaceOwners(ctx, tx, p.ParcelID, owners); err != nil {
		return err
	}
	if err := replaceInvalids(ctx, tx, p.ParcelID, invalids); err != nil {
		return err
	}

	return tx.Commit()
}

func replaceOwners(ctx context.Context, tx *sql.Tx, parcelID string, rows []store.OwnerRow) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM owners WHERE parcel_id=?`, parcelID); err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO owners (id, parcel_id, kind, first_name, middle_name, last_name, company_name, norm_key, record_date, role, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, r := range rows {
		if r.ID == "" {
			continue
		}
		_, err := stmt.ExecContext(ctx, r.ID, parcelID, r.Kind, r.FirstName, r.MiddleName,
			r.LastName, r.CompanyName, r.NormKey, r.RecordDate, r.Role,
			r.CreatedAt.UTC().Format(time.RFC3339))
		if err != nil {
			return err
		}
	}
	return nil
}

func replaceInvalids(ctx context.Context, tx *sql.Tx, parcelID string, rows []store.InvalidRow) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM invalids WHERE parcel_id=?`, parcelID); err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO invalids (id, parcel_id, raw, reason, record_date, created_at)
VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, r := range rows {
		if r.ID == "" {
			continue
		}
		_, err := stmt.ExecContext(ctx, r.ID, parcelID, r.Raw, r.Reason, r.RecordDate,
			r.CreatedAt.UTC().Format(time.RFC3339))
		if err != nil {
			return err
		}
	}
	return nil
}

// GetProperty retrieves a parcel record by its id
func (s *sqliteStore) GetProperty(ctx context.Context, parcelID string) (store.Property, error) {
	var p store.Property
	var fetched string
	err := s.db.QueryRowContext(ctx, `
SELECT parcel_id, situs, county, source_path, fetched_at
FROM properties WHERE parcel_id = ?`, parcelID).
		Scan(&p.ParcelID, &p.Situs, &p.County, &p.SourcePath, &fetched)
	if err == sql.ErrNoRows {
		return store.Property{}, fmt.Errorf("parcel %s: %w", parcelID, internalerr.ErrNotFound)
	}
	if err != nil {
		return store.Property{}, err
	}
	p.FetchedAt = parseTime(fetched)
	return p, nil
}

// CurrentOwners returns owners parsed from the record's owner field
func (s *sqliteStore) CurrentOwners(ctx context.Context, parcelID string) ([]store.OwnerRow, error) {
	return s.queryOwners(ctx, `
SELECT id, parcel_id, kind, first_name, middle_name, last_name, company_name, norm_key, record_date, role, created_at
FROM owners WHERE parcel_id = ? AND record_date = '' ORDER BY id`, parcelID)
}

// History returns the dated grantee rows for a parcel, newest first
func (s *sqliteStore) History(ctx context.Context, parcelID string) ([]store.OwnerRow, error) {
	return s.queryOwners(ctx, `
SELECT id, parcel_id, kind, first_name, middle_name, last_name, company_name, norm_key, record_date, role, created_at
FROM owners WHERE parcel_id = ? AND record_date != '' ORDER BY record_date DESC, id`, parcelID)
}

func (s *sqliteStore) queryOwners(ctx context.Context, query string, args ...interface{}) ([]store.OwnerRow, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.OwnerRow
	for rows.Next() {
		var r store.OwnerRow
		var created string
		err := rows.Scan(&r.ID, &r.ParcelID, &r.Kind, &r.FirstName, &r.MiddleName,
			&r.LastName, &r.CompanyName, &r.NormKey, &r.RecordDate, &r.Role, &created)
		if err != nil {
			return nil, err
		}
		r.CreatedAt = parseTime(created)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Invalids returns unresolved fragments for review, oldest first
func (s *sqliteStore) Invalids(ctx context.Context, limit int) ([]store.InvalidRow, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, parcel_id, raw, reason, record_date, created_at
FROM invalids ORDER BY created_at, id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.InvalidRow
	for rows.Next() {
		var r store.InvalidRow
		var created string
		if err := rows.Scan(&r.ID, &r.ParcelID, &r.Raw, &r.Reason, &r.RecordDate, &created); err != nil {
			return nil, err
		}
		r.CreatedAt = parseTime(created)
		out = append(out, r)
	}
	return out, rows.Err()
}

// TopSurnames returns the most frequent person surnames
func (s *sqliteStore) TopSurnames(ctx context.Context, k int) ([]store.NameCount, error) {
	if k <= 0 {
		k = 10
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT last_name, COUNT(*) AS n
FROM owners
WHERE kind = 'person' AND last_name != ''
GROUP BY last_name
ORDER BY n DESC, last_name
LIMIT ?`, k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.NameCount
	for rows.Next() {
		var nc store.NameCount
		if err := rows.Scan(&nc.Name, &nc.Count); err != nil {
			return nil, err
		}
		out = append(out, nc)
	}
	return out, rows.Err()
}

// Stats summarizes the stored corpus
func (s *sqliteStore) Stats(ctx context.Context) (store.Stats, error) {
	var st store.Stats
	counts := []struct {
		query string
		dest  *int64
	}{
		{`SELECT COUNT(*) FROM properties`, &st.Properties},
		{`SELECT COUNT(*) FROM owners`, &st.Owners},
		{`SELECT COUNT(*) FROM owners WHERE kind='person'`, &st.Persons},
		{`SELECT COUNT(*) FROM owners WHERE kind='company'`, &st.Companies},
		{`SELECT COUNT(*) FROM invalids`, &st.Invalids},
		{`SELECT COUNT(*) FROM properties p
		  WHERE NOT EXISTS (SELECT 1 FROM owners o WHERE o.parcel_id = p.parcel_id)`, &st.OrphanedParcels},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return store.Stats{}, err
		}
	}
	return st, nil
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
