package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tordrt/ookcatalog/internal/catalog"
)

// CuratedStore reads and fills public.ookcatalog, the only table this
// module owns. Rows are created empty here (or by hand) and populated
// by administrators through direct database writes; nothing in this
// package ever updates or deletes them.
type CuratedStore struct {
	q Querier
}

// NewCuratedStore creates a store over the given connection.
func NewCuratedStore(q Querier) *CuratedStore {
	return &CuratedStore{q: q}
}

// update_months is cast to text[] so the enum array scans into plain
// strings without registering the type on every connection.
const entriesSQL = `
SELECT table_schema, table_name, description_long, update_months::text[]
FROM public.ookcatalog
`

const entrySQL = entriesSQL + `
WHERE table_schema = $1
  AND table_name = $2
`

const curatedIdentitiesSQL = `
SELECT table_schema, table_name
FROM public.ookcatalog
`

const insertMissingSQL = `
INSERT INTO public.ookcatalog (table_schema, table_name)
VALUES ($1, $2)
ON CONFLICT (table_schema, table_name) DO NOTHING
`

const createMonthEnumSQL = `
DO $$
BEGIN
    IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'ookcatalog_month') THEN
        CREATE TYPE ookcatalog_month AS ENUM (
            'Janvier', 'Février', 'Mars', 'Avril', 'Mai', 'Juin',
            'Juillet', 'Août', 'Septembre', 'Octobre', 'Novembre', 'Décembre');
    END IF;
END
$$
`

const createCatalogTableSQL = `
CREATE TABLE IF NOT EXISTS public.ookcatalog
(
    table_schema     text NOT NULL,
    table_name       text NOT NULL,
    description_long text,
    update_months    ookcatalog_month[],
    PRIMARY KEY (table_schema, table_name)
)
`

// Entries returns every curated entry keyed by identity. Update months
// come back in their stored order, duplicates included.
func (s *CuratedStore) Entries(ctx context.Context) (map[catalog.TableIdentity]catalog.CuratedEntry, error) {
	rows, err := s.q.Query(ctx, entriesSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query curated entries: %w", err)
	}
	defer rows.Close()

	entries := make(map[catalog.TableIdentity]catalog.CuratedEntry)
	for rows.Next() {
		var e catalog.CuratedEntry
		if err := rows.Scan(&e.Identity.Schema, &e.Identity.Name, &e.DescriptionLong, &e.UpdateMonths); err != nil {
			return nil, fmt.Errorf("failed to scan curated entry: %w", err)
		}
		entries[e.Identity] = e
	}
	return entries, rows.Err()
}

// Entry returns the curated entry for one identity, or (nil, nil) when
// the identity has not been catalogued yet.
func (s *CuratedStore) Entry(ctx context.Context, id catalog.TableIdentity) (*catalog.CuratedEntry, error) {
	var e catalog.CuratedEntry
	err := s.q.QueryRow(ctx, entrySQL, id.Schema, id.Name).
		Scan(&e.Identity.Schema, &e.Identity.Name, &e.DescriptionLong, &e.UpdateMonths)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query curated entry %s: %w", id, err)
	}
	return &e, nil
}

// Identities lists every identity present in the curated store.
func (s *CuratedStore) Identities(ctx context.Context) ([]catalog.TableIdentity, error) {
	rows, err := s.q.Query(ctx, curatedIdentitiesSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query curated identities: %w", err)
	}
	defer rows.Close()

	var ids []catalog.TableIdentity
	for rows.Next() {
		var id catalog.TableIdentity
		if err := rows.Scan(&id.Schema, &id.Name); err != nil {
			return nil, fmt.Errorf("failed to scan curated identity: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// InsertMissing inserts one empty curated row per identity and returns
// how many were actually inserted. Identities that appeared in the
// meantime hit the conflict clause and count as zero, so concurrent
// runs converge without error.
func (s *CuratedStore) InsertMissing(ctx context.Context, ids []catalog.TableIdentity) (int, error) {
	var inserted int
	for _, id := range ids {
		tag, err := s.q.Exec(ctx, insertMissingSQL, id.Schema, id.Name)
		if err != nil {
			return inserted, fmt.Errorf("failed to insert %s: %w", id, err)
		}
		inserted += int(tag.RowsAffected())
	}
	return inserted, nil
}

// EnsureSchema creates the ookcatalog_month enum and the curated table
// if they do not exist yet. Existing objects are left untouched.
func (s *CuratedStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.q.Exec(ctx, createMonthEnumSQL); err != nil {
		return fmt.Errorf("failed to create month enum: %w", err)
	}
	if _, err := s.q.Exec(ctx, createCatalogTableSQL); err != nil {
		return fmt.Errorf("failed to create catalog table: %w", err)
	}
	return nil
}
