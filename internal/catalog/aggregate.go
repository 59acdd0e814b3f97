package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// ErrNotFound reports a requested identity with no live relation
// behind it, typically a curated row referencing a dropped table.
var ErrNotFound = errors.New("relation not found")

// LiveSource reads relation metadata owned by the catalogued database.
type LiveSource interface {
	// Relations lists every visible relation with its columns,
	// restricted to the given schemas when the filter is non-empty.
	Relations(ctx context.Context, schemas []string) ([]Relation, error)

	// Relation fetches a single relation, returning an error wrapping
	// ErrNotFound when the identity has no live counterpart.
	Relation(ctx context.Context, id TableIdentity) (*Relation, error)

	// Identities lists the visible identities without column detail.
	Identities(ctx context.Context, schemas []string) ([]TableIdentity, error)
}

// CuratedSource reads the curated store.
type CuratedSource interface {
	// Entries returns every curated entry keyed by identity.
	Entries(ctx context.Context) (map[TableIdentity]CuratedEntry, error)

	// Entry returns the curated entry for one identity, or (nil, nil)
	// when the identity has not been catalogued yet.
	Entry(ctx context.Context, id TableIdentity) (*CuratedEntry, error)
}

// Aggregator joins live metadata with curated entries into unified
// per-table records. It holds no state beyond its sources and performs
// pure reads.
type Aggregator struct {
	live    LiveSource
	curated CuratedSource
	schemas []string
}

// NewAggregator creates an aggregator over the given sources. An empty
// schema filter means every schema visible to the current credentials.
func NewAggregator(live LiveSource, curated CuratedSource, schemas []string) *Aggregator {
	return &Aggregator{
		live:    live,
		curated: curated,
		schemas: schemas,
	}
}

// All returns every visible table merged with its curated entry,
// ordered by schema then table name. A table without a curated row
// gets a nil description and no update months; that is the expected
// steady state before a sync run. Curated rows without a live relation
// are orphaned metadata and are skipped, not reported as errors.
func (a *Aggregator) All(ctx context.Context) ([]Table, error) {
	relations, err := a.live.Relations(ctx, a.schemas)
	if err != nil {
		return nil, fmt.Errorf("failed to read live metadata: %w", err)
	}

	entries, err := a.curated.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read curated entries: %w", err)
	}

	tables := make([]Table, 0, len(relations))
	for _, rel := range relations {
		t := Table{Relation: rel}
		if entry, ok := entries[rel.Identity]; ok {
			t.DescriptionLong = entry.DescriptionLong
			t.UpdateMonths = entry.UpdateMonths
		}
		tables = append(tables, t)
	}

	sort.Slice(tables, func(i, j int) bool {
		return tables[i].Identity.Less(tables[j].Identity)
	})

	return tables, nil
}

// One returns the merged record for a single identity. The error wraps
// ErrNotFound when the live database has no such relation.
func (a *Aggregator) One(ctx context.Context, id TableIdentity) (*Table, error) {
	rel, err := a.live.Relation(ctx, id)
	if err != nil {
		return nil, err
	}

	t := &Table{Relation: *rel}

	entry, err := a.curated.Entry(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to read curated entry for %s: %w", id, err)
	}
	if entry != nil {
		t.DescriptionLong = entry.DescriptionLong
		t.UpdateMonths = entry.UpdateMonths
	}

	return t, nil
}
