package catalog

import (
	"context"
	"fmt"
)

// fakeLive serves canned relations, honoring the schema filter.
type fakeLive struct {
	relations []Relation
}

func (f *fakeLive) Relations(_ context.Context, schemas []string) ([]Relation, error) {
	if len(schemas) == 0 {
		return f.relations, nil
	}
	allowed := make(map[string]bool, len(schemas))
	for _, s := range schemas {
		allowed[s] = true
	}
	var filtered []Relation
	for _, rel := range f.relations {
		if allowed[rel.Identity.Schema] {
			filtered = append(filtered, rel)
		}
	}
	return filtered, nil
}

func (f *fakeLive) Relation(_ context.Context, id TableIdentity) (*Relation, error) {
	for _, rel := range f.relations {
		if rel.Identity == id {
			r := rel
			return &r, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
}

func (f *fakeLive) Identities(ctx context.Context, schemas []string) ([]TableIdentity, error) {
	relations, err := f.Relations(ctx, schemas)
	if err != nil {
		return nil, err
	}
	ids := make([]TableIdentity, 0, len(relations))
	for _, rel := range relations {
		ids = append(ids, rel.Identity)
	}
	return ids, nil
}

// fakeCurated is an in-memory curated store.
type fakeCurated struct {
	entries map[TableIdentity]CuratedEntry
}

func newFakeCurated(entries ...CuratedEntry) *fakeCurated {
	f := &fakeCurated{entries: make(map[TableIdentity]CuratedEntry)}
	for _, e := range entries {
		f.entries[e.Identity] = e
	}
	return f
}

func (f *fakeCurated) Entries(context.Context) (map[TableIdentity]CuratedEntry, error) {
	return f.entries, nil
}

func (f *fakeCurated) Entry(_ context.Context, id TableIdentity) (*CuratedEntry, error) {
	if e, ok := f.entries[id]; ok {
		return &e, nil
	}
	return nil, nil
}

func (f *fakeCurated) Identities(context.Context) ([]TableIdentity, error) {
	ids := make([]TableIdentity, 0, len(f.entries))
	for id := range f.entries {
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *fakeCurated) InsertMissing(_ context.Context, ids []TableIdentity) (int, error) {
	var inserted int
	for _, id := range ids {
		if _, ok := f.entries[id]; ok {
			continue
		}
		f.entries[id] = CuratedEntry{Identity: id}
		inserted++
	}
	return inserted, nil
}

func ptr(s string) *string {
	return &s
}
