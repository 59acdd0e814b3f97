package catalog

import (
	"context"
	"fmt"
	"sort"
)

// SyncStore is what Sync needs from the curated store: the identities
// already catalogued, and an insert that tolerates concurrent writers.
type SyncStore interface {
	// Identities lists every identity present in the curated store.
	Identities(ctx context.Context) ([]TableIdentity, error)

	// InsertMissing inserts one empty curated row per identity and
	// returns how many were actually inserted. An identity that
	// appeared in the meantime must be skipped, not reported as an
	// error.
	InsertMissing(ctx context.Context, ids []TableIdentity) (int, error)
}

// Syncer reconciles the curated store with the live database. It is
// the only write path in the catalog.
type Syncer struct {
	live    LiveSource
	store   SyncStore
	schemas []string
}

// NewSyncer creates a syncer over the given sources. An empty schema
// filter means every schema visible to the current credentials.
func NewSyncer(live LiveSource, store SyncStore, schemas []string) *Syncer {
	return &Syncer{
		live:    live,
		store:   store,
		schemas: schemas,
	}
}

// Sync inserts a curated row for every live identity the store does
// not know yet and returns the number of rows inserted. Existing rows
// are never updated or deleted, so running it twice in a row inserts
// zero the second time. Racing runs converge through the store's
// conflict handling.
func (s *Syncer) Sync(ctx context.Context) (int, error) {
	live, err := s.live.Identities(ctx, s.schemas)
	if err != nil {
		return 0, fmt.Errorf("failed to list live identities: %w", err)
	}

	known, err := s.store.Identities(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list curated identities: %w", err)
	}

	knownSet := make(map[TableIdentity]struct{}, len(known))
	for _, id := range known {
		knownSet[id] = struct{}{}
	}

	var missing []TableIdentity
	for _, id := range live {
		if _, ok := knownSet[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return 0, nil
	}

	sort.Slice(missing, func(i, j int) bool { return missing[i].Less(missing[j]) })

	return s.store.InsertMissing(ctx, missing)
}
