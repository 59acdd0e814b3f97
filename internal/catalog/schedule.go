package catalog

import (
	"context"
	"time"
)

// UpdatingTable pairs a table with the update months that fall inside
// the current window.
type UpdatingTable struct {
	Table
	Matched []Month
}

// TablesUpdating reports the tables whose configured update months
// intersect the window around today, ordered by schema then table
// name. Matched months keep the order they are stored in, with
// duplicates collapsed. A stored label that is not a valid enum value
// never matches. The result is purely a function of today and the
// current store state.
func (a *Aggregator) TablesUpdating(ctx context.Context, today time.Time) ([]UpdatingTable, error) {
	window := WindowFor(today)
	inWindow := make(map[Month]bool, len(window))
	for _, m := range window {
		inWindow[m] = true
	}

	tables, err := a.All(ctx)
	if err != nil {
		return nil, err
	}

	var updating []UpdatingTable
	for _, t := range tables {
		var matched []Month
		seen := make(map[Month]bool)
		for _, label := range t.UpdateMonths {
			m, ok := ParseMonth(label)
			if !ok || !inWindow[m] || seen[m] {
				continue
			}
			seen[m] = true
			matched = append(matched, m)
		}
		if len(matched) > 0 {
			updating = append(updating, UpdatingTable{Table: t, Matched: matched})
		}
	}

	return updating, nil
}
