package catalog

// TableIdentity is the (schema, table) key shared by the live database
// metadata and the curated store.
type TableIdentity struct {
	Schema string
	Name   string
}

func (id TableIdentity) String() string {
	return id.Schema + "." + id.Name
}

// Less orders identities by schema name, then table name.
func (id TableIdentity) Less(other TableIdentity) bool {
	if id.Schema != other.Schema {
		return id.Schema < other.Schema
	}
	return id.Name < other.Name
}

// Column represents one column of a live relation
type Column struct {
	Name    string
	Type    string
	Ordinal int
	Comment *string
}

// Relation is the live metadata for one table or view. It is owned
// entirely by the catalogued database and read-only to this system.
type Relation struct {
	Identity TableIdentity
	Kind     string // table, view, materialized view, foreign table, partitioned table
	Comment  *string
	Columns  []Column
}

// CuratedEntry holds the administrator-maintained metadata for one
// identity. UpdateMonths keeps the stored labels verbatim and in their
// stored order; a label outside the ookcatalog_month enum is kept as
// is and simply never matches the update schedule.
type CuratedEntry struct {
	Identity        TableIdentity
	DescriptionLong *string
	UpdateMonths    []string
}

// Table merges live and curated metadata for one identity. It is
// recomputed on every read, never persisted or cached.
type Table struct {
	Relation
	DescriptionLong *string
	UpdateMonths    []string
}
