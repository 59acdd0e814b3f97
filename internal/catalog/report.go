package catalog

import "context"

// Completeness annotates a table with the metadata fields still empty.
type Completeness struct {
	Table
	NoComment         bool
	ColumnsNoComment  []string
	NoDescriptionLong bool
	NoUpdateMonths    bool
}

// Incomplete reports whether any annotated field is missing.
func (c Completeness) Incomplete() bool {
	return c.NoComment || len(c.ColumnsNoComment) > 0 || c.NoDescriptionLong || c.NoUpdateMonths
}

// MissingComments lists every table with at least one empty metadata
// field: its own comment, any column comment, the curated long
// description, or the update months. A null value and an empty string
// both count as missing here. Ordered by schema then table name.
func (a *Aggregator) MissingComments(ctx context.Context) ([]Completeness, error) {
	tables, err := a.All(ctx)
	if err != nil {
		return nil, err
	}

	var report []Completeness
	for _, t := range tables {
		c := Completeness{Table: t}
		c.NoComment = emptyText(t.Comment)
		for _, col := range t.Columns {
			if emptyText(col.Comment) {
				c.ColumnsNoComment = append(c.ColumnsNoComment, col.Name)
			}
		}
		c.NoDescriptionLong = emptyText(t.DescriptionLong)
		c.NoUpdateMonths = len(t.UpdateMonths) == 0
		if c.Incomplete() {
			report = append(report, c)
		}
	}

	return report, nil
}

func emptyText(s *string) bool {
	return s == nil || *s == ""
}
