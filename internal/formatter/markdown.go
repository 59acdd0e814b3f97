package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/tordrt/ookcatalog/internal/catalog"
)

// MarkdownFormatter renders catalog tables as markdown, for exporting
// the catalog as browsable documentation.
type MarkdownFormatter struct {
	writer io.Writer
}

// NewMarkdownFormatter creates a new markdown formatter
func NewMarkdownFormatter(w io.Writer) *MarkdownFormatter {
	return &MarkdownFormatter{writer: w}
}

// Format writes every table as one markdown document.
func (f *MarkdownFormatter) Format(tables []catalog.Table) error {
	_, _ = fmt.Fprintln(f.writer, "# Data Catalog")
	_, _ = fmt.Fprintln(f.writer)

	for _, table := range tables {
		f.FormatTable(table)
	}
	return nil
}

// FormatTable writes a single table section (also used by the
// multi-file formatter).
func (f *MarkdownFormatter) FormatTable(table catalog.Table) {
	_, _ = fmt.Fprintf(f.writer, "## %s\n\n", table.Identity)

	if table.Comment != nil && *table.Comment != "" {
		_, _ = fmt.Fprintf(f.writer, "%s\n\n", *table.Comment)
	}
	if table.DescriptionLong != nil && *table.DescriptionLong != "" {
		_, _ = fmt.Fprintf(f.writer, "%s\n\n", *table.DescriptionLong)
	}

	_, _ = fmt.Fprintf(f.writer, "- Kind: %s\n", table.Kind)
	if len(table.UpdateMonths) > 0 {
		_, _ = fmt.Fprintf(f.writer, "- Updates: %s\n", strings.Join(table.UpdateMonths, ", "))
	}
	_, _ = fmt.Fprintln(f.writer)

	if len(table.Columns) > 0 {
		_, _ = fmt.Fprintln(f.writer, "### Columns")
		_, _ = fmt.Fprintln(f.writer)
		for _, col := range table.Columns {
			if col.Comment != nil && *col.Comment != "" {
				_, _ = fmt.Fprintf(f.writer, "- **%s:** %s — %s\n", col.Name, col.Type, *col.Comment)
			} else {
				_, _ = fmt.Fprintf(f.writer, "- **%s:** %s\n", col.Name, col.Type)
			}
		}
		_, _ = fmt.Fprintln(f.writer)
	}
}
