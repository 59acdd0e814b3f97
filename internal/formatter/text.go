package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/tordrt/ookcatalog/internal/catalog"
	"github.com/tordrt/ookcatalog/internal/search"
)

// TextFormatter renders catalog reports as compact text, the format
// used by the CLI commands.
type TextFormatter struct {
	writer io.Writer
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(w io.Writer) *TextFormatter {
	return &TextFormatter{writer: w}
}

// FormatTables writes a compact listing of every table.
func (f *TextFormatter) FormatTables(tables []catalog.Table) error {
	for i, table := range tables {
		if i > 0 {
			_, _ = fmt.Fprintln(f.writer) // Blank line between tables
		}
		f.formatTable(table)
	}
	return nil
}

func (f *TextFormatter) formatTable(table catalog.Table) {
	header := fmt.Sprintf("%s %s", strings.ToUpper(table.Kind), table.Identity)
	if table.Comment != nil && *table.Comment != "" {
		header += " — " + *table.Comment
	}
	_, _ = fmt.Fprintln(f.writer, header)

	if table.DescriptionLong != nil && *table.DescriptionLong != "" {
		_, _ = fmt.Fprintf(f.writer, "  %s\n", *table.DescriptionLong)
	}
	if len(table.UpdateMonths) > 0 {
		_, _ = fmt.Fprintf(f.writer, "  Updates: %s\n", strings.Join(table.UpdateMonths, ", "))
	}

	for _, col := range table.Columns {
		line := fmt.Sprintf("  %s: %s", col.Name, col.Type)
		if col.Comment != nil && *col.Comment != "" {
			line += " — " + *col.Comment
		}
		_, _ = fmt.Fprintln(f.writer, line)
	}
}

// FormatSearchResults writes ranked search hits, best first.
func (f *TextFormatter) FormatSearchResults(results []search.Result) error {
	for _, res := range results {
		line := fmt.Sprintf("%6.2f  %s", res.Score, res.Table.Identity)
		if res.Table.Comment != nil && *res.Table.Comment != "" {
			line += " — " + *res.Table.Comment
		}
		_, _ = fmt.Fprintln(f.writer, line)
	}
	return nil
}

// FormatUpdating writes one section per month of the window, each
// listing the tables updating that month.
func (f *TextFormatter) FormatUpdating(window []catalog.Month, rows []catalog.UpdatingTable) error {
	for i, month := range window {
		if i > 0 {
			_, _ = fmt.Fprintln(f.writer)
		}
		_, _ = fmt.Fprintf(f.writer, "# Tables updating in %s:\n", month)
		for _, row := range rows {
			if matchesMonth(row, month) {
				_, _ = fmt.Fprintln(f.writer, row.Identity.String())
			}
		}
	}
	return nil
}

func matchesMonth(row catalog.UpdatingTable, month catalog.Month) bool {
	for _, m := range row.Matched {
		if m == month {
			return true
		}
	}
	return false
}

// FormatMissing writes one line per incomplete table naming the empty
// fields.
func (f *TextFormatter) FormatMissing(report []catalog.Completeness) error {
	for _, c := range report {
		var missing []string
		if c.NoComment {
			missing = append(missing, "table comment")
		}
		if len(c.ColumnsNoComment) > 0 {
			missing = append(missing, fmt.Sprintf("column comments (%s)", strings.Join(c.ColumnsNoComment, ", ")))
		}
		if c.NoDescriptionLong {
			missing = append(missing, "long description")
		}
		if c.NoUpdateMonths {
			missing = append(missing, "update months")
		}
		_, _ = fmt.Fprintf(f.writer, "%s: missing %s\n", c.Identity, strings.Join(missing, ", "))
	}
	return nil
}
