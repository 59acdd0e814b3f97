package formatter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tordrt/ookcatalog/internal/catalog"
)

// MultiFileFormatter writes the catalog to a directory, one markdown
// file per table plus an overview grouped by schema.
type MultiFileFormatter struct {
	OutputDir string
}

// NewMultiFileFormatter creates a new multi-file formatter
func NewMultiFileFormatter(outputDir string) *MultiFileFormatter {
	return &MultiFileFormatter{OutputDir: outputDir}
}

// Format writes the catalog to multiple files
func (f *MultiFileFormatter) Format(tables []catalog.Table) error {
	// Create output directory if it doesn't exist
	if err := os.MkdirAll(f.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := f.writeOverview(tables); err != nil {
		return fmt.Errorf("failed to write overview: %w", err)
	}

	for _, table := range tables {
		if err := f.writeTableFile(table); err != nil {
			return fmt.Errorf("failed to write table file for %s: %w", table.Identity, err)
		}
	}

	return nil
}

// writeOverview writes _overview.md, listing tables grouped by schema.
// The input is already ordered (schema, name), so groups come out in
// order.
func (f *MultiFileFormatter) writeOverview(tables []catalog.Table) error {
	file, err := os.Create(filepath.Join(f.OutputDir, "_overview.md"))
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	_, _ = fmt.Fprintf(file, "# Catalog Overview\n\n")
	_, _ = fmt.Fprintf(file, "Each table has a corresponding file: `<schema>.<table>.md`\n")

	currentSchema := ""
	for _, table := range tables {
		if table.Identity.Schema != currentSchema {
			currentSchema = table.Identity.Schema
			_, _ = fmt.Fprintf(file, "\n## %s\n\n", currentSchema)
		}
		_, _ = fmt.Fprintf(file, "- **%s**", table.Identity.Name)
		if table.Comment != nil && *table.Comment != "" {
			_, _ = fmt.Fprintf(file, " — %s", *table.Comment)
		}
		_, _ = fmt.Fprintln(file)
	}

	return nil
}

// writeTableFile writes a single table to its own file
func (f *MultiFileFormatter) writeTableFile(table catalog.Table) error {
	filename := filepath.Join(f.OutputDir, table.Identity.String()+".md")

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	NewMarkdownFormatter(file).FormatTable(table)
	return nil
}
