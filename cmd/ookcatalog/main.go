package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tordrt/ookcatalog"
	"github.com/tordrt/ookcatalog/internal/catalog"
	"github.com/tordrt/ookcatalog/internal/db"
	"github.com/tordrt/ookcatalog/internal/formatter"
	"github.com/tordrt/ookcatalog/internal/web"
)

var (
	dbURL   string
	schemas []string
	addr    string
	date    string
	outDir  string
)

var log = logrus.New()

var rootCmd = &cobra.Command{
	Use:   "ookcatalog",
	Short: "Light data catalog for PostgreSQL",
	Long: `OokCatalog publishes a PostgreSQL database's own metadata (table and
column comments) together with curated long descriptions and update
schedules stored in public.ookcatalog. Nothing is cached: every
command reads current database state.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbURL, "db-url", "", "PostgreSQL connection string (or OOKCATALOG_DB_URL)")
	rootCmd.PersistentFlags().StringSliceVarP(&schemas, "schemas", "s", nil, "Restrict to these schemas (comma-separated, default: all visible)")

	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address for the web UI")
	tablesUpdatingCmd.Flags().StringVar(&date, "date", "", "Report date as YYYY-MM-DD (default: today)")
	exportCmd.Flags().StringVarP(&outDir, "output-dir", "d", "", "Output directory for the exported catalog")
	_ = exportCmd.MarkFlagRequired("output-dir")

	rootCmd.AddCommand(serveCmd, tablesCmd, searchCmd, tablesUpdatingCmd,
		missingCommentsCmd, updateCatalogCmd, exportCmd, setupCmd)
}

// connectionString resolves --db-url with an environment fallback so
// unattended runs don't need the flag on every invocation.
func connectionString() (string, error) {
	if dbURL != "" {
		return dbURL, nil
	}
	if env := os.Getenv("OOKCATALOG_DB_URL"); env != "" {
		return env, nil
	}
	return "", fmt.Errorf("--db-url or OOKCATALOG_DB_URL must be set")
}

func openCatalog(ctx context.Context) (*ookcatalog.Catalog, error) {
	connString, err := connectionString()
	if err != nil {
		return nil, err
	}
	return ookcatalog.Connect(ctx, connString, &ookcatalog.Options{Schemas: schemas})
}

// parseDate interprets the --date flag, defaulting to today. The date
// is injectable so schedule runs are reproducible.
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Now(), nil
	}
	today, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", value, err)
	}
	return today, nil
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog browsing UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		connString, err := connectionString()
		if err != nil {
			return err
		}
		pool, err := db.NewPostgresPool(ctx, connString)
		if err != nil {
			return err
		}
		defer pool.Close()

		cat := ookcatalog.New(pool, &ookcatalog.Options{Schemas: schemas})
		server := web.NewServer(cat, log)

		log.WithField("addr", addr).Info("serving catalog")
		return server.Router().Run(addr)
	},
}

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List every table with its metadata",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cat, err := openCatalog(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = cat.Close(ctx) }()

		tables, err := cat.Tables(ctx)
		if err != nil {
			return err
		}
		return formatter.NewTextFormatter(os.Stdout).FormatTables(tables)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cat, err := openCatalog(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = cat.Close(ctx) }()

		results, err := cat.Search(ctx, args[0])
		if err != nil {
			return err
		}
		return formatter.NewTextFormatter(os.Stdout).FormatSearchResults(results)
	},
}

var tablesUpdatingCmd = &cobra.Command{
	Use:   "tables-updating",
	Short: "Report the tables updating around the given date",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		today, err := parseDate(date)
		if err != nil {
			return err
		}

		cat, err := openCatalog(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = cat.Close(ctx) }()

		rows, err := cat.TablesUpdating(ctx, today)
		if err != nil {
			return err
		}
		return formatter.NewTextFormatter(os.Stdout).FormatUpdating(catalog.WindowFor(today), rows)
	},
}

var missingCommentsCmd = &cobra.Command{
	Use:   "missing-comments",
	Short: "List tables with incomplete metadata",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cat, err := openCatalog(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = cat.Close(ctx) }()

		report, err := cat.MissingComments(ctx)
		if err != nil {
			return err
		}
		return formatter.NewTextFormatter(os.Stdout).FormatMissing(report)
	},
}

var updateCatalogCmd = &cobra.Command{
	Use:   "update-catalog",
	Short: "Insert missing tables into the curated store",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cat, err := openCatalog(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = cat.Close(ctx) }()

		inserted, err := cat.Sync(ctx)
		if err != nil {
			return err
		}
		log.WithField("inserted", inserted).Info("catalog updated")
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog as markdown files",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cat, err := openCatalog(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = cat.Close(ctx) }()

		tables, err := cat.Tables(ctx)
		if err != nil {
			return err
		}
		return formatter.NewMultiFileFormatter(outDir).Format(tables)
	},
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create the curated store schema if absent",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cat, err := openCatalog(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = cat.Close(ctx) }()

		if err := cat.Setup(ctx); err != nil {
			return err
		}
		log.Info("curated store ready")
		return nil
	},
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
