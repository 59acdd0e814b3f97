package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tordrt/ookcatalog/internal/catalog"
)

// LiveReader reads relation metadata straight from pg_catalog. It
// never writes; the live database owns everything it returns.
//
// Visibility follows the catalog's credentials: only permanent
// relations the current role can select from are listed, and the
// system schemas (plus topology, for PostGIS installs) are excluded.
type LiveReader struct {
	q Querier
}

// NewLiveReader creates a reader over the given connection.
func NewLiveReader(q Querier) *LiveReader {
	return &LiveReader{q: q}
}

const relationsSQL = `
SELECT nspname AS table_schema,
       relname AS table_name,
       relkind::text,
       obj_description(pg_class.oid, 'pg_class') AS table_comment
FROM pg_catalog.pg_class
         INNER JOIN pg_catalog.pg_namespace ON pg_class.relnamespace = pg_namespace.oid
WHERE relpersistence = 'p'
  AND relkind IN ('r', 'v', 'm', 'f', 'p')
  AND has_table_privilege(pg_class.oid, 'select')
  AND nspname NOT IN ('information_schema', 'pg_catalog', 'topology')
  AND ($1::text[] IS NULL OR nspname = ANY ($1::text[]))
ORDER BY nspname, relname
`

const columnsSQL = `
SELECT nspname  AS table_schema,
       relname  AS table_name,
       attname  AS column_name,
       pg_type.typname AS data_type,
       attnum   AS ordinal_position,
       col_description(pg_attribute.attrelid, attnum) AS description
FROM pg_catalog.pg_attribute
         INNER JOIN pg_catalog.pg_class ON pg_attribute.attrelid = pg_class.oid
         INNER JOIN pg_catalog.pg_namespace ON pg_class.relnamespace = pg_namespace.oid
         INNER JOIN pg_catalog.pg_type ON pg_attribute.atttypid = pg_type.oid
WHERE relpersistence = 'p'
  AND relkind IN ('r', 'v', 'm', 'f', 'p')
  AND has_table_privilege(pg_class.oid, 'select')
  AND attnum >= 1
  AND NOT attisdropped
  AND nspname NOT IN ('information_schema', 'pg_catalog', 'topology')
  AND ($1::text[] IS NULL OR nspname = ANY ($1::text[]))
ORDER BY nspname, relname, attnum
`

const relationSQL = `
SELECT relkind::text,
       obj_description(pg_class.oid, 'pg_class') AS table_comment
FROM pg_catalog.pg_class
         INNER JOIN pg_catalog.pg_namespace ON pg_class.relnamespace = pg_namespace.oid
WHERE relpersistence = 'p'
  AND relkind IN ('r', 'v', 'm', 'f', 'p')
  AND has_table_privilege(pg_class.oid, 'select')
  AND nspname = $1
  AND relname = $2
`

const relationColumnsSQL = `
SELECT attname AS column_name,
       pg_type.typname AS data_type,
       attnum  AS ordinal_position,
       col_description(pg_attribute.attrelid, attnum) AS description
FROM pg_catalog.pg_attribute
         INNER JOIN pg_catalog.pg_class ON pg_attribute.attrelid = pg_class.oid
         INNER JOIN pg_catalog.pg_namespace ON pg_class.relnamespace = pg_namespace.oid
         INNER JOIN pg_catalog.pg_type ON pg_attribute.atttypid = pg_type.oid
WHERE attnum >= 1
  AND NOT attisdropped
  AND nspname = $1
  AND relname = $2
ORDER BY attnum
`

const identitiesSQL = `
SELECT nspname AS table_schema,
       relname AS table_name
FROM pg_catalog.pg_class
         INNER JOIN pg_catalog.pg_namespace ON pg_class.relnamespace = pg_namespace.oid
WHERE relpersistence = 'p'
  AND relkind IN ('r', 'v', 'm', 'f', 'p')
  AND has_table_privilege(pg_class.oid, 'select')
  AND nspname NOT IN ('information_schema', 'pg_catalog', 'topology')
  AND ($1::text[] IS NULL OR nspname = ANY ($1::text[]))
ORDER BY nspname, relname
`

const schemaCommentsSQL = `
SELECT nspname,
       obj_description(pg_namespace.oid, 'pg_namespace') AS schema_comment
FROM pg_catalog.pg_namespace
WHERE nspname NOT IN ('information_schema', 'pg_catalog', 'topology')
  AND nspname NOT LIKE 'pg_%'
  AND ($1::text[] IS NULL OR nspname = ANY ($1::text[]))
ORDER BY nspname
`

// Relations lists every visible relation with its columns.
func (r *LiveReader) Relations(ctx context.Context, schemas []string) ([]catalog.Relation, error) {
	rows, err := r.q.Query(ctx, relationsSQL, schemaFilter(schemas))
	if err != nil {
		return nil, fmt.Errorf("failed to query relations: %w", err)
	}
	defer rows.Close()

	var relations []catalog.Relation
	index := make(map[catalog.TableIdentity]int)
	for rows.Next() {
		var rel catalog.Relation
		var kind string
		if err := rows.Scan(&rel.Identity.Schema, &rel.Identity.Name, &kind, &rel.Comment); err != nil {
			return nil, fmt.Errorf("failed to scan relation: %w", err)
		}
		rel.Kind = relationKind(kind)
		index[rel.Identity] = len(relations)
		relations = append(relations, rel)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read relations: %w", err)
	}

	colRows, err := r.q.Query(ctx, columnsSQL, schemaFilter(schemas))
	if err != nil {
		return nil, fmt.Errorf("failed to query columns: %w", err)
	}
	defer colRows.Close()

	for colRows.Next() {
		var id catalog.TableIdentity
		var col catalog.Column
		if err := colRows.Scan(&id.Schema, &id.Name, &col.Name, &col.Type, &col.Ordinal, &col.Comment); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		if i, ok := index[id]; ok {
			relations[i].Columns = append(relations[i].Columns, col)
		}
	}
	if err := colRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	return relations, nil
}

// Relation fetches a single relation with its columns. The error wraps
// catalog.ErrNotFound when the identity has no live counterpart.
func (r *LiveReader) Relation(ctx context.Context, id catalog.TableIdentity) (*catalog.Relation, error) {
	rel := &catalog.Relation{Identity: id}

	var kind string
	err := r.q.QueryRow(ctx, relationSQL, id.Schema, id.Name).Scan(&kind, &rel.Comment)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", id, catalog.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query relation %s: %w", id, err)
	}
	rel.Kind = relationKind(kind)

	rows, err := r.q.Query(ctx, relationColumnsSQL, id.Schema, id.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns of %s: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var col catalog.Column
		if err := rows.Scan(&col.Name, &col.Type, &col.Ordinal, &col.Comment); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		rel.Columns = append(rel.Columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", id, err)
	}

	return rel, nil
}

// Identities lists the visible identities without column detail.
func (r *LiveReader) Identities(ctx context.Context, schemas []string) ([]catalog.TableIdentity, error) {
	rows, err := r.q.Query(ctx, identitiesSQL, schemaFilter(schemas))
	if err != nil {
		return nil, fmt.Errorf("failed to query identities: %w", err)
	}
	defer rows.Close()

	var ids []catalog.TableIdentity
	for rows.Next() {
		var id catalog.TableIdentity
		if err := rows.Scan(&id.Schema, &id.Name); err != nil {
			return nil, fmt.Errorf("failed to scan identity: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// SchemaComments returns the comment of each visible schema, keyed by
// schema name. Schemas without a comment map to nil.
func (r *LiveReader) SchemaComments(ctx context.Context, schemas []string) (map[string]*string, error) {
	rows, err := r.q.Query(ctx, schemaCommentsSQL, schemaFilter(schemas))
	if err != nil {
		return nil, fmt.Errorf("failed to query schema comments: %w", err)
	}
	defer rows.Close()

	comments := make(map[string]*string)
	for rows.Next() {
		var name string
		var comment *string
		if err := rows.Scan(&name, &comment); err != nil {
			return nil, fmt.Errorf("failed to scan schema comment: %w", err)
		}
		comments[name] = comment
	}
	return comments, rows.Err()
}

// schemaFilter turns an empty filter into a SQL NULL so one query text
// serves both the filtered and unfiltered paths.
func schemaFilter(schemas []string) []string {
	if len(schemas) == 0 {
		return nil
	}
	return schemas
}

// relationKind maps a pg_class relkind code to a display name.
func relationKind(code string) string {
	switch code {
	case "r":
		return "table"
	case "v":
		return "view"
	case "m":
		return "materialized view"
	case "f":
		return "foreign table"
	case "p":
		return "partitioned table"
	default:
		return code
	}
}
