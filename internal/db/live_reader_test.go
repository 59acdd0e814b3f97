package db

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tordrt/ookcatalog/internal/catalog"
)

func TestLiveReaderRelations(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("obj_description").
		WithArgs([]string(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"table_schema", "table_name", "relkind", "table_comment"}).
			AddRow("public", "cities", "r", ptr("Cities of France")).
			AddRow("public", "areas", "v", nil))
	mock.ExpectQuery("col_description").
		WithArgs([]string(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"table_schema", "table_name", "column_name", "data_type", "ordinal_position", "description"}).
			AddRow("public", "cities", "id", "int4", 1, ptr("Identifier")).
			AddRow("public", "cities", "name", "text", 2, nil))

	reader := NewLiveReader(mock)
	relations, err := reader.Relations(context.Background(), nil)
	require.NoError(t, err)

	require.Len(t, relations, 2)
	assert.Equal(t, catalog.TableIdentity{Schema: "public", Name: "cities"}, relations[0].Identity)
	assert.Equal(t, "table", relations[0].Kind)
	assert.Equal(t, "Cities of France", *relations[0].Comment)
	require.Len(t, relations[0].Columns, 2)
	assert.Equal(t, "id", relations[0].Columns[0].Name)
	assert.Equal(t, "int4", relations[0].Columns[0].Type)
	assert.Equal(t, "Identifier", *relations[0].Columns[0].Comment)
	assert.Nil(t, relations[0].Columns[1].Comment)

	assert.Equal(t, "view", relations[1].Kind)
	assert.Nil(t, relations[1].Comment)
	assert.Empty(t, relations[1].Columns)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLiveReaderRelation(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("obj_description").
		WithArgs("public", "cities").
		WillReturnRows(pgxmock.NewRows([]string{"relkind", "table_comment"}).
			AddRow("m", ptr("Materialized cities")))
	mock.ExpectQuery("col_description").
		WithArgs("public", "cities").
		WillReturnRows(pgxmock.NewRows([]string{"column_name", "data_type", "ordinal_position", "description"}).
			AddRow("id", "int4", 1, nil))

	reader := NewLiveReader(mock)
	rel, err := reader.Relation(context.Background(), catalog.TableIdentity{Schema: "public", Name: "cities"})
	require.NoError(t, err)

	assert.Equal(t, "materialized view", rel.Kind)
	assert.Equal(t, "Materialized cities", *rel.Comment)
	require.Len(t, rel.Columns, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLiveReaderRelationNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("obj_description").
		WithArgs("public", "ghost").
		WillReturnRows(pgxmock.NewRows([]string{"relkind", "table_comment"}))

	reader := NewLiveReader(mock)
	_, err = reader.Relation(context.Background(), catalog.TableIdentity{Schema: "public", Name: "ghost"})
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLiveReaderIdentities(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("FROM pg_catalog\\.pg_class").
		WithArgs([]string(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"table_schema", "table_name"}).
			AddRow("insee", "population").
			AddRow("public", "cities"))

	reader := NewLiveReader(mock)
	ids, err := reader.Identities(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, []catalog.TableIdentity{
		{Schema: "insee", Name: "population"},
		{Schema: "public", Name: "cities"},
	}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLiveReaderSchemaComments(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("FROM pg_catalog\\.pg_namespace").
		WithArgs([]string(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"nspname", "schema_comment"}).
			AddRow("insee", ptr("National statistics")).
			AddRow("public", nil))

	reader := NewLiveReader(mock)
	comments, err := reader.SchemaComments(context.Background(), nil)
	require.NoError(t, err)

	require.Len(t, comments, 2)
	assert.Equal(t, "National statistics", *comments["insee"])
	assert.Nil(t, comments["public"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func ptr(s string) *string {
	return &s
}

func TestSchemaFilter(t *testing.T) {
	assert.Nil(t, schemaFilter(nil))
	assert.Nil(t, schemaFilter([]string{}))
	assert.Equal(t, []string{"public"}, schemaFilter([]string{"public"}))
}

func TestRelationKind(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"r", "table"},
		{"v", "view"},
		{"m", "materialized view"},
		{"f", "foreign table"},
		{"p", "partitioned table"},
		{"S", "S"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, relationKind(tt.code))
	}
}
