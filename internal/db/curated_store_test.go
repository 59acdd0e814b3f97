package db

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tordrt/ookcatalog/internal/catalog"
)

func TestCuratedStoreEntries(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("FROM public\\.ookcatalog").
		WillReturnRows(pgxmock.NewRows([]string{"table_schema", "table_name", "description_long", "update_months"}).
			AddRow("public", "cities", ptr("Cities of France."), []string{"Janvier", "Juin"}).
			AddRow("public", "rivers", nil, []string(nil)))

	store := NewCuratedStore(mock)
	entries, err := store.Entries(context.Background())
	require.NoError(t, err)

	require.Len(t, entries, 2)
	cities := entries[catalog.TableIdentity{Schema: "public", Name: "cities"}]
	assert.Equal(t, "Cities of France.", *cities.DescriptionLong)
	assert.Equal(t, []string{"Janvier", "Juin"}, cities.UpdateMonths)

	rivers := entries[catalog.TableIdentity{Schema: "public", Name: "rivers"}]
	assert.Nil(t, rivers.DescriptionLong)
	assert.Empty(t, rivers.UpdateMonths)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCuratedStoreEntry(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("FROM public\\.ookcatalog").
		WithArgs("public", "cities").
		WillReturnRows(pgxmock.NewRows([]string{"table_schema", "table_name", "description_long", "update_months"}).
			AddRow("public", "cities", ptr("Cities of France."), []string{"Mars"}))

	store := NewCuratedStore(mock)
	entry, err := store.Entry(context.Background(), catalog.TableIdentity{Schema: "public", Name: "cities"})
	require.NoError(t, err)

	require.NotNil(t, entry)
	assert.Equal(t, []string{"Mars"}, entry.UpdateMonths)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// An uncatalogued identity is not an error.
func TestCuratedStoreEntryAbsent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("FROM public\\.ookcatalog").
		WithArgs("public", "ghost").
		WillReturnError(pgx.ErrNoRows)

	store := NewCuratedStore(mock)
	entry, err := store.Entry(context.Background(), catalog.TableIdentity{Schema: "public", Name: "ghost"})
	require.NoError(t, err)
	assert.Nil(t, entry)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCuratedStoreInsertMissing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("INSERT INTO public\\.ookcatalog").
		WithArgs("public", "cities").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	// Already present: the conflict clause swallows it.
	mock.ExpectExec("INSERT INTO public\\.ookcatalog").
		WithArgs("public", "rivers").
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	store := NewCuratedStore(mock)
	inserted, err := store.InsertMissing(context.Background(), []catalog.TableIdentity{
		{Schema: "public", Name: "cities"},
		{Schema: "public", Name: "rivers"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCuratedStoreEnsureSchema(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("CREATE TYPE ookcatalog_month").
		WillReturnResult(pgxmock.NewResult("DO", 0))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS public\\.ookcatalog").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	store := NewCuratedStore(mock)
	require.NoError(t, store.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
