package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coffeecatalog/internal/database"
	"coffeecatalog/internal/models"
)

// newTestStore creates a store over a fresh database file in a temp dir
func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "coffee.sqlite")
	require.NoError(t, Create(context.Background(), path))
	return New(path)
}

// newMockStore wires a sqlmock connection into the store and checks
// expectations at cleanup.
func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unfulfilled expectations: %v", err)
		}
	})

	s := New("mock.sqlite")
	s.open = func() (*sql.DB, error) { return db, nil }
	return s, mock
}

var coffeeColumns = []string{"id", "sort_name", "roast_level", "is_ground", "taste_description", "price", "package_volume"}

func arabica() *models.CoffeeInput {
	return &models.CoffeeInput{
		SortName:         "Arabica",
		RoastLevel:       "Medium",
		IsGround:         false,
		TasteDescription: "Nutty",
		Price:            12.5,
		PackageVolume:    250,
	}
}

// ========== Properties against a real file ==========

func TestCreateThenList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	robusta := &models.CoffeeInput{SortName: "Robusta", RoastLevel: "Dark", IsGround: true, TasteDescription: "Bitter", Price: 7, PackageVolume: 1000}

	id1, err := store.CreateCoffee(ctx, arabica())
	require.NoError(t, err)
	id2, err := store.CreateCoffee(ctx, robusta)
	require.NoError(t, err)
	assert.Greater(t, id2, id1)

	list, err := store.ListCoffee(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, &models.Coffee{ID: id1, SortName: "Arabica", RoastLevel: "Medium", TasteDescription: "Nutty", Price: 12.5, PackageVolume: 250}, list[0])
	assert.Equal(t, id2, list[1].ID)
	assert.Equal(t, robusta, list[1].Input())
}

func TestCreateThenGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.CreateCoffee(ctx, arabica())
	require.NoError(t, err)

	got, err := store.GetCoffee(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, arabica(), got.Input())
}

func TestUpdateThenGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.CreateCoffee(ctx, arabica())
	require.NoError(t, err)

	updated := arabica()
	updated.IsGround = true
	updated.Price = 13.75
	updated.TasteDescription = "Nutty, caramel"
	require.NoError(t, store.UpdateCoffee(ctx, id, updated))

	got, err := store.GetCoffee(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, updated, got.Input())
}

func TestUpdateMissingRowIsNotAnError(t *testing.T) {
	store := newTestStore(t)

	err := store.UpdateCoffee(context.Background(), 42, arabica())
	assert.NoError(t, err)

	list, err := store.ListCoffee(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestGetMissingIsNotFound(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetCoffee(context.Background(), 99)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, database.ErrNotFound)
	assert.False(t, database.IsStorageError(err))
}

func TestListEmpty(t *testing.T) {
	store := newTestStore(t)

	list, err := store.ListCoffee(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMissingDatabaseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.sqlite")
	store := New(path)
	ctx := context.Background()

	_, err := store.ListCoffee(ctx)
	assert.ErrorIs(t, err, database.ErrDatabaseNotFound)
	assert.True(t, database.IsStorageError(err))

	_, err = store.GetCoffee(ctx, 1)
	assert.ErrorIs(t, err, database.ErrDatabaseNotFound)

	_, err = store.CreateCoffee(ctx, arabica())
	assert.ErrorIs(t, err, database.ErrDatabaseNotFound)

	err = store.UpdateCoffee(ctx, 1, arabica())
	assert.ErrorIs(t, err, database.ErrDatabaseNotFound)

	// no operation may create the file as a side effect
	_, statErr := os.Stat(path)
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestNullColumnsScanAsZeroValues(t *testing.T) {
	store := newTestStore(t)

	db, err := sql.Open("sqlite", store.Path())
	require.NoError(t, err)
	_, err = db.Exec("INSERT INTO coffee (id) VALUES (5)")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	got, err := store.GetCoffee(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, &models.Coffee{ID: 5}, got)
}

// ========== Driver failures ==========

func TestListCoffee_QueryError(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("SELECT (.+) FROM coffee ORDER BY id").WillReturnError(errors.New("disk I/O error"))
	mock.ExpectClose()

	list, err := store.ListCoffee(context.Background())
	assert.Nil(t, list)

	var serr *database.StorageError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "list coffee", serr.Op)
	assert.EqualError(t, err, "failed to list coffee: disk I/O error")
}

func TestListCoffee_ScansRowsInOrder(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("SELECT (.+) FROM coffee ORDER BY id").
		WillReturnRows(sqlmock.NewRows(coffeeColumns).
			AddRow(1, "Arabica", "Medium", 0, "Nutty", 12.5, 250).
			AddRow(2, "Robusta", "Dark", 1, "Bitter", 7.0, 1000))
	mock.ExpectClose()

	list, err := store.ListCoffee(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.False(t, list[0].IsGround)
	assert.True(t, list[1].IsGround)
	assert.Equal(t, "Robusta", list[1].SortName)
}

func TestGetCoffee_NoRows(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("SELECT (.+) FROM coffee WHERE id = ?").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(coffeeColumns))
	mock.ExpectClose()

	_, err := store.GetCoffee(context.Background(), 3)
	assert.Equal(t, database.ErrNotFound, err)
}

func TestCreateCoffee_ConstraintViolation(t *testing.T) {
	store, mock := newMockStore(t)
	in := arabica()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO coffee (sort_name, roast_level, is_ground, taste_description, price, package_volume)")).
		WithArgs(in.SortName, in.RoastLevel, 0, in.TasteDescription, in.Price, in.PackageVolume).
		WillReturnError(errors.New("constraint failed"))
	mock.ExpectClose()

	id, err := store.CreateCoffee(context.Background(), in)
	assert.Zero(t, id)
	assert.True(t, database.IsStorageError(err))
}

func TestUpdateCoffee_WritesAllFields(t *testing.T) {
	store, mock := newMockStore(t)
	in := arabica()
	in.IsGround = true
	mock.ExpectExec("UPDATE coffee SET (.+) WHERE id = ?").
		WithArgs(in.SortName, in.RoastLevel, 1, in.TasteDescription, in.Price, in.PackageVolume, int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectClose()

	assert.NoError(t, store.UpdateCoffee(context.Background(), 8, in))
}

func TestCloseErrorIsReported(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec("UPDATE coffee").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectClose().WillReturnError(errors.New("close failed"))

	err := store.UpdateCoffee(context.Background(), 1, arabica())
	assert.True(t, database.IsStorageError(err))
	assert.ErrorContains(t, err, "close failed")
}

func TestOpenErrorIsStorageError(t *testing.T) {
	store := New("unused")
	store.open = func() (*sql.DB, error) { return nil, errors.New("permission denied") }

	_, err := store.ListCoffee(context.Background())
	assert.EqualError(t, err, "failed to list coffee: permission denied")
}
