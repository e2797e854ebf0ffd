package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/multierr"

	"coffeecatalog/internal/database"
	"coffeecatalog/internal/models"

	_ "modernc.org/sqlite"
)

// Schema of the catalog table.
const Schema = `
	CREATE TABLE IF NOT EXISTS coffee (
		id INTEGER PRIMARY KEY,
		sort_name TEXT,
		roast_level TEXT,
		is_ground INTEGER,
		taste_description TEXT,
		price REAL,
		package_volume INTEGER
	)
`

// Store is a database.Store backed by a single SQLite file. A connection
// is opened for each operation and closed before the operation returns.
type Store struct {
	path string
	open func() (*sql.DB, error)
}

var _ database.Store = (*Store)(nil)

// New returns a store for the database file at path. The file is not
// touched until the first operation.
func New(path string) *Store {
	s := &Store{path: path}
	s.open = s.openFile
	return s
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) openFile() (*sql.DB, error) {
	// sql.Open would silently create a missing file
	if _, err := os.Stat(s.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", database.ErrDatabaseNotFound, s.path)
		}
		return nil, fmt.Errorf("failed to stat database: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// withDB runs fn against a freshly opened connection and releases it
// afterwards. Everything except ErrNotFound is reported as a StorageError.
func (s *Store) withDB(op string, fn func(db *sql.DB) error) (err error) {
	db, err := s.open()
	if err != nil {
		return &database.StorageError{Op: op, Err: err}
	}

	defer func() {
		if cerr := db.Close(); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("failed to close database: %w", cerr))
		}
		if err != nil && err != database.ErrNotFound {
			err = &database.StorageError{Op: op, Err: err}
		}
	}()

	return fn(db)
}

func (s *Store) ListCoffee(ctx context.Context) ([]*models.Coffee, error) {
	var coffees []*models.Coffee

	err := s.withDB("list coffee", func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, `
			SELECT id, sort_name, roast_level, is_ground, taste_description, price, package_volume
			FROM coffee
			ORDER BY id
		`)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			coffee, err := scanCoffee(rows)
			if err != nil {
				return fmt.Errorf("failed to scan coffee: %w", err)
			}
			coffees = append(coffees, coffee)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return coffees, nil
}

func (s *Store) GetCoffee(ctx context.Context, id int64) (*models.Coffee, error) {
	var coffee *models.Coffee

	err := s.withDB("get coffee", func(db *sql.DB) error {
		row := db.QueryRowContext(ctx, `
			SELECT id, sort_name, roast_level, is_ground, taste_description, price, package_volume
			FROM coffee
			WHERE id = ?
		`, id)

		var err error
		coffee, err = scanCoffee(row)
		if errors.Is(err, sql.ErrNoRows) {
			return database.ErrNotFound
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	return coffee, nil
}

func (s *Store) CreateCoffee(ctx context.Context, req *models.CoffeeInput) (int64, error) {
	var id int64

	err := s.withDB("create coffee", func(db *sql.DB) error {
		result, err := db.ExecContext(ctx, `
			INSERT INTO coffee (sort_name, roast_level, is_ground, taste_description, price, package_volume)
			VALUES (?, ?, ?, ?, ?, ?)
		`, req.SortName, req.RoastLevel, boolToInt(req.IsGround), req.TasteDescription, req.Price, req.PackageVolume)
		if err != nil {
			return err
		}

		id, err = result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get last insert id: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}

func (s *Store) UpdateCoffee(ctx context.Context, id int64, req *models.CoffeeInput) error {
	return s.withDB("update coffee", func(db *sql.DB) error {
		_, err := db.ExecContext(ctx, `
			UPDATE coffee
			SET sort_name = ?, roast_level = ?, is_ground = ?, taste_description = ?, price = ?, package_volume = ?
			WHERE id = ?
		`, req.SortName, req.RoastLevel, boolToInt(req.IsGround), req.TasteDescription, req.Price, req.PackageVolume, id)
		return err
	})
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCoffee(row scanner) (*models.Coffee, error) {
	var (
		coffee      models.Coffee
		sortName    sql.NullString
		roastLevel  sql.NullString
		isGround    sql.NullInt64
		description sql.NullString
		price       sql.NullFloat64
		volume      sql.NullInt64
	)

	err := row.Scan(&coffee.ID, &sortName, &roastLevel, &isGround, &description, &price, &volume)
	if err != nil {
		return nil, err
	}

	coffee.SortName = sortName.String
	coffee.RoastLevel = roastLevel.String
	coffee.IsGround = isGround.Int64 != 0
	coffee.TasteDescription = description.String
	coffee.Price = price.Float64
	coffee.PackageVolume = int(volume.Int64)

	return &coffee, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
