package database

import (
	"context"
	"errors"
	"fmt"

	"coffeecatalog/internal/models"
)

// Store defines the interface for all catalog persistence.
// Every call is a single auto-committed statement; nothing is retried.
type Store interface {
	// ListCoffee returns every record ordered by id ascending.
	ListCoffee(ctx context.Context) ([]*models.Coffee, error)
	// GetCoffee returns ErrNotFound when no row has the given id.
	GetCoffee(ctx context.Context, id int64) (*models.Coffee, error)
	// CreateCoffee writes all fields and returns the id assigned by storage.
	CreateCoffee(ctx context.Context, coffee *models.CoffeeInput) (int64, error)
	// UpdateCoffee overwrites all fields. Matching no row is not an error.
	UpdateCoffee(ctx context.Context, id int64, coffee *models.CoffeeInput) error
}

var (
	// ErrNotFound is returned by GetCoffee when the record does not exist.
	ErrNotFound = errors.New("coffee not found")

	// ErrDatabaseNotFound means the database file is absent.
	ErrDatabaseNotFound = errors.New("database not found")
)

// StorageError wraps any failure that originates in the persistence layer.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsStorageError reports whether err came from the persistence layer.
func IsStorageError(err error) bool {
	var serr *StorageError
	return errors.As(err, &serr)
}
