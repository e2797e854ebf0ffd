package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
)

// ErrDatabaseExists is returned by Create when the target file is present.
var ErrDatabaseExists = errors.New("database already exists")

// SeedFromTemplate copies the template database to path when path does not
// exist yet. It reports whether a copy was made. A missing template is not
// an error: the database stays absent and the store reports it on first use.
func SeedFromTemplate(path, template string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("failed to stat database: %w", err)
	}

	if template == "" {
		return false, nil
	}
	src, err := os.Open(template)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to open template: %w", err)
	}
	defer src.Close()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create data directory: %w", err)
	}

	// Written beside the target and renamed into place.
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return false, fmt.Errorf("failed to create database: %w", err)
	}
	defer os.Remove(tmp.Name())

	_, err = io.Copy(tmp, src)
	err = multierr.Append(err, tmp.Close())
	if err != nil {
		return false, fmt.Errorf("failed to copy template: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return false, fmt.Errorf("failed to install database: %w", err)
	}

	return true, nil
}

// Create makes a new empty catalog database at path. It refuses to touch an
// existing file.
func Create(ctx context.Context, path string) (err error) {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrDatabaseExists, path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		err = multierr.Append(err, db.Close())
	}()

	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
