package sqlite

import (
	"context"
	"errors"
	"os"

	"github.com/d00415697/Social-Network/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// Open returns a handle over the store file. When createIfMissing is false
// and the file does not exist, the store counts as not initialized.
func Open(path string, createIfMissing bool) (*gorm.DB, error) {
	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, &domain.StorageError{Op: "stat store file", Err: err}
		}
		if !createIfMissing {
			return nil, domain.ErrNotInitialized
		}
	}

	db, err := gorm.Open(sqlite.Dialector{
		DriverName: "sqlite",
		DSN:        path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
	}, &gorm.Config{Logger: logger.Discard})
	if err != nil {
		return nil, &domain.StorageError{Op: "open store", Err: err}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, &domain.StorageError{Op: "unwrap sql.DB", Err: err}
	}
	// One connection: all units of work against the same file serialize.
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// Initialize destroys any existing store file and creates the schema fresh.
func Initialize(ctx context.Context, path string) (*gorm.DB, error) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, &domain.StorageError{Op: "remove store file", Err: err}
	}

	db, err := Open(path, true)
	if err != nil {
		return nil, err
	}
	if err := RunMigrations(ctx, db); err != nil {
		return nil, err
	}
	return db, nil
}

// Teardown irreversibly removes the store file.
func Teardown(path string) error {
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.ErrNotInitialized
		}
		return &domain.StorageError{Op: "remove store file", Err: err}
	}
	return nil
}
