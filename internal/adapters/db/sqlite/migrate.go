package sqlite

import (
	"context"
	"embed"

	"github.com/d00415697/Social-Network/internal/domain"
	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations creates the schema on a fresh store. There is no migration
// history beyond the baseline: schema changes require a full reinitialize.
func RunMigrations(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return &domain.StorageError{Op: "unwrap sql.DB", Err: err}
	}

	if err := goose.SetDialect("sqlite3"); err != nil {
		return &domain.StorageError{Op: "set goose dialect", Err: err}
	}

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.UpContext(ctx, sqlDB, "migrations"); err != nil {
		return &domain.StorageError{Op: "run migrations", Err: err}
	}

	return nil
}
