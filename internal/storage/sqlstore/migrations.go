package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sync"

	"github.com/dmitrijs2005/walletcore/internal/dbx"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrations embed.FS

// goose keeps its base FS and dialect in package globals.
var gooseMu sync.Mutex

func migrationsFor(d dbx.Dialect) (fs.FS, error) {
	switch d {
	case dbx.DialectSQLite:
		return fs.Sub(migrations, "migrations/sqlite")
	case dbx.DialectPostgres:
		return fs.Sub(migrations, "migrations/postgres")
	default:
		return nil, fmt.Errorf("unsupported dialect %q", d)
	}
}

// RunMigrations brings the slot tables of db up to date.
func RunMigrations(ctx context.Context, db *sql.DB, d dbx.Dialect) error {
	fsys, err := migrationsFor(d)
	if err != nil {
		return err
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(string(d)); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}
