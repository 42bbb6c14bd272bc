// Package sqlstore keeps wallet slots as rows of a wallet_slots table in
// SQLite (modernc.org/sqlite) or PostgreSQL (pgx). Writes are upserts run in
// a transaction; with archiving enabled the replaced row is first copied
// into wallet_slot_archive inside the same transaction.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/walletcore/internal/common"
	"github.com/dmitrijs2005/walletcore/internal/dbx"
	"github.com/dmitrijs2005/walletcore/internal/logging"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const (
	existsQuery  = `SELECT EXISTS (SELECT 1 FROM wallet_slots WHERE id = ?)`
	readQuery    = `SELECT data FROM wallet_slots WHERE id = ?`
	archiveQuery = `INSERT INTO wallet_slot_archive (slot_id, data, archived_at)
		SELECT id, data, ? FROM wallet_slots WHERE id = ?`
	upsertQuery = `INSERT INTO wallet_slots (id, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`
)

type Store struct {
	db      *sql.DB
	dialect dbx.Dialect
	archive bool
	log     logging.Logger
	now     func() time.Time
}

type Option func(*Store)

// WithArchive keeps every replaced blob in wallet_slot_archive.
func WithArchive() Option {
	return func(s *Store) {
		s.archive = true
	}
}

func WithLogger(l logging.Logger) Option {
	return func(s *Store) {
		s.log = l
	}
}

// New wraps an open database. The schema is expected to exist already; see
// Open and RunMigrations.
func New(db *sql.DB, d dbx.Dialect, opts ...Option) *Store {
	s := &Store{
		db:      db,
		dialect: d,
		log:     logging.Nop(),
		now:     time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func driverName(d dbx.Dialect) (string, error) {
	switch d {
	case dbx.DialectSQLite:
		return "sqlite", nil
	case dbx.DialectPostgres:
		return "pgx", nil
	default:
		return "", fmt.Errorf("unsupported dialect %q", d)
	}
}

// Open connects to dsn, applies pending migrations and returns a Store that
// owns the connection.
func Open(ctx context.Context, d dbx.Dialect, dsn string, opts ...Option) (*Store, error) {
	driver, err := driverName(d)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if err := RunMigrations(ctx, db, d); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return New(db, d, opts...), nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) q(query string) string {
	return dbx.Rebind(s.dialect, query)
}

func (s *Store) Exists(ctx context.Context, slot string) (bool, error) {
	var ok bool
	if err := s.db.QueryRowContext(ctx, s.q(existsQuery), slot).Scan(&ok); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return ok, nil
}

func (s *Store) Read(ctx context.Context, slot string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, s.q(readQuery), slot).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return data, nil
}

func (s *Store) Write(ctx context.Context, slot string, data []byte) error {
	now := s.now().UTC()

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if s.archive {
			res, err := tx.ExecContext(ctx, s.q(archiveQuery), now, slot)
			if err != nil {
				return fmt.Errorf("archive: %w", err)
			}
			if n, err := res.RowsAffected(); err == nil && n > 0 {
				s.log.Info(ctx, "previous wallet blob archived", "slot", slot)
			}
		}

		if _, err := tx.ExecContext(ctx, s.q(upsertQuery), slot, data, now); err != nil {
			return fmt.Errorf("upsert: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	s.log.Debug(ctx, "wallet row written", "slot", slot, "bytes", len(data))
	return nil
}
