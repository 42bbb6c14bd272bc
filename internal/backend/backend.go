// Package backend turns a storage configuration into a slot backend.
package backend

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/walletcore/internal/config"
	"github.com/dmitrijs2005/walletcore/internal/dbx"
	"github.com/dmitrijs2005/walletcore/internal/logging"
	"github.com/dmitrijs2005/walletcore/internal/storage"
	"github.com/dmitrijs2005/walletcore/internal/storage/filestore"
	"github.com/dmitrijs2005/walletcore/internal/storage/memstore"
	"github.com/dmitrijs2005/walletcore/internal/storage/remotestore"
	"github.com/dmitrijs2005/walletcore/internal/storage/s3store"
	"github.com/dmitrijs2005/walletcore/internal/storage/sqlstore"
)

// CloseFunc releases whatever the backend holds open.
type CloseFunc func() error

func noClose() error { return nil }

// Open builds the backend selected by cfg. A file backend requested on a
// sandboxed runtime falls back to in-memory slots.
func Open(ctx context.Context, cfg config.Storage, rt storage.Runtime, l logging.Logger) (storage.Backend, CloseFunc, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	l = l.With("storage", cfg.Kind)

	switch cfg.Kind {
	case config.KindFile:
		if rt == storage.RuntimeSandboxed {
			l.Warn(ctx, "no filesystem on this runtime, using in-memory slots")
			return memstore.New(), noClose, nil
		}
		opts := []filestore.Option{filestore.WithLogger(l)}
		if cfg.Root != "" {
			root, err := storage.ResolvePath(cfg.Root, rt)
			if err != nil {
				return nil, nil, fmt.Errorf("storage root: %w", err)
			}
			opts = append(opts, filestore.WithRoot(root))
		}
		if cfg.Archive {
			dir, err := storage.ResolvePath(cfg.ArchiveDir, rt)
			if err != nil {
				return nil, nil, fmt.Errorf("archive dir: %w", err)
			}
			opts = append(opts, filestore.WithArchive(dir))
		}
		return filestore.New(opts...), noClose, nil

	case config.KindMemory:
		return memstore.New(), noClose, nil

	case config.KindSQLite, config.KindPostgres:
		d, dsn := dbx.DialectSQLite, cfg.SQLitePath
		if cfg.Kind == config.KindPostgres {
			d, dsn = dbx.DialectPostgres, cfg.DatabaseDSN
		}
		opts := []sqlstore.Option{sqlstore.WithLogger(l)}
		if cfg.Archive {
			opts = append(opts, sqlstore.WithArchive())
		}
		s, err := sqlstore.Open(ctx, d, dsn, opts...)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil

	case config.KindS3:
		s, err := s3store.New(ctx, s3store.Config{
			User:         cfg.S3User,
			Password:     cfg.S3Password,
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
			Prefix:       cfg.S3Prefix,
		}, s3store.WithLogger(l))
		if err != nil {
			return nil, nil, err
		}
		return s, noClose, nil

	case config.KindRemote:
		s, err := remotestore.New(cfg.RemoteAddr, cfg.AccessToken, remotestore.WithLogger(l))
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	}

	return nil, nil, fmt.Errorf("unknown storage kind %q", cfg.Kind)
}

// Slot maps a wallet path to the slot id used with cfg. The file backend
// addresses slots by resolved path; every other backend, and any backend on
// a sandboxed runtime, by the bare file name.
func Slot(cfg config.Storage, walletPath string, rt storage.Runtime) (string, error) {
	if cfg.Kind != config.KindFile {
		rt = storage.RuntimeSandboxed
	}
	return storage.ResolvePath(walletPath, rt)
}
