package backend

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/walletcore/internal/config"
	"github.com/dmitrijs2005/walletcore/internal/logging"
	"github.com/dmitrijs2005/walletcore/internal/secret"
	"github.com/dmitrijs2005/walletcore/internal/storage"
	"github.com/dmitrijs2005/walletcore/internal/storage/filestore"
	"github.com/dmitrijs2005/walletcore/internal/storage/memstore"
	"github.com/dmitrijs2005/walletcore/internal/storage/remotestore"
	"github.com/dmitrijs2005/walletcore/internal/storage/s3store"
	"github.com/dmitrijs2005/walletcore/internal/storage/sqlstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_Kinds(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		name string
		cfg  config.Storage
		rt   storage.Runtime
		want any
	}{
		{"file", config.Storage{Kind: config.KindFile, Root: dir}, storage.RuntimeNative, &filestore.Store{}},
		{"file on sandbox", config.Storage{Kind: config.KindFile}, storage.RuntimeSandboxed, &memstore.Store{}},
		{"memory", config.Storage{Kind: config.KindMemory}, storage.RuntimeNative, &memstore.Store{}},
		{"sqlite", config.Storage{Kind: config.KindSQLite, SQLitePath: filepath.Join(dir, "w.db"), Archive: true}, storage.RuntimeNative, &sqlstore.Store{}},
		{"s3", config.Storage{Kind: config.KindS3, S3Bucket: "b", S3Region: "us-east-1", S3BaseEndpoint: "http://127.0.0.1:9000"}, storage.RuntimeNative, &s3store.Store{}},
		{"remote", config.Storage{Kind: config.KindRemote, RemoteAddr: "127.0.0.1:1", AccessToken: "t"}, storage.RuntimeNative, &remotestore.Store{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, closeFn, err := Open(ctx, tt.cfg, tt.rt, logging.Nop())
			require.NoError(t, err)
			require.NotNil(t, closeFn)
			assert.IsType(t, tt.want, b)
			assert.NoError(t, closeFn())
		})
	}
}

func TestOpen_InvalidConfig(t *testing.T) {
	for _, cfg := range []config.Storage{
		{Kind: "tape"},
		{Kind: config.KindSQLite},
		{Kind: config.KindFile, Archive: true},
	} {
		_, _, err := Open(context.Background(), cfg, storage.RuntimeNative, logging.Nop())
		assert.Error(t, err, cfg.Kind)
	}
}

func TestOpen_FileArchiveEndToEnd(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	archive := filepath.Join(t.TempDir(), "archive")

	b, closeFn, err := Open(ctx, config.Storage{Kind: config.KindFile, Root: root, Archive: true, ArchiveDir: archive},
		storage.RuntimeNative, logging.Nop())
	require.NoError(t, err)
	defer closeFn()

	slot, err := Slot(config.Storage{Kind: config.KindFile}, "wallet.kaspa", storage.RuntimeNative)
	require.NoError(t, err)

	s := storage.New(b, slot)
	pw := secret.FromString("password")
	defer pw.Close()

	require.NoError(t, s.TryStore(ctx, pw, nil))
	require.NoError(t, s.TryStore(ctx, pw, nil))

	_, err = os.Stat(filepath.Join(root, "wallet.kaspa"))
	require.NoError(t, err)

	entries, err := os.ReadDir(archive)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	w, err := s.TryLoad(ctx, pw)
	require.NoError(t, err)
	assert.Equal(t, 0, w.Len())
}

func TestSlot(t *testing.T) {
	file := config.Storage{Kind: config.KindFile}
	sql := config.Storage{Kind: config.KindSQLite}

	slot, err := Slot(file, "/var/wallets/w.kaspa", storage.RuntimeNative)
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean("/var/wallets/w.kaspa"), slot)

	slot, err = Slot(sql, "/var/wallets/w.kaspa", storage.RuntimeNative)
	require.NoError(t, err)
	assert.Equal(t, "w.kaspa", slot)

	slot, err = Slot(file, "~/.kaspa/wallet.kaspa", storage.RuntimeSandboxed)
	require.NoError(t, err)
	assert.Equal(t, "wallet.kaspa", slot)

	_, err = Slot(sql, "/", storage.RuntimeNative)
	assert.Error(t, err)
}
