package filestore

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/dmitrijs2005/walletcore/internal/common"
	"github.com/dmitrijs2005/walletcore/internal/secret"
	"github.com/dmitrijs2005/walletcore/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_ReadWrite(t *testing.T) {
	ctx := context.Background()
	slot := filepath.Join(t.TempDir(), ".kaspa", "wallet.kaspa")
	s := New()

	ok, err := s.Exists(ctx, slot)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.Read(ctx, slot)
	require.ErrorIs(t, err, common.ErrorNotFound)

	payload := []byte{0x00, 0x10, 0xfe, 0xff}
	require.NoError(t, s.Write(ctx, slot, payload))

	ok, err = s.Exists(ctx, slot)
	require.NoError(t, err)
	assert.True(t, ok)

	raw, err := os.ReadFile(slot)
	require.NoError(t, err)
	assert.Equal(t, base64.StdEncoding.EncodeToString(payload), string(raw), "file holds base64 text")

	got, err := s.Read(ctx, slot)
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	if runtime.GOOS != "windows" {
		fi, err := os.Stat(slot)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
	}
}

func TestStore_ReadToleratesTrailingNewline(t *testing.T) {
	slot := filepath.Join(t.TempDir(), "wallet.kaspa")
	require.NoError(t, os.WriteFile(slot, []byte("aGk=\n"), 0o600))

	got, err := New().Read(context.Background(), slot)
	require.NoError(t, err)
	assert.Equal(t, []byte("hi"), got)
}

func TestStore_ReadRejectsGarbage(t *testing.T) {
	slot := filepath.Join(t.TempDir(), "wallet.kaspa")
	require.NoError(t, os.WriteFile(slot, []byte("%%%"), 0o600))

	_, err := New().Read(context.Background(), slot)
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorNotFound)
}

func TestStore_ExistsOnDirectory(t *testing.T) {
	_, err := New().Exists(context.Background(), t.TempDir())
	require.Error(t, err)
}

func TestStore_ArchivesPreviousFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	slot := filepath.Join(dir, "wallet.kaspa")
	archive := filepath.Join(dir, "archive")

	tick := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	s := New(WithArchive(archive))
	s.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}

	require.NoError(t, s.Write(ctx, slot, []byte("one")))
	_, err := os.Stat(archive)
	require.ErrorIs(t, err, os.ErrNotExist, "nothing to archive on first write")

	require.NoError(t, s.Write(ctx, slot, []byte("two")))
	require.NoError(t, s.Write(ctx, slot, []byte("three")))

	entries, err := os.ReadDir(archive)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	first, err := os.ReadFile(filepath.Join(archive, entries[0].Name()))
	require.NoError(t, err)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("one")), string(first))

	got, err := s.Read(ctx, slot)
	require.NoError(t, err)
	assert.Equal(t, []byte("three"), got)
}

func TestStore_WithStorageEngine(t *testing.T) {
	ctx := context.Background()
	slot := filepath.Join(t.TempDir(), "wallet.kaspa")
	st := storage.New(New(), slot)

	pw := secret.FromString("password")
	defer pw.Close()

	_, err := st.TryLoad(ctx, pw)
	require.ErrorIs(t, err, common.ErrNoWalletInStorage)

	w := storage.NewWallet(storage.Account{AccountKind: storage.AccountKindBip32, Name: "main"})
	require.NoError(t, st.TryStore(ctx, pw, w))

	got, err := st.TryLoad(ctx, pw)
	require.NoError(t, err)
	assert.Equal(t, w.Accounts(), got.Accounts())

	wrong := secret.FromString("wrong")
	defer wrong.Close()
	_, err = st.TryLoad(ctx, wrong)
	require.ErrorIs(t, err, common.ErrDecryptionFailed)
}

func TestStore_WithRoot(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	s := New(WithRoot(root))

	require.NoError(t, s.Write(ctx, filepath.Join("alice", "wallet.kaspa"), []byte("a")))
	_, err := os.Stat(filepath.Join(root, "alice", "wallet.kaspa"))
	require.NoError(t, err)

	abs := filepath.Join(t.TempDir(), "abs.kaspa")
	require.NoError(t, s.Write(ctx, abs, []byte("b")))
	got, err := s.Read(ctx, abs)
	require.NoError(t, err)
	assert.Equal(t, []byte("b"), got)
}
