package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "~/.kaspa/wallet.kaspa", c.WalletPath)
	assert.Equal(t, KindFile, c.Storage.Kind)
	assert.False(t, c.Storage.Archive)
	assert.Equal(t, "~/.kaspa/archive", c.Storage.ArchiveDir)
	assert.Equal(t, "us-east-1", c.Storage.S3Region)
	assert.Equal(t, "wallets", c.Storage.S3Prefix)
	assert.Equal(t, "warn", c.LogLevel)
	assert.Equal(t, "text", c.LogFormat)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"walletctl"}

	c := LoadConfig()
	require.NotNil(t, c)

	var want Config
	want.LoadDefaults()
	assert.Equal(t, want, *c)
}

func TestStorage_Validate(t *testing.T) {
	tests := []struct {
		name    string
		storage Storage
		wantErr bool
	}{
		{"file", Storage{Kind: KindFile}, false},
		{"file archive", Storage{Kind: KindFile, Archive: true, ArchiveDir: "a"}, false},
		{"file archive without dir", Storage{Kind: KindFile, Archive: true}, true},
		{"memory", Storage{Kind: KindMemory}, false},
		{"sqlite", Storage{Kind: KindSQLite, SQLitePath: "w.db"}, false},
		{"sqlite without path", Storage{Kind: KindSQLite}, true},
		{"postgres", Storage{Kind: KindPostgres, DatabaseDSN: "postgres://x"}, false},
		{"postgres without dsn", Storage{Kind: KindPostgres}, true},
		{"s3", Storage{Kind: KindS3, S3Bucket: "b"}, false},
		{"s3 without bucket", Storage{Kind: KindS3}, true},
		{"remote", Storage{Kind: KindRemote, RemoteAddr: "localhost:50051"}, false},
		{"remote without addr", Storage{Kind: KindRemote}, true},
		{"unknown", Storage{Kind: "tape"}, true},
		{"empty", Storage{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.storage.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
