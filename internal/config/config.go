package config

import (
	"time"

	"github.com/dmitrijs2005/walletcore/internal/storage"
)

// Config holds runtime settings for walletctl.
type Config struct {
	WalletPath     string
	Storage        Storage
	LogLevel       string
	LogFormat      string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with defaults: a file wallet at the default
// path, archiving disabled.
func (c *Config) LoadDefaults() {
	c.WalletPath = storage.DefaultPath
	c.Storage = Storage{
		Kind:       KindFile,
		ArchiveDir: "~/.kaspa/archive",
		S3Region:   "us-east-1",
		S3Prefix:   "wallets",
	}
	c.LogLevel = "warn"
	c.LogFormat = "text"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig applies defaults, then the JSON file named by -c/-config, then
// WALLETCTL_* environment variables, then command-line flags. Later sources
// take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
