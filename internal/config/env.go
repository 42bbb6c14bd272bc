package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes walletctl environment variables, e.g.
// WALLETCTL_STORAGE_KIND or WALLETCTL_REQUEST_TIMEOUT=30s.
const EnvPrefix = "WALLETCTL"

// EnvConfig maps Config onto environment variables. envconfig also accepts
// the tag names without the prefix.
type EnvConfig struct {
	Storage
	WalletPath     string        `envconfig:"WALLET_PATH"`
	LogLevel       string        `envconfig:"LOG_LEVEL"`
	LogFormat      string        `envconfig:"LOG_FORMAT"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT"`
}

// parseEnv overlays environment variables onto config. Unset variables keep
// the current values; malformed ones panic.
func parseEnv(config *Config) {
	c := &EnvConfig{
		Storage:        config.Storage,
		WalletPath:     config.WalletPath,
		LogLevel:       config.LogLevel,
		LogFormat:      config.LogFormat,
		RequestTimeout: config.RequestTimeout,
	}
	if err := envconfig.Process(EnvPrefix, c); err != nil {
		panic(err)
	}

	config.Storage = c.Storage
	config.WalletPath = c.WalletPath
	config.LogLevel = c.LogLevel
	config.LogFormat = c.LogFormat
	config.RequestTimeout = c.RequestTimeout
}
