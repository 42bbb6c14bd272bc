package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/walletcore/internal/flagx"
	"github.com/dmitrijs2005/walletcore/internal/timex"
)

// JsonConfig is the on-disk form of Config. RequestTimeout accepts "10s" or
// integer nanoseconds.
type JsonConfig struct {
	WalletPath     string         `json:"wallet_path"`
	Storage        Storage        `json:"storage"`
	LogLevel       string         `json:"log_level"`
	LogFormat      string         `json:"log_format"`
	RequestTimeout timex.Duration `json:"request_timeout"`
}

// parseJson overlays the JSON file named by -c/-config onto config. Keys
// absent from the file keep their current values. An unreadable or invalid
// file panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{
		WalletPath:     config.WalletPath,
		Storage:        config.Storage,
		LogLevel:       config.LogLevel,
		LogFormat:      config.LogFormat,
		RequestTimeout: timex.Duration{Duration: config.RequestTimeout},
	}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.WalletPath = c.WalletPath
	config.Storage = c.Storage
	config.LogLevel = c.LogLevel
	config.LogFormat = c.LogFormat
	config.RequestTimeout = c.RequestTimeout.Duration
}
