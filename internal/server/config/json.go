package config

import (
	"encoding/json"
	"os"

	wconfig "github.com/dmitrijs2005/walletcore/internal/config"
	"github.com/dmitrijs2005/walletcore/internal/flagx"
	"github.com/dmitrijs2005/walletcore/internal/timex"
)

// JsonConfig is the on-disk form of Config. Durations accept "1m" or integer
// nanoseconds.
type JsonConfig struct {
	EndpointAddrGRPC            string          `json:"endpoint_addr_grpc"`
	SecretKey                   string          `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration  `json:"access_token_validity_duration"`
	Storage                     wconfig.Storage `json:"storage"`
	LogLevel                    string          `json:"log_level"`
	LogFormat                   string          `json:"log_format"`
}

// parseJson loads the JSON file named by -c or -config into config. Keys
// missing from the file keep their current values. If the file cannot be
// read or contains invalid JSON, the function panics.
func parseJson(config *Config) {

	// try flags
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
		EndpointAddrGRPC:            config.EndpointAddrGRPC,
		SecretKey:                   config.SecretKey,
		AccessTokenValidityDuration: timex.Duration{Duration: config.AccessTokenValidityDuration},
		Storage:                     config.Storage,
		LogLevel:                    config.LogLevel,
		LogFormat:                   config.LogFormat,
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.EndpointAddrGRPC = c.EndpointAddrGRPC
	config.SecretKey = c.SecretKey
	config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	config.Storage = c.Storage
	config.LogLevel = c.LogLevel
	config.LogFormat = c.LogFormat
}
