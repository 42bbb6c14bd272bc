package config

import (
	"time"

	wconfig "github.com/dmitrijs2005/walletcore/internal/config"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes slot server environment variables, e.g.
// SLOTSERVER_SECRET_KEY.
const EnvPrefix = "SLOTSERVER"

type EnvConfig struct {
	wconfig.Storage
	EndpointAddrGRPC            string        `envconfig:"ENDPOINT_ADDR_GRPC"`
	SecretKey                   string        `envconfig:"SECRET_KEY"`
	AccessTokenValidityDuration time.Duration `envconfig:"ACCESS_TOKEN_VALIDITY_DURATION"`
	LogLevel                    string        `envconfig:"LOG_LEVEL"`
	LogFormat                   string        `envconfig:"LOG_FORMAT"`
}

// parseEnv overlays SLOTSERVER_* variables onto config.
func parseEnv(config *Config) {
	c := &EnvConfig{
		Storage:                     config.Storage,
		EndpointAddrGRPC:            config.EndpointAddrGRPC,
		SecretKey:                   config.SecretKey,
		AccessTokenValidityDuration: config.AccessTokenValidityDuration,
		LogLevel:                    config.LogLevel,
		LogFormat:                   config.LogFormat,
	}
	if err := envconfig.Process(EnvPrefix, c); err != nil {
		panic(err)
	}

	config.Storage = c.Storage
	config.EndpointAddrGRPC = c.EndpointAddrGRPC
	config.SecretKey = c.SecretKey
	config.AccessTokenValidityDuration = c.AccessTokenValidityDuration
	config.LogLevel = c.LogLevel
	config.LogFormat = c.LogFormat
}
