// Package config handles configuration for the slot server, including
// defaults, JSON overlay, and command-line flags.
package config

import (
	"time"

	wconfig "github.com/dmitrijs2005/walletcore/internal/config"
)

// Config holds runtime settings for the slot server.
//
// Fields:
//   - EndpointAddrGRPC: bind address for the gRPC endpoint.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - AccessTokenValidityDuration: lifetime of tokens minted with -mint.
//   - Storage: backend holding the slots of all users.
//   - LogLevel / LogFormat: logger settings.
type Config struct {
	EndpointAddrGRPC            string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	Storage                     wconfig.Storage
	LogLevel                    string
	LogFormat                   string
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":50051"
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 24 * time.Hour
	c.Storage = wconfig.Storage{
		Kind:       wconfig.KindFile,
		Root:       "slots",
		ArchiveDir: "slots-archive",
		S3Region:   "us-east-1",
		S3Prefix:   "slots",
	}
	c.LogLevel = "info"
	c.LogFormat = "json"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, SLOTSERVER_* environment variables and finally
// command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
