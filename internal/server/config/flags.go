package config

import (
	"flag"
	"os"
	"time"

	wconfig "github.com/dmitrijs2005/walletcore/internal/config"
	"github.com/dmitrijs2005/walletcore/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-l string   log level
//	-f string   log format
//
// plus the storage flags of config.BindStorageFlags.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], append([]string{"-a", "-s", "-t", "-l", "-f"}, wconfig.StorageFlags...))

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.LogFormat, "f", config.LogFormat, "log format")
	wconfig.BindStorageFlags(fs, &config.Storage)

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
}
