package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/walletcore/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-w string   wallet slot (path for the file backend)
//	-l string   log level
//	-f string   log format (text, json)
//	-o int      request timeout, seconds
//
// plus the storage flags of BindStorageFlags.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], append([]string{"-w", "-l", "-f", "-o"}, StorageFlags...))

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.WalletPath, "w", cfg.WalletPath, "wallet slot")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format")
	requestTimeout := fs.Int("o", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	BindStorageFlags(fs, &cfg.Storage)

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
