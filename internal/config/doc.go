// Package config handles configuration for walletctl: defaults, an optional
// JSON file given with -c/-config, environment variables, then command-line
// flags. The Storage section is shared with the slot server.
package config
