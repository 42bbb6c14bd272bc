// Package cli implements walletctl, an interactive shell over a wallet
// slot. Passwords are read from the terminal without echo and are wrapped
// in secret.Secret values that are wiped after each command.
package cli
