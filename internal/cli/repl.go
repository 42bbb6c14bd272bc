package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	Create(ctx context.Context) error
	Show(ctx context.Context) error
	AddAccount(ctx context.Context, args []string) error
	Encrypt(ctx context.Context, args []string) error
	Decrypt(ctx context.Context, args []string) error
	TxID(ctx context.Context) error
	Info(ctx context.Context) error
}

const helpText = `Available commands:
  create                          create an empty wallet
  show                            list wallet accounts
  add-account <kind> [name] [title...]
                                  add an account record
  encrypt <text...>               encrypt text with a password (base64 output)
  decrypt <base64>                decrypt text produced by encrypt
  txid                            compute the id of a JSON transaction
  info                            show the wallet slot and storage
  exit | quit                     leave the program`

// runREPL reads commands from reader and dispatches them to a until EOF
// or "exit". Command errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, prompt string, reader *bufio.Reader) {
	for {
		printlnFn(prompt)
		line, err := reader.ReadString('\n')
		if line == "" && err != nil {
			if !errors.Is(err, io.EOF) {
				printlnFn("Error:", err)
			}
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			printlnFn(helpText)
		case "create":
			cmdErr = a.Create(ctx)
		case "show", "ls":
			cmdErr = a.Show(ctx)
		case "add-account":
			cmdErr = a.AddAccount(ctx, args)
		case "encrypt":
			cmdErr = a.Encrypt(ctx, args)
		case "decrypt":
			cmdErr = a.Decrypt(ctx, args)
		case "txid":
			cmdErr = a.TxID(ctx)
		case "info":
			cmdErr = a.Info(ctx)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
	}
}
