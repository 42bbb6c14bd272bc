package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/walletcore/internal/backend"
	"github.com/dmitrijs2005/walletcore/internal/common"
	"github.com/dmitrijs2005/walletcore/internal/config"
	"github.com/dmitrijs2005/walletcore/internal/cryptox"
	"github.com/dmitrijs2005/walletcore/internal/logging"
	"github.com/dmitrijs2005/walletcore/internal/secret"
	"github.com/dmitrijs2005/walletcore/internal/storage"
	"github.com/dmitrijs2005/walletcore/internal/tx"
)

var (
	ErrWalletExists     = errors.New("wallet already exists")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrEmptyPassword    = errors.New("password must not be empty")
	errAddAccountUsage  = errors.New("usage: add-account <kind> [name] [title...]")
	errEncryptUsage     = errors.New("usage: encrypt <text...>")
	errDecryptUsage     = errors.New("usage: decrypt <base64>")
	errEmptyTransaction = errors.New("no transaction given")
)

type App struct {
	config       *config.Config
	store        *storage.Store
	logger       logging.Logger
	closeBackend backend.CloseFunc
	reader       *bufio.Reader
	out          io.Writer
}

// NewApp opens the configured backend and binds the wallet slot.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(c.LogLevel, c.LogFormat, os.Stderr)
	rt := storage.CurrentRuntime()

	b, closeFn, err := backend.Open(ctx, c.Storage, rt, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	slot, err := backend.Slot(c.Storage, c.WalletPath, rt)
	if err != nil {
		_ = closeFn()
		return nil, fmt.Errorf("wallet path: %w", err)
	}

	a := newApp(c, storage.New(b, slot, storage.WithLogger(logger)), bufio.NewReader(os.Stdin), os.Stdout)
	a.logger = logger
	a.closeBackend = closeFn
	return a, nil
}

func newApp(c *config.Config, s *storage.Store, r *bufio.Reader, w io.Writer) *App {
	return &App{
		config:       c,
		store:        s,
		logger:       logging.Nop(),
		closeBackend: func() error { return nil },
		reader:       r,
		out:          w,
	}
}

// Run starts the interactive shell and closes the backend when it ends.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.closeBackend(); err != nil {
			a.logger.Error(ctx, "storage close error", "error", err)
		}
	}()

	printlnFn("walletctl (type 'help' for commands)")
	runREPL(ctx, a, "wallet> ", a.reader)
}

func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}

// password prompts for a password and wraps it in a Secret the caller must
// close.
func (a *App) password(prompt string) (*secret.Secret, error) {
	pw, err := GetPassword(prompt, a.out)
	if err != nil {
		return nil, err
	}
	if len(pw) == 0 {
		return nil, ErrEmptyPassword
	}
	return secret.New(pw), nil
}

// Create stores an empty wallet under a new password. It refuses to
// overwrite an existing wallet.
func (a *App) Create(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	exists, err := a.store.Exists(ctx)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrWalletExists, a.store.Slot())
	}

	pw, err := a.password("New password")
	if err != nil {
		return err
	}
	defer pw.Close()

	confirm, err := a.password("Repeat password")
	if err != nil {
		return err
	}
	defer confirm.Close()

	if !pw.Equal(confirm) {
		return ErrPasswordMismatch
	}

	if err := a.store.TryStore(ctx, pw, nil); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Wallet created: %s\n", a.store.Slot())
	return nil
}

func (a *App) load(ctx context.Context) (*storage.Wallet, *secret.Secret, error) {
	pw, err := a.password("Password")
	if err != nil {
		return nil, nil, err
	}
	w, err := a.store.TryLoad(ctx, pw)
	if err != nil {
		pw.Close()
		if errors.Is(err, common.ErrNoWalletInStorage) {
			return nil, nil, fmt.Errorf("%w (run 'create' first)", err)
		}
		return nil, nil, err
	}
	return w, pw, nil
}

// Show prints the account records of the wallet.
func (a *App) Show(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	w, pw, err := a.load(ctx)
	if err != nil {
		return err
	}
	pw.Close()

	accounts := w.Accounts()
	if len(accounts) == 0 {
		fmt.Fprintln(a.out, "No accounts.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tKIND\tNAME\tTITLE")
	for _, acc := range accounts {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", acc.PrivateKeyIndex, acc.AccountKind, acc.Name, acc.Title)
	}
	return tw.Flush()
}

// AddAccount appends an account record with the next free private key
// index and stores the wallet under the same password.
func (a *App) AddAccount(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errAddAccountUsage
	}
	kind, err := storage.ParseAccountKind(args[0])
	if err != nil {
		return err
	}
	var name, title string
	if len(args) > 1 {
		name = args[1]
	}
	if len(args) > 2 {
		title = strings.Join(args[2:], " ")
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	w, pw, err := a.load(ctx)
	if err != nil {
		return err
	}
	defer pw.Close()

	acc := storage.Account{
		PrivateKeyIndex: w.NextPrivateKeyIndex(),
		AccountKind:     kind,
		Name:            name,
		Title:           title,
	}
	if err := w.AddAccount(acc); err != nil {
		return err
	}
	if err := a.store.TryStore(ctx, pw, w); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Account %d added.\n", acc.PrivateKeyIndex)
	return nil
}

// Encrypt prints base64 ciphertext of the arguments under a password.
func (a *App) Encrypt(_ context.Context, args []string) error {
	if len(args) == 0 {
		return errEncryptUsage
	}
	pw, err := GetPassword("Password", a.out)
	if err != nil {
		return err
	}
	defer secret.Wipe(pw)

	enc, err := cryptox.EncryptString(strings.Join(args, " "), string(pw))
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, enc)
	return nil
}

// Decrypt reverses Encrypt.
func (a *App) Decrypt(_ context.Context, args []string) error {
	if len(args) != 1 {
		return errDecryptUsage
	}
	pw, err := GetPassword("Password", a.out)
	if err != nil {
		return err
	}
	defer secret.Wipe(pw)

	text, err := cryptox.DecryptString(args[0], string(pw))
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, text)
	return nil
}

// TxID reads a JSON transaction and prints its id.
func (a *App) TxID(_ context.Context) error {
	doc, err := GetMultiline(a.reader, "Paste transaction JSON", a.out)
	if err != nil {
		return err
	}
	if doc == "" {
		return errEmptyTransaction
	}

	t, err := tx.ParseJSON([]byte(doc))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "id: %s\ncoinbase: %t\n", t.ID(), t.IsCoinbase())
	return nil
}

// Info prints where the wallet lives.
func (a *App) Info(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	exists, err := a.store.Exists(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "slot: %s\nstorage: %s\nexists: %t\n", a.store.Slot(), a.config.Storage.Kind, exists)
	return nil
}
