package cli

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	calls []string
	args  [][]string
	err   error
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	return f.err
}

func (f *fakeExec) Create(context.Context) error { return f.record("create", nil) }
func (f *fakeExec) Show(context.Context) error   { return f.record("show", nil) }
func (f *fakeExec) AddAccount(_ context.Context, args []string) error {
	return f.record("add-account", args)
}
func (f *fakeExec) Encrypt(_ context.Context, args []string) error {
	return f.record("encrypt", args)
}
func (f *fakeExec) Decrypt(_ context.Context, args []string) error {
	return f.record("decrypt", args)
}
func (f *fakeExec) TxID(context.Context) error { return f.record("txid", nil) }
func (f *fakeExec) Info(context.Context) error { return f.record("info", nil) }

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, len(a))
		for i, v := range a {
			parts[i] = strings.TrimSpace(strings.Trim(fmtAny(v), "\n"))
		}
		lines = append(lines, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &lines
}

func fmtAny(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case error:
		return x.Error()
	}
	return ""
}

func TestRunREPL_Dispatch(t *testing.T) {
	out := captureOutput(t)

	input := strings.Join([]string{
		"help",
		"",
		"create",
		"show",
		"add-account bip32 main My Wallet",
		"encrypt hello there",
		"decrypt abc",
		"txid",
		"info",
		"foobar",
		"exit",
		"show",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, "wallet> ", rdr(input))

	assert.Equal(t, []string{"create", "show", "add-account", "encrypt", "decrypt", "txid", "info"}, exec.calls)
	assert.Equal(t, []string{"bip32", "main", "My", "Wallet"}, exec.args[2])
	assert.Equal(t, []string{"hello", "there"}, exec.args[3])
	assert.Contains(t, *out, "Unknown command: foobar")
	assert.Contains(t, *out, "Bye!")
}

func TestRunREPL_ErrorsAreReportedAndLoopContinues(t *testing.T) {
	out := captureOutput(t)

	exec := &fakeExec{err: errors.New("boom")}
	runREPL(context.Background(), exec, "wallet> ", rdr("show\ninfo"))

	assert.Equal(t, []string{"show", "info"}, exec.calls)
	assert.Contains(t, *out, "Error: boom")
}
