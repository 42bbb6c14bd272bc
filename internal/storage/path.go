package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultPath is the wallet slot used when none is configured.
const DefaultPath = "~/.kaspa/wallet.kaspa"

// Runtime describes the host environment a slot path is resolved for.
type Runtime int

const (
	// RuntimeNative has a real filesystem and a home directory.
	RuntimeNative Runtime = iota
	// RuntimeSandboxed has only a flat key-value store.
	RuntimeSandboxed
)

func (r Runtime) String() string {
	switch r {
	case RuntimeNative:
		return "native"
	case RuntimeSandboxed:
		return "sandboxed"
	default:
		return fmt.Sprintf("Runtime(%d)", int(r))
	}
}

var userHomeDir = os.UserHomeDir

// ResolvePath turns a configured slot path into the identifier used on rt.
// An empty path means DefaultPath.
//
// On RuntimeNative a leading "~" is replaced by the user's home directory.
// On RuntimeSandboxed the path degrades to its final element; only a path
// with no file name at all is an error.
func ResolvePath(path string, rt Runtime) (string, error) {
	if path == "" {
		path = DefaultPath
	}

	if rt == RuntimeSandboxed {
		name := filepath.Base(path)
		if name == "." || name == ".." || name == string(filepath.Separator) || name == "~" {
			return "", fmt.Errorf("invalid filename %q", path)
		}
		return name, nil
	}

	rest, ok := strings.CutPrefix(path, "~")
	if !ok {
		return filepath.Clean(path), nil
	}

	home, err := userHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", path, err)
	}
	return filepath.Join(home, rest), nil
}
