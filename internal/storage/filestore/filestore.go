// Package filestore keeps wallet slots as files on the native filesystem.
//
// A slot id is a file path; relative ids are resolved against the root
// directory when one is configured. The envelope is written as standard base64 text,
// through a synced temporary file that is renamed over the target, so a crash
// never leaves a half-written wallet behind. When archiving is enabled the
// previous file is copied aside before it is replaced.
package filestore

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/walletcore/internal/common"
	"github.com/dmitrijs2005/walletcore/internal/filex"
	"github.com/dmitrijs2005/walletcore/internal/logging"
)

const filePerm fs.FileMode = 0o600

type Store struct {
	root       string
	archiveDir string
	log        logging.Logger
	now        func() time.Time
}

type Option func(*Store)

// WithArchive copies the current file of a slot into dir before each write.
func WithArchive(dir string) Option {
	return func(s *Store) {
		s.archiveDir = dir
	}
}

// WithRoot resolves relative slot ids against dir.
func WithRoot(dir string) Option {
	return func(s *Store) {
		s.root = dir
	}
}

func WithLogger(l logging.Logger) Option {
	return func(s *Store) {
		s.log = l
	}
}

func New(opts ...Option) *Store {
	s := &Store{
		log: logging.Nop(),
		now: time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Store) path(slot string) string {
	if s.root == "" || filepath.IsAbs(slot) {
		return slot
	}
	return filepath.Join(s.root, slot)
}

func (s *Store) Exists(_ context.Context, slot string) (bool, error) {
	fi, err := os.Stat(s.path(slot))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if fi.IsDir() {
		return false, fmt.Errorf("%s is a directory", slot)
	}
	return true, nil
}

func (s *Store) Read(_ context.Context, slot string) ([]byte, error) {
	buf, err := os.ReadFile(s.path(slot))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, err
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(buf)))
	if err != nil {
		return nil, fmt.Errorf("wallet file is not valid base64: %w", err)
	}
	return data, nil
}

func (s *Store) Write(ctx context.Context, slot string, data []byte) error {
	p := s.path(slot)

	if s.archiveDir != "" {
		name, err := filex.Archive(p, s.archiveDir, s.now())
		if err != nil {
			return fmt.Errorf("archive previous wallet file: %w", err)
		}
		if name != "" {
			s.log.Info(ctx, "previous wallet file archived", "slot", slot, "archive", filepath.Base(name))
		}
	}

	enc := base64.StdEncoding.EncodeToString(data)
	if err := filex.WriteAtomic(p, []byte(enc), filePerm); err != nil {
		return err
	}

	s.log.Debug(ctx, "wallet file written", "slot", slot, "bytes", len(enc))
	return nil
}
