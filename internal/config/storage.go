package config

import (
	"errors"
	"flag"
	"fmt"
)

// Storage backend kinds.
const (
	KindFile     = "file"
	KindMemory   = "memory"
	KindSQLite   = "sqlite"
	KindPostgres = "postgres"
	KindS3       = "s3"
	KindRemote   = "remote"
)

// Storage selects and configures the slot backend.
//
// Fields:
//   - Kind: one of file, memory, sqlite, postgres, s3, remote.
//   - Root: base directory for relative slots of the file backend.
//   - Archive / ArchiveDir: keep the previous copy of a slot before it is
//     overwritten (file and SQL backends). ArchiveDir is where the file
//     backend puts the copies; a leading "~" is expanded.
//   - DatabaseDSN: pgx DSN for postgres. SQLitePath: database file for sqlite.
//   - S3*: object storage settings.
//   - RemoteAddr / AccessToken: slot server endpoint and its JWT.
type Storage struct {
	Kind           string `json:"kind" envconfig:"STORAGE_KIND"`
	Root           string `json:"root" envconfig:"STORAGE_ROOT"`
	Archive        bool   `json:"archive" envconfig:"STORAGE_ARCHIVE"`
	ArchiveDir     string `json:"archive_dir" envconfig:"STORAGE_ARCHIVE_DIR"`
	DatabaseDSN    string `json:"database_dsn" envconfig:"DATABASE_DSN"`
	SQLitePath     string `json:"sqlite_path" envconfig:"SQLITE_PATH"`
	S3User         string `json:"s3_user" envconfig:"S3_USER"`
	S3Password     string `json:"s3_password" envconfig:"S3_PASSWORD"`
	S3Bucket       string `json:"s3_bucket" envconfig:"S3_BUCKET"`
	S3Region       string `json:"s3_region" envconfig:"S3_REGION"`
	S3BaseEndpoint string `json:"s3_base_endpoint" envconfig:"S3_BASE_ENDPOINT"`
	S3Prefix       string `json:"s3_prefix" envconfig:"S3_PREFIX"`
	RemoteAddr     string `json:"remote_addr" envconfig:"REMOTE_ADDR"`
	AccessToken    string `json:"access_token" envconfig:"ACCESS_TOKEN"`
}

// Validate checks that the settings required by Kind are present.
func (s Storage) Validate() error {
	switch s.Kind {
	case KindFile:
		if s.Archive && s.ArchiveDir == "" {
			return errors.New("file storage archive requires archive_dir")
		}
	case KindMemory:
	case KindSQLite:
		if s.SQLitePath == "" {
			return errors.New("sqlite storage requires sqlite_path")
		}
	case KindPostgres:
		if s.DatabaseDSN == "" {
			return errors.New("postgres storage requires database_dsn")
		}
	case KindS3:
		if s.S3Bucket == "" {
			return errors.New("s3 storage requires s3_bucket")
		}
	case KindRemote:
		if s.RemoteAddr == "" {
			return errors.New("remote storage requires remote_addr")
		}
	default:
		return fmt.Errorf("unknown storage kind %q", s.Kind)
	}
	return nil
}

// StorageFlags lists the flags registered by BindStorageFlags.
var StorageFlags = []string{"-k", "-R", "-A", "-D", "-d", "-q", "-u", "-p", "-b", "-g", "-e", "-x", "-r", "-T"}

// BindStorageFlags registers the storage flags on fs, defaulting to the
// current values of s.
//
//	-k string   storage kind
//	-R string   file backend root directory
//	-A bool     archive the previous copy of a slot
//	-D string   archive directory of the file backend
//	-d string   PostgreSQL DSN
//	-q string   SQLite database file
//	-u string   S3 user
//	-p string   S3 password
//	-b string   S3 bucket
//	-g string   S3 region
//	-e string   S3 base endpoint
//	-x string   S3 key prefix
//	-r string   slot server address
//	-T string   slot server access token
func BindStorageFlags(fs *flag.FlagSet, s *Storage) {
	fs.StringVar(&s.Kind, "k", s.Kind, "storage kind (file, memory, sqlite, postgres, s3, remote)")
	fs.StringVar(&s.Root, "R", s.Root, "file storage root directory")
	fs.BoolVar(&s.Archive, "A", s.Archive, "archive previous slot contents")
	fs.StringVar(&s.ArchiveDir, "D", s.ArchiveDir, "archive directory")
	fs.StringVar(&s.DatabaseDSN, "d", s.DatabaseDSN, "database DSN")
	fs.StringVar(&s.SQLitePath, "q", s.SQLitePath, "sqlite database file")
	fs.StringVar(&s.S3User, "u", s.S3User, "S3 user")
	fs.StringVar(&s.S3Password, "p", s.S3Password, "S3 password")
	fs.StringVar(&s.S3Bucket, "b", s.S3Bucket, "S3 bucket")
	fs.StringVar(&s.S3Region, "g", s.S3Region, "S3 region")
	fs.StringVar(&s.S3BaseEndpoint, "e", s.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&s.S3Prefix, "x", s.S3Prefix, "S3 key prefix")
	fs.StringVar(&s.RemoteAddr, "r", s.RemoteAddr, "slot server address")
	fs.StringVar(&s.AccessToken, "T", s.AccessToken, "slot server access token")
}
