// Package sqlite provides a SQLite-backed salstore.ItemStore.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"sync/atomic"

	"github.com/khicago/salstore"
	_ "modernc.org/sqlite"
)

// DefaultTable is the table items are kept in.
const DefaultTable = "salstore_items"

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Option customizes Open.
type Option func(*Store)

// WithTable sets the table name. It must be a plain SQL identifier.
func WithTable(name string) Option {
	return func(s *Store) {
		if name != "" {
			s.table = name
		}
	}
}

// Store keeps items in a key/value table of a SQLite database.
type Store struct {
	sqlDB  *sql.DB
	table  string
	closed atomic.Bool
}

// Open opens (creating if needed) a SQLite store at path.
func Open(path string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	s := &Store{table: DefaultTable}
	for _, opt := range opts {
		opt(s)
	}
	if !tableName.MatchString(s.table) {
		return nil, fmt.Errorf("invalid table name %q", s.table)
	}

	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	s.sqlDB = sqlDB

	if err := s.migrate(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.sqlDB.Exec(`CREATE TABLE IF NOT EXISTS ` + s.table + ` (
		item_key   TEXT PRIMARY KEY,
		item_value BLOB NOT NULL
	)`)
	return err
}

// Close closes the underlying SQLite database. The store is unavailable afterwards.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	s.closed.Store(true)
	return s.sqlDB.Close()
}

// Available reports whether the database is open.
func (s *Store) Available() bool {
	return s != nil && s.sqlDB != nil && !s.closed.Load()
}

func (s *Store) GetItem(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var value []byte
	err := s.sqlDB.QueryRowContext(ctx, `SELECT item_value FROM `+s.table+` WHERE item_key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, salstore.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get item %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetItem(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if value == nil {
		value = []byte{}
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO `+s.table+` (item_key, item_value) VALUES (?, ?)
		 ON CONFLICT(item_key) DO UPDATE SET item_value = excluded.item_value`, key, value)
	if err != nil {
		return fmt.Errorf("set item %s: %w", key, err)
	}
	return nil
}

var _ salstore.ItemStore = (*Store)(nil)
