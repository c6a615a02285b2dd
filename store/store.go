// Package store provides the SQLite-backed message history served by the
// demo message API.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"git.sr.ht/~gioverse/scroll/list"
	"git.sr.ht/~gioverse/scroll/source"
)

//go:embed schema.sql
var schema string

const currentSchemaVersion = 1

// ErrBadToken is returned by Page for page tokens it did not issue.
var ErrBadToken = errors.New("invalid page token")

// Store provides access to the SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens a database at the given path, creating the schema if needed.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if path == ":memory:" {
		// Every connection to an in-memory database sees its own copy.
		db.SetMaxOpenConns(1)
	} else if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// OpenMemory opens an in-memory database for testing.
func OpenMemory() (*Store, error) {
	return Open(":memory:")
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		// No schema yet.
		if _, err := s.db.Exec(schema); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		return nil
	}
	if version != currentSchemaVersion {
		return fmt.Errorf("unsupported schema version %d", version)
	}
	return nil
}

// Insert appends messages to the end of the history. Messages without an ID
// get a random one. The stored messages are returned.
func (s *Store) Insert(ctx context.Context, items ...list.Item) ([]list.Item, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO messages (id, author_name, author_photo, content, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()
	stored := make([]list.Item, len(items))
	for ii, item := range items {
		if item.ID == "" {
			item.ID = uuid.NewString()
		}
		if item.UpdatedAt.IsZero() {
			item.UpdatedAt = time.Now()
		}
		item.UpdatedAt = item.UpdatedAt.UTC().Truncate(time.Millisecond)
		if _, err := stmt.ExecContext(ctx, item.ID, item.Author.Name, item.Author.PhotoURL, item.Content, item.UpdatedAt.UnixMilli()); err != nil {
			return nil, fmt.Errorf("insert message %s: %w", item.ID, err)
		}
		stored[ii] = item
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return stored, nil
}

// Seed fills an empty history with n generated messages. It does nothing if
// the history already holds messages.
func (s *Store) Seed(ctx context.Context, n int) error {
	count, err := s.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 || n <= 0 {
		return nil
	}
	g := &source.Generator{}
	page, err := g.Fetch(ctx, n, "")
	if err != nil {
		return fmt.Errorf("generate messages: %w", err)
	}
	for ii := range page.Items {
		page.Items[ii].ID = ""
	}
	_, err = s.Insert(ctx, page.Items...)
	return err
}

// Count returns the number of messages in the history.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM messages").Scan(&n); err != nil {
		return 0, fmt.Errorf("count messages: %w", err)
	}
	return n, nil
}

// Page returns up to limit messages following the position encoded by
// token, and the token of the next page. An empty token starts from the
// beginning. Past the end, the token is returned unchanged along with no
// messages, so a client never wraps around to the first page.
func (s *Store) Page(ctx context.Context, limit int, token string) ([]list.Item, string, error) {
	after, err := decodeToken(token)
	if err != nil {
		return nil, "", err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, id, author_name, author_photo, content, updated_at
		FROM messages
		WHERE seq > ?
		ORDER BY seq
		LIMIT ?
	`, after, limit)
	if err != nil {
		return nil, "", fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()
	var (
		items = []list.Item{}
		last  = after
	)
	for rows.Next() {
		var (
			item    list.Item
			updated int64
		)
		if err := rows.Scan(&last, &item.ID, &item.Author.Name, &item.Author.PhotoURL, &item.Content, &updated); err != nil {
			return nil, "", fmt.Errorf("scan message: %w", err)
		}
		item.UpdatedAt = time.UnixMilli(updated).UTC()
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("iterate messages: %w", err)
	}
	return items, encodeToken(last), nil
}

func encodeToken(seq int64) string {
	if seq == 0 {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString([]byte("seq:" + strconv.FormatInt(seq, 10)))
}

func decodeToken(token string) (int64, error) {
	if token == "" {
		return 0, nil
	}
	b, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil || len(b) < 5 || string(b[:4]) != "seq:" {
		return 0, fmt.Errorf("%w: %q", ErrBadToken, token)
	}
	seq, err := strconv.ParseInt(string(b[4:]), 10, 64)
	if err != nil || seq < 0 {
		return 0, fmt.Errorf("%w: %q", ErrBadToken, token)
	}
	return seq, nil
}
