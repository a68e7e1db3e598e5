// Package store is the local sqlite cache of the sharebox client: the saved
// session and the history of successful uploads. It plays the role the
// browser's localStorage plays for the web frontend.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/jitensha/sharebox/internal/client/store/migrations"

	_ "modernc.org/sqlite"
)

// DBTX is the subset of database/sql the store queries need. Both *sql.DB
// and *sql.Tx satisfy it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store wraps the cache database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the cache DB at path and brings the
// schema up to date.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}
	if err := runMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate cache db: %w", err)
	}
	return &Store{db: db}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

func (s *Store) Close() error {
	return s.db.Close()
}

// withTx runs fn inside a transaction, committing on success and rolling
// back on error or panic.
func (s *Store) withTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()
	err = fn(ctx, tx)
	return err
}

const (
	keySessionToken = "session_token"
	keySessionEmail = "session_email"
)

// SaveSession persists the access token and account email atomically.
func (s *Store) SaveSession(ctx context.Context, token, email string) error {
	return s.withTx(ctx, func(ctx context.Context, tx DBTX) error {
		for key, value := range map[string]string{
			keySessionToken: token,
			keySessionEmail: email,
		} {
			if err := setSetting(ctx, tx, key, value); err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadSession returns the cached token and email; both empty when no
// session is cached.
func (s *Store) LoadSession(ctx context.Context) (token, email string, err error) {
	token, err = getSetting(ctx, s.db, keySessionToken)
	if err != nil {
		return "", "", err
	}
	email, err = getSetting(ctx, s.db, keySessionEmail)
	if err != nil {
		return "", "", err
	}
	return token, email, nil
}

// ClearSession removes any cached session.
func (s *Store) ClearSession(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM settings WHERE key IN (?, ?)`,
		keySessionToken, keySessionEmail)
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func setSetting(ctx context.Context, db DBTX, key, value string) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("set setting[%s]: %w", key, err)
	}
	return nil
}

func getSetting(ctx context.Context, db DBTX, key string) (string, error) {
	var value string
	err := db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get setting[%s]: %w", key, err)
	}
	return value, nil
}

// HistoryEntry is one recorded upload outcome.
type HistoryEntry struct {
	ID          string
	ResourceID  string
	DisplayName string
	ShareLink   string
	CreatedAt   time.Time
}

// AddHistory records one successful upload.
func (s *Store) AddHistory(ctx context.Context, e HistoryEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO upload_history (id, resource_id, display_name, share_link, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, e.ID, e.ResourceID, e.DisplayName, e.ShareLink, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("add history entry: %w", err)
	}
	return nil
}

// RecentHistory returns up to limit entries, newest first.
func (s *Store) RecentHistory(ctx context.Context, limit int) ([]HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, resource_id, display_name, share_link, created_at
		FROM upload_history
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.ID, &e.ResourceID, &e.DisplayName, &e.ShareLink, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history rows: %w", err)
	}
	return entries, nil
}
