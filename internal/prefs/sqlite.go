package prefs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Zachkp/portfolio/internal/ui"
)

// RetentionPeriod is how long an untouched preference is kept.
const RetentionPeriod = 365 * 24 * time.Hour

// SQLiteStore persists preferences in a SQLite file.
type SQLiteStore struct {
	db     *sql.DB
	hasher Hasher
}

// OpenSQLite opens (or creates) the preferences database at path.
func OpenSQLite(path string, h Hasher) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("preferences path is required")
	}
	dsn := path
	if path != ":memory:" {
		dsn = filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if path == ":memory:" {
		// every pooled connection would otherwise get its own database
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS preferences (
		visitor_hash TEXT PRIMARY KEY,
		theme TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create preferences table: %w", err)
	}
	return &SQLiteStore{db: db, hasher: h}, nil
}

func (s *SQLiteStore) Theme(ctx context.Context, visitor string) (ui.Theme, bool, error) {
	if visitor == "" {
		return "", false, nil
	}
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT theme FROM preferences WHERE visitor_hash = ?`,
		s.hasher.Key(visitor),
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read theme: %w", err)
	}
	theme, ok := ui.ParseTheme(raw)
	return theme, ok, nil
}

func (s *SQLiteStore) SetTheme(ctx context.Context, visitor string, theme ui.Theme) error {
	if visitor == "" {
		return nil
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO preferences (visitor_hash, theme, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(visitor_hash) DO UPDATE SET theme = excluded.theme, updated_at = excluded.updated_at
	`, s.hasher.Key(visitor), string(theme), time.Now().UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("write theme: %w", err)
	}
	return nil
}

// Prune deletes preferences not updated since before now-olderThan.
func (s *SQLiteStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan).UnixMilli()
	res, err := s.db.ExecContext(ctx, `DELETE FROM preferences WHERE updated_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune preferences: %w", err)
	}
	return res.RowsAffected()
}

// Close closes the database handle.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
