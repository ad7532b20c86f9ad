package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/dreamware/clipd/internal/clipboard"
)

// timeFormat is the storage encoding for timestamps.
// RFC3339 with nanoseconds keeps updated_at comparisons exact across a
// round-trip through SQLite.
const timeFormat = time.RFC3339Nano

// SQLiteStore implements Store backed by a SQLite database file, giving
// clipboards durability across server restarts.
type SQLiteStore struct {
	conn   *sql.DB
	logger *zap.Logger
	dbPath string
}

// OpenSQLiteStore opens or creates the clipboard database at dbPath.
// The parent directory is created if missing. WAL mode and a busy timeout
// are set so concurrent HTTP handlers don't trip over writer locks.
func OpenSQLiteStore(dbPath string, logger *zap.Logger) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open clipboard database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	store := &SQLiteStore{
		conn:   conn,
		logger: logger,
		dbPath: dbPath,
	}

	if err := store.initializeSchema(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize clipboard schema: %w", err)
	}

	logger.Info("opened clipboard database", zap.String("path", dbPath))
	return store, nil
}

// initializeSchema creates the clipboard tables.
func (s *SQLiteStore) initializeSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS clips (
			id TEXT PRIMARY KEY,
			content TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_clips_updated_at ON clips(updated_at DESC);

		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);
		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`

	_, err := s.conn.Exec(schema)
	return err
}

// Create inserts a new clipboard record.
func (s *SQLiteStore) Create(clip *clipboard.Clipboard) error {
	_, err := s.conn.Exec(`
		INSERT INTO clips (id, content, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`,
		clip.ID,
		clip.Content,
		clip.CreatedAt.UTC().Format(timeFormat),
		clip.UpdatedAt.UTC().Format(timeFormat),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrExists
		}
		return fmt.Errorf("failed to create clipboard: %w", err)
	}

	s.logger.Debug("created clipboard", zap.String("id", clip.ID))
	return nil
}

// Get retrieves a clipboard by ID.
func (s *SQLiteStore) Get(id string) (*clipboard.Clipboard, error) {
	row := s.conn.QueryRow(`
		SELECT id, content, created_at, updated_at FROM clips WHERE id = ?
	`, id)
	return scanClip(row)
}

// Update replaces a clipboard's content and bumps updated_at. A single
// UPDATE ... RETURNING statement both applies and reads the change, so a
// concurrent delete can't slip between the write and the read-back.
func (s *SQLiteStore) Update(id, content string) (*clipboard.Clipboard, error) {
	now := time.Now().UTC()

	row := s.conn.QueryRow(`
		UPDATE clips SET content = ?, updated_at = ?
		WHERE id = ?
		RETURNING id, content, created_at, updated_at
	`, content, now.Format(timeFormat), id)
	return scanClip(row)
}

// Delete removes a clipboard. Idempotent: deleting an unknown ID succeeds.
func (s *SQLiteStore) Delete(id string) error {
	if _, err := s.conn.Exec(`DELETE FROM clips WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete clipboard: %w", err)
	}
	return nil
}

// List returns summaries of all clipboards, most recently updated first.
func (s *SQLiteStore) List() ([]clipboard.Summary, error) {
	rows, err := s.conn.Query(`
		SELECT id, length(content), created_at, updated_at
		FROM clips
		ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list clipboards: %w", err)
	}
	defer func() { _ = rows.Close() }()

	summaries := make([]clipboard.Summary, 0)
	for rows.Next() {
		var sum clipboard.Summary
		var createdAt, updatedAt string
		if err := rows.Scan(&sum.ID, &sum.Size, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan clipboard row: %w", err)
		}
		sum.CreatedAt = parseTime(createdAt)
		sum.UpdatedAt = parseTime(updatedAt)
		summaries = append(summaries, sum)
	}

	return summaries, rows.Err()
}

// Stats returns storage statistics.
func (s *SQLiteStore) Stats() (StoreStats, error) {
	var stats StoreStats
	err := s.conn.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(length(content)), 0) FROM clips
	`).Scan(&stats.Clips, &stats.Bytes)
	if err != nil {
		return StoreStats{}, fmt.Errorf("failed to read store stats: %w", err)
	}
	return stats, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// scanClip scans a single row into a Clipboard.
func scanClip(row *sql.Row) (*clipboard.Clipboard, error) {
	var clip clipboard.Clipboard
	var createdAt, updatedAt string

	err := row.Scan(&clip.ID, &clip.Content, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan clipboard: %w", err)
	}

	clip.CreatedAt = parseTime(createdAt)
	clip.UpdatedAt = parseTime(updatedAt)
	return &clip, nil
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeFormat, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// isUniqueViolation reports whether err is a primary key conflict.
// modernc.org/sqlite surfaces constraint failures as plain errors, so this
// matches on the SQLite error text.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "constraint failed")
}
