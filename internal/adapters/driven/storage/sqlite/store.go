package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/conimex/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/conimex/internal/core/domain"
	"github.com/custodia-labs/conimex/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.Store = (*Store)(nil)

// Store is a SQLite-backed content store with a unit of work.
//
// Lookups read committed rows. Persist and Remove calls are queued and
// written in a single transaction by Flush. Loaded entities stay tracked
// until Clear, so repeated lookups return the same instance.
type Store struct {
	db   *sql.DB
	path string

	mu              sync.Mutex
	trackedContents map[string]*domain.Content
	trackedUsers    map[string]*domain.User
	pendingContents []*domain.Content
	pendingUsers    []*domain.User
	pendingRemovals []domain.Relation
	pendingInserts  []domain.Relation
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.conimex/data/content.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".conimex", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "content.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:              db,
		path:            dbPath,
		trackedContents: make(map[string]*domain.Content),
		trackedUsers:    make(map[string]*domain.User),
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Unit of Work ====================

// PersistContent schedules a content item for insert or update.
func (s *Store) PersistContent(content *domain.Content) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trackedContents[content.ID] = content
	s.pendingContents = append(s.pendingContents, content)
}

// PersistUser schedules a user for insert or update.
func (s *Store) PersistUser(user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trackedUsers[user.ID] = user
	s.pendingUsers = append(s.pendingUsers, user)
}

// PersistRelation schedules a relation for insert.
func (s *Store) PersistRelation(relation domain.Relation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingInserts = append(s.pendingInserts, relation)
}

// RemoveRelation schedules a relation for deletion.
func (s *Store) RemoveRelation(relation domain.Relation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingRemovals = append(s.pendingRemovals, relation)
}

// Flush writes all scheduled changes in one transaction.
// On failure nothing is written and the scheduled changes are kept.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	for _, user := range s.pendingUsers {
		if err := saveUser(ctx, tx, user); err != nil {
			return err
		}
	}
	for _, content := range s.pendingContents {
		if err := saveContent(ctx, tx, content); err != nil {
			return err
		}
	}
	for _, rel := range s.pendingRemovals {
		if err := deleteRelation(ctx, tx, rel); err != nil {
			return err
		}
	}
	for _, rel := range s.pendingInserts {
		if err := insertRelation(ctx, tx, rel); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	s.resetPending()
	return nil
}

// Clear releases every tracked entity and discards unflushed changes.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trackedContents = make(map[string]*domain.Content)
	s.trackedUsers = make(map[string]*domain.User)
	s.resetPending()
}

func (s *Store) resetPending() {
	s.pendingContents = nil
	s.pendingUsers = nil
	s.pendingRemovals = nil
	s.pendingInserts = nil
}

// nullString converts empty strings to SQL NULL.
func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
