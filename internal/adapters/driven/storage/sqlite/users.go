package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/custodia-labs/conimex/internal/core/domain"
)

// ==================== Users ====================

const userColumns = `id, username, display_name, email, password, roles, locale, backend_theme, status`

// FindByID returns the user with the given ID.
func (s *Store) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return s.findUser(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
}

// FindByUsername returns the user with the given username.
func (s *Store) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.findUser(ctx, "SELECT "+userColumns+" FROM users WHERE username = ?", username)
}

// FindAny returns the earliest stored user.
func (s *Store) FindAny(ctx context.Context) (*domain.User, error) {
	return s.findUser(ctx, "SELECT "+userColumns+" FROM users ORDER BY rowid LIMIT 1")
}

func (s *Store) findUser(ctx context.Context, query string, args ...any) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var user domain.User
	var rolesJSON string
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.Username, &user.DisplayName,
		&user.Email, &user.Password, &rolesJSON, &user.Locale, &user.BackendTheme, &user.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}

	if tracked, ok := s.trackedUsers[user.ID]; ok {
		return tracked, nil
	}

	if err := json.Unmarshal([]byte(rolesJSON), &user.Roles); err != nil {
		return nil, fmt.Errorf("unmarshaling roles: %w", err)
	}

	s.trackedUsers[user.ID] = &user
	return &user, nil
}

// saveUser upserts a user row.
func saveUser(ctx context.Context, tx *sql.Tx, user *domain.User) error {
	roles := user.Roles
	if roles == nil {
		roles = []string{}
	}
	rolesJSON, err := json.Marshal(roles)
	if err != nil {
		return fmt.Errorf("marshalling roles: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			username = excluded.username,
			display_name = excluded.display_name,
			email = excluded.email,
			password = excluded.password,
			roles = excluded.roles,
			locale = excluded.locale,
			backend_theme = excluded.backend_theme,
			status = excluded.status
	`, user.ID, user.Username, user.DisplayName, user.Email, user.Password, string(rolesJSON),
		user.Locale, user.BackendTheme, user.Status)
	if err != nil {
		return fmt.Errorf("saving user %s: %w", user.Username, err)
	}
	return nil
}
