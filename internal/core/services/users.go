package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cast"

	"github.com/custodia-labs/conimex/internal/core/domain"
	"github.com/custodia-labs/conimex/internal/core/ports/driven"
	"github.com/custodia-labs/conimex/internal/core/ports/driving"
	"github.com/custodia-labs/conimex/internal/logger"
)

// UserImporter creates user accounts that do not exist yet.
// Existing accounts are never modified.
type UserImporter struct {
	store driven.Store
	newID func() string
}

// NewUserImporter creates a user importer.
func NewUserImporter(store driven.Store) *UserImporter {
	return &UserImporter{store: store, newID: uuid.NewString}
}

// Import reconciles the users block by username.
func (u *UserImporter) Import(
	ctx context.Context,
	records []domain.RawRecord,
	reporter driven.Reporter,
) (driving.UserResult, error) {
	if reporter == nil {
		reporter = driven.NopReporter{}
	}
	var result driving.UserResult

	reporter.Comment("Importing users")
	reporter.Start(len(records))

	for _, raw := range records {
		if err := ctx.Err(); err != nil {
			u.store.Clear()
			return result, err
		}
		record := domain.MapRecord(raw)

		username := stringValue(record.Get("username", nil))
		if username == "" {
			logger.Debug("skipping user record without username")
			result.Invalid++
			reporter.Advance()
			continue
		}

		_, err := u.store.FindByUsername(ctx, username)
		if err == nil {
			logger.Debug("user %s already exists", username)
			result.Skipped++
			reporter.Advance()
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			reporter.Error(fmt.Sprintf("User %s could not be imported: %v", username, err))
			u.store.Clear()
			return result, fmt.Errorf("find user %s: %w", username, err)
		}

		user := u.newUser(username, record)
		u.store.PersistUser(user)
		if err := u.store.Flush(ctx); err != nil {
			reporter.Error(fmt.Sprintf("User %s could not be imported: %v", username, err))
			u.store.Clear()
			return result, fmt.Errorf("flush user %s: %w", username, err)
		}
		logger.Debug("created user %s", username)
		result.Created++
		reporter.Advance()
	}

	reporter.Finish()
	return result, nil
}

func (u *UserImporter) newUser(username string, record domain.MapRecord) *domain.User {
	roles := stringSlice(record.Get("roles", nil))
	user := &domain.User{
		ID:           u.newID(),
		Username:     username,
		DisplayName:  stringValue(domain.LookupOr(record, nil, domain.AttrDisplayName...)),
		Email:        stringValue(record.Get("email", nil)),
		Password:     stringValue(record.Get("password", nil)),
		Roles:        roles,
		Locale:       stringOr(record.Get("locale", nil), domain.DefaultUserLocale),
		BackendTheme: stringOr(record.Get("backendTheme", nil), domain.DefaultBackendTheme),
		Status:       userStatus(record),
	}
	if !user.HasRole(domain.RoleUser) && !user.HasRole(domain.RoleEditor) {
		user.Roles = append(user.Roles, domain.RoleEditor)
	}
	return user
}

// userStatus reads status, falling back to the legacy enabled flag.
func userStatus(record domain.MapRecord) string {
	if status := stringValue(record.Get("status", nil)); status != "" {
		return status
	}
	if cast.ToBool(record.Get("enabled", nil)) {
		return domain.UserEnabled
	}
	return domain.UserDisabled
}
