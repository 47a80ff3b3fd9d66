package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/conimex/internal/core/domain"
	"github.com/custodia-labs/conimex/internal/core/ports/driven"
)

// OwnerResolver picks the author of newly created content.
type OwnerResolver struct {
	users driven.UserStore
}

// NewOwnerResolver creates an owner resolver.
func NewOwnerResolver(users driven.UserStore) *OwnerResolver {
	return &OwnerResolver{users: users}
}

// Resolve returns the user referenced by the record's ownerid, falling back
// to any existing user. Returns domain.ErrNoUsers if there are none.
func (r *OwnerResolver) Resolve(ctx context.Context, record domain.RecordView) (*domain.User, error) {
	if id := stringValue(record.Get(domain.KeyOwnerID, nil)); id != "" {
		user, err := r.users.FindByID(ctx, id)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("find owner %s: %w", id, err)
		}
	}

	user, err := r.users.FindAny(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrNoUsers
	}
	if err != nil {
		return nil, fmt.Errorf("find owner: %w", err)
	}
	return user, nil
}
