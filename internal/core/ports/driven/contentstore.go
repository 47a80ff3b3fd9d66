package driven

import (
	"context"

	"github.com/custodia-labs/conimex/internal/core/domain"
)

// ContentStore looks up canonical content.
// Writes go through the UnitOfWork.
type ContentStore interface {
	// FindBySlug returns the content item of a type with the given slug.
	// Returns domain.ErrNotFound if none exists.
	FindBySlug(ctx context.Context, contentType, slug string) (*domain.Content, error)
}

// UserStore looks up user accounts.
// Writes go through the UnitOfWork.
type UserStore interface {
	// FindByID returns the user with the given ID.
	// Returns domain.ErrNotFound if none exists.
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// FindByUsername returns the user with the given username.
	// Returns domain.ErrNotFound if none exists.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindAny returns an arbitrary existing user.
	// Returns domain.ErrNotFound if there are no users.
	FindAny(ctx context.Context) (*domain.User, error)
}

// RelationStore looks up relations between content items.
// Writes go through the UnitOfWork.
type RelationStore interface {
	// FindFrom returns all outgoing relations of a content item, ordered by position.
	FindFrom(ctx context.Context, contentID string) ([]domain.Relation, error)
}
