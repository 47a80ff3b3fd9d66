package driven

import "github.com/custodia-labs/conimex/internal/core/domain"

// SchemaRegistry provides the declared content types and taxonomies.
// Lookups accept a key or its singular slug. Read-only during an import.
type SchemaRegistry interface {
	// ContentType returns the declared content type, or false if undeclared.
	ContentType(key string) (*domain.ContentType, bool)

	// Taxonomy returns the declared taxonomy, or false if undeclared.
	Taxonomy(key string) (*domain.Taxonomy, bool)

	// ContentTypes returns all declared content types.
	ContentTypes() []domain.ContentType
}

// Ensure domain.Schema implements the interface.
var _ SchemaRegistry = (*domain.Schema)(nil)
