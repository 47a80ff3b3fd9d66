package services

import (
	"github.com/custodia-labs/conimex/internal/core/domain"
	"github.com/custodia-labs/conimex/internal/core/ports/driven"
)

// SchemaResolver determines the content type a record belongs to.
type SchemaResolver struct {
	schema driven.SchemaRegistry
}

// NewSchemaResolver creates a resolver backed by the schema registry.
func NewSchemaResolver(schema driven.SchemaRegistry) *SchemaResolver {
	return &SchemaResolver{schema: schema}
}

// Requested returns the content type name a record asks for: its own
// contentType attribute when present, otherwise the block key.
func (r *SchemaResolver) Requested(blockKey string, record domain.RecordView) string {
	if name := stringValue(record.Get(domain.KeyContentType, nil)); name != "" {
		return name
	}
	return blockKey
}

// Resolve returns the declared content type for a record.
// The second return value is false if the requested type is not declared.
func (r *SchemaResolver) Resolve(blockKey string, record domain.RecordView) (*domain.ContentType, bool) {
	return r.schema.ContentType(r.Requested(blockKey, record))
}
