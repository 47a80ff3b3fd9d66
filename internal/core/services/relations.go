package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/conimex/internal/core/domain"
	"github.com/custodia-labs/conimex/internal/core/ports/driven"
	"github.com/custodia-labs/conimex/internal/logger"
)

// RelationMerger replaces a content item's outgoing relations with the ones
// listed in a record.
type RelationMerger struct {
	schema    driven.SchemaRegistry
	contents  driven.ContentStore
	relations driven.RelationStore
	uow       driven.UnitOfWork
	newID     func() string
}

// NewRelationMerger creates a relation merger.
func NewRelationMerger(schema driven.SchemaRegistry, store driven.Store) *RelationMerger {
	return &RelationMerger{
		schema:    schema,
		contents:  store,
		relations: store,
		uow:       store,
		newID:     uuid.NewString,
	}
}

// Merge schedules the record's relations for the content item.
//
// If the record carries none of the declared relation keys, or only null
// values for them, the existing relations are left alone. Otherwise all of them are removed once and the
// listed "type/slug" references are added in input order. References whose
// type, target or shape is unusable are skipped.
// Returns the number of relations scheduled.
func (m *RelationMerger) Merge(
	ctx context.Context,
	content *domain.Content,
	ct *domain.ContentType,
	record domain.RecordView,
) (int, error) {
	var present []string
	for _, def := range ct.Relations {
		if record.Get(def.Key, nil) != nil {
			present = append(present, def.Key)
		}
	}
	if len(present) == 0 {
		return 0, nil
	}

	existing, err := m.relations.FindFrom(ctx, content.ID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return 0, fmt.Errorf("find relations: %w", err)
	}
	for _, rel := range existing {
		m.uow.RemoveRelation(rel)
	}

	position := 0
	for _, key := range present {
		for _, ref := range sliceValue(record.Get(key, nil)) {
			target, err := m.target(ctx, stringValue(ref))
			if err != nil {
				return position, err
			}
			if target == nil {
				continue
			}
			m.uow.PersistRelation(domain.Relation{
				ID:       m.newID(),
				FromID:   content.ID,
				ToID:     target.ID,
				Key:      key,
				Position: position,
			})
			position++
		}
	}
	return position, nil
}

// target resolves a "type/slug" reference. A nil result means the reference
// cannot be used and should be skipped.
func (m *RelationMerger) target(ctx context.Context, ref string) (*domain.Content, error) {
	parts := strings.Split(ref, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		logger.Debug("skipping malformed relation %q", ref)
		return nil, nil
	}
	ct, ok := m.schema.ContentType(parts[0])
	if !ok {
		logger.Debug("skipping relation %q: content type is not defined", ref)
		return nil, nil
	}
	target, err := m.contents.FindBySlug(ctx, ct.Key, parts[1])
	if errors.Is(err, domain.ErrNotFound) {
		logger.Debug("skipping relation %q: target not found", ref)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find relation target %s: %w", ref, err)
	}
	return target, nil
}
