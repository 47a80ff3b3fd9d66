package driven

import (
	"context"

	"github.com/custodia-labs/conimex/internal/core/domain"
)

// UnitOfWork collects changes and commits them together.
//
// Persist and Remove calls only schedule work; nothing is visible to the
// stores until Flush commits it in one transaction. Entities returned by the
// stores stay tracked (the same pointer is returned for repeated lookups)
// until Clear releases them.
type UnitOfWork interface {
	// PersistContent schedules a content item for insert or update.
	PersistContent(content *domain.Content)

	// PersistUser schedules a user for insert or update.
	PersistUser(user *domain.User)

	// PersistRelation schedules a relation for insert.
	PersistRelation(relation domain.Relation)

	// RemoveRelation schedules a relation for deletion.
	RemoveRelation(relation domain.Relation)

	// Flush commits all scheduled changes.
	Flush(ctx context.Context) error

	// Clear releases every tracked entity. Scheduled but unflushed changes are discarded.
	Clear()
}

// Store bundles the lookups and the unit of work of one persistence backend.
type Store interface {
	ContentStore
	UserStore
	RelationStore
	UnitOfWork
}
