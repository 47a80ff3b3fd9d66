package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/conimex/internal/core/domain"
	"github.com/custodia-labs/conimex/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.Store = (*Store)(nil)

type slugKey struct {
	contentType string
	slug        string
}

// Store is an in-memory implementation of driven.Store.
//
// Committed entities are stored as copies, so changes to a tracked entity
// only become visible to lookups outside the unit of work after Flush.
type Store struct {
	mu sync.Mutex

	// committed state
	contents  map[string]*domain.Content
	slugs     map[slugKey]string
	users     map[string]*domain.User
	usernames map[string]string
	userOrder []string
	relations map[string]domain.Relation

	// unit of work
	trackedContents map[string]*domain.Content
	trackedUsers    map[string]*domain.User
	pendingContents []*domain.Content
	pendingUsers    []*domain.User
	pendingRemovals []domain.Relation
	pendingInserts  []domain.Relation

	flushes int
	clears  int
}

// NewStore creates a new empty in-memory store.
func NewStore() *Store {
	return &Store{
		contents:        make(map[string]*domain.Content),
		slugs:           make(map[slugKey]string),
		users:           make(map[string]*domain.User),
		usernames:       make(map[string]string),
		relations:       make(map[string]domain.Relation),
		trackedContents: make(map[string]*domain.Content),
		trackedUsers:    make(map[string]*domain.User),
	}
}

// ==================== Lookups ====================

// FindBySlug returns the content item of a type with the given slug.
func (s *Store) FindBySlug(_ context.Context, contentType, slug string) (*domain.Content, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.slugs[slugKey{contentType, slug}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if tracked, ok := s.trackedContents[id]; ok {
		return tracked, nil
	}
	content := s.contents[id].Clone()
	s.trackedContents[id] = content
	return content, nil
}

// FindByID returns the user with the given ID.
func (s *Store) FindByID(_ context.Context, id string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trackUser(id)
}

// FindByUsername returns the user with the given username.
func (s *Store) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.usernames[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s.trackUser(id)
}

// FindAny returns the first user that was stored.
func (s *Store) FindAny(_ context.Context) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.userOrder) == 0 {
		return nil, domain.ErrNotFound
	}
	return s.trackUser(s.userOrder[0])
}

func (s *Store) trackUser(id string) (*domain.User, error) {
	if tracked, ok := s.trackedUsers[id]; ok {
		return tracked, nil
	}
	user, ok := s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := user.Clone()
	s.trackedUsers[id] = clone
	return clone, nil
}

// FindFrom returns all outgoing relations of a content item, ordered by position.
func (s *Store) FindFrom(_ context.Context, contentID string) ([]domain.Relation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []domain.Relation
	for _, rel := range s.relations {
		if rel.FromID == contentID {
			result = append(result, rel)
		}
	}
	sortRelations(result)
	return result, nil
}

// ==================== Unit of work ====================

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

// Flush commits all scheduled changes. Either all of them apply or none do.
func (s *Store) Flush(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.validatePending(); err != nil {
		return err
	}

	for _, user := range s.pendingUsers {
		if _, exists := s.users[user.ID]; !exists {
			s.userOrder = append(s.userOrder, user.ID)
		}
		s.users[user.ID] = user.Clone()
		s.usernames[user.Username] = user.ID
	}
	for _, content := range s.pendingContents {
		s.contents[content.ID] = content.Clone()
		s.slugs[slugKey{content.ContentType, content.Slug}] = content.ID
	}
	for _, rel := range s.pendingRemovals {
		delete(s.relations, rel.ID)
	}
	for _, rel := range s.pendingInserts {
		s.relations[rel.ID] = rel
	}

	s.resetPending()
	s.flushes++
	return nil
}

// validatePending enforces the same constraints as the SQL schema.
func (s *Store) validatePending() error {
	usernames := make(map[string]string)
	for _, user := range s.pendingUsers {
		if id, ok := s.usernames[user.Username]; ok && id != user.ID {
			return fmt.Errorf("username %s already taken", user.Username)
		}
		if id, ok := usernames[user.Username]; ok && id != user.ID {
			return fmt.Errorf("username %s already taken", user.Username)
		}
		usernames[user.Username] = user.ID
	}

	ids := make(map[string]bool)
	for _, content := range s.pendingContents {
		key := slugKey{content.ContentType, content.Slug}
		if id, ok := s.slugs[key]; ok && id != content.ID {
			return fmt.Errorf("%s/%s already exists", content.ContentType, content.Slug)
		}
		ids[content.ID] = true
	}

	for _, rel := range s.pendingInserts {
		for _, id := range []string{rel.FromID, rel.ToID} {
			if _, ok := s.contents[id]; !ok && !ids[id] {
				return fmt.Errorf("relation %s references unknown content %s", rel.ID, id)
			}
		}
	}
	return nil
}

// Clear releases every tracked entity and discards unflushed changes.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trackedContents = make(map[string]*domain.Content)
	s.trackedUsers = make(map[string]*domain.User)
	s.resetPending()
	s.clears++
}

func (s *Store) resetPending() {
	s.pendingContents = nil
	s.pendingUsers = nil
	s.pendingRemovals = nil
	s.pendingInserts = nil
}

// ==================== Inspection ====================

// Contents returns copies of all committed content, ordered by type and slug.
func (s *Store) Contents() []*domain.Content {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*domain.Content, 0, len(s.contents))
	for _, c := range s.contents {
		result = append(result, c.Clone())
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].ContentType != result[j].ContentType {
			return result[i].ContentType < result[j].ContentType
		}
		return result[i].Slug < result[j].Slug
	})
	return result
}

// Users returns copies of all committed users in insertion order.
func (s *Store) Users() []*domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*domain.User, 0, len(s.userOrder))
	for _, id := range s.userOrder {
		result = append(result, s.users[id].Clone())
	}
	return result
}

// Relations returns all committed relations, ordered by source and position.
func (s *Store) Relations() []domain.Relation {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]domain.Relation, 0, len(s.relations))
	for _, rel := range s.relations {
		result = append(result, rel)
	}
	sortRelations(result)
	return result
}

// FlushCount returns how many times Flush committed.
func (s *Store) FlushCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushes
}

// ClearCount returns how many times Clear was called.
func (s *Store) ClearCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clears
}

func sortRelations(rels []domain.Relation) {
	sort.Slice(rels, func(i, j int) bool {
		if rels[i].FromID != rels[j].FromID {
			return rels[i].FromID < rels[j].FromID
		}
		return rels[i].Position < rels[j].Position
	})
}
