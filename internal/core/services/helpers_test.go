package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/conimex/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/conimex/internal/core/domain"
	"github.com/custodia-labs/conimex/internal/core/ports/driven"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func fixtureSchema() *domain.Schema {
	return domain.NewSchema(
		[]domain.ContentType{
			{
				Key:          "pages",
				SingularSlug: "page",
				Name:         "Pages",
				Fields: []domain.FieldDefinition{
					{Key: "title", Type: "text", Localize: true},
					{Key: "body", Type: "html", Localize: true},
					{Key: "image", Type: "image"},
				},
				Relations:  []domain.RelationDefinition{{Key: "entries", Multiple: true}, {Key: "pages"}},
				Taxonomies: []string{"groups", "tags"},
				Locales:    []string{"en", "nl"},
			},
			{
				Key:          "entries",
				SingularSlug: "entry",
				Name:         "Entries",
				Fields: []domain.FieldDefinition{
					{Key: "title", Type: "text"},
					{Key: "teaser", Type: "textarea"},
				},
				Taxonomies: []string{"categories"},
			},
		},
		[]domain.Taxonomy{
			{
				Key:          "groups",
				SingularSlug: "group",
				BehavesLike:  "grouping",
				Options:      []domain.TaxonomyOption{{Slug: "main", Name: "Main menu"}, {Slug: "meta", Name: "Meta"}},
			},
			{Key: "tags", SingularSlug: "tag", BehavesLike: "tags"},
			{
				Key:          "categories",
				SingularSlug: "category",
				BehavesLike:  "categories",
				Options:      []domain.TaxonomyOption{{Slug: "news", Name: "News"}},
			},
		},
	)
}

// sequentialIDs returns a generator of predictable IDs.
func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func seedUser(t *testing.T, store *memory.Store, id, username string) *domain.User {
	t.Helper()
	user := &domain.User{ID: id, Username: username, Status: domain.UserEnabled}
	store.PersistUser(user)
	require.NoError(t, store.Flush(context.Background()))
	store.Clear()
	return user
}

func seedContent(t *testing.T, store *memory.Store, id, contentType, slug string) *domain.Content {
	t.Helper()
	content := domain.NewContent(id, contentType, slug)
	store.PersistContent(content)
	require.NoError(t, store.Flush(context.Background()))
	store.Clear()
	return content
}

func findContent(t *testing.T, store *memory.Store, contentType, slug string) *domain.Content {
	t.Helper()
	for _, c := range store.Contents() {
		if c.ContentType == contentType && c.Slug == slug {
			return c
		}
	}
	t.Fatalf("content %s/%s not found", contentType, slug)
	return nil
}

// newTestContentImporter wires a content importer with a fixed clock and
// predictable IDs.
func newTestContentImporter(store driven.Store, settings domain.ImportSettings) *ContentImporter {
	importer := NewContentImporter(fixtureSchema(), store, settings)
	importer.newID = sequentialIDs("content")
	importer.relations.newID = sequentialIDs("rel")
	importer.now = func() time.Time { return fixedNow }
	return importer
}

// recordingReporter captures everything reported.
type recordingReporter struct {
	comments []string
	errors   []string
	started  []int
	advanced int
	finished int
}

func (r *recordingReporter) Comment(msg string) { r.comments = append(r.comments, msg) }
func (r *recordingReporter) Error(msg string)   { r.errors = append(r.errors, msg) }
func (r *recordingReporter) Start(total int)    { r.started = append(r.started, total) }
func (r *recordingReporter) Advance()           { r.advanced++ }
func (r *recordingReporter) Finish()            { r.finished++ }

// eventStore records the order of unit of work calls.
type eventStore struct {
	*memory.Store
	events []string
}

func newEventStore() *eventStore {
	return &eventStore{Store: memory.NewStore()}
}

func (s *eventStore) PersistContent(content *domain.Content) {
	s.events = append(s.events, "persist:"+content.Slug)
	s.Store.PersistContent(content)
}

func (s *eventStore) Flush(ctx context.Context) error {
	s.events = append(s.events, "flush")
	return s.Store.Flush(ctx)
}

func (s *eventStore) Clear() {
	s.events = append(s.events, "clear")
	s.Store.Clear()
}

// failingUserStore returns err from every lookup.
type failingUserStore struct {
	err error
}

func (s *failingUserStore) FindByID(context.Context, string) (*domain.User, error) { return nil, s.err }
func (s *failingUserStore) FindByUsername(context.Context, string) (*domain.User, error) {
	return nil, s.err
}
func (s *failingUserStore) FindAny(context.Context) (*domain.User, error) { return nil, s.err }
