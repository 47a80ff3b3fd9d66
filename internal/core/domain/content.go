package domain

import "time"

// Content statuses.
const (
	StatusPublished = "published"
	StatusHeld      = "held"
	StatusDraft     = "draft"
	StatusTimed     = "timed"
)

// Field is one field value of a content item.
type Field struct {
	// Name is the field key declared by the content type.
	Name string

	// Value is the locale-neutral value.
	Value any

	// Translations holds per-locale overrides of Value.
	Translations map[string]any
}

// TaxonomyAssignment classifies a content item with one taxonomy option.
type TaxonomyAssignment struct {
	// Taxonomy is the taxonomy key (e.g., "tags").
	Taxonomy string

	// Slug identifies the option within the taxonomy.
	Slug string

	// Name is the option's display value.
	Name string
}

// Content is the canonical content item.
// (ContentType, Slug) is its natural key.
type Content struct {
	// ID is the unique identifier for the content item.
	ID string

	// ContentType is the key of the declaring content type.
	ContentType string

	// Slug identifies the item within its content type.
	Slug string

	// Status is the publication status.
	Status string

	// AuthorID references the authoring User.
	AuthorID string

	// Fields in the order they were first set.
	Fields []Field

	// Taxonomies assigned to the item, without duplicates.
	Taxonomies []TaxonomyAssignment

	CreatedAt   time.Time
	PublishedAt time.Time
	ModifiedAt  time.Time

	// DepublishedAt is nil unless the item is scheduled to be depublished.
	DepublishedAt *time.Time
}

// NewContent creates an empty content item of the given type.
func NewContent(id, contentType, slug string) *Content {
	return &Content{
		ID:          id,
		ContentType: contentType,
		Slug:        slug,
	}
}

// SetFieldValue sets a field's value. An empty locale sets the
// locale-neutral value, otherwise the translation for that locale.
func (c *Content) SetFieldValue(name string, value any, locale string) {
	f := c.field(name)
	if f == nil {
		c.Fields = append(c.Fields, Field{Name: name})
		f = &c.Fields[len(c.Fields)-1]
	}
	if locale == "" {
		f.Value = value
		return
	}
	if f.Translations == nil {
		f.Translations = make(map[string]any)
	}
	f.Translations[locale] = value
}

// FieldValue returns a field's value. An empty locale returns the
// locale-neutral value, otherwise the translation for that locale.
func (c *Content) FieldValue(name, locale string) (any, bool) {
	f := c.field(name)
	if f == nil {
		return nil, false
	}
	if locale == "" {
		return f.Value, true
	}
	v, ok := f.Translations[locale]
	return v, ok
}

// HasField reports whether a value was set for the field.
func (c *Content) HasField(name string) bool {
	return c.field(name) != nil
}

func (c *Content) field(name string) *Field {
	for i := range c.Fields {
		if c.Fields[i].Name == name {
			return &c.Fields[i]
		}
	}
	return nil
}

// AddTaxonomy assigns a taxonomy option.
// Re-adding an existing (taxonomy, slug) pair updates its display name.
// Returns true if a new assignment was added.
func (c *Content) AddTaxonomy(a TaxonomyAssignment) bool {
	for i := range c.Taxonomies {
		if c.Taxonomies[i].Taxonomy == a.Taxonomy && c.Taxonomies[i].Slug == a.Slug {
			c.Taxonomies[i].Name = a.Name
			return false
		}
	}
	c.Taxonomies = append(c.Taxonomies, a)
	return true
}

// TaxonomiesOf returns the assignments for one taxonomy.
func (c *Content) TaxonomiesOf(taxonomy string) []TaxonomyAssignment {
	var result []TaxonomyAssignment
	for _, a := range c.Taxonomies {
		if a.Taxonomy == taxonomy {
			result = append(result, a)
		}
	}
	return result
}

// Clone returns a deep copy of the content item.
// Field values are copied shallowly.
func (c *Content) Clone() *Content {
	clone := *c
	clone.Fields = make([]Field, len(c.Fields))
	for i, f := range c.Fields {
		clone.Fields[i] = f
		if f.Translations != nil {
			clone.Fields[i].Translations = make(map[string]any, len(f.Translations))
			for k, v := range f.Translations {
				clone.Fields[i].Translations[k] = v
			}
		}
	}
	clone.Taxonomies = append([]TaxonomyAssignment(nil), c.Taxonomies...)
	if c.DepublishedAt != nil {
		t := *c.DepublishedAt
		clone.DepublishedAt = &t
	}
	return &clone
}

// Relation is a directed link from one content item to another.
type Relation struct {
	// ID is the unique identifier for the relation.
	ID string

	// FromID is the source content item.
	FromID string

	// ToID is the target content item.
	ToID string

	// Key is the relation name declared on the source's content type.
	Key string

	// Position orders relations of the same source.
	Position int
}
