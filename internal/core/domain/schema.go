package domain

import "sort"

// FieldDefinition declares one field of a content type.
type FieldDefinition struct {
	// Key is the field name as it appears in records.
	Key string

	// Type is the declared field type (e.g., "text", "html", "image").
	Type string

	// Localize marks the field as translatable per locale.
	Localize bool
}

// RelationDefinition declares an outgoing relation of a content type.
type RelationDefinition struct {
	// Key is the relation name as it appears in records.
	Key string

	// Multiple allows more than one target.
	Multiple bool
}

// ContentType declares the legal shape of content of one type.
type ContentType struct {
	// Key is the content type's slug (e.g., "pages").
	Key string

	// SingularSlug is the singular form (e.g., "page").
	SingularSlug string

	// Name is the human-readable name.
	Name string

	// Fields in declaration order.
	Fields []FieldDefinition

	// Relations in declaration order.
	Relations []RelationDefinition

	// Taxonomies lists the taxonomy keys this type may be classified by.
	Taxonomies []string

	// Locales declared for this content type.
	Locales []string
}

// Field returns the definition of a field.
func (c *ContentType) Field(key string) (FieldDefinition, bool) {
	for _, f := range c.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return FieldDefinition{}, false
}

// HasField reports whether the field is declared.
func (c *ContentType) HasField(key string) bool {
	_, ok := c.Field(key)
	return ok
}

// HasTaxonomy reports whether the taxonomy is declared for this type.
func (c *ContentType) HasTaxonomy(key string) bool {
	for _, t := range c.Taxonomies {
		if t == key {
			return true
		}
	}
	return false
}

// HasRelation reports whether the relation is declared.
func (c *ContentType) HasRelation(key string) bool {
	for _, r := range c.Relations {
		if r.Key == key {
			return true
		}
	}
	return false
}

// TaxonomyOption is one allowed value of a taxonomy.
type TaxonomyOption struct {
	Slug string
	Name string
}

// Taxonomy declares a classification axis.
type Taxonomy struct {
	// Key is the taxonomy's slug (e.g., "categories").
	Key string

	// SingularSlug is the singular form (e.g., "category").
	SingularSlug string

	// Name is the human-readable name.
	Name string

	// BehavesLike is "categories", "tags" or "grouping".
	BehavesLike string

	// Options in declaration order.
	Options []TaxonomyOption
}

// Option returns the display name of an allowed option.
func (t *Taxonomy) Option(slug string) (string, bool) {
	for _, o := range t.Options {
		if o.Slug == slug {
			return o.Name, true
		}
	}
	return "", false
}

// Schema holds every declared content type and taxonomy.
// It is built once and read-only afterwards.
type Schema struct {
	contentTypes map[string]*ContentType
	taxonomies   map[string]*Taxonomy
}

// NewSchema creates a schema from content type and taxonomy declarations.
func NewSchema(contentTypes []ContentType, taxonomies []Taxonomy) *Schema {
	s := &Schema{
		contentTypes: make(map[string]*ContentType, len(contentTypes)),
		taxonomies:   make(map[string]*Taxonomy, len(taxonomies)),
	}
	for i := range contentTypes {
		ct := contentTypes[i]
		s.contentTypes[ct.Key] = &ct
	}
	for i := range taxonomies {
		t := taxonomies[i]
		s.taxonomies[t.Key] = &t
	}
	return s
}

// ContentType returns the content type declared under key or singular slug.
func (s *Schema) ContentType(key string) (*ContentType, bool) {
	if key == "" {
		return nil, false
	}
	if ct, ok := s.contentTypes[key]; ok {
		return ct, true
	}
	for _, ct := range s.contentTypes {
		if ct.SingularSlug == key {
			return ct, true
		}
	}
	return nil, false
}

// Taxonomy returns the taxonomy declared under key or singular slug.
func (s *Schema) Taxonomy(key string) (*Taxonomy, bool) {
	if key == "" {
		return nil, false
	}
	if t, ok := s.taxonomies[key]; ok {
		return t, true
	}
	for _, t := range s.taxonomies {
		if t.SingularSlug == key {
			return t, true
		}
	}
	return nil, false
}

// ContentTypes returns all content types sorted by key.
func (s *Schema) ContentTypes() []ContentType {
	result := make([]ContentType, 0, len(s.contentTypes))
	for _, ct := range s.contentTypes {
		result = append(result, *ct)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Key < result[j].Key
	})
	return result
}
