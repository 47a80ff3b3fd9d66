package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/conimex/internal/core/domain"
	"github.com/custodia-labs/conimex/internal/logger"
)

// Schema file names inside the schema directory.
const (
	ContentTypesFile = "contenttypes.yaml"
	TaxonomyFile     = "taxonomy.yaml"
)

type contentTypeDoc struct {
	Name         string    `yaml:"name"`
	Slug         string    `yaml:"slug"`
	SingularSlug string    `yaml:"singular_slug"`
	Fields       yaml.Node `yaml:"fields"`
	Relations    yaml.Node `yaml:"relations"`
	Taxonomy     []string  `yaml:"taxonomy"`
	Locales      []string  `yaml:"locales"`
}

type fieldDoc struct {
	Type     string `yaml:"type"`
	Localize bool   `yaml:"localize"`
}

type relationDoc struct {
	Multiple bool `yaml:"multiple"`
}

type taxonomyDoc struct {
	Name         string    `yaml:"name"`
	Slug         string    `yaml:"slug"`
	SingularSlug string    `yaml:"singular_slug"`
	BehavesLike  string    `yaml:"behaves_like"`
	Options      yaml.Node `yaml:"options"`
}

// LoadSchema reads contenttypes.yaml and the optional taxonomy.yaml from dir.
func LoadSchema(dir string) (*domain.Schema, error) {
	contentTypes, err := os.ReadFile(filepath.Join(dir, ContentTypesFile))
	if err != nil {
		return nil, fmt.Errorf("reading content types: %w", err)
	}

	taxonomies, err := os.ReadFile(filepath.Join(dir, TaxonomyFile))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading taxonomies: %w", err)
	}

	return ParseSchema(contentTypes, taxonomies)
}

// ParseSchema builds a schema from the YAML content of both declaration files.
// Field and relation order follows the declaration order.
func ParseSchema(contentTypesYAML, taxonomyYAML []byte) (*domain.Schema, error) {
	var ctDocs map[string]contentTypeDoc
	if err := yaml.Unmarshal(contentTypesYAML, &ctDocs); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %w", domain.ErrInvalidInput, ContentTypesFile, err)
	}

	contentTypes := make([]domain.ContentType, 0, len(ctDocs))
	for key, doc := range ctDocs {
		ct, err := doc.toDomain(key)
		if err != nil {
			return nil, err
		}
		contentTypes = append(contentTypes, ct)
	}

	var taxDocs map[string]taxonomyDoc
	if len(taxonomyYAML) > 0 {
		if err := yaml.Unmarshal(taxonomyYAML, &taxDocs); err != nil {
			return nil, fmt.Errorf("%w: parsing %s: %w", domain.ErrInvalidInput, TaxonomyFile, err)
		}
	}

	taxonomies := make([]domain.Taxonomy, 0, len(taxDocs))
	for key, doc := range taxDocs {
		t, err := doc.toDomain(key)
		if err != nil {
			return nil, err
		}
		taxonomies = append(taxonomies, t)
	}

	logger.Debug("loaded %d content types and %d taxonomies", len(contentTypes), len(taxonomies))
	return domain.NewSchema(contentTypes, taxonomies), nil
}

func (d contentTypeDoc) toDomain(key string) (domain.ContentType, error) {
	ct := domain.ContentType{
		Key:          firstNonEmpty(d.Slug, key),
		SingularSlug: d.SingularSlug,
		Name:         firstNonEmpty(d.Name, key),
		Taxonomies:   d.Taxonomy,
		Locales:      d.Locales,
	}

	err := eachPair(&d.Fields, func(name string, value *yaml.Node) error {
		var f fieldDoc
		if err := value.Decode(&f); err != nil {
			return fmt.Errorf("%w: field %s of %s: %w", domain.ErrInvalidInput, name, key, err)
		}
		ct.Fields = append(ct.Fields, domain.FieldDefinition{Key: name, Type: f.Type, Localize: f.Localize})
		return nil
	})
	if err != nil {
		return ct, err
	}

	err = eachPair(&d.Relations, func(name string, value *yaml.Node) error {
		var r relationDoc
		if err := value.Decode(&r); err != nil {
			return fmt.Errorf("%w: relation %s of %s: %w", domain.ErrInvalidInput, name, key, err)
		}
		ct.Relations = append(ct.Relations, domain.RelationDefinition{Key: name, Multiple: r.Multiple})
		return nil
	})
	return ct, err
}

func (d taxonomyDoc) toDomain(key string) (domain.Taxonomy, error) {
	t := domain.Taxonomy{
		Key:          firstNonEmpty(d.Slug, key),
		SingularSlug: d.SingularSlug,
		Name:         firstNonEmpty(d.Name, key),
		BehavesLike:  d.BehavesLike,
	}

	switch d.Options.Kind {
	case 0:
		// no options declared
	case yaml.SequenceNode:
		for _, item := range d.Options.Content {
			t.Options = append(t.Options, domain.TaxonomyOption{Slug: slugify(item.Value), Name: item.Value})
		}
	case yaml.MappingNode:
		err := eachPair(&d.Options, func(slug string, value *yaml.Node) error {
			t.Options = append(t.Options, domain.TaxonomyOption{Slug: slug, Name: value.Value})
			return nil
		})
		if err != nil {
			return t, err
		}
	default:
		return t, fmt.Errorf("%w: options of taxonomy %s must be a list or a mapping", domain.ErrInvalidInput, key)
	}

	return t, nil
}

// eachPair walks a mapping node in document order. An absent or null node
// has no pairs.
func eachPair(node *yaml.Node, fn func(key string, value *yaml.Node) error) error {
	if node.Kind == 0 || node.Tag == "!!null" {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: expected a mapping at line %d", domain.ErrInvalidInput, node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if err := fn(node.Content[i].Value, node.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}

// slugify turns an option label into its slug: lowercase with dashes.
func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
