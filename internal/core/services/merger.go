package services

import (
	"encoding/json"
	"sort"

	"github.com/custodia-labs/conimex/internal/core/domain"
	"github.com/custodia-labs/conimex/internal/core/ports/driven"
	"github.com/custodia-labs/conimex/internal/logger"
)

// MergeContext carries what a merge needs besides the record itself.
type MergeContext struct {
	// Schema resolves taxonomy declarations.
	Schema driven.SchemaRegistry

	// Locales are the locales whose <locale>data side-channel is read.
	// When empty, the content type's declared locales are used.
	Locales []string
}

func (mc MergeContext) locales(ct *domain.ContentType) []string {
	if len(mc.Locales) > 0 {
		return mc.Locales
	}
	return ct.Locales
}

// Merger applies a record's fields and taxonomies onto a content item.
// It performs no I/O; relations are handled by RelationMerger.
type Merger struct{}

// NewMerger creates a new merger.
func NewMerger() *Merger {
	return &Merger{}
}

// Merge applies both export generations' fields and taxonomies.
// A record may carry either shape; applying both is harmless because each
// only reacts to the keys it recognises.
func (m *Merger) Merge(mc MergeContext, content *domain.Content, ct *domain.ContentType, record domain.RecordView) {
	m.mergeFlatFields(mc, content, ct, record)
	m.mergeFlatTaxonomies(mc, content, ct, record)
	m.mergeNestedFields(content, ct, record)
	m.mergeNestedTaxonomies(content, ct, record)
}

// mergeFlatFields handles top-level field keys plus the JSON encoded
// <locale>data translations.
func (m *Merger) mergeFlatFields(mc MergeContext, content *domain.Content, ct *domain.ContentType, record domain.RecordView) {
	var overlays map[string]map[string]any

	for _, def := range ct.Fields {
		if !record.Has(def.Key) {
			continue
		}
		content.SetFieldValue(def.Key, record.Get(def.Key, nil), "")

		if !def.Localize {
			continue
		}
		if overlays == nil {
			overlays = localeOverlays(mc.locales(ct), record)
		}
		for _, locale := range mc.locales(ct) {
			if v, ok := overlays[locale][def.Key]; ok {
				content.SetFieldValue(def.Key, v, locale)
			}
		}
	}
}

// localeOverlays decodes the <locale>data attribute for each locale.
// Missing or malformed data yields no overlay for that locale.
func localeOverlays(locales []string, record domain.RecordView) map[string]map[string]any {
	overlays := make(map[string]map[string]any, len(locales))
	for _, locale := range locales {
		raw, ok := record.Get(locale+"data", nil).(string)
		if !ok || raw == "" {
			continue
		}
		var data map[string]any
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			logger.Debug("ignoring malformed %sdata: %v", locale, err)
			continue
		}
		overlays[locale] = data
	}
	return overlays
}

// mergeFlatTaxonomies handles top-level taxonomy keys holding sequences of
// {slug: ...}. Only declared options are assigned.
func (m *Merger) mergeFlatTaxonomies(mc MergeContext, content *domain.Content, ct *domain.ContentType, record domain.RecordView) {
	for _, key := range ct.Taxonomies {
		if !record.Has(key) {
			continue
		}
		taxonomy, ok := mc.Schema.Taxonomy(key)
		if !ok {
			logger.Debug("taxonomy %s is not declared", key)
			continue
		}
		for _, item := range sliceValue(record.Get(key, nil)) {
			entry, ok := mapping(item)
			if !ok {
				continue
			}
			slug := stringValue(entry["slug"])
			if slug == "" {
				continue
			}
			name, ok := taxonomy.Option(slug)
			if !ok {
				logger.Debug("skipping unknown %s option %q", taxonomy.Key, slug)
				continue
			}
			content.AddTaxonomy(domain.TaxonomyAssignment{Taxonomy: taxonomy.Key, Slug: slug, Name: name})
		}
	}
}

// mergeNestedFields handles the fields mapping. A localizable field whose
// value is a mapping keyed by locale tags becomes one translation per tag.
func (m *Merger) mergeNestedFields(content *domain.Content, ct *domain.ContentType, record domain.RecordView) {
	fields := domain.Nested(record, domain.KeyFields)
	if len(fields) == 0 {
		return
	}
	for _, def := range ct.Fields {
		if !fields.Has(def.Key) {
			continue
		}
		value := fields.Get(def.Key, nil)
		if !def.Localize || !isLocalized(value) {
			content.SetFieldValue(def.Key, value, "")
			continue
		}
		translations, _ := mapping(value)
		for _, locale := range sortedKeys(translations) {
			content.SetFieldValue(def.Key, translations[locale], locale)
		}
	}
}

// isLocalized reports whether a value looks like a locale to value mapping.
// An empty collection qualifies vacuously and therefore sets nothing.
func isLocalized(value any) bool {
	if s, ok := value.([]any); ok {
		return len(s) == 0
	}
	m, ok := mapping(value)
	if !ok {
		return false
	}
	for k := range m {
		if !localeTag.MatchString(k) {
			return false
		}
	}
	return true
}

// mergeNestedTaxonomies handles the taxonomies mapping of slug to name pairs.
// Options are not checked against the declaration.
func (m *Merger) mergeNestedTaxonomies(content *domain.Content, ct *domain.ContentType, record domain.RecordView) {
	taxonomies := domain.Nested(record, domain.KeyTaxonomies)
	for _, key := range sortedKeys(taxonomies) {
		if !ct.HasTaxonomy(key) {
			continue
		}
		pairs, ok := mapping(taxonomies[key])
		if !ok {
			continue
		}
		for _, slug := range sortedKeys(pairs) {
			if slug == "" {
				continue
			}
			content.AddTaxonomy(domain.TaxonomyAssignment{
				Taxonomy: key,
				Slug:     slug,
				Name:     stringValue(pairs[slug]),
			})
		}
	}
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
