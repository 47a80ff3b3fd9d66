package domain

// RecordView gives read-only access to one raw record regardless of the
// export generation that produced it.
type RecordView interface {
	// Get returns the value stored under key, or def if the key is absent.
	// A key that is present with a nil value returns nil, not def.
	Get(key string, def any) any

	// Has reports whether key is present.
	Has(key string) bool
}

// Attribute names that moved between export generations.
// The first name is current, the second is the legacy name.
var (
	AttrCreatedAt     = []string{"createdAt", "datecreated"}
	AttrPublishedAt   = []string{"publishedAt", "datepublish"}
	AttrModifiedAt    = []string{"modifiedAt", "datechanged"}
	AttrDepublishedAt = []string{"depublishedAt", "datedepublish"}
	AttrDisplayName   = []string{"displayName", "displayname"}
)

// Record keys with a fixed meaning.
const (
	KeyContentType = "contentType"
	KeySlug        = "slug"
	KeyFields      = "fields"
	KeyTaxonomies  = "taxonomies"
	KeyOwnerID     = "ownerid"
)

// Ensure MapRecord implements the interface.
var _ RecordView = MapRecord(nil)

// MapRecord is a RecordView over a decoded RawRecord.
type MapRecord RawRecord

// Get returns the value stored under key, or def if the key is absent.
func (r MapRecord) Get(key string, def any) any {
	if v, ok := r[key]; ok {
		return v
	}
	return def
}

// Has reports whether key is present.
func (r MapRecord) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// Lookup returns the value of the first key present in the record.
// The second return value is false when none of the keys is present.
func Lookup(view RecordView, keys ...string) (any, bool) {
	for _, k := range keys {
		if view.Has(k) {
			return view.Get(k, nil), true
		}
	}
	return nil, false
}

// LookupOr is Lookup with a default for when no key is present.
func LookupOr(view RecordView, def any, keys ...string) any {
	if v, ok := Lookup(view, keys...); ok {
		return v
	}
	return def
}

// Nested returns the mapping stored under key as a RecordView.
// A missing or non-mapping value yields an empty view.
func Nested(view RecordView, key string) MapRecord {
	switch m := view.Get(key, nil).(type) {
	case map[string]any:
		return MapRecord(m)
	case RawRecord:
		return MapRecord(m)
	case MapRecord:
		return m
	default:
		return MapRecord{}
	}
}

// SlugValue returns the raw slug of a content record: the top-level slug,
// falling back to the slug inside the nested fields mapping.
func SlugValue(view RecordView) any {
	return view.Get(KeySlug, Nested(view, KeyFields).Get(KeySlug, nil))
}
