package domain

// Reserved block keys in an export document.
const (
	// MetaBlockKey holds export metadata. It never contains content.
	MetaBlockKey = "__bolt_export_meta"

	// UsersBlockKey holds user accounts.
	UsersBlockKey = "__users"
)

// RawRecord is one exported item as decoded from the export file.
// Its keys and nesting depend on the export generation that produced it.
type RawRecord map[string]any

// Block is one top-level entry of an export document.
// Older exports have one block per content type; newer exports put all
// content in a single block and name the type on each record.
type Block struct {
	// Key is the block's key in the document (a content type, or a reserved key).
	Key string

	// Records are the items listed under the key, in document order.
	Records []RawRecord
}

// IsReserved reports whether the block carries a non-content payload.
func (b Block) IsReserved() bool {
	return b.Key == MetaBlockKey || b.Key == UsersBlockKey
}

// ExportDocument is a decoded export file.
type ExportDocument struct {
	// Blocks in the order they appear in the file.
	Blocks []Block

	// Meta is the decoded metadata block, if any. Informational only.
	Meta map[string]any
}

// RecordCount returns the number of records across all content blocks.
func (d *ExportDocument) RecordCount() int {
	n := 0
	for _, b := range d.Blocks {
		if b.IsReserved() {
			continue
		}
		n += len(b.Records)
	}
	return n
}
