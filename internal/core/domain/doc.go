// Package domain defines the core entities of the content importer.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ExportDocument: A decoded export file, as ordered blocks of raw records
//   - RecordView: Uniform read access over one raw record of either export generation
//   - Schema: Declared content types and taxonomies
//   - Content: The canonical content item an import creates or updates
//   - Relation: A directed link between two content items
//   - User: A backend user account
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
