// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - SchemaRegistry: Declared content types and taxonomies
//   - ContentStore, UserStore, RelationStore: Lookups
//   - UnitOfWork: Scheduled writes, Flush (commit) and Clear (release tracked entities)
//   - Store: All of the above from one backend (memory or SQLite)
//   - ExportDecoder: Export file decoding (YAML or JSON)
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - Reporter: Progress and diagnostics. Nil means NopReporter.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
