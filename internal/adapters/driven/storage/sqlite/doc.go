// Package sqlite provides a SQLite-based implementation of driven.Store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. A single Store serves content, user and
// relation lookups and acts as the unit of work for imports.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// Field values are stored as JSON; taxonomy options are normalised into their
// own table and linked per content item.
//
// # Data Location
//
// By default, the database is stored at ~/.conimex/data/content.db
//
// # Thread Safety
//
// All operations are thread-safe. Tracked entities are guarded by a mutex and
// the database uses WAL mode.
package sqlite
