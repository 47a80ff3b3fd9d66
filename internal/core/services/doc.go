// Package services implements the driving port interfaces.
//
// The import engine lives here: ImportService dispatches the blocks of an
// export document, ContentImporter upserts content records one at a time,
// and UserImporter reconciles user accounts. Record merging is split into the
// pure Merger (fields and taxonomies) and RelationMerger, which needs the
// stores to resolve targets.
//
// Services depend only on domain types and driven ports.
package services
