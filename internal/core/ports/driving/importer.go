package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/conimex/internal/core/domain"
	"github.com/custodia-labs/conimex/internal/core/ports/driven"
)

// Importer imports export documents into the canonical content model.
type Importer interface {
	// Import processes every block of the document in order.
	// When a block is aborted, the returned error wraps domain.ErrImportAborted
	// and the result describes what was committed before the abort.
	Import(ctx context.Context, doc *domain.ExportDocument, opts ImportOptions) (*ImportResult, error)
}

// ImportOptions adjusts a single import run.
type ImportOptions struct {
	// SkipUsers skips the users block.
	SkipUsers bool

	// Reporter receives progress and diagnostics. Nil discards them.
	Reporter driven.Reporter
}

// BlockResult summarises one imported content block.
type BlockResult struct {
	// Key is the block key.
	Key string

	// Records is the number of records committed.
	Records int

	// Created counts content items that did not exist before.
	Created int

	// Updated counts content items that already existed.
	Updated int

	// Skipped counts records without a slug.
	Skipped int

	// Aborted is true if the block stopped early.
	Aborted bool
}

// UserResult summarises the users block.
type UserResult struct {
	// Created counts new accounts.
	Created int

	// Skipped counts accounts that already existed and were left untouched.
	Skipped int

	// Invalid counts records without a username.
	Invalid int
}

// ImportResult summarises an import run.
type ImportResult struct {
	Blocks   []BlockResult
	Users    UserResult
	Duration time.Duration
}

// Records returns the number of content records committed across all blocks.
func (r *ImportResult) Records() int {
	n := 0
	for _, b := range r.Blocks {
		n += b.Records
	}
	return n
}
