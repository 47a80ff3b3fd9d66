package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/conimex/internal/core/domain"
	"github.com/custodia-labs/conimex/internal/core/ports/driven"
	"github.com/custodia-labs/conimex/internal/core/ports/driving"
	"github.com/custodia-labs/conimex/internal/logger"
)

// Ensure ImportService implements the interface.
var _ driving.Importer = (*ImportService)(nil)

// ImportService dispatches the blocks of an export document.
type ImportService struct {
	content  *ContentImporter
	users    *UserImporter
	settings domain.ImportSettings
}

// NewImportService creates an import service over one store and schema.
func NewImportService(
	schema driven.SchemaRegistry,
	store driven.Store,
	settings domain.ImportSettings,
) *ImportService {
	return &ImportService{
		content:  NewContentImporter(schema, store, settings),
		users:    NewUserImporter(store),
		settings: settings,
	}
}

// Import processes every block of the document in document order.
// The first aborted block stops the import.
func (s *ImportService) Import(
	ctx context.Context,
	doc *domain.ExportDocument,
	opts driving.ImportOptions,
) (*driving.ImportResult, error) {
	start := time.Now()
	result := &driving.ImportResult{}
	defer func() { result.Duration = time.Since(start) }()

	if doc == nil {
		return result, fmt.Errorf("%w: no document", domain.ErrInvalidInput)
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = driven.NopReporter{}
	}
	skipUsers := opts.SkipUsers || s.settings.SkipUsers

	logger.Info("Importing %d blocks (%d records)", len(doc.Blocks), doc.RecordCount())

	for _, block := range doc.Blocks {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		switch block.Key {
		case domain.MetaBlockKey:
			continue

		case domain.UsersBlockKey:
			if skipUsers {
				reporter.Comment("Skipping users")
				continue
			}
			users, err := s.users.Import(ctx, block.Records, reporter)
			result.Users.Created += users.Created
			result.Users.Skipped += users.Skipped
			result.Users.Invalid += users.Invalid
			if err != nil {
				return result, fmt.Errorf("%w: users: %w", domain.ErrImportAborted, err)
			}

		default:
			blockResult, err := s.content.ImportBlock(ctx, block, reporter)
			result.Blocks = append(result.Blocks, blockResult)
			if err != nil {
				logger.Error("block %s aborted: %v", block.Key, err)
				return result, fmt.Errorf("%w: block %s: %w", domain.ErrImportAborted, block.Key, err)
			}
			logger.Info("Block %s: %d created, %d updated", block.Key, blockResult.Created, blockResult.Updated)
		}
	}

	return result, nil
}
