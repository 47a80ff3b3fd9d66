package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/conimex/internal/core/domain"
	"github.com/custodia-labs/conimex/internal/core/ports/driven"
	"github.com/custodia-labs/conimex/internal/core/ports/driving"
	"github.com/custodia-labs/conimex/internal/logger"
)

// ContentImporter upserts the records of one content block.
type ContentImporter struct {
	schema    driven.SchemaRegistry
	store     driven.Store
	resolver  *SchemaResolver
	merger    *Merger
	relations *RelationMerger
	owners    *OwnerResolver
	settings  domain.ImportSettings

	newID func() string
	now   func() time.Time
}

// NewContentImporter creates a content importer.
// Settings are validated; invalid values fall back to the defaults.
func NewContentImporter(
	schema driven.SchemaRegistry,
	store driven.Store,
	settings domain.ImportSettings,
) *ContentImporter {
	if err := settings.Validate(); err != nil {
		logger.Warn("invalid import settings, using defaults: %v", err)
		settings = domain.DefaultImportSettings()
	}
	return &ContentImporter{
		schema:    schema,
		store:     store,
		resolver:  NewSchemaResolver(schema),
		merger:    NewMerger(),
		relations: NewRelationMerger(schema, store),
		owners:    NewOwnerResolver(store),
		settings:  settings,
		newID:     uuid.NewString,
		now:       time.Now,
	}
}

// ImportBlock imports every record of a block in order.
//
// A record whose content type is not declared aborts the block: the error is
// reported, records committed before it stay committed and the returned error
// wraps domain.ErrUnknownContentType. Any other failure aborts the same way.
func (c *ContentImporter) ImportBlock(
	ctx context.Context,
	block domain.Block,
	reporter driven.Reporter,
) (driving.BlockResult, error) {
	if reporter == nil {
		reporter = driven.NopReporter{}
	}
	result := driving.BlockResult{Key: block.Key}

	reporter.Comment(fmt.Sprintf("Importing ContentType %s", block.Key))
	reporter.Start(len(block.Records))
	logger.Section("Block " + block.Key)

	for i, raw := range block.Records {
		if err := ctx.Err(); err != nil {
			return c.abort(result, err)
		}
		record := domain.MapRecord(raw)

		// 1. Resolve the content type
		ct, ok := c.resolver.Resolve(block.Key, record)
		if !ok {
			name := c.resolver.Requested(block.Key, record)
			reporter.Error(fmt.Sprintf("Requested ContentType %s is not defined in contenttypes.yaml.", name))
			return c.abort(result, fmt.Errorf("%w: %s", domain.ErrUnknownContentType, name))
		}

		// 2. Upsert, merge and commit
		outcome, err := c.importRecord(ctx, ct, record)
		if err != nil {
			reporter.Error(fmt.Sprintf("Record %d of %s could not be imported: %v", i, block.Key, err))
			return c.abort(result, err)
		}
		switch outcome {
		case recordCreated:
			result.Created++
			result.Records++
		case recordUpdated:
			result.Updated++
			result.Records++
		case recordSkipped:
			result.Skipped++
		}

		// 3. Release tracked entities between records
		if i%c.settings.ClearEvery == 0 {
			c.store.Clear()
		}
		reporter.Advance()
	}

	reporter.Finish()
	return result, nil
}

// abort drops whatever the failed record left queued or tracked, so the
// next flush on the same store only commits later work.
func (c *ContentImporter) abort(result driving.BlockResult, err error) (driving.BlockResult, error) {
	c.store.Clear()
	result.Aborted = true
	return result, err
}

type recordOutcome int

const (
	recordSkipped recordOutcome = iota
	recordCreated
	recordUpdated
)

// importRecord upserts one record and flushes it.
func (c *ContentImporter) importRecord(
	ctx context.Context,
	ct *domain.ContentType,
	record domain.RecordView,
) (recordOutcome, error) {
	slug := slugValue(domain.SlugValue(record))
	if slug == "" {
		logger.Debug("skipping %s record without slug", ct.Key)
		return recordSkipped, nil
	}

	outcome := recordUpdated
	content, err := c.store.FindBySlug(ctx, ct.Key, slug)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		owner, err := c.owners.Resolve(ctx, record)
		if err != nil {
			return recordSkipped, err
		}
		content = domain.NewContent(c.newID(), ct.Key, slug)
		content.Status = c.settings.DefaultStatus
		content.AuthorID = owner.ID
		outcome = recordCreated
		logger.Record("creating", ct.Key, slug)
	case err != nil:
		return recordSkipped, fmt.Errorf("find %s/%s: %w", ct.Key, slug, err)
	default:
		logger.Record("updating", ct.Key, slug)
	}

	mc := MergeContext{Schema: c.schema, Locales: c.settings.Locales}
	c.merger.Merge(mc, content, ct, record)

	if _, err := c.relations.Merge(ctx, content, ct, record); err != nil {
		return recordSkipped, err
	}

	if err := c.setTimestamps(content, record); err != nil {
		return recordSkipped, err
	}

	c.store.PersistContent(content)
	if err := c.store.Flush(ctx); err != nil {
		return recordSkipped, fmt.Errorf("flush %s/%s: %w", ct.Key, slug, err)
	}
	return outcome, nil
}

// setTimestamps applies the four lifecycle timestamps. Absent or null
// values mean now; depublishedAt is cleared unless a truthy value is given.
func (c *ContentImporter) setTimestamps(content *domain.Content, record domain.RecordView) error {
	now := c.now()

	var err error
	if content.CreatedAt, err = timeValue(domain.LookupOr(record, nil, domain.AttrCreatedAt...), now); err != nil {
		return err
	}
	if content.PublishedAt, err = timeValue(domain.LookupOr(record, nil, domain.AttrPublishedAt...), now); err != nil {
		return err
	}
	if content.ModifiedAt, err = timeValue(domain.LookupOr(record, nil, domain.AttrModifiedAt...), now); err != nil {
		return err
	}

	content.DepublishedAt = nil
	for _, key := range domain.AttrDepublishedAt {
		v := record.Get(key, nil)
		if !truthy(v) || zeroDate(v) {
			continue
		}
		t, err := timeValue(v, now)
		if err != nil {
			return err
		}
		content.DepublishedAt = &t
		break
	}
	return nil
}
