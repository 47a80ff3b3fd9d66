package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/conimex/internal/core/domain"
)

// fieldRow is the JSON shape of one stored field.
type fieldRow struct {
	Name         string         `json:"name"`
	Value        any            `json:"value"`
	Translations map[string]any `json:"translations,omitempty"`
}

// ==================== Content ====================

// FindBySlug returns the content item of a type with the given slug.
func (s *Store) FindBySlug(ctx context.Context, contentType, slug string) (*domain.Content, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, content_type, slug, status, author_id, fields,
			created_at, published_at, modified_at, depublished_at
		FROM contents WHERE content_type = ? AND slug = ?
	`, contentType, slug)

	var content domain.Content
	var authorID sql.NullString
	var fieldsJSON string
	var depublishedAt sql.NullTime
	if err := row.Scan(&content.ID, &content.ContentType, &content.Slug, &content.Status,
		&authorID, &fieldsJSON, &content.CreatedAt, &content.PublishedAt, &content.ModifiedAt,
		&depublishedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning content: %w", err)
	}

	if tracked, ok := s.trackedContents[content.ID]; ok {
		return tracked, nil
	}

	content.AuthorID = authorID.String
	if depublishedAt.Valid {
		t := depublishedAt.Time
		content.DepublishedAt = &t
	}

	var fields []fieldRow
	if err := json.Unmarshal([]byte(fieldsJSON), &fields); err != nil {
		return nil, fmt.Errorf("unmarshaling fields: %w", err)
	}
	for _, f := range fields {
		content.Fields = append(content.Fields, domain.Field{
			Name:         f.Name,
			Value:        f.Value,
			Translations: f.Translations,
		})
	}

	taxonomies, err := s.loadTaxonomies(ctx, content.ID)
	if err != nil {
		return nil, err
	}
	content.Taxonomies = taxonomies

	s.trackedContents[content.ID] = &content
	return &content, nil
}

func (s *Store) loadTaxonomies(ctx context.Context, contentID string) ([]domain.TaxonomyAssignment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.taxonomy, t.slug, t.name
		FROM content_taxonomies ct
		JOIN taxonomies t ON t.id = ct.taxonomy_id
		WHERE ct.content_id = ?
		ORDER BY ct.position
	`, contentID)
	if err != nil {
		return nil, fmt.Errorf("querying taxonomies: %w", err)
	}
	defer rows.Close()

	var result []domain.TaxonomyAssignment
	for rows.Next() {
		var a domain.TaxonomyAssignment
		if err := rows.Scan(&a.Taxonomy, &a.Slug, &a.Name); err != nil {
			return nil, fmt.Errorf("scanning taxonomy: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating taxonomies: %w", err)
	}
	return result, nil
}

// saveContent upserts a content row and replaces its taxonomy links.
func saveContent(ctx context.Context, tx *sql.Tx, content *domain.Content) error {
	fields := make([]fieldRow, 0, len(content.Fields))
	for _, f := range content.Fields {
		fields = append(fields, fieldRow{Name: f.Name, Value: f.Value, Translations: f.Translations})
	}
	fieldsJSON, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("marshalling fields of %s/%s: %w", content.ContentType, content.Slug, err)
	}

	var depublishedAt interface{}
	if content.DepublishedAt != nil {
		depublishedAt = content.DepublishedAt.UTC()
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO contents (id, content_type, slug, status, author_id, fields,
			created_at, published_at, modified_at, depublished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			content_type = excluded.content_type,
			slug = excluded.slug,
			status = excluded.status,
			author_id = excluded.author_id,
			fields = excluded.fields,
			created_at = excluded.created_at,
			published_at = excluded.published_at,
			modified_at = excluded.modified_at,
			depublished_at = excluded.depublished_at
	`, content.ID, content.ContentType, content.Slug, content.Status, nullString(content.AuthorID),
		string(fieldsJSON), utc(content.CreatedAt), utc(content.PublishedAt), utc(content.ModifiedAt),
		depublishedAt)
	if err != nil {
		return fmt.Errorf("saving content %s/%s: %w", content.ContentType, content.Slug, err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM content_taxonomies WHERE content_id = ?", content.ID); err != nil {
		return fmt.Errorf("clearing taxonomies: %w", err)
	}
	for i, a := range content.Taxonomies {
		var taxonomyID int64
		err := tx.QueryRowContext(ctx, `
			INSERT INTO taxonomies (taxonomy, slug, name) VALUES (?, ?, ?)
			ON CONFLICT(taxonomy, slug) DO UPDATE SET name = excluded.name
			RETURNING id
		`, a.Taxonomy, a.Slug, a.Name).Scan(&taxonomyID)
		if err != nil {
			return fmt.Errorf("saving taxonomy %s/%s: %w", a.Taxonomy, a.Slug, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO content_taxonomies (content_id, taxonomy_id, position) VALUES (?, ?, ?)
		`, content.ID, taxonomyID, i); err != nil {
			return fmt.Errorf("linking taxonomy %s/%s: %w", a.Taxonomy, a.Slug, err)
		}
	}
	return nil
}

// utc normalises timestamps so stored values compare consistently.
func utc(t time.Time) time.Time {
	return t.UTC()
}
