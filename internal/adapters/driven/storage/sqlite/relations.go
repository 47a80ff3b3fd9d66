package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/custodia-labs/conimex/internal/core/domain"
)

// ==================== Relations ====================

// FindFrom returns all outgoing relations of a content item, ordered by position.
func (s *Store) FindFrom(ctx context.Context, contentID string) ([]domain.Relation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, from_id, to_id, relation_key, position
		FROM relations WHERE from_id = ?
		ORDER BY position
	`, contentID)
	if err != nil {
		return nil, fmt.Errorf("querying relations: %w", err)
	}
	defer rows.Close()

	var relations []domain.Relation //nolint:prealloc // size unknown from query
	for rows.Next() {
		var rel domain.Relation
		if err := rows.Scan(&rel.ID, &rel.FromID, &rel.ToID, &rel.Key, &rel.Position); err != nil {
			return nil, fmt.Errorf("scanning relation: %w", err)
		}
		relations = append(relations, rel)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating relations: %w", err)
	}

	return relations, nil
}

func insertRelation(ctx context.Context, tx *sql.Tx, rel domain.Relation) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO relations (id, from_id, to_id, relation_key, position)
		VALUES (?, ?, ?, ?, ?)
	`, rel.ID, rel.FromID, rel.ToID, rel.Key, rel.Position)
	if err != nil {
		return fmt.Errorf("saving relation %s: %w", rel.ID, err)
	}
	return nil
}

func deleteRelation(ctx context.Context, tx *sql.Tx, rel domain.Relation) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM relations WHERE id = ?", rel.ID); err != nil {
		return fmt.Errorf("deleting relation %s: %w", rel.ID, err)
	}
	return nil
}
