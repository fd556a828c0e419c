package sqlite

import (
	"context"
	"fmt"

	"github.com/rpggio/staffplan/internal/domain/knowledge"
)

// KnowledgeRepository implements knowledge.Repository for SQLite
type KnowledgeRepository struct {
	db *DB
}

// NewKnowledgeRepository creates a new KnowledgeRepository
func NewKnowledgeRepository(db *DB) *KnowledgeRepository {
	return &KnowledgeRepository{db: db}
}

// Create inserts a knowledge tag
func (r *KnowledgeRepository) Create(ctx context.Context, tenantID string, k *knowledge.Knowledge) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO knowledge (id, tenant_id, name, description, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, k.ID, tenantID, k.Name, k.Description, k.CreatedAt)
	if err != nil {
		if mapped := translate(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to create knowledge: %w", err)
	}
	return nil
}

// List returns every knowledge tag of the tenant ordered by name
func (r *KnowledgeRepository) List(ctx context.Context, tenantID string) ([]knowledge.Knowledge, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tenant_id, name, description, created_at
		FROM knowledge
		WHERE tenant_id = ?
		ORDER BY name
	`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list knowledge: %w", err)
	}
	defer rows.Close()

	var items []knowledge.Knowledge
	for rows.Next() {
		var k knowledge.Knowledge
		if err := rows.Scan(&k.ID, &k.TenantID, &k.Name, &k.Description, &k.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan knowledge: %w", err)
		}
		items = append(items, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating knowledge rows: %w", err)
	}
	return items, nil
}

// Delete removes a knowledge tag. Referenced tags fail with a foreign key violation.
func (r *KnowledgeRepository) Delete(ctx context.Context, tenantID, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM knowledge WHERE id = ? AND tenant_id = ?`, id, tenantID)
	if err != nil {
		if mapped := translate(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to delete knowledge: %w", err)
	}
	return requireRow(result)
}
