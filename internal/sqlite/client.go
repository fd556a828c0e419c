package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rpggio/staffplan/internal/domain/client"
	"github.com/rpggio/staffplan/internal/repository"
)

const clientColumns = `
	id, tenant_id, name, client_code, address, postal_code, country_code,
	is_active, is_deleted, created_at, updated_at`

// ClientRepository implements client.Repository for SQLite
type ClientRepository struct {
	db *DB
}

// NewClientRepository creates a new ClientRepository
func NewClientRepository(db *DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// Create inserts a client
func (r *ClientRepository) Create(ctx context.Context, tenantID string, c *client.Client) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO clients (
			id, tenant_id, name, client_code, address, postal_code, country_code,
			is_active, is_deleted, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0, ?, ?)
	`,
		c.ID, tenantID, c.Name, c.Code, c.Address, c.PostalCode, c.CountryCode,
		boolInt(c.IsActive), c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if mapped := translate(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

// Get retrieves a non-deleted client by ID
func (r *ClientRepository) Get(ctx context.Context, tenantID, id string) (*client.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients
		WHERE id = ? AND tenant_id = ? AND is_deleted = 0`

	c, err := scanClient(r.db.QueryRowContext(ctx, query, id, tenantID))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return c, nil
}

// Update replaces a client's fields
func (r *ClientRepository) Update(ctx context.Context, tenantID string, c *client.Client) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE clients SET
			name = ?, client_code = ?, address = ?, postal_code = ?, country_code = ?,
			is_active = ?, updated_at = ?
		WHERE id = ? AND tenant_id = ? AND is_deleted = 0
	`,
		c.Name, c.Code, c.Address, c.PostalCode, c.CountryCode,
		boolInt(c.IsActive), c.UpdatedAt, c.ID, tenantID,
	)
	if err != nil {
		if mapped := translate(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to update client: %w", err)
	}
	return requireRow(result)
}

// SoftDelete flags a client as deleted
func (r *ClientRepository) SoftDelete(ctx context.Context, tenantID, id string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE clients SET is_deleted = 1, is_active = 0, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND tenant_id = ? AND is_deleted = 0
	`, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return requireRow(result)
}

// List returns a page of non-deleted clients ordered by name and the total count
func (r *ClientRepository) List(ctx context.Context, tenantID string, opts client.ListOptions) ([]client.Client, int, error) {
	where := ` WHERE tenant_id = ? AND is_deleted = 0`
	args := []interface{}{tenantID}
	if opts.ActiveOnly {
		where += ` AND is_active = 1`
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count clients: %w", err)
	}

	query := `SELECT ` + clientColumns + ` FROM clients` + where + ` ORDER BY name, id`
	query, args = paginate(query, args, opts.Limit, opts.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var clients []client.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating client rows: %w", err)
	}
	return clients, total, nil
}

func scanClient(row rowScanner) (*client.Client, error) {
	var c client.Client
	if err := row.Scan(
		&c.ID, &c.TenantID, &c.Name, &c.Code, &c.Address, &c.PostalCode, &c.CountryCode,
		&c.IsActive, &c.IsDeleted, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}
