package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rpggio/staffplan/internal/domain/allocation"
	"github.com/rpggio/staffplan/internal/repository"
)

const allocationColumns = `
	a.id, a.tenant_id, a.employee_id,
	TRIM(COALESCE(e.given_name, '') || ' ' || COALESCE(e.surname, '')),
	a.project_id, COALESCE(p.name, ''), a.start_date, a.end_date, a.percentage,
	a.is_deleted, a.version, a.created_at, a.updated_at`

const allocationFrom = ` FROM allocations a
	LEFT JOIN employees e ON e.id = a.employee_id
	LEFT JOIN projects p ON p.id = a.project_id`

// AllocationRepository implements allocation.Repository for SQLite
type AllocationRepository struct {
	db *DB
}

// NewAllocationRepository creates a new AllocationRepository
func NewAllocationRepository(db *DB) *AllocationRepository {
	return &AllocationRepository{db: db}
}

// Create inserts an allocation
func (r *AllocationRepository) Create(ctx context.Context, tenantID string, a *allocation.Allocation) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO allocations (
			id, tenant_id, employee_id, project_id, start_date, end_date,
			percentage, is_deleted, version, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?, ?, ?)
	`,
		a.ID, tenantID, a.EmployeeID, a.ProjectID, dateValue(a.StartDate), dateValue(a.EndDate),
		a.Percentage, a.Version, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if mapped := translate(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to create allocation: %w", err)
	}
	return nil
}

// Get retrieves an allocation by ID, including soft-deleted ones
func (r *AllocationRepository) Get(ctx context.Context, tenantID, id string) (*allocation.Allocation, error) {
	query := `SELECT ` + allocationColumns + allocationFrom + ` WHERE a.id = ? AND a.tenant_id = ?`

	a, err := scanAllocation(r.db.QueryRowContext(ctx, query, id, tenantID))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get allocation: %w", err)
	}
	return a, nil
}

// Update writes an allocation if its stored version equals expectedVersion
func (r *AllocationRepository) Update(ctx context.Context, tenantID string, a *allocation.Allocation, expectedVersion int64) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE allocations SET
			employee_id = ?, project_id = ?, start_date = ?, end_date = ?,
			percentage = ?, version = ?, updated_at = ?
		WHERE id = ? AND tenant_id = ? AND version = ? AND is_deleted = 0
	`,
		a.EmployeeID, a.ProjectID, dateValue(a.StartDate), dateValue(a.EndDate),
		a.Percentage, a.Version, a.UpdatedAt,
		a.ID, tenantID, expectedVersion,
	)
	if err != nil {
		if mapped := translate(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to update allocation: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected > 0 {
		return nil
	}

	var exists bool
	err = r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM allocations WHERE id = ? AND tenant_id = ? AND is_deleted = 0)`,
		a.ID, tenantID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check allocation existence: %w", err)
	}
	if !exists {
		return repository.ErrNotFound
	}
	return repository.ErrConflict
}

// SoftDelete flags an allocation as deleted and bumps its version
func (r *AllocationRepository) SoftDelete(ctx context.Context, tenantID, id string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE allocations SET is_deleted = 1, version = version + 1, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND tenant_id = ? AND is_deleted = 0
	`, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete allocation: %w", err)
	}
	return requireRow(result)
}

// List returns a page of allocations, newest first, and the total count
func (r *AllocationRepository) List(ctx context.Context, tenantID string, opts allocation.ListOptions) ([]allocation.Allocation, int, error) {
	where := ` WHERE a.tenant_id = ?`
	args := []interface{}{tenantID}
	if !opts.IncludeDeleted {
		where += ` AND a.is_deleted = 0`
	}
	if opts.EmployeeID != "" {
		where += ` AND a.employee_id = ?`
		args = append(args, opts.EmployeeID)
	}
	if opts.ProjectID != "" {
		where += ` AND a.project_id = ?`
		args = append(args, opts.ProjectID)
	}
	if opts.Range != nil {
		// ISO dates compare correctly as text.
		where += ` AND a.start_date <= ? AND a.end_date >= ?`
		args = append(args, dateValue(opts.Range.End), dateValue(opts.Range.Start))
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM allocations a`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count allocations: %w", err)
	}

	query := `SELECT ` + allocationColumns + allocationFrom + where + ` ORDER BY a.created_at DESC, a.id`
	query, args = paginate(query, args, opts.Limit, opts.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list allocations: %w", err)
	}
	defer rows.Close()

	var allocs []allocation.Allocation
	for rows.Next() {
		a, err := scanAllocation(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan allocation: %w", err)
		}
		allocs = append(allocs, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating allocation rows: %w", err)
	}
	return allocs, total, nil
}

func scanAllocation(row rowScanner) (*allocation.Allocation, error) {
	var a allocation.Allocation
	var start, end string
	if err := row.Scan(
		&a.ID, &a.TenantID, &a.EmployeeID, &a.EmployeeName,
		&a.ProjectID, &a.ProjectName, &start, &end, &a.Percentage,
		&a.IsDeleted, &a.Version, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	var err error
	if a.StartDate, err = parseDate(start); err != nil {
		return nil, err
	}
	if a.EndDate, err = parseDate(end); err != nil {
		return nil, err
	}
	return &a, nil
}
