package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rpggio/staffplan/internal/domain/employee"
	"github.com/rpggio/staffplan/internal/repository"
)

const employeeColumns = `
	e.id, e.tenant_id, e.given_name, e.surname, e.company_email, e.personal_email,
	e.citizenship, e.tax_residence, e.location, e.mobile_number, e.home_address,
	e.birth_date, e.is_active, e.is_deleted, e.created_at, e.updated_at`

// EmployeeRepository implements employee.Repository for SQLite
type EmployeeRepository struct {
	db *DB
}

// NewEmployeeRepository creates a new EmployeeRepository
func NewEmployeeRepository(db *DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// Create inserts an employee and their knowledge links
func (r *EmployeeRepository) Create(ctx context.Context, tenantID string, emp *employee.Employee) error {
	return r.db.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO employees (
				id, tenant_id, given_name, surname, company_email, personal_email,
				citizenship, tax_residence, location, mobile_number, home_address,
				birth_date, is_active, is_deleted, created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?, ?)
		`,
			emp.ID, tenantID, emp.GivenName, emp.Surname, emp.CompanyEmail, emp.PersonalEmail,
			emp.Citizenship, emp.TaxResidence, emp.Location, emp.MobileNumber, emp.HomeAddress,
			dateValue(emp.BirthDate), boolInt(emp.IsActive), emp.CreatedAt, emp.UpdatedAt,
		)
		if err != nil {
			if mapped := translate(err); mapped != nil {
				return mapped
			}
			return fmt.Errorf("failed to create employee: %w", err)
		}
		return linkKnowledge(ctx, tx, "employee_knowledge", "employee_id", tenantID, emp.ID, emp.KnowledgeIDs)
	})
}

// Get retrieves a non-deleted employee by ID
func (r *EmployeeRepository) Get(ctx context.Context, tenantID, id string) (*employee.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees e
		WHERE e.id = ? AND e.tenant_id = ? AND e.is_deleted = 0`

	emp, err := scanEmployee(r.db.QueryRowContext(ctx, query, id, tenantID))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	ids, err := knowledgeIDs(ctx, r.db, "employee_knowledge", "employee_id", emp.ID)
	if err != nil {
		return nil, err
	}
	emp.KnowledgeIDs = ids
	return emp, nil
}

// Update replaces an employee's fields and knowledge links
func (r *EmployeeRepository) Update(ctx context.Context, tenantID string, emp *employee.Employee) error {
	return r.db.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE employees SET
				given_name = ?, surname = ?, company_email = ?, personal_email = ?,
				citizenship = ?, tax_residence = ?, location = ?, mobile_number = ?,
				home_address = ?, birth_date = ?, is_active = ?, updated_at = ?
			WHERE id = ? AND tenant_id = ? AND is_deleted = 0
		`,
			emp.GivenName, emp.Surname, emp.CompanyEmail, emp.PersonalEmail,
			emp.Citizenship, emp.TaxResidence, emp.Location, emp.MobileNumber,
			emp.HomeAddress, dateValue(emp.BirthDate), boolInt(emp.IsActive), emp.UpdatedAt,
			emp.ID, tenantID,
		)
		if err != nil {
			if mapped := translate(err); mapped != nil {
				return mapped
			}
			return fmt.Errorf("failed to update employee: %w", err)
		}
		if err := requireRow(result); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM employee_knowledge WHERE employee_id = ?`, emp.ID); err != nil {
			return fmt.Errorf("failed to clear employee knowledge: %w", err)
		}
		return linkKnowledge(ctx, tx, "employee_knowledge", "employee_id", tenantID, emp.ID, emp.KnowledgeIDs)
	})
}

// SoftDelete flags an employee as deleted
func (r *EmployeeRepository) SoftDelete(ctx context.Context, tenantID, id string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE employees SET is_deleted = 1, is_active = 0, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND tenant_id = ? AND is_deleted = 0
	`, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	return requireRow(result)
}

// List returns a page of non-deleted employees ordered by surname and the total count
func (r *EmployeeRepository) List(ctx context.Context, tenantID string, opts employee.ListOptions) ([]employee.Employee, int, error) {
	where := ` WHERE e.tenant_id = ? AND e.is_deleted = 0`
	args := []interface{}{tenantID}
	if opts.ActiveOnly {
		where += ` AND e.is_active = 1`
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM employees e`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	query := `SELECT ` + employeeColumns + ` FROM employees e` + where +
		` ORDER BY e.surname, e.given_name, e.id`
	query, args = paginate(query, args, opts.Limit, opts.Offset)

	employees, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

// Search performs a full-text search over names and emails
func (r *EmployeeRepository) Search(ctx context.Context, tenantID, query string, limit int) ([]employee.Employee, error) {
	q := `SELECT ` + employeeColumns + `
		FROM employees_fts
		JOIN employees e ON e.rowid = employees_fts.rowid
		WHERE e.tenant_id = ? AND e.is_deleted = 0 AND employees_fts MATCH ?
		ORDER BY bm25(employees_fts), e.surname, e.given_name`
	match := ftsQuery(query)
	if match == "" {
		return []employee.Employee{}, nil
	}
	args := []interface{}{tenantID, match}
	q, args = paginate(q, args, limit, 0)

	return r.query(ctx, q, args...)
}

func (r *EmployeeRepository) query(ctx context.Context, query string, args ...interface{}) ([]employee.Employee, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, *emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employee rows: %w", err)
	}
	rows.Close()

	for i := range employees {
		ids, err := knowledgeIDs(ctx, r.db, "employee_knowledge", "employee_id", employees[i].ID)
		if err != nil {
			return nil, err
		}
		employees[i].KnowledgeIDs = ids
	}
	return employees, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEmployee(row rowScanner) (*employee.Employee, error) {
	var emp employee.Employee
	var birthDate string
	if err := row.Scan(
		&emp.ID, &emp.TenantID, &emp.GivenName, &emp.Surname, &emp.CompanyEmail, &emp.PersonalEmail,
		&emp.Citizenship, &emp.TaxResidence, &emp.Location, &emp.MobileNumber, &emp.HomeAddress,
		&birthDate, &emp.IsActive, &emp.IsDeleted, &emp.CreatedAt, &emp.UpdatedAt,
	); err != nil {
		return nil, err
	}
	d, err := parseDate(birthDate)
	if err != nil {
		return nil, err
	}
	emp.BirthDate = d
	return &emp, nil
}
