package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rpggio/staffplan/internal/domain/project"
	"github.com/rpggio/staffplan/internal/repository"
)

const projectColumns = `
	p.id, p.tenant_id, p.code, p.name, p.client_id, COALESCE(c.name, ''), p.currency,
	p.contract_owner, p.start_date, p.end_date, p.deal_status, p.billable,
	p.engagement_manager_email, p.note, p.created_at, p.updated_at`

const projectFrom = ` FROM projects p LEFT JOIN clients c ON c.id = p.client_id`

// ProjectRepository implements project.Repository for SQLite
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create inserts a project and its required knowledge
func (r *ProjectRepository) Create(ctx context.Context, tenantID string, proj *project.Project) error {
	return r.db.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO projects (
				id, tenant_id, code, name, client_id, currency, contract_owner,
				start_date, end_date, deal_status, billable, engagement_manager_email,
				note, created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			proj.ID, tenantID, proj.Code, proj.Name, proj.ClientID, proj.Currency, proj.ContractOwner,
			dateValue(proj.StartDate), dateValue(proj.EndDate), proj.DealStatus, boolInt(proj.Billable),
			proj.EngagementManagerEmail, proj.Note, proj.CreatedAt, proj.UpdatedAt,
		)
		if err != nil {
			if mapped := translate(err); mapped != nil {
				return mapped
			}
			return fmt.Errorf("failed to create project: %w", err)
		}
		return linkKnowledge(ctx, tx, "project_knowledge", "project_id", tenantID, proj.ID, proj.KnowledgeIDs)
	})
}

// Get retrieves a project by ID
func (r *ProjectRepository) Get(ctx context.Context, tenantID, id string) (*project.Project, error) {
	query := `SELECT ` + projectColumns + projectFrom + ` WHERE p.id = ? AND p.tenant_id = ?`

	proj, err := scanProject(r.db.QueryRowContext(ctx, query, id, tenantID))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	ids, err := knowledgeIDs(ctx, r.db, "project_knowledge", "project_id", proj.ID)
	if err != nil {
		return nil, err
	}
	proj.KnowledgeIDs = ids
	return proj, nil
}

// Update replaces a project's fields and required knowledge
func (r *ProjectRepository) Update(ctx context.Context, tenantID string, proj *project.Project) error {
	return r.db.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE projects SET
				code = ?, name = ?, client_id = ?, currency = ?, contract_owner = ?,
				start_date = ?, end_date = ?, deal_status = ?, billable = ?,
				engagement_manager_email = ?, note = ?, updated_at = ?
			WHERE id = ? AND tenant_id = ?
		`,
			proj.Code, proj.Name, proj.ClientID, proj.Currency, proj.ContractOwner,
			dateValue(proj.StartDate), dateValue(proj.EndDate), proj.DealStatus, boolInt(proj.Billable),
			proj.EngagementManagerEmail, proj.Note, proj.UpdatedAt,
			proj.ID, tenantID,
		)
		if err != nil {
			if mapped := translate(err); mapped != nil {
				return mapped
			}
			return fmt.Errorf("failed to update project: %w", err)
		}
		if err := requireRow(result); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM project_knowledge WHERE project_id = ?`, proj.ID); err != nil {
			return fmt.Errorf("failed to clear project knowledge: %w", err)
		}
		return linkKnowledge(ctx, tx, "project_knowledge", "project_id", tenantID, proj.ID, proj.KnowledgeIDs)
	})
}

// Delete removes a project. Projects with allocations fail with a foreign key violation.
func (r *ProjectRepository) Delete(ctx context.Context, tenantID, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ? AND tenant_id = ?`, id, tenantID)
	if err != nil {
		if mapped := translate(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return requireRow(result)
}

// List returns a page of projects ordered by name and the total count
func (r *ProjectRepository) List(ctx context.Context, tenantID string, opts project.ListOptions) ([]project.Project, int, error) {
	where := ` WHERE p.tenant_id = ?`
	args := []interface{}{tenantID}
	if opts.ClientID != "" {
		where += ` AND p.client_id = ?`
		args = append(args, opts.ClientID)
	}
	if opts.DealStatus != "" {
		where += ` AND p.deal_status = ?`
		args = append(args, opts.DealStatus)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects p`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count projects: %w", err)
	}

	query := `SELECT ` + projectColumns + projectFrom + where + ` ORDER BY p.name, p.id`
	query, args = paginate(query, args, opts.Limit, opts.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	var projects []project.Project
	for rows.Next() {
		proj, err := scanProject(rows)
		if err != nil {
			rows.Close()
			return nil, 0, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *proj)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, 0, fmt.Errorf("error iterating project rows: %w", err)
	}
	rows.Close()

	for i := range projects {
		ids, err := knowledgeIDs(ctx, r.db, "project_knowledge", "project_id", projects[i].ID)
		if err != nil {
			return nil, 0, err
		}
		projects[i].KnowledgeIDs = ids
	}
	return projects, total, nil
}

func scanProject(row rowScanner) (*project.Project, error) {
	var proj project.Project
	var start, end string
	if err := row.Scan(
		&proj.ID, &proj.TenantID, &proj.Code, &proj.Name, &proj.ClientID, &proj.ClientName, &proj.Currency,
		&proj.ContractOwner, &start, &end, &proj.DealStatus, &proj.Billable,
		&proj.EngagementManagerEmail, &proj.Note, &proj.CreatedAt, &proj.UpdatedAt,
	); err != nil {
		return nil, err
	}
	var err error
	if proj.StartDate, err = parseDate(start); err != nil {
		return nil, err
	}
	if proj.EndDate, err = parseDate(end); err != nil {
		return nil, err
	}
	return &proj, nil
}
