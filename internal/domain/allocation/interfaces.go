package allocation

import (
	"context"

	"github.com/rpggio/staffplan/internal/domain/activity"
	"github.com/rpggio/staffplan/internal/domain/employee"
	"github.com/rpggio/staffplan/internal/domain/project"
)

// Repository provides persistence for allocations.
type Repository interface {
	Create(ctx context.Context, tenantID string, a *Allocation) error
	Get(ctx context.Context, tenantID, id string) (*Allocation, error)
	Update(ctx context.Context, tenantID string, a *Allocation, expectedVersion int64) error
	SoftDelete(ctx context.Context, tenantID, id string) error
	List(ctx context.Context, tenantID string, opts ListOptions) ([]Allocation, int, error)
}

// EmployeeRepository resolves allocated employees.
type EmployeeRepository interface {
	Get(ctx context.Context, tenantID, id string) (*employee.Employee, error)
}

// ProjectRepository resolves allocated projects.
type ProjectRepository interface {
	Get(ctx context.Context, tenantID, id string) (*project.Project, error)
}

// ActivityRepository records allocation changes.
type ActivityRepository = activity.Repository
