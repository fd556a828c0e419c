package staffing

import (
	"context"

	"github.com/rpggio/staffplan/internal/domain/allocation"
	"github.com/rpggio/staffplan/internal/domain/employee"
	"github.com/rpggio/staffplan/internal/domain/project"
)

// AllocationRepository lists allocations. A zero Limit returns every match.
type AllocationRepository interface {
	List(ctx context.Context, tenantID string, opts allocation.ListOptions) ([]allocation.Allocation, int, error)
}

// EmployeeRepository reads employees.
type EmployeeRepository interface {
	Get(ctx context.Context, tenantID, id string) (*employee.Employee, error)
	List(ctx context.Context, tenantID string, opts employee.ListOptions) ([]employee.Employee, int, error)
}

// ProjectRepository reads projects.
type ProjectRepository interface {
	Get(ctx context.Context, tenantID, id string) (*project.Project, error)
}
