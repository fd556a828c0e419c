package mocks

import (
	"context"

	"github.com/rpggio/staffplan/internal/domain/activity"
	"github.com/rpggio/staffplan/internal/domain/allocation"
	"github.com/rpggio/staffplan/internal/domain/client"
	"github.com/rpggio/staffplan/internal/domain/employee"
	"github.com/rpggio/staffplan/internal/domain/knowledge"
	"github.com/rpggio/staffplan/internal/domain/project"
	"github.com/stretchr/testify/mock"
)

// EmployeeRepository is a mock for employee.Repository.
type EmployeeRepository struct {
	mock.Mock
}

func (m *EmployeeRepository) Create(ctx context.Context, tenantID string, emp *employee.Employee) error {
	args := m.Called(ctx, tenantID, emp)
	return args.Error(0)
}

func (m *EmployeeRepository) Get(ctx context.Context, tenantID, id string) (*employee.Employee, error) {
	args := m.Called(ctx, tenantID, id)
	if emp, ok := args.Get(0).(*employee.Employee); ok {
		return emp, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EmployeeRepository) Update(ctx context.Context, tenantID string, emp *employee.Employee) error {
	args := m.Called(ctx, tenantID, emp)
	return args.Error(0)
}

func (m *EmployeeRepository) SoftDelete(ctx context.Context, tenantID, id string) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *EmployeeRepository) List(ctx context.Context, tenantID string, opts employee.ListOptions) ([]employee.Employee, int, error) {
	args := m.Called(ctx, tenantID, opts)
	if list, ok := args.Get(0).([]employee.Employee); ok {
		return list, args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

func (m *EmployeeRepository) Search(ctx context.Context, tenantID, query string, limit int) ([]employee.Employee, error) {
	args := m.Called(ctx, tenantID, query, limit)
	if list, ok := args.Get(0).([]employee.Employee); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ClientRepository is a mock for client.Repository.
type ClientRepository struct {
	mock.Mock
}

func (m *ClientRepository) Create(ctx context.Context, tenantID string, c *client.Client) error {
	args := m.Called(ctx, tenantID, c)
	return args.Error(0)
}

func (m *ClientRepository) Get(ctx context.Context, tenantID, id string) (*client.Client, error) {
	args := m.Called(ctx, tenantID, id)
	if c, ok := args.Get(0).(*client.Client); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ClientRepository) Update(ctx context.Context, tenantID string, c *client.Client) error {
	args := m.Called(ctx, tenantID, c)
	return args.Error(0)
}

func (m *ClientRepository) SoftDelete(ctx context.Context, tenantID, id string) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *ClientRepository) List(ctx context.Context, tenantID string, opts client.ListOptions) ([]client.Client, int, error) {
	args := m.Called(ctx, tenantID, opts)
	if list, ok := args.Get(0).([]client.Client); ok {
		return list, args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

// KnowledgeRepository is a mock for knowledge.Repository.
type KnowledgeRepository struct {
	mock.Mock
}

func (m *KnowledgeRepository) Create(ctx context.Context, tenantID string, k *knowledge.Knowledge) error {
	args := m.Called(ctx, tenantID, k)
	return args.Error(0)
}

func (m *KnowledgeRepository) List(ctx context.Context, tenantID string) ([]knowledge.Knowledge, error) {
	args := m.Called(ctx, tenantID)
	if list, ok := args.Get(0).([]knowledge.Knowledge); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *KnowledgeRepository) Delete(ctx context.Context, tenantID, id string) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// ProjectRepository is a mock for project.Repository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, tenantID string, proj *project.Project) error {
	args := m.Called(ctx, tenantID, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Get(ctx context.Context, tenantID, id string) (*project.Project, error) {
	args := m.Called(ctx, tenantID, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Update(ctx context.Context, tenantID string, proj *project.Project) error {
	args := m.Called(ctx, tenantID, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Delete(ctx context.Context, tenantID, id string) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *ProjectRepository) List(ctx context.Context, tenantID string, opts project.ListOptions) ([]project.Project, int, error) {
	args := m.Called(ctx, tenantID, opts)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

// AllocationRepository is a mock for allocation.Repository.
type AllocationRepository struct {
	mock.Mock
}

func (m *AllocationRepository) Create(ctx context.Context, tenantID string, a *allocation.Allocation) error {
	args := m.Called(ctx, tenantID, a)
	return args.Error(0)
}

func (m *AllocationRepository) Get(ctx context.Context, tenantID, id string) (*allocation.Allocation, error) {
	args := m.Called(ctx, tenantID, id)
	if a, ok := args.Get(0).(*allocation.Allocation); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AllocationRepository) Update(ctx context.Context, tenantID string, a *allocation.Allocation, expectedVersion int64) error {
	args := m.Called(ctx, tenantID, a, expectedVersion)
	return args.Error(0)
}

func (m *AllocationRepository) SoftDelete(ctx context.Context, tenantID, id string) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *AllocationRepository) List(ctx context.Context, tenantID string, opts allocation.ListOptions) ([]allocation.Allocation, int, error) {
	args := m.Called(ctx, tenantID, opts)
	if list, ok := args.Get(0).([]allocation.Allocation); ok {
		return list, args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, tenantID string, entry *activity.ActivityEntry) error {
	args := m.Called(ctx, tenantID, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, tenantID string, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	args := m.Called(ctx, tenantID, opts)
	if list, ok := args.Get(0).([]activity.ActivityEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
