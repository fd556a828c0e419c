package employee

import (
	"context"

	"github.com/rpggio/staffplan/internal/domain/activity"
)

// Repository provides persistence for employees.
type Repository interface {
	Create(ctx context.Context, tenantID string, emp *Employee) error
	Get(ctx context.Context, tenantID, id string) (*Employee, error)
	Update(ctx context.Context, tenantID string, emp *Employee) error
	SoftDelete(ctx context.Context, tenantID, id string) error
	List(ctx context.Context, tenantID string, opts ListOptions) ([]Employee, int, error)
	Search(ctx context.Context, tenantID, query string, limit int) ([]Employee, error)
}

// ActivityRepository records employee changes.
type ActivityRepository = activity.Repository
