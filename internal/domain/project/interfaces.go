package project

import (
	"context"

	"github.com/rpggio/staffplan/internal/domain/activity"
	"github.com/rpggio/staffplan/internal/domain/client"
)

// Repository provides persistence for projects.
type Repository interface {
	Create(ctx context.Context, tenantID string, proj *Project) error
	Get(ctx context.Context, tenantID, id string) (*Project, error)
	Update(ctx context.Context, tenantID string, proj *Project) error
	Delete(ctx context.Context, tenantID, id string) error
	List(ctx context.Context, tenantID string, opts ListOptions) ([]Project, int, error)
}

// ClientRepository resolves the owning client.
type ClientRepository interface {
	Get(ctx context.Context, tenantID, id string) (*client.Client, error)
}

// ActivityRepository records project changes.
type ActivityRepository = activity.Repository
