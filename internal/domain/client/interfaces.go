package client

import (
	"context"

	"github.com/rpggio/staffplan/internal/domain/activity"
)

// Repository provides persistence for clients.
type Repository interface {
	Create(ctx context.Context, tenantID string, c *Client) error
	Get(ctx context.Context, tenantID, id string) (*Client, error)
	Update(ctx context.Context, tenantID string, c *Client) error
	SoftDelete(ctx context.Context, tenantID, id string) error
	List(ctx context.Context, tenantID string, opts ListOptions) ([]Client, int, error)
}

// ActivityRepository records client changes.
type ActivityRepository = activity.Repository
