package knowledge

import "context"

// Repository provides persistence for knowledge tags.
type Repository interface {
	Create(ctx context.Context, tenantID string, k *Knowledge) error
	List(ctx context.Context, tenantID string) ([]Knowledge, error)
	Delete(ctx context.Context, tenantID, id string) error
}
