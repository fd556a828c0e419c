package knowledge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/staffplan/internal/domain/activity"
	"github.com/rpggio/staffplan/internal/repository"
)

// Service handles knowledge tag operations.
type Service struct {
	repo       Repository
	activities activity.Repository
	logger     *slog.Logger
}

// NewService creates a new knowledge service. activities may be nil.
func NewService(repo Repository, activities activity.Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, activities: activities, logger: logger}
}

// CreateRequest defines knowledge creation inputs.
type CreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Create stores a new knowledge tag.
func (s *Service) Create(ctx context.Context, tenantID string, req CreateRequest) (*Knowledge, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	k := &Knowledge{
		ID:          uuid.NewString(),
		TenantID:    tenantID,
		Name:        name,
		Description: req.Description,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.Create(ctx, tenantID, k); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("creating knowledge: %w", err)
	}
	activity.Record(ctx, s.activities, s.logger, tenantID, activity.EntityKnowledge, k.ID, activity.TypeCreated, map[string]string{"name": k.Name})
	return k, nil
}

// List returns every knowledge tag ordered by name.
func (s *Service) List(ctx context.Context, tenantID string) ([]Knowledge, error) {
	items, err := s.repo.List(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("listing knowledge: %w", err)
	}
	if items == nil {
		items = []Knowledge{}
	}
	return items, nil
}

// Delete removes an unreferenced knowledge tag.
func (s *Service) Delete(ctx context.Context, tenantID, id string) error {
	if err := s.repo.Delete(ctx, tenantID, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return ErrKnowledgeNotFound
		case errors.Is(err, repository.ErrForeignKeyViolation):
			return ErrInUse
		}
		return fmt.Errorf("deleting knowledge: %w", err)
	}
	activity.Record(ctx, s.activities, s.logger, tenantID, activity.EntityKnowledge, id, activity.TypeDeleted, nil)
	return nil
}
