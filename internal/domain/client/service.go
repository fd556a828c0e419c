package client

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

// Service handles client operations.
type Service struct {
	repo       Repository
	activities ActivityRepository
	logger     *slog.Logger
}

// NewService creates a new client service. activities may be nil.
func NewService(repo Repository, activities ActivityRepository, logger *slog.Logger) *Service {
	return &Service{repo: repo, activities: activities, logger: logger}
}

// CreateRequest defines client creation inputs.
type CreateRequest struct {
	Name        string `json:"name"`
	Code        string `json:"client_code"`
	Address     string `json:"address"`
	PostalCode  string `json:"postal_code"`
	CountryCode string `json:"country_code"`
	IsActive    *bool  `json:"is_active"`
}

// UpdateRequest changes the non-nil fields of a client.
type UpdateRequest struct {
	ID          string  `json:"id"`
	Name        *string `json:"name"`
	Code        *string `json:"client_code"`
	Address     *string `json:"address"`
	PostalCode  *string `json:"postal_code"`
	CountryCode *string `json:"country_code"`
	IsActive    *bool   `json:"is_active"`
}

// Create validates and stores a new client.
func (s *Service) Create(ctx context.Context, tenantID string, req CreateRequest) (*Client, error) {
	now := time.Now()
	c := &Client{
		ID:          uuid.NewString(),
		TenantID:    tenantID,
		Name:        strings.TrimSpace(req.Name),
		Code:        strings.TrimSpace(req.Code),
		Address:     req.Address,
		PostalCode:  req.PostalCode,
		CountryCode: strings.ToUpper(strings.TrimSpace(req.CountryCode)),
		IsActive:    req.IsActive == nil || *req.IsActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := validate(c); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, tenantID, c); err != nil {
		return nil, translate(err, "creating client")
	}
	activity.Record(ctx, s.activities, s.logger, tenantID, activity.EntityClient, c.ID, activity.TypeCreated, map[string]string{"code": c.Code})
	return c, nil
}

// Get fetches a client by ID.
func (s *Service) Get(ctx context.Context, tenantID, id string) (*Client, error) {
	c, err := s.repo.Get(ctx, tenantID, id)
	if err != nil {
		return nil, translate(err, "getting client")
	}
	return c, nil
}

// Update applies the non-nil fields of req.
func (s *Service) Update(ctx context.Context, tenantID string, req UpdateRequest) (*Client, error) {
	if strings.TrimSpace(req.ID) == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	current, err := s.Get(ctx, tenantID, req.ID)
	if err != nil {
		return nil, err
	}

	updated := *current
	if req.Name != nil {
		updated.Name = strings.TrimSpace(*req.Name)
	}
	if req.Code != nil {
		updated.Code = strings.TrimSpace(*req.Code)
	}
	if req.Address != nil {
		updated.Address = *req.Address
	}
	if req.PostalCode != nil {
		updated.PostalCode = *req.PostalCode
	}
	if req.CountryCode != nil {
		updated.CountryCode = strings.ToUpper(strings.TrimSpace(*req.CountryCode))
	}
	if req.IsActive != nil {
		updated.IsActive = *req.IsActive
	}
	if err := validate(&updated); err != nil {
		return nil, err
	}
	updated.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, tenantID, &updated); err != nil {
		return nil, translate(err, "updating client")
	}
	activity.Record(ctx, s.activities, s.logger, tenantID, activity.EntityClient, updated.ID, activity.TypeUpdated, nil)
	return &updated, nil
}

// Delete soft-deletes a client.
func (s *Service) Delete(ctx context.Context, tenantID, id string) error {
	if err := s.repo.SoftDelete(ctx, tenantID, id); err != nil {
		return translate(err, "deleting client")
	}
	activity.Record(ctx, s.activities, s.logger, tenantID, activity.EntityClient, id, activity.TypeDeleted, nil)
	return nil
}

// List returns a page of clients ordered by name.
func (s *Service) List(ctx context.Context, tenantID string, opts ListOptions) (*ListResult, error) {
	page := repository.Page{Limit: opts.Limit, Offset: opts.Offset}.Normalize()
	opts.Limit, opts.Offset = page.Limit, page.Offset

	items, total, err := s.repo.List(ctx, tenantID, opts)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	if items == nil {
		items = []Client{}
	}
	return &ListResult{Items: items, Total: total}, nil
}

func validate(c *Client) error {
	if c.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if c.Code == "" || len(c.Code) > MaxCodeLength {
		return fmt.Errorf("%w: client_code must be 1-%d characters", ErrInvalidInput, MaxCodeLength)
	}
	if len(c.CountryCode) != 2 || !isLetters(c.CountryCode) {
		return fmt.Errorf("%w: country_code must be two letters", ErrInvalidInput)
	}
	return nil
}

func isLetters(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func translate(err error, op string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrClientNotFound
	case errors.Is(err, repository.ErrUniqueViolation):
		return ErrDuplicateCode
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
