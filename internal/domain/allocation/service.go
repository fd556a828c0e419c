package allocation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/staffplan/internal/domain/activity"
	"github.com/rpggio/staffplan/internal/domain/employee"
	"github.com/rpggio/staffplan/internal/domain/project"
	"github.com/rpggio/staffplan/internal/planning"
	"github.com/rpggio/staffplan/internal/repository"
)

// Service handles allocation operations.
type Service struct {
	repo       Repository
	employees  EmployeeRepository
	projects   ProjectRepository
	activities ActivityRepository
	logger     *slog.Logger
}

// NewService creates a new allocation service. activities may be nil.
func NewService(repo Repository, employees EmployeeRepository, projects ProjectRepository, activities ActivityRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:       repo,
		employees:  employees,
		projects:   projects,
		activities: activities,
		logger:     logger,
	}
}

// CreateRequest defines allocation creation inputs.
type CreateRequest struct {
	EmployeeID string        `json:"employee_id"`
	ProjectID  string        `json:"project_id"`
	StartDate  planning.Date `json:"start_date"`
	EndDate    planning.Date `json:"end_date"`
	Percentage int           `json:"percentage"`
}

// UpdateRequest changes the non-nil fields of an allocation. Version must
// be the version the caller last read.
type UpdateRequest struct {
	ID         string         `json:"id"`
	Version    int64          `json:"version"`
	EmployeeID *string        `json:"employee_id"`
	ProjectID  *string        `json:"project_id"`
	StartDate  *planning.Date `json:"start_date"`
	EndDate    *planning.Date `json:"end_date"`
	Percentage *int           `json:"percentage"`
}

// Create validates and stores a new allocation.
func (s *Service) Create(ctx context.Context, tenantID string, req CreateRequest) (*Allocation, error) {
	now := time.Now()
	a := &Allocation{
		ID:         uuid.NewString(),
		TenantID:   tenantID,
		EmployeeID: strings.TrimSpace(req.EmployeeID),
		ProjectID:  strings.TrimSpace(req.ProjectID),
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Percentage: req.Percentage,
		Version:    1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.check(ctx, tenantID, a); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, tenantID, a); err != nil {
		return nil, translate(err, "creating allocation")
	}
	s.logger.Debug("allocation created", "id", a.ID, "employee", a.EmployeeID, "project", a.ProjectID)
	activity.Record(ctx, s.activities, s.logger, tenantID, activity.EntityAllocation, a.ID, activity.TypeCreated, a.Planning())
	return a, nil
}

// Get fetches an allocation by ID, including soft-deleted ones.
func (s *Service) Get(ctx context.Context, tenantID, id string) (*Allocation, error) {
	a, err := s.repo.Get(ctx, tenantID, id)
	if err != nil {
		return nil, translate(err, "getting allocation")
	}
	return a, nil
}

// Update applies the non-nil fields of req if the stored version still
// matches req.Version.
func (s *Service) Update(ctx context.Context, tenantID string, req UpdateRequest) (*Allocation, error) {
	if strings.TrimSpace(req.ID) == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	if req.Version <= 0 {
		return nil, fmt.Errorf("%w: version is required", ErrInvalidInput)
	}
	current, err := s.Get(ctx, tenantID, req.ID)
	if err != nil {
		return nil, err
	}
	if current.IsDeleted {
		return nil, ErrAllocationNotFound
	}
	if current.Version != req.Version {
		s.conflict(ctx, tenantID, current, req.Version)
		return nil, ErrConflict
	}

	updated := *current
	if req.EmployeeID != nil {
		updated.EmployeeID = strings.TrimSpace(*req.EmployeeID)
	}
	if req.ProjectID != nil {
		updated.ProjectID = strings.TrimSpace(*req.ProjectID)
	}
	if req.StartDate != nil {
		updated.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		updated.EndDate = *req.EndDate
	}
	if req.Percentage != nil {
		updated.Percentage = *req.Percentage
	}
	if err := s.check(ctx, tenantID, &updated); err != nil {
		return nil, err
	}
	updated.Version = current.Version + 1
	updated.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, tenantID, &updated, current.Version); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			s.conflict(ctx, tenantID, current, req.Version)
			return nil, ErrConflict
		}
		return nil, translate(err, "updating allocation")
	}
	activity.Record(ctx, s.activities, s.logger, tenantID, activity.EntityAllocation, updated.ID, activity.TypeUpdated, updated.Planning())
	return &updated, nil
}

// Delete soft-deletes an allocation. It stays readable but is excluded
// from listings and computations.
func (s *Service) Delete(ctx context.Context, tenantID, id string) error {
	if err := s.repo.SoftDelete(ctx, tenantID, id); err != nil {
		return translate(err, "deleting allocation")
	}
	activity.Record(ctx, s.activities, s.logger, tenantID, activity.EntityAllocation, id, activity.TypeDeleted, nil)
	return nil
}

// List returns a page of allocations, newest first.
func (s *Service) List(ctx context.Context, tenantID string, opts ListOptions) (*ListResult, error) {
	if opts.Range != nil {
		if err := opts.Range.Validate(); err != nil {
			return nil, err
		}
	}
	page := repository.Page{Limit: opts.Limit, Offset: opts.Offset}.Normalize()
	opts.Limit, opts.Offset = page.Limit, page.Offset

	items, total, err := s.repo.List(ctx, tenantID, opts)
	if err != nil {
		return nil, fmt.Errorf("listing allocations: %w", err)
	}
	if items == nil {
		items = []Allocation{}
	}
	return &ListResult{Items: items, Total: total}, nil
}

// check validates the allocation and its references.
func (s *Service) check(ctx context.Context, tenantID string, a *Allocation) error {
	if a.EmployeeID == "" {
		return fmt.Errorf("%w: employee_id is required", ErrInvalidInput)
	}
	if a.ProjectID == "" {
		return fmt.Errorf("%w: project_id is required", ErrInvalidInput)
	}
	if err := planning.ValidateAllocation(a.Planning()); err != nil {
		return err
	}

	if _, err := s.employees.Get(ctx, tenantID, a.EmployeeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("loading employee: %w", err)
	}
	proj, err := s.projects.Get(ctx, tenantID, a.ProjectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return project.ErrProjectNotFound
		}
		return fmt.Errorf("loading project: %w", err)
	}
	if !proj.Permits(a.Planning().Interval()) {
		return fmt.Errorf("%w: project %s runs %s..%s", ErrOutsideProjectWindow, proj.Code, proj.StartDate, proj.EndDate)
	}
	return nil
}

func (s *Service) conflict(ctx context.Context, tenantID string, current *Allocation, expected int64) {
	s.logger.Info("allocation version conflict", "id", current.ID, "expected", expected, "actual", current.Version)
	activity.Record(ctx, s.activities, s.logger, tenantID, activity.EntityAllocation, current.ID, activity.TypeConflict,
		map[string]int64{"expected_version": expected, "current_version": current.Version})
}

func translate(err error, op string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrAllocationNotFound
	case errors.Is(err, repository.ErrForeignKeyViolation):
		return fmt.Errorf("%w: unknown employee or project", ErrInvalidInput)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
