package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/staffplan/internal/domain/activity"
	"github.com/rpggio/staffplan/internal/planning"
	"github.com/rpggio/staffplan/internal/repository"
)

// Service handles employee operations.
type Service struct {
	repo       Repository
	activities ActivityRepository
	logger     *slog.Logger
}

// NewService creates a new employee service. activities may be nil.
func NewService(repo Repository, activities ActivityRepository, logger *slog.Logger) *Service {
	return &Service{repo: repo, activities: activities, logger: logger}
}

// CreateRequest defines employee creation inputs.
type CreateRequest struct {
	GivenName     string        `json:"given_name"`
	Surname       string        `json:"surname"`
	CompanyEmail  string        `json:"company_email"`
	PersonalEmail string        `json:"personal_email"`
	Citizenship   string        `json:"citizenship"`
	TaxResidence  string        `json:"tax_residence"`
	Location      string        `json:"location"`
	MobileNumber  string        `json:"mobile_number"`
	HomeAddress   string        `json:"home_address"`
	BirthDate     planning.Date `json:"birth_date"`
	IsActive      *bool         `json:"is_active"`
	KnowledgeIDs  []string      `json:"knowledge_ids"`
}

// UpdateRequest changes the non-nil fields of an employee.
type UpdateRequest struct {
	ID            string         `json:"id"`
	GivenName     *string        `json:"given_name"`
	Surname       *string        `json:"surname"`
	CompanyEmail  *string        `json:"company_email"`
	PersonalEmail *string        `json:"personal_email"`
	Citizenship   *string        `json:"citizenship"`
	TaxResidence  *string        `json:"tax_residence"`
	Location      *string        `json:"location"`
	MobileNumber  *string        `json:"mobile_number"`
	HomeAddress   *string        `json:"home_address"`
	BirthDate     *planning.Date `json:"birth_date"`
	IsActive      *bool          `json:"is_active"`
	KnowledgeIDs  []string       `json:"knowledge_ids"`
}

// Create validates and stores a new employee.
func (s *Service) Create(ctx context.Context, tenantID string, req CreateRequest) (*Employee, error) {
	now := time.Now()
	emp := &Employee{
		ID:            uuid.NewString(),
		TenantID:      tenantID,
		GivenName:     strings.TrimSpace(req.GivenName),
		Surname:       strings.TrimSpace(req.Surname),
		CompanyEmail:  strings.TrimSpace(req.CompanyEmail),
		PersonalEmail: strings.TrimSpace(req.PersonalEmail),
		Citizenship:   req.Citizenship,
		TaxResidence:  req.TaxResidence,
		Location:      req.Location,
		MobileNumber:  req.MobileNumber,
		HomeAddress:   req.HomeAddress,
		BirthDate:     req.BirthDate,
		IsActive:      req.IsActive == nil || *req.IsActive,
		KnowledgeIDs:  normalizeIDs(req.KnowledgeIDs),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := validate(emp); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, tenantID, emp); err != nil {
		return nil, translate(err, "creating employee")
	}
	activity.Record(ctx, s.activities, s.logger, tenantID, activity.EntityEmployee, emp.ID, activity.TypeCreated, map[string]string{"name": emp.DisplayName()})
	return emp, nil
}

// Get fetches an employee by ID.
func (s *Service) Get(ctx context.Context, tenantID, id string) (*Employee, error) {
	emp, err := s.repo.Get(ctx, tenantID, id)
	if err != nil {
		return nil, translate(err, "getting employee")
	}
	return emp, nil
}

// Update applies the non-nil fields of req.
func (s *Service) Update(ctx context.Context, tenantID string, req UpdateRequest) (*Employee, error) {
	if strings.TrimSpace(req.ID) == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	current, err := s.Get(ctx, tenantID, req.ID)
	if err != nil {
		return nil, err
	}

	updated := *current
	setString(&updated.GivenName, req.GivenName)
	setString(&updated.Surname, req.Surname)
	setString(&updated.CompanyEmail, req.CompanyEmail)
	setString(&updated.PersonalEmail, req.PersonalEmail)
	setString(&updated.Citizenship, req.Citizenship)
	setString(&updated.TaxResidence, req.TaxResidence)
	setString(&updated.Location, req.Location)
	setString(&updated.MobileNumber, req.MobileNumber)
	setString(&updated.HomeAddress, req.HomeAddress)
	if req.BirthDate != nil {
		updated.BirthDate = *req.BirthDate
	}
	if req.IsActive != nil {
		updated.IsActive = *req.IsActive
	}
	if req.KnowledgeIDs != nil {
		updated.KnowledgeIDs = normalizeIDs(req.KnowledgeIDs)
	}
	if err := validate(&updated); err != nil {
		return nil, err
	}
	updated.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, tenantID, &updated); err != nil {
		return nil, translate(err, "updating employee")
	}
	activity.Record(ctx, s.activities, s.logger, tenantID, activity.EntityEmployee, updated.ID, activity.TypeUpdated, nil)
	return &updated, nil
}

// Delete soft-deletes an employee. Their allocations are kept.
func (s *Service) Delete(ctx context.Context, tenantID, id string) error {
	if err := s.repo.SoftDelete(ctx, tenantID, id); err != nil {
		return translate(err, "deleting employee")
	}
	activity.Record(ctx, s.activities, s.logger, tenantID, activity.EntityEmployee, id, activity.TypeDeleted, nil)
	return nil
}

// List returns a page of employees ordered by surname.
func (s *Service) List(ctx context.Context, tenantID string, opts ListOptions) (*ListResult, error) {
	page := repository.Page{Limit: opts.Limit, Offset: opts.Offset}.Normalize()
	opts.Limit, opts.Offset = page.Limit, page.Offset

	items, total, err := s.repo.List(ctx, tenantID, opts)
	if err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}
	if items == nil {
		items = []Employee{}
	}
	return &ListResult{Items: items, Total: total}, nil
}

// Search runs a full-text query over names and emails.
func (s *Service) Search(ctx context.Context, tenantID, query string, limit int) ([]Employee, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", ErrInvalidInput)
	}
	limit = repository.Page{Limit: limit}.Normalize().Limit

	results, err := s.repo.Search(ctx, tenantID, query, limit)
	if err != nil {
		return nil, fmt.Errorf("searching employees: %w", err)
	}
	if results == nil {
		results = []Employee{}
	}
	return results, nil
}

func translate(err error, op string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrEmployeeNotFound
	case errors.Is(err, repository.ErrForeignKeyViolation):
		return ErrUnknownKnowledge
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}
