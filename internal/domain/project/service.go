package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/staffplan/internal/domain/activity"
	"github.com/rpggio/staffplan/internal/planning"
	"github.com/rpggio/staffplan/internal/repository"
)

// Service handles project operations.
type Service struct {
	repo       Repository
	clients    ClientRepository
	activities ActivityRepository
	logger     *slog.Logger
}

// NewService creates a new project service. activities may be nil.
func NewService(repo Repository, clients ClientRepository, activities ActivityRepository, logger *slog.Logger) *Service {
	return &Service{repo: repo, clients: clients, activities: activities, logger: logger}
}

// CreateRequest defines project creation inputs.
type CreateRequest struct {
	Code                   string        `json:"code"`
	Name                   string        `json:"name"`
	ClientID               string        `json:"client_id"`
	Currency               string        `json:"currency"`
	ContractOwner          string        `json:"contract_owner"`
	StartDate              planning.Date `json:"start_date"`
	EndDate                planning.Date `json:"end_date"`
	DealStatus             DealStatus    `json:"deal_status"`
	Billable               bool          `json:"billable"`
	EngagementManagerEmail string        `json:"engagement_manager_email"`
	Note                   string        `json:"note"`
	KnowledgeIDs           []string      `json:"knowledge_ids"`
}

// UpdateRequest changes the non-nil fields of a project.
type UpdateRequest struct {
	ID                     string         `json:"id"`
	Code                   *string        `json:"code"`
	Name                   *string        `json:"name"`
	ClientID               *string        `json:"client_id"`
	Currency               *string        `json:"currency"`
	ContractOwner          *string        `json:"contract_owner"`
	StartDate              *planning.Date `json:"start_date"`
	EndDate                *planning.Date `json:"end_date"`
	DealStatus             *DealStatus    `json:"deal_status"`
	Billable               *bool          `json:"billable"`
	EngagementManagerEmail *string        `json:"engagement_manager_email"`
	Note                   *string        `json:"note"`
	KnowledgeIDs           []string       `json:"knowledge_ids"`
}

// Create validates and stores a new project.
func (s *Service) Create(ctx context.Context, tenantID string, req CreateRequest) (*Project, error) {
	status := req.DealStatus
	if status == "" {
		status = DealPending
	}
	now := time.Now()
	proj := &Project{
		ID:                     uuid.NewString(),
		TenantID:               tenantID,
		Code:                   strings.TrimSpace(req.Code),
		Name:                   strings.TrimSpace(req.Name),
		ClientID:               strings.TrimSpace(req.ClientID),
		Currency:               strings.ToUpper(strings.TrimSpace(req.Currency)),
		ContractOwner:          strings.TrimSpace(req.ContractOwner),
		StartDate:              req.StartDate,
		EndDate:                req.EndDate,
		DealStatus:             status,
		Billable:               req.Billable,
		EngagementManagerEmail: strings.TrimSpace(req.EngagementManagerEmail),
		Note:                   req.Note,
		KnowledgeIDs:           dedupe(req.KnowledgeIDs),
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	if err := s.check(ctx, tenantID, proj); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, tenantID, proj); err != nil {
		return nil, translate(err, "creating project")
	}
	activity.Record(ctx, s.activities, s.logger, tenantID, activity.EntityProject, proj.ID, activity.TypeCreated, map[string]string{"code": proj.Code})
	return proj, nil
}

// Get fetches a project by ID.
func (s *Service) Get(ctx context.Context, tenantID, id string) (*Project, error) {
	proj, err := s.repo.Get(ctx, tenantID, id)
	if err != nil {
		return nil, translate(err, "getting project")
	}
	return proj, nil
}

// Update applies the non-nil fields of req.
func (s *Service) Update(ctx context.Context, tenantID string, req UpdateRequest) (*Project, error) {
	if strings.TrimSpace(req.ID) == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	current, err := s.Get(ctx, tenantID, req.ID)
	if err != nil {
		return nil, err
	}

	updated := *current
	trimInto(&updated.Code, req.Code)
	trimInto(&updated.Name, req.Name)
	trimInto(&updated.ClientID, req.ClientID)
	trimInto(&updated.ContractOwner, req.ContractOwner)
	trimInto(&updated.EngagementManagerEmail, req.EngagementManagerEmail)
	if req.Currency != nil {
		updated.Currency = strings.ToUpper(strings.TrimSpace(*req.Currency))
	}
	if req.StartDate != nil {
		updated.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		updated.EndDate = *req.EndDate
	}
	if req.DealStatus != nil {
		updated.DealStatus = *req.DealStatus
	}
	if req.Billable != nil {
		updated.Billable = *req.Billable
	}
	if req.Note != nil {
		updated.Note = *req.Note
	}
	if req.KnowledgeIDs != nil {
		updated.KnowledgeIDs = dedupe(req.KnowledgeIDs)
	}
	if err := s.check(ctx, tenantID, &updated); err != nil {
		return nil, err
	}
	updated.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, tenantID, &updated); err != nil {
		return nil, translate(err, "updating project")
	}
	activity.Record(ctx, s.activities, s.logger, tenantID, activity.EntityProject, updated.ID, activity.TypeUpdated, nil)
	return &updated, nil
}

// Delete removes a project that has no allocations.
func (s *Service) Delete(ctx context.Context, tenantID, id string) error {
	if err := s.repo.Delete(ctx, tenantID, id); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return ErrInUse
		}
		return translate(err, "deleting project")
	}
	activity.Record(ctx, s.activities, s.logger, tenantID, activity.EntityProject, id, activity.TypeDeleted, nil)
	return nil
}

// List returns a page of projects ordered by name.
func (s *Service) List(ctx context.Context, tenantID string, opts ListOptions) (*ListResult, error) {
	if opts.DealStatus != "" && !opts.DealStatus.Valid() {
		return nil, fmt.Errorf("%w: unknown deal_status %q", ErrInvalidInput, opts.DealStatus)
	}
	page := repository.Page{Limit: opts.Limit, Offset: opts.Offset}.Normalize()
	opts.Limit, opts.Offset = page.Limit, page.Offset

	items, total, err := s.repo.List(ctx, tenantID, opts)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	if items == nil {
		items = []Project{}
	}
	return &ListResult{Items: items, Total: total}, nil
}

// ListByClient returns a page of the client's projects.
func (s *Service) ListByClient(ctx context.Context, tenantID, clientID string, opts ListOptions) (*ListResult, error) {
	if strings.TrimSpace(clientID) == "" {
		return nil, fmt.Errorf("%w: client_id is required", ErrInvalidInput)
	}
	opts.ClientID = clientID
	return s.List(ctx, tenantID, opts)
}

func (s *Service) check(ctx context.Context, tenantID string, p *Project) error {
	if err := validate(p); err != nil {
		return err
	}
	if _, err := s.clients.Get(ctx, tenantID, p.ClientID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrClientNotFound
		}
		return fmt.Errorf("loading client: %w", err)
	}
	return nil
}

func validate(p *Project) error {
	switch {
	case p.Code == "":
		return fmt.Errorf("%w: code is required", ErrInvalidInput)
	case p.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	case p.ClientID == "":
		return fmt.Errorf("%w: client_id is required", ErrInvalidInput)
	case p.ContractOwner == "":
		return fmt.Errorf("%w: contract_owner is required", ErrInvalidInput)
	case !p.DealStatus.Valid():
		return fmt.Errorf("%w: unknown deal_status %q", ErrInvalidInput, p.DealStatus)
	}
	if _, err := mail.ParseAddress(p.EngagementManagerEmail); err != nil {
		return fmt.Errorf("%w: engagement_manager_email is not an email address", ErrInvalidInput)
	}
	if w := p.Window(); w != nil {
		if err := w.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}
	return nil
}

func translate(err error, op string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrProjectNotFound
	case errors.Is(err, repository.ErrForeignKeyViolation):
		return ErrUnknownKnowledge
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func trimInto(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
