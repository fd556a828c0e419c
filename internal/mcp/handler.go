package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rpggio/staffplan/internal/domain/activity"
	"github.com/rpggio/staffplan/internal/domain/allocation"
	"github.com/rpggio/staffplan/internal/domain/client"
	"github.com/rpggio/staffplan/internal/domain/employee"
	"github.com/rpggio/staffplan/internal/domain/knowledge"
	"github.com/rpggio/staffplan/internal/domain/project"
	"github.com/rpggio/staffplan/internal/domain/staffing"
	"github.com/rpggio/staffplan/internal/planning"
)

// EmployeeService defines employee operations needed by MCP.
type EmployeeService interface {
	Create(ctx context.Context, tenantID string, req employee.CreateRequest) (*employee.Employee, error)
	Get(ctx context.Context, tenantID, id string) (*employee.Employee, error)
	Update(ctx context.Context, tenantID string, req employee.UpdateRequest) (*employee.Employee, error)
	Delete(ctx context.Context, tenantID, id string) error
	List(ctx context.Context, tenantID string, opts employee.ListOptions) (*employee.ListResult, error)
	Search(ctx context.Context, tenantID, query string, limit int) ([]employee.Employee, error)
}

// ClientService defines client operations needed by MCP.
type ClientService interface {
	Create(ctx context.Context, tenantID string, req client.CreateRequest) (*client.Client, error)
	Get(ctx context.Context, tenantID, id string) (*client.Client, error)
	Update(ctx context.Context, tenantID string, req client.UpdateRequest) (*client.Client, error)
	Delete(ctx context.Context, tenantID, id string) error
	List(ctx context.Context, tenantID string, opts client.ListOptions) (*client.ListResult, error)
}

// ProjectService defines project operations needed by MCP.
type ProjectService interface {
	Create(ctx context.Context, tenantID string, req project.CreateRequest) (*project.Project, error)
	Get(ctx context.Context, tenantID, id string) (*project.Project, error)
	Update(ctx context.Context, tenantID string, req project.UpdateRequest) (*project.Project, error)
	Delete(ctx context.Context, tenantID, id string) error
	List(ctx context.Context, tenantID string, opts project.ListOptions) (*project.ListResult, error)
	ListByClient(ctx context.Context, tenantID, clientID string, opts project.ListOptions) (*project.ListResult, error)
}

// KnowledgeService defines knowledge operations needed by MCP.
type KnowledgeService interface {
	Create(ctx context.Context, tenantID string, req knowledge.CreateRequest) (*knowledge.Knowledge, error)
	List(ctx context.Context, tenantID string) ([]knowledge.Knowledge, error)
	Delete(ctx context.Context, tenantID, id string) error
}

// AllocationService defines allocation operations needed by MCP.
type AllocationService interface {
	Create(ctx context.Context, tenantID string, req allocation.CreateRequest) (*allocation.Allocation, error)
	Get(ctx context.Context, tenantID, id string) (*allocation.Allocation, error)
	Update(ctx context.Context, tenantID string, req allocation.UpdateRequest) (*allocation.Allocation, error)
	Delete(ctx context.Context, tenantID, id string) error
	List(ctx context.Context, tenantID string, opts allocation.ListOptions) (*allocation.ListResult, error)
}

// StaffingService defines planning views needed by MCP.
type StaffingService interface {
	Overlaps(ctx context.Context, tenantID string, q staffing.OverlapQuery) ([]planning.OverlapWindow, error)
	Workload(ctx context.Context, tenantID string, q staffing.WorkloadQuery) (*staffing.Heatmap, error)
	Calendar(ctx context.Context, tenantID string, q staffing.CalendarQuery) (*staffing.CalendarMonth, error)
	Availability(ctx context.Context, tenantID, employeeID string, r planning.Range) (*staffing.AvailabilityResult, error)
	Suggest(ctx context.Context, tenantID string, q staffing.SuggestQuery) (*staffing.SuggestResult, error)
	Timeline(ctx context.Context, tenantID string, q staffing.TimelineQuery) ([]staffing.TimelineRow, error)
}

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, tenantID string, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Employees   EmployeeService
	Clients     ClientService
	Projects    ProjectService
	Knowledge   KnowledgeService
	Allocations AllocationService
	Staffing    StaffingService
	Activity    ActivityService
}

// Handler dispatches commands to domain services. It backs both the MCP
// tools and the JSON-RPC endpoint.
type Handler struct {
	svc Services
}

// NewHandler creates a new command handler.
func NewHandler(svc Services) *Handler {
	return &Handler{svc: svc}
}

// Handle dispatches one request to the domain services.
func (h *Handler) Handle(ctx context.Context, tenantID, method string, params json.RawMessage) (any, error) {
	result, err := h.dispatch(ctx, tenantID, method, params)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

func (h *Handler) dispatch(ctx context.Context, tenantID, method string, params json.RawMessage) (any, error) {
	switch method {
	// Employees
	case "create_employee":
		var req employee.CreateRequest
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Employees.Create(ctx, tenantID, req)
	case "get_employee":
		id, err := decodeID(params)
		if err != nil {
			return nil, err
		}
		return h.svc.Employees.Get(ctx, tenantID, id)
	case "update_employee":
		var req employee.UpdateRequest
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Employees.Update(ctx, tenantID, req)
	case "delete_employee":
		id, err := decodeID(params)
		if err != nil {
			return nil, err
		}
		if err := h.svc.Employees.Delete(ctx, tenantID, id); err != nil {
			return nil, err
		}
		return StatusResponse{Status: "deleted", ID: id}, nil
	case "list_employees":
		var req ListParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Employees.List(ctx, tenantID, employee.ListOptions{
			ActiveOnly: req.ActiveOnly,
			Limit:      req.Limit,
			Offset:     req.Offset,
		})
	case "search_employees":
		var req SearchEmployeesParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		results, err := h.svc.Employees.Search(ctx, tenantID, req.Query, req.Limit)
		if err != nil {
			return nil, err
		}
		return SearchEmployeesResponse{Query: req.Query, Results: results}, nil

	// Clients
	case "create_client":
		var req client.CreateRequest
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Clients.Create(ctx, tenantID, req)
	case "get_client":
		id, err := decodeID(params)
		if err != nil {
			return nil, err
		}
		return h.svc.Clients.Get(ctx, tenantID, id)
	case "update_client":
		var req client.UpdateRequest
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Clients.Update(ctx, tenantID, req)
	case "delete_client":
		id, err := decodeID(params)
		if err != nil {
			return nil, err
		}
		if err := h.svc.Clients.Delete(ctx, tenantID, id); err != nil {
			return nil, err
		}
		return StatusResponse{Status: "deleted", ID: id}, nil
	case "list_clients":
		var req ListParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Clients.List(ctx, tenantID, client.ListOptions{
			ActiveOnly: req.ActiveOnly,
			Limit:      req.Limit,
			Offset:     req.Offset,
		})

	// Projects
	case "create_project":
		var req project.CreateRequest
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Projects.Create(ctx, tenantID, req)
	case "get_project":
		id, err := decodeID(params)
		if err != nil {
			return nil, err
		}
		return h.svc.Projects.Get(ctx, tenantID, id)
	case "update_project":
		var req project.UpdateRequest
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Projects.Update(ctx, tenantID, req)
	case "delete_project":
		id, err := decodeID(params)
		if err != nil {
			return nil, err
		}
		if err := h.svc.Projects.Delete(ctx, tenantID, id); err != nil {
			return nil, err
		}
		return StatusResponse{Status: "deleted", ID: id}, nil
	case "list_projects":
		var req ListProjectsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Projects.List(ctx, tenantID, project.ListOptions{
			ClientID:   req.ClientID,
			DealStatus: req.DealStatus,
			Limit:      req.Limit,
			Offset:     req.Offset,
		})
	case "list_client_projects":
		var req ListClientProjectsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Projects.ListByClient(ctx, tenantID, req.ClientID, project.ListOptions{
			Limit:  req.Limit,
			Offset: req.Offset,
		})

	// Knowledge
	case "create_knowledge":
		var req knowledge.CreateRequest
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Knowledge.Create(ctx, tenantID, req)
	case "list_knowledge":
		items, err := h.svc.Knowledge.List(ctx, tenantID)
		if err != nil {
			return nil, err
		}
		if items == nil {
			items = []knowledge.Knowledge{}
		}
		return items, nil
	case "delete_knowledge":
		id, err := decodeID(params)
		if err != nil {
			return nil, err
		}
		if err := h.svc.Knowledge.Delete(ctx, tenantID, id); err != nil {
			return nil, err
		}
		return StatusResponse{Status: "deleted", ID: id}, nil

	// Allocations
	case "create_allocation":
		var req allocation.CreateRequest
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Allocations.Create(ctx, tenantID, req)
	case "get_allocation":
		id, err := decodeID(params)
		if err != nil {
			return nil, err
		}
		return h.svc.Allocations.Get(ctx, tenantID, id)
	case "update_allocation":
		var req allocation.UpdateRequest
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Allocations.Update(ctx, tenantID, req)
	case "delete_allocation":
		id, err := decodeID(params)
		if err != nil {
			return nil, err
		}
		if err := h.svc.Allocations.Delete(ctx, tenantID, id); err != nil {
			return nil, err
		}
		return StatusResponse{Status: "deleted", ID: id}, nil
	case "list_allocations":
		var req ListAllocationsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Allocations.List(ctx, tenantID, allocation.ListOptions{
			EmployeeID:     req.EmployeeID,
			ProjectID:      req.ProjectID,
			Range:          optionalRange(req.Start, req.End),
			IncludeDeleted: req.IncludeDeleted,
			Limit:          req.Limit,
			Offset:         req.Offset,
		})

	// Planning views
	case "detect_overlaps":
		var req DetectOverlapsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		windows, err := h.svc.Staffing.Overlaps(ctx, tenantID, staffing.OverlapQuery{
			EmployeeID: req.EmployeeID,
			Range:      optionalRange(req.Start, req.End),
			Threshold:  req.Threshold,
		})
		if err != nil {
			return nil, err
		}
		if windows == nil {
			windows = []planning.OverlapWindow{}
		}
		return OverlapsResponse{Threshold: req.Threshold, Windows: windows}, nil
	case "get_workload":
		var req WorkloadParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Staffing.Workload(ctx, tenantID, staffing.WorkloadQuery{
			Range:       planning.Range{Start: req.Start, End: req.End},
			Granularity: req.Granularity,
			EmployeeIDs: req.EmployeeIDs,
		})
	case "get_calendar":
		var req CalendarParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		month, err := ParseMonth(req.Month)
		if err != nil {
			return nil, err
		}
		return h.svc.Staffing.Calendar(ctx, tenantID, staffing.CalendarQuery{
			Month:      month,
			EmployeeID: req.EmployeeID,
			ProjectID:  req.ProjectID,
		})
	case "get_availability":
		var req AvailabilityParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Staffing.Availability(ctx, tenantID, req.EmployeeID, planning.Range{Start: req.Start, End: req.End})
	case "suggest_candidates":
		var req SuggestCandidatesParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.svc.Staffing.Suggest(ctx, tenantID, staffing.SuggestQuery{
			ProjectID: req.ProjectID,
			Range:     optionalRange(req.Start, req.End),
		})
	case "get_timeline":
		var req TimelineParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		rows, err := h.svc.Staffing.Timeline(ctx, tenantID, staffing.TimelineQuery{
			EmployeeID: req.EmployeeID,
			Range:      optionalRange(req.Start, req.End),
		})
		if err != nil {
			return nil, err
		}
		if rows == nil {
			rows = []staffing.TimelineRow{}
		}
		return rows, nil

	// Activity
	case "get_recent_activity":
		var req GetRecentActivityParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		opts := activity.ListActivityOptions{
			EntityID: req.EntityID,
			Limit:    req.Limit,
			Offset:   req.Offset,
		}
		if req.EntityType != "" {
			opts.EntityType = &req.EntityType
		}
		if req.ActivityType != "" {
			opts.ActivityType = &req.ActivityType
		}
		entries, err := h.svc.Activity.GetRecentActivity(ctx, tenantID, opts)
		if err != nil {
			return nil, err
		}
		resp := make([]ActivityEntryResponse, 0, len(entries))
		for _, entry := range entries {
			resp = append(resp, ActivityEntryResponse{
				Timestamp:  entry.CreatedAt,
				EntityType: entry.EntityType,
				EntityID:   entry.EntityID,
				Type:       entry.ActivityType,
				Summary:    entry.Summary,
				Details:    entry.Details,
			})
		}
		return resp, nil
	default:
		return nil, &APIError{
			Code:         CodeMethodNotFound,
			Message:      fmt.Sprintf("unknown method: %s", method),
			RecoveryHint: "See the tool list for supported methods",
		}
	}
}

// ParseMonth accepts "YYYY-MM" or a full date and returns the first day of
// that month.
func ParseMonth(s string) (planning.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return planning.Date{}, &APIError{Code: CodeInvalidInput, Message: "month is required", RecoveryHint: "Use YYYY-MM"}
	}
	if len(s) == len("2006-01") {
		s += "-01"
	}
	d, err := planning.ParseDate(s)
	if err != nil {
		return planning.Date{}, &APIError{Code: CodeInvalidInput, Message: err.Error(), RecoveryHint: "Use YYYY-MM"}
	}
	return d.StartOfMonth(), nil
}

// optionalRange returns nil when neither bound is set. A half-open pair is
// passed through so the service reports the missing bound.
func optionalRange(start, end planning.Date) *planning.Range {
	if start.IsZero() && end.IsZero() {
		return nil
	}
	return &planning.Range{Start: start, End: end}
}

func decodeParams(params json.RawMessage, out any) error {
	if len(params) == 0 || string(params) == "null" {
		return nil
	}
	if err := json.Unmarshal(params, out); err != nil {
		return invalidParams(err)
	}
	return nil
}

func decodeID(params json.RawMessage) (string, error) {
	var req IDParams
	if err := decodeParams(params, &req); err != nil {
		return "", err
	}
	id := strings.TrimSpace(req.ID)
	if id == "" {
		return "", &APIError{Code: CodeInvalidParams, Message: "id is required"}
	}
	return id, nil
}
