package mcp

import (
	"time"

	"github.com/rpggio/staffplan/internal/domain/activity"
	"github.com/rpggio/staffplan/internal/domain/employee"
	"github.com/rpggio/staffplan/internal/domain/project"
	"github.com/rpggio/staffplan/internal/planning"
)

type IDParams struct {
	ID string `json:"id"`
}

type ListParams struct {
	ActiveOnly bool `json:"active_only,omitempty"`
	Limit      int  `json:"limit,omitempty"`
	Offset     int  `json:"offset,omitempty"`
}

type SearchEmployeesParams struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

type ListProjectsParams struct {
	ClientID   string             `json:"client_id,omitempty"`
	DealStatus project.DealStatus `json:"deal_status,omitempty"`
	Limit      int                `json:"limit,omitempty"`
	Offset     int                `json:"offset,omitempty"`
}

type ListClientProjectsParams struct {
	ClientID string `json:"client_id"`
	Limit    int    `json:"limit,omitempty"`
	Offset   int    `json:"offset,omitempty"`
}

type ListAllocationsParams struct {
	EmployeeID     string        `json:"employee_id,omitempty"`
	ProjectID      string        `json:"project_id,omitempty"`
	Start          planning.Date `json:"start,omitempty"`
	End            planning.Date `json:"end,omitempty"`
	IncludeDeleted bool          `json:"include_deleted,omitempty"`
	Limit          int           `json:"limit,omitempty"`
	Offset         int           `json:"offset,omitempty"`
}

type DetectOverlapsParams struct {
	EmployeeID string        `json:"employee_id,omitempty"`
	Start      planning.Date `json:"start,omitempty"`
	End        planning.Date `json:"end,omitempty"`
	Threshold  int           `json:"threshold,omitempty"`
}

type WorkloadParams struct {
	Start       planning.Date `json:"start"`
	End         planning.Date `json:"end"`
	Granularity string        `json:"granularity,omitempty"`
	EmployeeIDs []string      `json:"employee_ids,omitempty"`
}

// CalendarParams.Month is "YYYY-MM" or any date inside the month.
type CalendarParams struct {
	Month      string `json:"month"`
	EmployeeID string `json:"employee_id,omitempty"`
	ProjectID  string `json:"project_id,omitempty"`
}

type AvailabilityParams struct {
	EmployeeID string        `json:"employee_id"`
	Start      planning.Date `json:"start"`
	End        planning.Date `json:"end"`
}

type SuggestCandidatesParams struct {
	ProjectID string        `json:"project_id"`
	Start     planning.Date `json:"start,omitempty"`
	End       planning.Date `json:"end,omitempty"`
}

type TimelineParams struct {
	EmployeeID string        `json:"employee_id,omitempty"`
	Start      planning.Date `json:"start,omitempty"`
	End        planning.Date `json:"end,omitempty"`
}

type GetRecentActivityParams struct {
	EntityType   activity.EntityType   `json:"entity_type,omitempty"`
	EntityID     string                `json:"entity_id,omitempty"`
	ActivityType activity.ActivityType `json:"type,omitempty"`
	Limit        int                   `json:"limit,omitempty"`
	Offset       int                   `json:"offset,omitempty"`
}

type StatusResponse struct {
	Status string `json:"status"`
	ID     string `json:"id,omitempty"`
}

type OverlapsResponse struct {
	Threshold int                      `json:"threshold,omitempty"`
	Windows   []planning.OverlapWindow `json:"windows"`
}

type SearchEmployeesResponse struct {
	Query   string              `json:"query"`
	Results []employee.Employee `json:"results"`
}

type ActivityEntryResponse struct {
	Timestamp  time.Time             `json:"timestamp"`
	EntityType activity.EntityType   `json:"entity_type"`
	EntityID   string                `json:"entity_id"`
	Type       activity.ActivityType `json:"type"`
	Summary    string                `json:"summary"`
	Details    string                `json:"details,omitempty"`
}
