package staffing

import (
	"github.com/rpggio/staffplan/internal/planning"
)

// OverlapQuery selects the allocations scanned for overlaps. Empty
// EmployeeID scans every employee; a nil Range scans all dates.
type OverlapQuery struct {
	EmployeeID string          `json:"employee_id"`
	Range      *planning.Range `json:"range"`
	Threshold  int             `json:"threshold"`
}

// WorkloadQuery selects a heatmap. Empty EmployeeIDs means every active employee.
type WorkloadQuery struct {
	Range       planning.Range `json:"range"`
	Granularity string         `json:"granularity"`
	EmployeeIDs []string       `json:"employee_ids"`
}

// HeatmapCell is one employee's load in one bucket.
type HeatmapCell struct {
	Load  int            `json:"load"`
	Level planning.Level `json:"level"`
}

// HeatmapRow is one employee across all buckets.
type HeatmapRow struct {
	EmployeeID string        `json:"employee_id"`
	Name       string        `json:"name"`
	Cells      []HeatmapCell `json:"cells"`
}

// Heatmap is a workload grid labelled for display.
type Heatmap struct {
	Granularity planning.Granularity `json:"granularity"`
	Buckets     []planning.Bucket    `json:"buckets"`
	Rows        []HeatmapRow         `json:"rows"`
}

// CalendarQuery selects a month of allocations. Month is any day in it.
type CalendarQuery struct {
	Month      planning.Date `json:"month"`
	EmployeeID string        `json:"employee_id"`
	ProjectID  string        `json:"project_id"`
}

// CalendarEntry is one allocation active on a calendar day.
type CalendarEntry struct {
	AllocationID string `json:"allocation_id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	ProjectID    string `json:"project_id"`
	ProjectName  string `json:"project_name"`
	Percentage   int    `json:"percentage"`
}

// CalendarDay summarizes one day.
type CalendarDay struct {
	Date        planning.Date      `json:"date"`
	Load        int                `json:"load"`
	Status      planning.DayStatus `json:"status"`
	Allocations []CalendarEntry    `json:"allocations"`
}

// CalendarMonth is every day of one month.
type CalendarMonth struct {
	Start planning.Date `json:"start"`
	End   planning.Date `json:"end"`
	Days  []CalendarDay `json:"days"`
}

// AvailabilityResult is an employee's spare capacity over a range.
type AvailabilityResult struct {
	EmployeeID string                        `json:"employee_id"`
	Name       string                        `json:"name"`
	Range      planning.Range                `json:"range"`
	Windows    []planning.AvailabilityWindow `json:"windows"`
}

// SuggestQuery selects the project to staff. Range overrides the project's
// own dates for the availability profile.
type SuggestQuery struct {
	ProjectID string          `json:"project_id"`
	Range     *planning.Range `json:"range"`
}

// Suggestion is a ranked candidate with spare capacity over the window.
type Suggestion struct {
	planning.Suggestion
	Availability []planning.AvailabilityWindow `json:"availability,omitempty"`
	// MinAvailable is the smallest spare capacity inside the window, or
	// -1 when no window is known.
	MinAvailable int `json:"min_available"`
}

// SuggestResult lists every active employee ranked for a project.
type SuggestResult struct {
	Project    planning.Project `json:"project"`
	Window     *planning.Range  `json:"window,omitempty"`
	Candidates []Suggestion     `json:"candidates"`
}

// TimelineQuery selects Gantt rows.
type TimelineQuery struct {
	Range      *planning.Range `json:"range"`
	EmployeeID string          `json:"employee_id"`
}

// TimelineRow is one allocation bar.
type TimelineRow struct {
	AllocationID string        `json:"allocation_id"`
	EmployeeID   string        `json:"employee_id"`
	EmployeeName string        `json:"employee_name"`
	ProjectID    string        `json:"project_id"`
	ProjectName  string        `json:"project_name"`
	Start        planning.Date `json:"start"`
	End          planning.Date `json:"end"`
	Percentage   int           `json:"percentage"`
	ColorIndex   int           `json:"color_index"`
}
