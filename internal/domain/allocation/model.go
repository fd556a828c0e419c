package allocation

import (
	"time"

	"github.com/rpggio/staffplan/internal/planning"
)

// Allocation commits an employee to a project at a percentage of their
// time over an inclusive range of days.
type Allocation struct {
	ID           string        `json:"id"`
	TenantID     string        `json:"tenant_id"`
	EmployeeID   string        `json:"employee_id"`
	EmployeeName string        `json:"employee_name,omitempty"`
	ProjectID    string        `json:"project_id"`
	ProjectName  string        `json:"project_name,omitempty"`
	StartDate    planning.Date `json:"start_date"`
	EndDate      planning.Date `json:"end_date"`
	Percentage   int           `json:"percentage"`
	IsDeleted    bool          `json:"is_deleted"`
	Version      int64         `json:"version"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// Planning returns the engine view of the allocation.
func (a Allocation) Planning() planning.Allocation {
	return planning.Allocation{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		ProjectID:  a.ProjectID,
		StartDate:  a.StartDate,
		EndDate:    a.EndDate,
		Percentage: a.Percentage,
		Deleted:    a.IsDeleted,
	}
}

// ToPlanning converts a slice for the engine.
func ToPlanning(allocs []Allocation) []planning.Allocation {
	out := make([]planning.Allocation, len(allocs))
	for i, a := range allocs {
		out[i] = a.Planning()
	}
	return out
}

// ListOptions filters allocation listings. Range keeps allocations whose
// interval intersects it.
type ListOptions struct {
	EmployeeID     string
	ProjectID      string
	Range          *planning.Range
	IncludeDeleted bool
	Limit          int
	Offset         int
}

// ListResult is one page of allocations with the total matching count.
type ListResult struct {
	Items []Allocation `json:"items"`
	Total int          `json:"total"`
}
