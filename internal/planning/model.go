package planning

import "fmt"

// FullCapacity is the percentage of time one employee can commit.
const FullCapacity = 100

// Allocation commits one employee to one project at a percentage of time
// for an inclusive range of days.
type Allocation struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	ProjectID  string `json:"project_id"`
	StartDate  Date   `json:"start_date"`
	EndDate    Date   `json:"end_date"`
	Percentage int    `json:"percentage"`
	Deleted    bool   `json:"deleted"`
}

// Interval returns the allocation's inclusive date range.
func (a Allocation) Interval() Range {
	return Range{Start: a.StartDate, End: a.EndDate}
}

// Employee is the engine's view of a person: identity and skills.
type Employee struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	SkillIDs []string `json:"skill_ids"`
}

// Project is the engine's view of a project: required skills and an
// optional window bounding its allocations.
type Project struct {
	ID               string   `json:"id"`
	Code             string   `json:"code"`
	Name             string   `json:"name"`
	RequiredSkillIDs []string `json:"required_skill_ids"`
	Window           *Range   `json:"window,omitempty"`
}

// ValidateAllocation checks the interval and percentage invariants. Callers
// run it at ingestion; the computations skip records that fail it.
func ValidateAllocation(a Allocation) error {
	if err := a.Interval().Validate(); err != nil {
		return err
	}
	if a.Percentage <= 0 || a.Percentage > FullCapacity {
		return fmt.Errorf("%w: %d", ErrInvalidPercentage, a.Percentage)
	}
	return nil
}

func usable(a Allocation) bool {
	return !a.Deleted && ValidateAllocation(a) == nil
}

// Active drops deleted and malformed allocations.
func Active(allocs []Allocation) []Allocation {
	out := make([]Allocation, 0, len(allocs))
	for _, a := range allocs {
		if usable(a) {
			out = append(out, a)
		}
	}
	return out
}

// ForEmployee returns the usable allocations of one employee.
func ForEmployee(allocs []Allocation, employeeID string) []Allocation {
	out := make([]Allocation, 0)
	for _, a := range allocs {
		if a.EmployeeID == employeeID && usable(a) {
			out = append(out, a)
		}
	}
	return out
}
