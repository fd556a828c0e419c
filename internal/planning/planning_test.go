package planning_test

import (
	"github.com/rpggio/staffplan/internal/planning"
)

func d(s string) planning.Date {
	return planning.MustParseDate(s)
}

func span(start, end string) planning.Range {
	return planning.Range{Start: d(start), End: d(end)}
}

func alloc(id, employeeID, start, end string, pct int) planning.Allocation {
	return planning.Allocation{
		ID:         id,
		EmployeeID: employeeID,
		ProjectID:  "proj-" + id,
		StartDate:  d(start),
		EndDate:    d(end),
		Percentage: pct,
	}
}

// januaryFixture is employee X with A (01-01..01-15, 60%) and B (01-10..01-31, 50%).
func januaryFixture() []planning.Allocation {
	return []planning.Allocation{
		alloc("A", "X", "2024-01-01", "2024-01-15", 60),
		alloc("B", "X", "2024-01-10", "2024-01-31", 50),
	}
}
