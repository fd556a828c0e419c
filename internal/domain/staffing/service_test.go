package staffing_test

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/staffplan/internal/domain/allocation"
	"github.com/rpggio/staffplan/internal/domain/employee"
	"github.com/rpggio/staffplan/internal/domain/project"
	"github.com/rpggio/staffplan/internal/domain/staffing"
	"github.com/rpggio/staffplan/internal/planning"
	"github.com/rpggio/staffplan/internal/repository"
	"github.com/rpggio/staffplan/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const tenantID = "tenant1"

func d(s string) planning.Date { return planning.MustParseDate(s) }

func january() planning.Range {
	return planning.Range{Start: d("2024-01-01"), End: d("2024-01-31")}
}

var (
	ada   = employee.Employee{ID: "e1", GivenName: "Ada", Surname: "Lovelace", IsActive: true, KnowledgeIDs: []string{"go", "sql"}}
	grace = employee.Employee{ID: "e2", GivenName: "Grace", Surname: "Hopper", IsActive: true, KnowledgeIDs: []string{"cobol", "go", "sql", "k8s"}}
)

func januaryAllocations() []allocation.Allocation {
	return []allocation.Allocation{
		{ID: "A", EmployeeID: "e1", EmployeeName: "Ada Lovelace", ProjectID: "p1", ProjectName: "Migration",
			StartDate: d("2024-01-01"), EndDate: d("2024-01-15"), Percentage: 60, Version: 1},
		{ID: "B", EmployeeID: "e1", EmployeeName: "Ada Lovelace", ProjectID: "p2", ProjectName: "Audit",
			StartDate: d("2024-01-10"), EndDate: d("2024-01-31"), Percentage: 50, Version: 1},
	}
}

func newService(allocs *mocks.AllocationRepository, emps *mocks.EmployeeRepository, projs *mocks.ProjectRepository) *staffing.Service {
	return staffing.NewService(allocs, emps, projs, staffing.Options{WeekStart: time.Monday, OverlapThreshold: 100}, nil)
}

func TestStaffingService_Overlaps(t *testing.T) {
	ctx := context.Background()
	allocs := &mocks.AllocationRepository{}
	allocs.On("List", ctx, tenantID, allocation.ListOptions{EmployeeID: "e1"}).Return(januaryAllocations(), 2, nil)

	svc := newService(allocs, &mocks.EmployeeRepository{}, &mocks.ProjectRepository{})
	windows, err := svc.Overlaps(ctx, tenantID, staffing.OverlapQuery{EmployeeID: "e1"})
	require.NoError(t, err)
	require.Len(t, windows, 1)
	require.Equal(t, "2024-01-10", windows[0].Start.String())
	require.Equal(t, "2024-01-15", windows[0].End.String())
	require.Equal(t, 110, windows[0].PeakPercentage)
}

func TestStaffingService_OverlapsClipsToRange(t *testing.T) {
	ctx := context.Background()
	r := planning.Range{Start: d("2024-01-12"), End: d("2024-01-20")}
	allocs := &mocks.AllocationRepository{}
	allocs.On("List", ctx, tenantID, allocation.ListOptions{Range: &r}).Return(januaryAllocations(), 2, nil)

	svc := newService(allocs, &mocks.EmployeeRepository{}, &mocks.ProjectRepository{})
	windows, err := svc.Overlaps(ctx, tenantID, staffing.OverlapQuery{Range: &r})
	require.NoError(t, err)
	require.Len(t, windows, 1)
	require.Equal(t, "2024-01-12", windows[0].Start.String())
	require.Equal(t, "2024-01-15", windows[0].End.String())
}

func TestStaffingService_WorkloadHeatmap(t *testing.T) {
	ctx := context.Background()
	r := planning.Range{Start: d("2024-01-01"), End: d("2024-01-14")}
	allocs := &mocks.AllocationRepository{}
	emps := &mocks.EmployeeRepository{}
	emps.On("List", ctx, tenantID, employee.ListOptions{ActiveOnly: true}).Return([]employee.Employee{grace, ada}, 2, nil)
	allocs.On("List", ctx, tenantID, allocation.ListOptions{Range: &r}).Return(januaryAllocations(), 2, nil)

	svc := newService(allocs, emps, &mocks.ProjectRepository{})
	heat, err := svc.Workload(ctx, tenantID, staffing.WorkloadQuery{Range: r, Granularity: "week"})
	require.NoError(t, err)
	require.Len(t, heat.Buckets, 2)
	require.Len(t, heat.Rows, 2)

	require.Equal(t, "Grace Hopper", heat.Rows[0].Name)
	require.Equal(t, staffing.HeatmapCell{Load: 0, Level: planning.LevelNone}, heat.Rows[0].Cells[0])

	require.Equal(t, "e1", heat.Rows[1].EmployeeID)
	require.Equal(t, staffing.HeatmapCell{Load: 60, Level: planning.LevelMedium}, heat.Rows[1].Cells[0])
	require.Equal(t, staffing.HeatmapCell{Load: 110, Level: planning.LevelOver}, heat.Rows[1].Cells[1])
}

func TestStaffingService_WorkloadValidation(t *testing.T) {
	svc := newService(&mocks.AllocationRepository{}, &mocks.EmployeeRepository{}, &mocks.ProjectRepository{})
	_, err := svc.Workload(context.Background(), tenantID, staffing.WorkloadQuery{
		Range: planning.Range{Start: d("2024-02-01"), End: d("2024-01-01")},
	})
	require.ErrorIs(t, err, planning.ErrInvalidInterval)

	_, err = svc.Workload(context.Background(), tenantID, staffing.WorkloadQuery{Range: january(), Granularity: "year"})
	require.ErrorIs(t, err, planning.ErrInvalidGranularity)
}

func TestStaffingService_WorkloadRangeTooWide(t *testing.T) {
	svc := newService(&mocks.AllocationRepository{}, &mocks.EmployeeRepository{}, &mocks.ProjectRepository{})
	_, err := svc.Workload(context.Background(), tenantID, staffing.WorkloadQuery{
		Range:       planning.Range{Start: d("0001-01-01"), End: d("9999-12-31")},
		Granularity: "day",
	})
	require.ErrorIs(t, err, staffing.ErrInvalidInput)
}

func TestStaffingService_WorkloadUnknownEmployee(t *testing.T) {
	ctx := context.Background()
	emps := &mocks.EmployeeRepository{}
	emps.On("Get", ctx, tenantID, "ghost").Return(nil, repository.ErrNotFound)

	svc := newService(&mocks.AllocationRepository{}, emps, &mocks.ProjectRepository{})
	_, err := svc.Workload(ctx, tenantID, staffing.WorkloadQuery{Range: january(), EmployeeIDs: []string{"ghost"}})
	require.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestStaffingService_Calendar(t *testing.T) {
	ctx := context.Background()
	month := january()
	allocs := &mocks.AllocationRepository{}
	allocs.On("List", ctx, tenantID, allocation.ListOptions{Range: &month}).Return(januaryAllocations(), 2, nil)

	svc := newService(allocs, &mocks.EmployeeRepository{}, &mocks.ProjectRepository{})
	cal, err := svc.Calendar(ctx, tenantID, staffing.CalendarQuery{Month: d("2024-01-17")})
	require.NoError(t, err)
	require.Len(t, cal.Days, 31)

	require.Equal(t, 60, cal.Days[0].Load)
	require.Equal(t, planning.DayPartial, cal.Days[0].Status)
	require.Len(t, cal.Days[0].Allocations, 1)

	require.Equal(t, 110, cal.Days[9].Load)
	require.Equal(t, planning.DayOver, cal.Days[9].Status)
	require.Len(t, cal.Days[9].Allocations, 2)

	require.Equal(t, 50, cal.Days[30].Load)

	_, err = svc.Calendar(ctx, tenantID, staffing.CalendarQuery{})
	require.ErrorIs(t, err, staffing.ErrInvalidInput)
}

func TestStaffingService_Availability(t *testing.T) {
	ctx := context.Background()
	r := january()
	allocs := &mocks.AllocationRepository{}
	emps := &mocks.EmployeeRepository{}
	emps.On("Get", ctx, tenantID, "e1").Return(&ada, nil)
	allocs.On("List", ctx, tenantID, allocation.ListOptions{EmployeeID: "e1", Range: &r}).Return(januaryAllocations(), 2, nil)

	svc := newService(allocs, emps, &mocks.ProjectRepository{})
	res, err := svc.Availability(ctx, tenantID, "e1", r)
	require.NoError(t, err)
	require.Equal(t, "Ada Lovelace", res.Name)
	require.Len(t, res.Windows, 3)
	require.Equal(t, 40, res.Windows[0].MaxAllocation)
	require.Equal(t, 0, res.Windows[1].MaxAllocation)
	require.Equal(t, 50, res.Windows[2].MaxAllocation)
}

func TestStaffingService_Suggest(t *testing.T) {
	ctx := context.Background()
	r := january()
	allocs := &mocks.AllocationRepository{}
	emps := &mocks.EmployeeRepository{}
	projs := &mocks.ProjectRepository{}
	projs.On("Get", ctx, tenantID, "p9").Return(&project.Project{
		ID:           "p9",
		Code:         "P9",
		Name:         "Platform",
		StartDate:    r.Start,
		EndDate:      r.End,
		KnowledgeIDs: []string{"go", "k8s"},
	}, nil)
	emps.On("List", ctx, tenantID, employee.ListOptions{ActiveOnly: true}).Return([]employee.Employee{ada, grace}, 2, nil)
	allocs.On("List", ctx, tenantID, mock.MatchedBy(func(o allocation.ListOptions) bool {
		return o.Range != nil && o.Range.Start.Equal(r.Start) && o.Range.End.Equal(r.End)
	})).Return(januaryAllocations(), 2, nil)

	svc := newService(allocs, emps, projs)
	res, err := svc.Suggest(ctx, tenantID, staffing.SuggestQuery{ProjectID: "p9"})
	require.NoError(t, err)
	require.NotNil(t, res.Window)
	require.Len(t, res.Candidates, 2)

	require.Equal(t, "e2", res.Candidates[0].EmployeeID)
	require.Equal(t, 2, res.Candidates[0].MatchCount)
	require.Equal(t, 100, res.Candidates[0].MinAvailable)

	require.Equal(t, "e1", res.Candidates[1].EmployeeID)
	require.Equal(t, 1, res.Candidates[1].MatchCount)
	require.Len(t, res.Candidates[1].Allocations, 2)
	require.Equal(t, 0, res.Candidates[1].MinAvailable)
}

func TestStaffingService_SuggestUnknownProject(t *testing.T) {
	ctx := context.Background()
	projs := &mocks.ProjectRepository{}
	projs.On("Get", ctx, tenantID, "nope").Return(nil, repository.ErrNotFound)

	svc := newService(&mocks.AllocationRepository{}, &mocks.EmployeeRepository{}, projs)
	_, err := svc.Suggest(ctx, tenantID, staffing.SuggestQuery{ProjectID: "nope"})
	require.ErrorIs(t, err, project.ErrProjectNotFound)
}

func TestStaffingService_Timeline(t *testing.T) {
	ctx := context.Background()
	rows := append(januaryAllocations(), allocation.Allocation{
		ID: "C", EmployeeID: "e0", EmployeeName: "Aaron Swartz", ProjectID: "p2", ProjectName: "Audit",
		StartDate: d("2024-02-01"), EndDate: d("2024-02-10"), Percentage: 30,
	})
	allocs := &mocks.AllocationRepository{}
	allocs.On("List", ctx, tenantID, allocation.ListOptions{}).Return(rows, 3, nil)

	svc := newService(allocs, &mocks.EmployeeRepository{}, &mocks.ProjectRepository{})
	out, err := svc.Timeline(ctx, tenantID, staffing.TimelineQuery{})
	require.NoError(t, err)
	require.Len(t, out, 3)

	require.Equal(t, "C", out[0].AllocationID)
	require.Equal(t, "A", out[1].AllocationID)
	require.Equal(t, "B", out[2].AllocationID)
	require.Equal(t, 0, out[0].ColorIndex)
	require.Equal(t, 1, out[1].ColorIndex)
	require.Equal(t, out[0].ColorIndex, out[2].ColorIndex)
}
