package staffing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/rpggio/staffplan/internal/domain/allocation"
	"github.com/rpggio/staffplan/internal/domain/employee"
	"github.com/rpggio/staffplan/internal/domain/project"
	"github.com/rpggio/staffplan/internal/planning"
	"github.com/rpggio/staffplan/internal/repository"
	"github.com/rpggio/staffplan/internal/tracing"
)

const (
	// PaletteSize is the number of distinct project colors on the timeline.
	PaletteSize = 10
	// MaxWorkloadBuckets caps the columns of one heatmap.
	MaxWorkloadBuckets = 3700
)

// Options tunes the staffing computations.
type Options struct {
	WeekStart        time.Weekday
	OverlapThreshold int
}

// Service loads allocations and runs the planning engine over them.
type Service struct {
	allocations AllocationRepository
	employees   EmployeeRepository
	projects    ProjectRepository
	opts        Options
	logger      *slog.Logger
}

// NewService creates a new staffing service.
func NewService(allocations AllocationRepository, employees EmployeeRepository, projects ProjectRepository, opts Options, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		allocations: allocations,
		employees:   employees,
		projects:    projects,
		opts:        opts,
		logger:      logger,
	}
}

// Overlaps reports over-allocated windows.
func (s *Service) Overlaps(ctx context.Context, tenantID string, q OverlapQuery) (_ []planning.OverlapWindow, err error) {
	ctx, span := tracing.StartSpan(ctx, "staffing.Overlaps")
	defer func() { tracing.EndSpan(span, err) }()

	if q.Range != nil {
		if err := q.Range.Validate(); err != nil {
			return nil, err
		}
	}
	threshold := q.Threshold
	if threshold <= 0 {
		threshold = s.opts.OverlapThreshold
	}

	allocs, err := s.load(ctx, tenantID, allocation.ListOptions{EmployeeID: q.EmployeeID, Range: q.Range})
	if err != nil {
		return nil, err
	}
	span.SetInt("allocations", len(allocs))

	if q.Range != nil {
		return planning.DetectOverlapsInRange(allocs, threshold, *q.Range), nil
	}
	return planning.DetectOverlaps(allocs, threshold), nil
}

// Workload builds a labelled heatmap over q.Range.
func (s *Service) Workload(ctx context.Context, tenantID string, q WorkloadQuery) (_ *Heatmap, err error) {
	ctx, span := tracing.StartSpan(ctx, "staffing.Workload")
	defer func() { tracing.EndSpan(span, err) }()

	if err := q.Range.Validate(); err != nil {
		return nil, err
	}
	granularity, err := planning.ParseGranularity(q.Granularity)
	if err != nil {
		return nil, err
	}
	if n := planning.BucketCount(q.Range, granularity, s.opts.WeekStart); n > MaxWorkloadBuckets {
		return nil, fmt.Errorf("%w: range spans %d %s buckets, at most %d allowed", ErrInvalidInput, n, granularity, MaxWorkloadBuckets)
	}
	staff, err := s.roster(ctx, tenantID, q.EmployeeIDs)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(staff))
	for i, e := range staff {
		ids[i] = e.ID
	}

	allocs, err := s.load(ctx, tenantID, allocation.ListOptions{Range: &q.Range})
	if err != nil {
		return nil, err
	}
	grid, err := planning.AggregateWorkload(allocs, q.Range, planning.WorkloadOptions{
		Granularity: granularity,
		WeekStart:   s.opts.WeekStart,
		EmployeeIDs: ids,
	})
	if err != nil {
		return nil, err
	}

	out := &Heatmap{
		Granularity: grid.Granularity,
		Buckets:     make([]planning.Bucket, len(grid.Buckets)),
		Rows:        make([]HeatmapRow, len(staff)),
	}
	for i, b := range grid.Buckets {
		out.Buckets[i] = planning.Bucket{Start: b.BucketStart, End: b.BucketEnd}
	}
	for r, e := range staff {
		cells := make([]HeatmapCell, len(grid.Buckets))
		for i := range grid.Buckets {
			load := grid.Load(i, e.ID)
			cells[i] = HeatmapCell{Load: load, Level: planning.Classify(load)}
		}
		out.Rows[r] = HeatmapRow{EmployeeID: e.ID, Name: e.DisplayName(), Cells: cells}
	}
	span.SetInt("rows", len(out.Rows))
	return out, nil
}

// Calendar returns every day of the month containing q.Month with the
// allocations active on it.
func (s *Service) Calendar(ctx context.Context, tenantID string, q CalendarQuery) (_ *CalendarMonth, err error) {
	ctx, span := tracing.StartSpan(ctx, "staffing.Calendar")
	defer func() { tracing.EndSpan(span, err) }()

	if q.Month.IsZero() {
		return nil, fmt.Errorf("%w: month is required", ErrInvalidInput)
	}
	month := planning.Range{Start: q.Month.StartOfMonth(), End: q.Month.EndOfMonth()}

	rows, err := s.rows(ctx, tenantID, allocation.ListOptions{
		EmployeeID: q.EmployeeID,
		ProjectID:  q.ProjectID,
		Range:      &month,
	})
	if err != nil {
		return nil, err
	}

	out := &CalendarMonth{Start: month.Start, End: month.End, Days: make([]CalendarDay, 0, month.Days())}
	for day := month.Start; !day.After(month.End); day = day.AddDays(1) {
		entry := CalendarDay{Date: day, Allocations: []CalendarEntry{}}
		for _, a := range rows {
			if !a.Planning().Interval().Contains(day) {
				continue
			}
			entry.Load += a.Percentage
			entry.Allocations = append(entry.Allocations, CalendarEntry{
				AllocationID: a.ID,
				EmployeeID:   a.EmployeeID,
				EmployeeName: a.EmployeeName,
				ProjectID:    a.ProjectID,
				ProjectName:  a.ProjectName,
				Percentage:   a.Percentage,
			})
		}
		entry.Status = planning.CalendarStatus(entry.Load)
		out.Days = append(out.Days, entry)
	}
	return out, nil
}

// Availability returns an employee's remaining capacity over r.
func (s *Service) Availability(ctx context.Context, tenantID, employeeID string, r planning.Range) (_ *AvailabilityResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "staffing.Availability")
	defer func() { tracing.EndSpan(span, err) }()

	if err := r.Validate(); err != nil {
		return nil, err
	}
	emp, err := s.employee(ctx, tenantID, employeeID)
	if err != nil {
		return nil, err
	}
	allocs, err := s.load(ctx, tenantID, allocation.ListOptions{EmployeeID: emp.ID, Range: &r})
	if err != nil {
		return nil, err
	}
	windows, err := planning.Availability(allocs, r)
	if err != nil {
		return nil, err
	}
	return &AvailabilityResult{EmployeeID: emp.ID, Name: emp.DisplayName(), Range: r, Windows: windows}, nil
}

// Suggest ranks every active employee for a project by matching knowledge
// and attaches their spare capacity over the project's window.
func (s *Service) Suggest(ctx context.Context, tenantID string, q SuggestQuery) (_ *SuggestResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "staffing.Suggest")
	defer func() { tracing.EndSpan(span, err) }()

	if strings.TrimSpace(q.ProjectID) == "" {
		return nil, fmt.Errorf("%w: project_id is required", ErrInvalidInput)
	}
	proj, err := s.projects.Get(ctx, tenantID, q.ProjectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, project.ErrProjectNotFound
		}
		return nil, fmt.Errorf("loading project: %w", err)
	}
	window := proj.Window()
	if q.Range != nil {
		if err := q.Range.Validate(); err != nil {
			return nil, err
		}
		window = q.Range
	}

	staff, err := s.roster(ctx, tenantID, nil)
	if err != nil {
		return nil, err
	}
	allocs, err := s.load(ctx, tenantID, allocation.ListOptions{Range: window})
	if err != nil {
		return nil, err
	}

	pool := make([]planning.Candidate, len(staff))
	for i, e := range staff {
		pool[i] = planning.Candidate{Employee: e.Planning(), Allocations: planning.ForEmployee(allocs, e.ID)}
	}
	ranked := planning.RankCandidates(proj.KnowledgeIDs, pool)

	out := &SuggestResult{Project: proj.Planning(), Window: window, Candidates: make([]Suggestion, len(ranked))}
	for i, r := range ranked {
		c := Suggestion{Suggestion: r, MinAvailable: -1}
		if window != nil {
			c.Availability, err = planning.Availability(r.Allocations, *window)
			if err != nil {
				return nil, err
			}
			c.MinAvailable = minAvailable(c.Availability)
		}
		out.Candidates[i] = c
	}
	span.SetInt("candidates", len(out.Candidates))
	return out, nil
}

// Timeline returns Gantt rows ordered by employee name then start date.
// Each project keeps one color index across the result.
func (s *Service) Timeline(ctx context.Context, tenantID string, q TimelineQuery) (_ []TimelineRow, err error) {
	ctx, span := tracing.StartSpan(ctx, "staffing.Timeline")
	defer func() { tracing.EndSpan(span, err) }()

	if q.Range != nil {
		if err := q.Range.Validate(); err != nil {
			return nil, err
		}
	}
	rows, err := s.rows(ctx, tenantID, allocation.ListOptions{EmployeeID: q.EmployeeID, Range: q.Range})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].EmployeeName != rows[j].EmployeeName {
			return rows[i].EmployeeName < rows[j].EmployeeName
		}
		if !rows[i].StartDate.Equal(rows[j].StartDate) {
			return rows[i].StartDate.Before(rows[j].StartDate)
		}
		return rows[i].ID < rows[j].ID
	})

	colors := make(map[string]int)
	out := make([]TimelineRow, 0, len(rows))
	for _, a := range rows {
		color, ok := colors[a.ProjectID]
		if !ok {
			color = len(colors) % PaletteSize
			colors[a.ProjectID] = color
		}
		out = append(out, TimelineRow{
			AllocationID: a.ID,
			EmployeeID:   a.EmployeeID,
			EmployeeName: a.EmployeeName,
			ProjectID:    a.ProjectID,
			ProjectName:  a.ProjectName,
			Start:        a.StartDate,
			End:          a.EndDate,
			Percentage:   a.Percentage,
			ColorIndex:   color,
		})
	}
	return out, nil
}

// rows lists every live allocation matching opts.
func (s *Service) rows(ctx context.Context, tenantID string, opts allocation.ListOptions) ([]allocation.Allocation, error) {
	opts.IncludeDeleted = false
	opts.Limit, opts.Offset = 0, 0
	items, _, err := s.allocations.List(ctx, tenantID, opts)
	if err != nil {
		return nil, fmt.Errorf("listing allocations: %w", err)
	}
	return items, nil
}

// load lists allocations in engine form.
func (s *Service) load(ctx context.Context, tenantID string, opts allocation.ListOptions) ([]planning.Allocation, error) {
	items, err := s.rows(ctx, tenantID, opts)
	if err != nil {
		return nil, err
	}
	return allocation.ToPlanning(items), nil
}

// roster returns the requested employees in order, or every active
// employee ordered by surname.
func (s *Service) roster(ctx context.Context, tenantID string, ids []string) ([]employee.Employee, error) {
	if len(ids) == 0 {
		staff, _, err := s.employees.List(ctx, tenantID, employee.ListOptions{ActiveOnly: true})
		if err != nil {
			return nil, fmt.Errorf("listing employees: %w", err)
		}
		return staff, nil
	}

	seen := make(map[string]bool, len(ids))
	staff := make([]employee.Employee, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		emp, err := s.employee(ctx, tenantID, id)
		if err != nil {
			return nil, err
		}
		staff = append(staff, *emp)
	}
	return staff, nil
}

func (s *Service) employee(ctx context.Context, tenantID, id string) (*employee.Employee, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: employee_id is required", ErrInvalidInput)
	}
	emp, err := s.employees.Get(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("loading employee: %w", err)
	}
	return emp, nil
}

func minAvailable(windows []planning.AvailabilityWindow) int {
	lowest := planning.FullCapacity
	for _, w := range windows {
		if w.MaxAllocation < lowest {
			lowest = w.MaxAllocation
		}
	}
	return lowest
}
