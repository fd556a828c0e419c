package planning

import (
	"fmt"
	"strings"
	"time"
)

// Granularity selects the calendar unit used to bucket workload.
type Granularity string

const (
	GranularityDay  Granularity = "day"
	GranularityWeek Granularity = "week"
)

// ParseGranularity accepts "day" or "week"; empty means week.
func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(strings.ToLower(strings.TrimSpace(s))) {
	case GranularityDay:
		return GranularityDay, nil
	case GranularityWeek, "":
		return GranularityWeek, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidGranularity, s)
	}
}

func (g Granularity) days() int {
	if g == GranularityDay {
		return 1
	}
	return 7
}

// ParseWeekday accepts English weekday names ("monday", "Sun", ...).
func ParseWeekday(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := strings.ToLower(d.String())
		if name == full || (len(name) >= 3 && strings.HasPrefix(full, name)) {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("unknown weekday %q", s)
}

// Bucket is one calendar unit of a workload grid.
type Bucket struct {
	Start Date `json:"bucket_start"`
	End   Date `json:"bucket_end"`
}

// BucketCount returns len(Buckets(r, g, weekStart)) without building them.
func BucketCount(r Range, g Granularity, weekStart time.Weekday) int {
	if r.Validate() != nil {
		return 0
	}
	start := r.Start
	if g == GranularityWeek {
		start = start.StartOfWeek(weekStart)
	}
	return DaysBetween(start, r.End)/g.days() + 1
}

// Buckets returns the chronological buckets covering r. The first bucket
// starts on or before r.Start, aligned to weekStart for weekly buckets.
// Bucket boundaries depend only on r, g and weekStart.
func Buckets(r Range, g Granularity, weekStart time.Weekday) []Bucket {
	if r.Validate() != nil {
		return []Bucket{}
	}
	start := r.Start
	if g == GranularityWeek {
		start = start.StartOfWeek(weekStart)
	}
	step := g.days()
	buckets := make([]Bucket, 0, BucketCount(r, g, weekStart))
	for b := start; !b.After(r.End); b = b.AddDays(step) {
		buckets = append(buckets, Bucket{Start: b, End: b.AddDays(step - 1)})
	}
	return buckets
}

// WorkloadOptions controls AggregateWorkload. The zero WeekStart is Sunday.
type WorkloadOptions struct {
	Granularity Granularity
	WeekStart   time.Weekday
	// EmployeeIDs fixes the employees and their order. When empty, every
	// employee in the input is reported in first-appearance order.
	EmployeeIDs []string
}

// BucketLoad holds each employee's summed percentage within one bucket.
type BucketLoad struct {
	BucketStart Date           `json:"bucket_start"`
	BucketEnd   Date           `json:"bucket_end"`
	PerEmployee map[string]int `json:"per_employee"`
}

// Workload is a grid of per-employee load by bucket.
type Workload struct {
	Granularity Granularity  `json:"granularity"`
	Employees   []string     `json:"employees"`
	Buckets     []BucketLoad `json:"buckets"`
}

// Load returns the load of employeeID in bucket i.
func (w Workload) Load(i int, employeeID string) int {
	if i < 0 || i >= len(w.Buckets) {
		return 0
	}
	return w.Buckets[i].PerEmployee[employeeID]
}

// AggregateWorkload sums, for every bucket covering r, the full percentage
// of each allocation whose inclusive interval intersects the bucket. There
// is no pro-rating: a one-day allocation inside a week bucket counts its
// whole percentage for that week. Loads are not clamped.
func AggregateWorkload(allocs []Allocation, r Range, opts WorkloadOptions) (Workload, error) {
	if err := r.Validate(); err != nil {
		return Workload{}, err
	}
	g := opts.Granularity
	if g == "" {
		g = GranularityWeek
	}
	if g != GranularityDay && g != GranularityWeek {
		return Workload{}, fmt.Errorf("%w: %q", ErrInvalidGranularity, g)
	}

	employees := opts.EmployeeIDs
	if len(employees) == 0 {
		employees, _ = groupByEmployee(allocs)
	}
	wanted := make(map[string]bool, len(employees))
	for _, id := range employees {
		wanted[id] = true
	}

	buckets := Buckets(r, g, opts.WeekStart)
	out := Workload{
		Granularity: g,
		Employees:   append([]string{}, employees...),
		Buckets:     make([]BucketLoad, len(buckets)),
	}
	for i, b := range buckets {
		perEmployee := make(map[string]int, len(employees))
		for _, id := range employees {
			perEmployee[id] = 0
		}
		out.Buckets[i] = BucketLoad{BucketStart: b.Start, BucketEnd: b.End, PerEmployee: perEmployee}
	}
	if len(buckets) == 0 {
		return out, nil
	}

	span := Range{Start: buckets[0].Start, End: buckets[len(buckets)-1].End}
	step := g.days()
	for _, a := range allocs {
		if !usable(a) || !wanted[a.EmployeeID] {
			continue
		}
		shared, ok := a.Interval().Intersect(span)
		if !ok {
			continue
		}
		first := DaysBetween(span.Start, shared.Start) / step
		last := DaysBetween(span.Start, shared.End) / step
		for i := first; i <= last; i++ {
			out.Buckets[i].PerEmployee[a.EmployeeID] += a.Percentage
		}
	}
	return out, nil
}
