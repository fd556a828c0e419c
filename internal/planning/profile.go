package planning

import "sort"

// segment is a run of days over which the summed load is constant.
type segment struct {
	Start Date
	End   Date
	Load  int
}

type event struct {
	at    Date
	delta int
}

// loadProfile sweeps allocation endpoints and returns contiguous
// constant-load segments from the earliest start to the latest end. Days
// inside that span with no allocation appear as zero-load segments.
//
// An allocation enters at its start date and exits the day after its end
// date. Every event at one instant is applied before the total is read, so
// an allocation ending on D and another starting on D both count on D.
func loadProfile(allocs []Allocation) []segment {
	events := make([]event, 0, 2*len(allocs))
	for _, a := range allocs {
		if !usable(a) {
			continue
		}
		events = append(events,
			event{at: a.StartDate, delta: a.Percentage},
			event{at: a.EndDate.AddDays(1), delta: -a.Percentage},
		)
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].at.Before(events[j].at)
	})

	var segs []segment
	load := 0
	for i := 0; i < len(events); {
		at := events[i].at
		for i < len(events) && events[i].at.Equal(at) {
			load += events[i].delta
			i++
		}
		if i == len(events) {
			break
		}
		segs = appendSegment(segs, segment{Start: at, End: events[i].at.AddDays(-1), Load: load})
	}
	return segs
}

// appendSegment appends seg, merging it into the previous segment when they
// touch and carry the same load.
func appendSegment(segs []segment, seg segment) []segment {
	if n := len(segs); n > 0 {
		last := &segs[n-1]
		if last.Load == seg.Load && last.End.AddDays(1).Equal(seg.Start) {
			last.End = seg.End
			return segs
		}
	}
	return append(segs, seg)
}

// clipToRange trims allocations to r and drops those entirely outside it.
func clipToRange(allocs []Allocation, r Range) []Allocation {
	out := make([]Allocation, 0, len(allocs))
	for _, a := range allocs {
		if !usable(a) {
			continue
		}
		shared, ok := a.Interval().Intersect(r)
		if !ok {
			continue
		}
		a.StartDate, a.EndDate = shared.Start, shared.End
		out = append(out, a)
	}
	return out
}

// groupByEmployee splits allocations per employee, keeping first-appearance order.
func groupByEmployee(allocs []Allocation) ([]string, map[string][]Allocation) {
	var order []string
	groups := make(map[string][]Allocation)
	for _, a := range allocs {
		if !usable(a) {
			continue
		}
		if _, seen := groups[a.EmployeeID]; !seen {
			order = append(order, a.EmployeeID)
		}
		groups[a.EmployeeID] = append(groups[a.EmployeeID], a)
	}
	return order, groups
}
