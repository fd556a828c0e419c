package planning

// DefaultOverlapThreshold is the combined percentage above which concurrent
// allocations are reported.
const DefaultOverlapThreshold = FullCapacity

// OverlapWindow is a maximal run of days on which an employee's combined
// allocation exceeds the threshold.
type OverlapWindow struct {
	EmployeeID     string   `json:"employee_id"`
	Start          Date     `json:"start"`
	End            Date     `json:"end"`
	PeakPercentage int      `json:"peak_percentage"`
	AllocationIDs  []string `json:"allocation_ids"`
}

// DetectOverlaps reports, per employee, every maximal window whose combined
// percentage exceeds threshold. A threshold <= 0 uses
// DefaultOverlapThreshold. Employees are reported in first-appearance order,
// windows chronologically.
func DetectOverlaps(allocs []Allocation, threshold int) []OverlapWindow {
	if threshold <= 0 {
		threshold = DefaultOverlapThreshold
	}

	windows := make([]OverlapWindow, 0)
	order, groups := groupByEmployee(allocs)
	for _, employeeID := range order {
		group := groups[employeeID]
		for _, w := range overWindows(loadProfile(group), threshold) {
			w.EmployeeID = employeeID
			w.AllocationIDs = intersectingIDs(group, Range{Start: w.Start, End: w.End})
			windows = append(windows, w)
		}
	}
	return windows
}

// DetectOverlapsInRange is DetectOverlaps restricted to the days of r.
func DetectOverlapsInRange(allocs []Allocation, threshold int, r Range) []OverlapWindow {
	return DetectOverlaps(clipToRange(allocs, r), threshold)
}

// overWindows merges consecutive over-threshold segments into windows.
func overWindows(segs []segment, threshold int) []OverlapWindow {
	var windows []OverlapWindow
	open := false
	for _, seg := range segs {
		if seg.Load <= threshold {
			open = false
			continue
		}
		if open {
			last := &windows[len(windows)-1]
			last.End = seg.End
			if seg.Load > last.PeakPercentage {
				last.PeakPercentage = seg.Load
			}
			continue
		}
		windows = append(windows, OverlapWindow{Start: seg.Start, End: seg.End, PeakPercentage: seg.Load})
		open = true
	}
	return windows
}

func intersectingIDs(allocs []Allocation, r Range) []string {
	ids := make([]string, 0)
	for _, a := range allocs {
		if a.Interval().Overlaps(r) {
			ids = append(ids, a.ID)
		}
	}
	return ids
}
