package planning

// AvailabilityWindow is a run of days with constant load inside a query range.
type AvailabilityWindow struct {
	Start         Date `json:"start"`
	End           Date `json:"end"`
	Load          int  `json:"load"`
	MaxAllocation int  `json:"max_allocation"`
}

// Availability partitions r at every point where the summed load of allocs
// changes and reports the remaining capacity of each part. The parts are
// contiguous, do not overlap, and cover r exactly. allocs is expected to
// hold one employee's allocations.
func Availability(allocs []Allocation, r Range) ([]AvailabilityWindow, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	segs := coverRange(loadProfile(clipToRange(allocs, r)), r)
	windows := make([]AvailabilityWindow, 0, len(segs))
	for _, seg := range segs {
		windows = append(windows, AvailabilityWindow{
			Start:         seg.Start,
			End:           seg.End,
			Load:          seg.Load,
			MaxAllocation: remaining(seg.Load),
		})
	}
	return windows, nil
}

// coverRange pads a profile lying inside r with zero-load segments so that
// the result spans r from start to end.
func coverRange(segs []segment, r Range) []segment {
	var out []segment
	cursor := r.Start
	for _, seg := range segs {
		if seg.Start.After(cursor) {
			out = appendSegment(out, segment{Start: cursor, End: seg.Start.AddDays(-1)})
		}
		out = appendSegment(out, seg)
		cursor = seg.End.AddDays(1)
	}
	if !cursor.After(r.End) {
		out = appendSegment(out, segment{Start: cursor, End: r.End})
	}
	return out
}

func remaining(load int) int {
	if load >= FullCapacity {
		return 0
	}
	return FullCapacity - load
}
