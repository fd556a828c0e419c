package planning

// Level buckets a workload value for heatmap display.
type Level string

const (
	LevelNone   Level = "none"
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
	LevelOver   Level = "over"
)

// Classify maps a load to its heatmap level: 0, <=50, <=80, <=100, >100.
func Classify(load int) Level {
	switch {
	case load <= 0:
		return LevelNone
	case load <= 50:
		return LevelLow
	case load <= 80:
		return LevelMedium
	case load <= FullCapacity:
		return LevelHigh
	default:
		return LevelOver
	}
}

// DayStatus describes a calendar day's allocation.
type DayStatus string

const (
	DayFree    DayStatus = "free"
	DayPartial DayStatus = "partial"
	DayFull    DayStatus = "full"
	DayOver    DayStatus = "over"
)

// CalendarStatus maps a daily load to its calendar status.
func CalendarStatus(load int) DayStatus {
	switch {
	case load <= 0:
		return DayFree
	case load < FullCapacity:
		return DayPartial
	case load == FullCapacity:
		return DayFull
	default:
		return DayOver
	}
}
