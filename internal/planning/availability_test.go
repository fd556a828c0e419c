package planning_test

import (
	"testing"

	"github.com/rpggio/staffplan/internal/planning"
	"github.com/stretchr/testify/require"
)

func TestAvailability_JanuaryScenario(t *testing.T) {
	windows, err := planning.Availability(januaryFixture(), span("2024-01-01", "2024-01-31"))
	require.NoError(t, err)
	require.Equal(t, []planning.AvailabilityWindow{
		{Start: d("2024-01-01"), End: d("2024-01-09"), Load: 60, MaxAllocation: 40},
		{Start: d("2024-01-10"), End: d("2024-01-15"), Load: 110, MaxAllocation: 0},
		{Start: d("2024-01-16"), End: d("2024-01-31"), Load: 50, MaxAllocation: 50},
	}, windows)
}

func TestAvailability_NoAllocations(t *testing.T) {
	windows, err := planning.Availability(nil, span("2024-01-01", "2024-01-31"))
	require.NoError(t, err)
	require.Equal(t, []planning.AvailabilityWindow{
		{Start: d("2024-01-01"), End: d("2024-01-31"), Load: 0, MaxAllocation: 100},
	}, windows)
}

func TestAvailability_ClipsAndPads(t *testing.T) {
	windows, err := planning.Availability([]planning.Allocation{
		alloc("A", "X", "2023-12-01", "2024-02-28", 30),
	}, span("2024-01-01", "2024-01-31"))
	require.NoError(t, err)
	require.Equal(t, []planning.AvailabilityWindow{
		{Start: d("2024-01-01"), End: d("2024-01-31"), Load: 30, MaxAllocation: 70},
	}, windows)

	windows, err = planning.Availability([]planning.Allocation{
		alloc("A", "X", "2024-01-05", "2024-01-10", 100),
	}, span("2024-01-01", "2024-01-15"))
	require.NoError(t, err)
	require.Equal(t, []planning.AvailabilityWindow{
		{Start: d("2024-01-01"), End: d("2024-01-04"), Load: 0, MaxAllocation: 100},
		{Start: d("2024-01-05"), End: d("2024-01-10"), Load: 100, MaxAllocation: 0},
		{Start: d("2024-01-11"), End: d("2024-01-15"), Load: 0, MaxAllocation: 100},
	}, windows)
}

func TestAvailability_MergesEqualAdjacentLoads(t *testing.T) {
	windows, err := planning.Availability([]planning.Allocation{
		alloc("A", "X", "2024-01-01", "2024-01-10", 50),
		alloc("B", "X", "2024-01-11", "2024-01-20", 50),
	}, span("2024-01-01", "2024-01-20"))
	require.NoError(t, err)
	require.Len(t, windows, 1)
	require.Equal(t, 50, windows[0].MaxAllocation)
}

func TestAvailability_InvalidRange(t *testing.T) {
	_, err := planning.Availability(nil, span("2024-01-31", "2024-01-01"))
	require.ErrorIs(t, err, planning.ErrInvalidInterval)
}

func TestAvailability_CoversRangeAndMatchesDailyWorkload(t *testing.T) {
	allocs := []planning.Allocation{
		alloc("A", "X", "2024-01-03", "2024-01-15", 40),
		alloc("B", "X", "2024-01-10", "2024-02-02", 35),
		alloc("C", "X", "2024-01-12", "2024-01-12", 80),
		alloc("D", "X", "2024-01-20", "2024-01-25", 10),
	}
	r := span("2024-01-01", "2024-01-31")

	windows, err := planning.Availability(allocs, r)
	require.NoError(t, err)
	daily, err := planning.AggregateWorkload(allocs, r, planning.WorkloadOptions{Granularity: planning.GranularityDay})
	require.NoError(t, err)

	require.True(t, windows[0].Start.Equal(r.Start))
	require.True(t, windows[len(windows)-1].End.Equal(r.End))
	for i, w := range windows {
		require.False(t, w.Start.After(w.End))
		if i > 0 {
			require.True(t, windows[i-1].End.AddDays(1).Equal(w.Start))
		}
		for day := w.Start; !day.After(w.End); day = day.AddDays(1) {
			load := daily.Load(planning.DaysBetween(r.Start, day), "X")
			require.Equal(t, load, w.Load, "day %s", day)
			require.Equal(t, max(0, 100-load), w.MaxAllocation)
		}
	}
}
