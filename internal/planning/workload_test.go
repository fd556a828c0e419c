package planning_test

import (
	"testing"
	"time"

	"github.com/rpggio/staffplan/internal/planning"
	"github.com/stretchr/testify/require"
)

func TestAggregateWorkload_Weekly(t *testing.T) {
	allocs := append(januaryFixture(), alloc("C", "Y", "2024-01-03", "2024-01-03", 20))

	w, err := planning.AggregateWorkload(allocs, span("2024-01-01", "2024-01-14"), planning.WorkloadOptions{
		Granularity: planning.GranularityWeek,
		WeekStart:   time.Monday,
	})
	require.NoError(t, err)
	require.Equal(t, []string{"X", "Y"}, w.Employees)
	require.Len(t, w.Buckets, 2)

	require.Equal(t, "2024-01-01", w.Buckets[0].BucketStart.String())
	require.Equal(t, "2024-01-07", w.Buckets[0].BucketEnd.String())
	require.Equal(t, 60, w.Load(0, "X"))
	require.Equal(t, 20, w.Load(0, "Y"))

	require.Equal(t, "2024-01-08", w.Buckets[1].BucketStart.String())
	require.Equal(t, 110, w.Load(1, "X"))
	require.Equal(t, 0, w.Load(1, "Y"))
	require.Contains(t, w.Buckets[1].PerEmployee, "Y")
}

func TestAggregateWorkload_WeekAlignment(t *testing.T) {
	cases := []struct {
		name      string
		weekStart time.Weekday
		first     string
	}{
		{"monday", time.Monday, "2024-01-01"},
		{"sunday", time.Sunday, "2023-12-31"},
		{"wednesday", time.Wednesday, "2024-01-03"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, err := planning.AggregateWorkload(nil, span("2024-01-03", "2024-01-20"), planning.WorkloadOptions{
				WeekStart: tc.weekStart,
			})
			require.NoError(t, err)
			require.Equal(t, planning.GranularityWeek, w.Granularity)
			require.Equal(t, tc.first, w.Buckets[0].BucketStart.String())
			require.True(t, w.Buckets[0].BucketStart.Weekday() == tc.weekStart)
			last := w.Buckets[len(w.Buckets)-1]
			require.False(t, last.BucketEnd.Before(d("2024-01-20")))
		})
	}
}

func TestAggregateWorkload_Daily(t *testing.T) {
	w, err := planning.AggregateWorkload(januaryFixture(), span("2024-01-09", "2024-01-11"), planning.WorkloadOptions{
		Granularity: planning.GranularityDay,
	})
	require.NoError(t, err)
	require.Len(t, w.Buckets, 3)
	require.Equal(t, 60, w.Load(0, "X"))
	require.Equal(t, 110, w.Load(1, "X"))
	require.Equal(t, 110, w.Load(2, "X"))
	require.True(t, w.Buckets[2].BucketStart.Equal(w.Buckets[2].BucketEnd))
}

func TestAggregateWorkload_EmployeeFilter(t *testing.T) {
	allocs := append(januaryFixture(), alloc("C", "Y", "2024-01-01", "2024-01-31", 40))

	w, err := planning.AggregateWorkload(allocs, span("2024-01-01", "2024-01-07"), planning.WorkloadOptions{
		Granularity: planning.GranularityWeek,
		WeekStart:   time.Monday,
		EmployeeIDs: []string{"Z", "Y"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"Z", "Y"}, w.Employees)
	require.Len(t, w.Buckets, 1)
	require.Equal(t, map[string]int{"Z": 0, "Y": 40}, w.Buckets[0].PerEmployee)
}

func TestAggregateWorkload_Errors(t *testing.T) {
	_, err := planning.AggregateWorkload(nil, span("2024-02-01", "2024-01-01"), planning.WorkloadOptions{})
	require.ErrorIs(t, err, planning.ErrInvalidInterval)

	_, err = planning.AggregateWorkload(nil, span("2024-01-01", "2024-02-01"), planning.WorkloadOptions{Granularity: "month"})
	require.ErrorIs(t, err, planning.ErrInvalidGranularity)

	_, err = planning.ParseGranularity("fortnight")
	require.ErrorIs(t, err, planning.ErrInvalidGranularity)
}

func TestAggregateWorkload_MatchesBruteForce(t *testing.T) {
	allocs := []planning.Allocation{
		alloc("A", "X", "2024-01-01", "2024-01-15", 60),
		alloc("B", "X", "2024-01-10", "2024-01-31", 50),
		alloc("C", "Y", "2023-12-20", "2024-01-02", 30),
		alloc("D", "Y", "2024-01-05", "2024-01-05", 100),
		alloc("E", "Y", "2024-01-28", "2024-03-01", 25),
		alloc("F", "X", "2024-02-10", "2024-02-20", 90),
	}
	r := span("2024-01-01", "2024-02-15")

	for _, g := range []planning.Granularity{planning.GranularityDay, planning.GranularityWeek} {
		w, err := planning.AggregateWorkload(allocs, r, planning.WorkloadOptions{Granularity: g, WeekStart: time.Thursday})
		require.NoError(t, err)

		for i, b := range w.Buckets {
			bucket := span(b.BucketStart.String(), b.BucketEnd.String())
			expected := map[string]int{}
			for _, a := range allocs {
				if a.Interval().Overlaps(bucket) {
					expected[a.EmployeeID] += a.Percentage
				}
			}
			for _, id := range w.Employees {
				require.Equal(t, expected[id], w.Load(i, id), "granularity %s bucket %s employee %s", g, bucket, id)
			}
		}
	}
}

func TestAggregateWorkload_CenturiesWide(t *testing.T) {
	r := span("2000-01-01", "2400-12-31")
	allocs := []planning.Allocation{alloc("A", "X", "2399-06-01", "2399-06-01", 40)}

	w, err := planning.AggregateWorkload(allocs, r, planning.WorkloadOptions{Granularity: planning.GranularityWeek, WeekStart: time.Monday})
	require.NoError(t, err)
	require.Len(t, w.Buckets, planning.BucketCount(r, planning.GranularityWeek, time.Monday))

	total := 0
	for i, b := range w.Buckets {
		load := w.Load(i, "X")
		total += load
		if load > 0 {
			require.False(t, b.BucketStart.After(d("2399-06-01")), "bucket %s", b.BucketStart)
			require.False(t, b.BucketEnd.Before(d("2399-06-01")), "bucket %s", b.BucketEnd)
		}
	}
	require.Equal(t, 40, total)
}

func TestBucketCount(t *testing.T) {
	r := span("2024-01-03", "2024-02-15")
	require.Equal(t, len(planning.Buckets(r, planning.GranularityDay, time.Monday)), planning.BucketCount(r, planning.GranularityDay, time.Monday))
	require.Equal(t, len(planning.Buckets(r, planning.GranularityWeek, time.Sunday)), planning.BucketCount(r, planning.GranularityWeek, time.Sunday))
	require.Equal(t, 0, planning.BucketCount(span("2024-03-02", "2024-03-01"), planning.GranularityDay, time.Monday))
}

func TestBuckets_DependOnlyOnRange(t *testing.T) {
	r := span("2024-03-01", "2024-03-31")
	a := planning.Buckets(r, planning.GranularityWeek, time.Monday)
	b := planning.Buckets(r, planning.GranularityWeek, time.Monday)
	require.Equal(t, a, b)
	require.Len(t, planning.Buckets(r, planning.GranularityDay, time.Monday), 31)
	require.Empty(t, planning.Buckets(span("2024-03-02", "2024-03-01"), planning.GranularityDay, time.Monday))
}

func TestParseWeekday(t *testing.T) {
	day, err := planning.ParseWeekday("Mon")
	require.NoError(t, err)
	require.Equal(t, time.Monday, day)

	day, err = planning.ParseWeekday("sunday")
	require.NoError(t, err)
	require.Equal(t, time.Sunday, day)

	_, err = planning.ParseWeekday("someday")
	require.Error(t, err)
}
