package export

import (
	"bytes"
	"testing"

	"github.com/rpggio/staffplan/internal/domain/staffing"
	"github.com/rpggio/staffplan/internal/planning"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleHeatmap() staffing.Heatmap {
	week := func(start string) planning.Bucket {
		s := planning.MustParseDate(start)
		return planning.Bucket{Start: s, End: s.AddDays(6)}
	}
	return staffing.Heatmap{
		Granularity: planning.GranularityWeek,
		Buckets:     []planning.Bucket{week("2024-01-01"), week("2024-01-08")},
		Rows: []staffing.HeatmapRow{
			{EmployeeID: "e1", Name: "Ada Lovelace", Cells: []staffing.HeatmapCell{
				{Load: 60, Level: planning.LevelMedium},
				{Load: 110, Level: planning.LevelOver},
			}},
			{EmployeeID: "e2", Name: "Alan Turing", Cells: []staffing.HeatmapCell{
				{Load: 0, Level: planning.LevelNone},
				{Load: 20, Level: planning.LevelLow},
			}},
		},
	}
}

func TestWriteHeatmap(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHeatmap(&buf, sampleHeatmap()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, SheetName, f.GetSheetName(0))

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"Employee", "2024-01-01", "2024-01-08"},
		{"Ada Lovelace", "60", "110"},
		{"Alan Turing", "0", "20"},
	}, rows)
}

func TestHeatmapWorkbook_LevelFills(t *testing.T) {
	f, err := HeatmapWorkbook(sampleHeatmap())
	require.NoError(t, err)
	defer f.Close()

	fill := func(cell string) string {
		id, err := f.GetCellStyle(SheetName, cell)
		require.NoError(t, err)
		style, err := f.GetStyle(id)
		require.NoError(t, err)
		require.NotEmpty(t, style.Fill.Color, "cell %s has no fill", cell)
		return style.Fill.Color[0]
	}

	require.NotEqual(t, fill("B2"), fill("C2"), "medium and over differ")
	require.NotEqual(t, fill("C3"), fill("C2"), "low and over differ")

	over, err := f.GetCellStyle(SheetName, "C2")
	require.NoError(t, err)
	low, err := f.GetCellStyle(SheetName, "C3")
	require.NoError(t, err)
	require.NotEqual(t, over, low)
}

func TestWriteHeatmap_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHeatmap(&buf, staffing.Heatmap{}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Equal(t, [][]string{{"Employee"}}, rows)
}
