// Package export renders staffing views as spreadsheets.
package export

import (
	"fmt"
	"io"

	"github.com/rpggio/staffplan/internal/domain/staffing"
	"github.com/rpggio/staffplan/internal/planning"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the heatmap.
const SheetName = "Workload"

// LevelColors are the cell fills per workload level.
var LevelColors = map[planning.Level]string{
	planning.LevelNone:   "#FFFFFF",
	planning.LevelLow:    "#C6EFCE",
	planning.LevelMedium: "#FFEB9C",
	planning.LevelHigh:   "#F4B183",
	planning.LevelOver:   "#FF7C80",
}

var levelOrder = []planning.Level{
	planning.LevelNone,
	planning.LevelLow,
	planning.LevelMedium,
	planning.LevelHigh,
	planning.LevelOver,
}

// HeatmapWorkbook builds a workbook with one header row of bucket start
// dates and one row per employee. Callers must Close the returned file.
func HeatmapWorkbook(hm staffing.Heatmap) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := fillHeatmap(f, hm); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// WriteHeatmap writes the heatmap workbook as XLSX to w.
func WriteHeatmap(w io.Writer, hm staffing.Heatmap) error {
	f, err := HeatmapWorkbook(hm)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func fillHeatmap(f *excelize.File, hm staffing.Heatmap) error {
	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	styles := make(map[planning.Level]int, len(levelOrder))
	for _, level := range levelOrder {
		id, err := f.NewStyle(&excelize.Style{
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{LevelColors[level]}},
			Alignment: &excelize.Alignment{Horizontal: "center"},
		})
		if err != nil {
			return fmt.Errorf("create %s style: %w", level, err)
		}
		styles[level] = id
	}

	if err := setCell(f, 1, 1, "Employee", header); err != nil {
		return err
	}
	for i, b := range hm.Buckets {
		if err := setCell(f, i+2, 1, b.Start.String(), header); err != nil {
			return err
		}
	}

	for r, row := range hm.Rows {
		line := r + 2
		if err := setCell(f, 1, line, row.Name, 0); err != nil {
			return err
		}
		for c, cell := range row.Cells {
			if err := setCell(f, c+2, line, cell.Load, styles[cell.Level]); err != nil {
				return err
			}
		}
	}

	if err := f.SetColWidth(SheetName, "A", "A", 28); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	if len(hm.Buckets) > 0 {
		last, err := excelize.ColumnNumberToName(len(hm.Buckets) + 1)
		if err != nil {
			return fmt.Errorf("column name: %w", err)
		}
		if err := f.SetColWidth(SheetName, "B", last, 12); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}
	return f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		XSplit:      1,
		YSplit:      1,
		TopLeftCell: "B2",
		ActivePane:  "bottomRight",
	})
}

func setCell(f *excelize.File, col, row int, value interface{}, style int) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetCellValue(SheetName, cell, value); err != nil {
		return fmt.Errorf("set %s: %w", cell, err)
	}
	if style == 0 {
		return nil
	}
	if err := f.SetCellStyle(SheetName, cell, cell, style); err != nil {
		return fmt.Errorf("style %s: %w", cell, err)
	}
	return nil
}
