package excel

import (
	"bytes"
	"fmt"
	"strconv"

	"firehose-dashboard/internal/dashboard/core/domain"
	"firehose-dashboard/internal/dashboard/core/presenter"

	"github.com/xuri/excelize/v2"
)

const SheetName = "Daily Breakup"

var statusFill = map[domain.Status]string{
	domain.StatusGood:           "#008000",
	domain.StatusNeedsAttention: "#FF0000",
	domain.StatusNoData:         "#808080",
}

// GenerateDailyGrid writes the daily grid and legend of d as an xlsx file.
func GenerateDailyGrid(d *domain.Dashboard) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	title, caption := presenter.TitleText(d.Window)
	if err := f.SetCellValue(SheetName, "A1", title); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(SheetName, "A2", caption); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	cellStyles := make(map[domain.Status]int, len(statusFill))
	for status, color := range statusFill {
		id, err := f.NewStyle(&excelize.Style{
			Font:      &excelize.Font{Color: "#FFFFFF"},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center"},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create %s style: %w", status, err)
		}
		cellStyles[status] = id
	}

	table := presenter.DailyTable(d)
	const headerRow = 4

	for col, name := range table.Columns {
		cell, err := excelize.CoordinatesToCellName(col+1, headerRow)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(SheetName, cell, name); err != nil {
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(SheetName, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	for i, row := range table.Rows {
		r := headerRow + 1 + i
		if err := f.SetCellValue(SheetName, cellName(1, r), row.Label); err != nil {
			return nil, err
		}
		for j, c := range row.Cells {
			cell := cellName(j+2, r)
			if err := f.SetCellValue(SheetName, cell, cellValue(c)); err != nil {
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
			if err := f.SetCellStyle(SheetName, cell, cell, cellStyles[c.Status]); err != nil {
				return nil, fmt.Errorf("failed to style cell %s: %w", cell, err)
			}
		}
	}

	legendRow := headerRow + len(table.Rows) + 2
	if err := f.SetCellValue(SheetName, cellName(1, legendRow), presenter.Legend.Heading); err != nil {
		return nil, err
	}
	for i, item := range presenter.Legend.Items {
		r := legendRow + 1 + i
		cell := cellName(1, r)
		if err := f.SetCellValue(SheetName, cell, item.Label); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(SheetName, cell, cell, cellStyles[item.Status]); err != nil {
			return nil, err
		}
		if err := f.SetCellValue(SheetName, cellName(2, r), item.Meaning); err != nil {
			return nil, err
		}
	}

	if err := f.SetColWidth(SheetName, "A", "A", 14); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(SheetName, "B", "D", 18); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// cellValue keeps present means numeric so the sheet stays sortable.
func cellValue(c presenter.Cell) any {
	if c.Status == domain.StatusNoData {
		return c.Text
	}
	v, err := strconv.ParseFloat(c.Text, 64)
	if err != nil {
		return c.Text
	}
	return v
}
