package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"call-insights-go/internal/types"
)

var exportHeader = []string{
	"Manager", "Department", "Calls", "Avg interruption rate, %",
	"Avg talk/listen ratio", "Severity",
}

// WriteXLSX writes the communication report as a workbook, one manager per
// row in ranked order.
func WriteXLSX(w io.Writer, aggs []types.ManagerAggregate) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Communication"
	f.SetSheetName(f.GetSheetName(0), sheet)

	for col, h := range exportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for i, a := range aggs {
		row := i + 2
		values := []any{
			a.Manager, a.Department, a.CallsCount,
			a.AvgInterruptionRate, a.AvgTalkListenRatio, string(a.Severity),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return fmt.Errorf("cell %d,%d: %w", col+1, row, err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("write row %d: %w", row, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
