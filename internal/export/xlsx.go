package export

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/Danielmituku/solar-challenge-week0/internal/models"
)

const (
	summarySheet = "Summary"
	dailySheet   = "Daily GHI"
)

// WriteSummaryXLSX writes the ranking table to a workbook. When daily is
// non-empty a second sheet holds the daily series.
func WriteSummaryXLSX(w io.Writer, table models.SummaryTable, daily []models.DailyPoint) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return errors.Wrap(err, "rename sheet")
	}

	for i, header := range table.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(summarySheet, cell, header)
		f.SetColWidth(summarySheet, colName(i+1), colName(i+1), 18)
	}

	for r, row := range table.Rows {
		for c, v := range row.Cells() {
			val := cellValue(v)
			if val == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(summarySheet, cell, val); err != nil {
				return errors.Wrapf(err, "set %s", cell)
			}
		}
	}

	if len(daily) > 0 {
		if _, err := f.NewSheet(dailySheet); err != nil {
			return errors.Wrap(err, "add daily sheet")
		}
		f.SetCellValue(dailySheet, "A1", "Country")
		f.SetCellValue(dailySheet, "B1", "Date")
		f.SetCellValue(dailySheet, "C1", "Mean")
		f.SetCellValue(dailySheet, "D1", "Samples")
		for i, p := range daily {
			row := i + 2
			f.SetCellValue(dailySheet, fmt.Sprintf("A%d", row), string(p.Country))
			f.SetCellValue(dailySheet, fmt.Sprintf("B%d", row), p.Date.Format(models.DateLayout))
			f.SetCellValue(dailySheet, fmt.Sprintf("C%d", row), p.Value)
			f.SetCellValue(dailySheet, fmt.Sprintf("D%d", row), p.Samples)
		}
	}

	_, err := f.WriteTo(w)
	return errors.Wrap(err, "write workbook")
}

func colName(n int) string {
	name, _ := excelize.ColumnNumberToName(n)
	return name
}
