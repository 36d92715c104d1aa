// Package export builds the monthly attendance report workbook: a
// summary block of label/value pairs, a blank spacer row, then one detail
// row per record of the month.
package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/kintai-app/kintai/core"
	"github.com/kintai-app/kintai/model"
	"github.com/kintai-app/kintai/utils"
)

// UnsettledRemark marks detail rows that are excluded from the totals.
const UnsettledRemark = "not settled, excluded from totals"

var detailHeader = []interface{}{
	"Date", "Clock In", "Clock Out", "Break Min", "Work Min",
	"Break Time", "Work Time", "Remarks",
}

// Filename follows the <label>_<year>-<2-digit month>.<ext> pattern.
func Filename(year, month int) string {
	return fmt.Sprintf("attendance_monthly_%04d-%02d.xlsx", year, month)
}

// BuildMonthlyReport renders one month of a record set into a workbook.
// Callers own closing the returned file.
func BuildMonthlyReport(set model.RecordSet, year, month int) (*excelize.File, error) {
	summary := core.Summarize(set, year, month)
	records := core.MonthRecords(set, year, month)

	f := excelize.NewFile()
	sheet := fmt.Sprintf("Report %04d-%02d", year, month)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	row := 1
	writeRow := func(values []interface{}) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
		row++
		return nil
	}

	summaryRows := [][]interface{}{
		{"Item", "Value"},
		{"Target month", utils.MonthKey(year, month)},
		{"Work days (settled)", summary.WorkDays},
		{"Total work time", utils.FormatDuration(summary.TotalWorkMinutes)},
		{"Total break time", utils.FormatDuration(summary.TotalBreakMinutes)},
		{"Average work time", utils.FormatDuration(summary.AvgWorkMinutes)},
		{"Note", "rows without a clock-out are excluded from totals"},
	}
	for _, r := range summaryRows {
		if err := writeRow(r); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write summary: %w", err)
		}
	}

	// Spacer between the summary block and the detail table.
	row++

	if err := writeRow(detailHeader); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write detail header: %w", err)
	}
	for _, rec := range records {
		breakMin := core.BreakMinutes(rec)
		workMin := 0
		if rec.Settled() {
			workMin = core.NetWorkMinutes(rec, time.Time{})
		}
		remark := ""
		if !rec.Settled() {
			remark = UnsettledRemark
		}
		values := []interface{}{
			rec.Date,
			utils.FormatTimeHHMM(rec.ClockIn),
			utils.FormatTimeHHMM(rec.ClockOut),
			breakMin,
			workMin,
			utils.FormatDuration(breakMin),
			utils.FormatDuration(workMin),
			remark,
		}
		if err := writeRow(values); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write detail row: %w", err)
		}
	}

	widths := []float64{12, 18, 18, 10, 10, 12, 12, 28}
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	return f, nil
}
