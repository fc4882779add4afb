package report

import (
	"fmt"

	"github.com/turbo-fm/facility-backend-go/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet   = "Summary"
	breakdownSheet = "Breakdown"
)

var (
	summaryHeader = []interface{}{
		"Person ID", "Name", "Department", "Total Days", "Present", "Absent",
		"On Time", "Late", "Left Early", "Late & Early", "Manual Edits",
	}
	breakdownHeader = []interface{}{
		"Date", "Day Type", "Person ID", "Name", "Department",
		"Shift In", "Shift Out", "Actual", "Status", "Flag",
	}
)

// renderWorkbook writes the summary and the daily breakdown into one XLSX file.
func renderWorkbook(r report.AttendanceReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(breakdownSheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}

	summaryRows := make([][]interface{}, 0, len(r.Summary))
	for _, s := range r.Summary {
		summaryRows = append(summaryRows, []interface{}{
			s.PersonID, s.Name, s.Department, s.TotalDays, s.Present, s.Absent,
			s.OnTime, s.Late, s.LeftEarly, s.LateAndLeftEarly, s.ManualEditCount,
		})
	}
	if err := writeSheet(f, summarySheet, summaryHeader, summaryRows, headerStyle); err != nil {
		return nil, err
	}

	breakdownRows := make([][]interface{}, 0, len(r.Breakdown))
	for _, b := range r.Breakdown {
		breakdownRows = append(breakdownRows, []interface{}{
			b.Date, b.DayType, b.PersonID, b.Name, b.Department,
			b.ShiftIn, b.ShiftOut, b.ActualRange, b.Status, b.Flag,
		})
	}
	if err := writeSheet(f, breakdownSheet, breakdownHeader, breakdownRows, headerStyle); err != nil {
		return nil, err
	}

	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, header []interface{}, rows [][]interface{}, headerStyle int) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
		return err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+2, err)
		}
	}

	if err := f.SetColWidth(sheet, "A", lastCol, 16); err != nil {
		return err
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}
