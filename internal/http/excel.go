package httpapi

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ViniDeiro/daily-icu/internal/domain"

	"github.com/xuri/excelize/v2"
)

// DayHistoryHeader is the export column order.
var DayHistoryHeader = []string{
	"ICU Day",
	"Date",
	"Diagnosis",
	"Secondary Diagnoses",
	"SAPS 3",
	"Neurologic",
	"Respiratory",
	"Cardiovascular",
	"Renal",
	"Gastrointestinal",
	"Infectious",
	"Exam Notes",
	"Vasoactive Drugs",
	"Mechanical Ventilation",
	"Airway",
	"Devices",
	"Daily Plan",
}

// GenerateDayHistoryExport renders the patient's day history as an xlsx
// workbook, newest day first (the order ListDays returns).
func GenerateDayHistoryExport(days []*domain.DayRecord) ([]byte, error) {
	f := excelize.NewFile()
	// Don't defer Close() here, WriteTo needs the file open.

	sheetName := "Day History"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range DayHistoryHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	for rowIdx, day := range days {
		row := rowIdx + 2
		values := dayHistoryRow(day)
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	// Freeze the header row.
	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func dayHistoryRow(day *domain.DayRecord) []any {
	saps3 := ""
	if day.SAPS3 != nil {
		saps3 = fmt.Sprintf("%d", *day.SAPS3)
	}
	return []any{
		day.ICUDay,
		day.Date.Format("2006-01-02"),
		day.Diagnosis,
		day.SecondaryDiagnoses,
		saps3,
		day.Neurologic,
		day.Respiratory,
		day.Cardiovascular,
		day.Renal,
		day.Gastrointestinal,
		day.Infectious,
		day.ExamNotes,
		yesNo(day.VasoactiveDrugs),
		yesNo(day.MechanicalVentilation),
		string(day.Airway),
		strings.Join(day.Devices, ", "),
		day.DailyPlan,
	}
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
