package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	xlsxSheetName    = "Results"
	xlsxColumnWidth  = 16
	xlsxFailBgColor  = "FF5900"
	xlsxErrorBgColor = "FFEB9C"
)

var xlsxHeaders = []string{
	"#", "Test", "Method", "URL", "Payload", "Expected status", "Actual status",
	"Success", "Outcome", "Response", "Error", "Duration (ms)", "Timestamp", "curl",
}

// WriteXLSX writes the report as a spreadsheet: one row per result, failed rows filled
// red, transport and parse errors filled yellow, and the totals below the table.
func WriteXLSX(path string, r Report) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if _, err := f.NewSheet(xlsxSheetName); err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(0)

	lastColumn, err := excelize.ColumnNumberToName(len(xlsxHeaders))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(xlsxSheetName, "A", lastColumn, xlsxColumnWidth); err != nil {
		return err
	}

	failStyle, err := fillStyle(f, xlsxFailBgColor)
	if err != nil {
		return err
	}
	errorStyle, err := fillStyle(f, xlsxErrorBgColor)
	if err != nil {
		return err
	}

	for i, header := range xlsxHeaders {
		if err := setCell(f, i+1, 1, header); err != nil {
			return err
		}
	}

	for i, result := range r.Results {
		row := i + 2
		var actual interface{} = ""
		if status, ok := result.ActualStatus.Get(); ok {
			actual = status
		}
		cells := []interface{}{
			i + 1,
			result.TestName,
			result.Method,
			result.URL,
			result.Payload.JSONString(),
			result.ExpectedStatus,
			actual,
			result.Success,
			string(result.Outcome),
			result.Response.JSONString(),
			result.Error,
			result.DurationMS,
			result.Timestamp,
			result.Curl,
		}
		for col, value := range cells {
			if err := setCell(f, col+1, row, value); err != nil {
				return err
			}
		}

		style := 0
		switch {
		case result.Outcome == OutcomeTransportError || result.Outcome == OutcomeMalformedBody:
			style = errorStyle
		case !result.Success:
			style = failStyle
		}
		if style != 0 {
			first, _ := excelize.CoordinatesToCellName(1, row)
			last, _ := excelize.CoordinatesToCellName(len(cells), row)
			if err := f.SetCellStyle(xlsxSheetName, first, last, style); err != nil {
				return err
			}
		}
	}

	summaryRow := len(r.Results) + 3
	summary := []interface{}{
		"Summary",
		fmt.Sprintf("Total: %d", r.Total),
		fmt.Sprintf("Passed: %d", r.Passed),
		fmt.Sprintf("Failed: %d", r.Failed),
		fmt.Sprintf("Success rate: %.1f%%", r.SuccessRate),
	}
	for i, value := range summary {
		if err := setCell(f, 1, summaryRow+i, value); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("writing spreadsheet %s: %w", path, err)
	}
	return nil
}

func setCell(f *excelize.File, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(xlsxSheetName, cell, value)
}

func fillStyle(f *excelize.File, color string) (int, error) {
	return f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{color},
		},
	})
}
