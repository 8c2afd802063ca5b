package ingestion

import (
	"fmt"
	"strings"

	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"
)

// readXLSX extracts every sheet of an OOXML workbook as a plain-text table.
func readXLSX(path, name string) (string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	var sb strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("failed to read sheet %s: %w", sheet, err)
		}
		sb.WriteString(fmt.Sprintf("\n\n--- FILE: %s | SHEET: %s ---\n%s", name, sheet, renderTable(rows)))
	}

	return sb.String(), nil
}

// readXLS extracts every sheet of a legacy BIFF workbook as a plain-text table.
func readXLS(path, name string) (string, error) {
	workbook, err := xls.OpenFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to open workbook: %w", err)
	}

	var sb strings.Builder
	for i := 0; i < workbook.GetNumberSheets(); i++ {
		sheet, err := workbook.GetSheet(i)
		if err != nil {
			return "", fmt.Errorf("failed to read sheet %d: %w", i, err)
		}

		var rows [][]string
		for r := 0; r <= sheet.GetNumberRows(); r++ {
			row, err := sheet.GetRow(r)
			if err != nil {
				continue
			}
			cols := row.GetCols()
			cells := make([]string, 0, len(cols))
			for _, col := range cols {
				cells = append(cells, col.GetString())
			}
			rows = append(rows, cells)
		}

		sb.WriteString(fmt.Sprintf("\n\n--- FILE: %s | SHEET: %s ---\n%s", name, sheet.GetName(), renderTable(rows)))
	}

	return sb.String(), nil
}
