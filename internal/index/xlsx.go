package index

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Documents"

// writeXLSX renders the index as an Excel workbook with the same column
// layout as the CSV sink.
func writeXLSX(path string, records []Record, withMeta bool) error {
	f := excelize.NewFile()
	if index, _ := f.GetSheetIndex(sheetName); index == -1 {
		if _, err := f.NewSheet(sheetName); err != nil {
			return err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheetName)
	f.SetActiveSheet(activeIndex)

	for i, h := range columns(withMeta) {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, h)
	}

	for i, rec := range records {
		for col, v := range recordRow(rec, withMeta) {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			_ = f.SetCellValue(sheetName, cell, v)
		}
	}

	// Widen the path, summary and name columns
	_ = f.SetColWidth(sheetName, "A", "A", 60)
	_ = f.SetColWidth(sheetName, "B", "B", 28)
	_ = f.SetColWidth(sheetName, "C", "C", 64)
	_ = f.SetColWidth(sheetName, "D", "E", 32)
	_ = f.SetColWidth(sheetName, "F", "G", 14)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return f.Close()
}

func readXLSX(path string) ([]Record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read index sheet: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	withMeta := len(rows[0]) >= len(baseColumns)+len(metaColumns)
	var records []Record
	for _, row := range rows[1:] {
		if len(row) < len(baseColumns) {
			// excelize drops trailing empty cells; pad to full width
			padded := make([]string, len(baseColumns))
			copy(padded, row)
			row = padded
		}
		records = append(records, rowRecord(row, withMeta))
	}
	return records, nil
}
