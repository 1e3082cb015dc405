package internal

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExportSheet is the sheet name ExportXLSX writes to
const ExportSheet = "Expenses"

var exportHeader = []string{"#", "Date", "Category", "Amount", "Description"}

// ExportXLSX writes the ledger to an Excel workbook with a header, one row per expense
// and a total row. The result can be read back with ParseXLSX.
func ExportXLSX(l *Ledger, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ExportSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating style: %w", err)
	}

	for col, title := range exportHeader {
		if err := setCell(f, col+1, 1, title); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(ExportSheet, "A1", "E1", bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	line := 2
	for row, e := range l.Rows() {
		values := []any{row, e.Date.String(), e.Category, e.Amount, e.Description}
		for col, v := range values {
			if err := setCell(f, col+1, line, v); err != nil {
				return err
			}
		}
		line++
	}

	if err := setCell(f, 3, line, "Total"); err != nil {
		return err
	}
	if err := setCell(f, 4, line, l.SummarizeAll()); err != nil {
		return err
	}
	totalCell, _ := excelize.CoordinatesToCellName(3, line)
	totalValue, _ := excelize.CoordinatesToCellName(4, line)
	if err := f.SetCellStyle(ExportSheet, totalCell, totalValue, bold); err != nil {
		return fmt.Errorf("styling total: %w", err)
	}

	if err := f.SetColWidth(ExportSheet, "B", "C", 14); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}
	if err := f.SetColWidth(ExportSheet, "E", "E", 40); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("%w: saving %s: %v", ErrIO, path, err)
	}
	return nil
}

func setCell(f *excelize.File, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetCellValue(ExportSheet, cell, value); err != nil {
		return fmt.Errorf("writing cell %s: %w", cell, err)
	}
	return nil
}
