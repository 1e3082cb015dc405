package internal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// SourceXLSX reads spreadsheets such as those written by ExportXLSX
const SourceXLSX = "xlsx"

// ParseXLSX reads expenses from the first sheet of an Excel workbook.
// The header row must contain Date, Category, Amount and Description (any order, any case).
// Rows with a blank date, category or amount are skipped.
func ParseXLSX(path string) ([]Expense, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening file: %v", ErrIO, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: no sheets found in file", ErrInvalidArgument)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: reading sheet: %v", ErrIO, err)
	}

	// Find header row and column indices
	dateCol, categoryCol, amountCol, descCol := -1, -1, -1, -1
	dataStartRow := -1
	for i, row := range rows {
		for j, cell := range row {
			switch strings.ToLower(strings.TrimSpace(cell)) {
			case "date":
				dateCol = j
			case "category":
				categoryCol = j
			case "amount":
				amountCol = j
			case "description":
				descCol = j
			}
		}
		if dateCol >= 0 && categoryCol >= 0 && amountCol >= 0 && descCol >= 0 {
			dataStartRow = i + 1
			break
		}
		dateCol, categoryCol, amountCol, descCol = -1, -1, -1, -1
	}

	if dataStartRow < 0 {
		return nil, fmt.Errorf("%w: could not find required columns (Date, Category, Amount, Description)", ErrInvalidArgument)
	}

	var expenses []Expense
	for i := dataStartRow; i < len(rows); i++ {
		row := rows[i]

		dateStr := cellAt(row, dateCol)
		category := cellAt(row, categoryCol)
		amountStr := cellAt(row, amountCol)
		description := cellAt(row, descCol)

		// Skip empty and summary rows
		if dateStr == "" || category == "" || amountStr == "" {
			continue
		}

		date, err := ParseDate(dateStr)
		if err != nil {
			// date-formatted cells display as e.g. "01-10-25", the raw value is a serial
			serialDate, ok := dateFromSerial(f, sheets[0], dateCol, i)
			if !ok {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
			date = serialDate
		}

		amountStr = strings.ReplaceAll(amountStr, ",", ".")
		amount, err := strconv.ParseFloat(amountStr, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: amount %q is not a number", ErrInvalidArgument, i+1, amountStr)
		}

		e, err := NewExpense(date, category, amount, description)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		expenses = append(expenses, e)
	}

	return expenses, nil
}

// dateFromSerial reads the raw value of a cell and interprets it as an Excel date serial
func dateFromSerial(f *excelize.File, sheet string, col, row int) (Date, bool) {
	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return Date{}, false
	}
	raw, err := f.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true})
	if err != nil {
		return Date{}, false
	}
	serial, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || serial <= 0 {
		return Date{}, false
	}
	props, err := f.GetWorkbookProps()
	if err != nil {
		return Date{}, false
	}
	t, err := excelize.ExcelDateToTime(serial, props.Date1904 != nil && *props.Date1904)
	if err != nil {
		return Date{}, false
	}
	return DateOf(t), true
}

// cellAt returns the trimmed cell or "" when the row is shorter than col.
// GetRows drops trailing empty cells.
func cellAt(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
