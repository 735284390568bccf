package sheetgrid

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// LabelToIndex converts a column label ("A", "aa") to its 1-based number
func LabelToIndex(label string) (int, error) {
	label = strings.ToUpper(strings.TrimSpace(label))
	if label == "" {
		return 0, invalidArgument("empty column label")
	}
	for _, r := range label {
		if r < 'A' || r > 'Z' {
			return 0, invalidArgument("invalid column label %q", label)
		}
	}
	n, err := excelize.ColumnNameToNumber(label)
	if err != nil {
		return 0, invalidArgument("column label %q: %v", label, err)
	}
	return n, nil
}

// ColumnLetter converts a 1-based column number to its label (1 -> A, 27 -> AA)
func ColumnLetter(col int) (string, error) {
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return "", invalidArgument("column %d: %v", col, err)
	}
	return name, nil
}

// IndexToLabel converts 1-based row and column numbers to an A1 address
func IndexToLabel(row, col int) (string, error) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", invalidArgument("cell (%d, %d): %v", row, col, err)
	}
	return cell, nil
}

// A1ToRowCol converts an A1 address ("B3", "$B$3") to 1-based row and column
func A1ToRowCol(a1 string) (row, col int, err error) {
	ref := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(a1), "$", ""))
	col, row, err = excelize.CellNameToCoordinates(ref)
	if err != nil {
		return 0, 0, invalidArgument("cell reference %q: %v", a1, err)
	}
	return row, col, nil
}
