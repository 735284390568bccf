package excel

import "errors"

var (
	// ErrInvalidDir is returned when the workbook directory cannot be resolved
	ErrInvalidDir = errors.New("invalid workbook directory")

	// ErrInvalidFileFormat is returned when the file is not a valid Excel file
	ErrInvalidFileFormat = errors.New("invalid Excel file format")
)
