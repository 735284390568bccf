package sheetgrid

import (
	"fmt"
	"strings"
)

// Values is the payload of a commit: either OrderedValues or KeyedValues.
type Values interface {
	isValues()
}

// OrderedValues are placed positionally, first value first
type OrderedValues []string

// KeyedValues are placed by matching each key against the header labels
type KeyedValues map[string]string

func (OrderedValues) isValues() {}
func (KeyedValues) isValues()   {}

// Credentials is what a ServiceFactory authenticates with: either
// CredentialsFile or CredentialsMap.
type Credentials interface {
	isCredentials()
}

// CredentialsFile is a path to a JSON key file
type CredentialsFile string

// CredentialsMap is a parsed JSON key
type CredentialsMap map[string]string

func (CredentialsFile) isCredentials() {}
func (CredentialsMap) isCredentials()  {}

func validateCredentials(creds Credentials) error {
	switch c := creds.(type) {
	case CredentialsFile:
		if strings.TrimSpace(string(c)) == "" || strings.ContainsAny(string(c), "\r\n\x00") {
			return &SetupError{Reason: fmt.Sprintf("invalid credentials file path %q", string(c))}
		}
	case CredentialsMap:
		if len(c) == 0 {
			return &SetupError{Reason: "invalid credentials: empty credential mapping"}
		}
	case nil:
		return &SetupError{Reason: "invalid credentials: none provided"}
	default:
		return &SetupError{Reason: fmt.Sprintf("invalid credentials of type %T", creds)}
	}
	return nil
}

// SheetRef selects a worksheet: either SheetName or SheetIndex.
type SheetRef interface {
	isSheetRef()
}

// SheetName selects a worksheet by title
type SheetName string

// SheetIndex selects a worksheet by 0-based position
type SheetIndex int

func (SheetName) isSheetRef()  {}
func (SheetIndex) isSheetRef() {}

// ColumnRef selects a column: either ColumnLabel or ColumnIndex.
type ColumnRef interface {
	isColumnRef()
}

// ColumnLabel is a column in letter notation ("A", "bc")
type ColumnLabel string

// ColumnIndex is a 0-based column offset
type ColumnIndex int

func (ColumnLabel) isColumnRef() {}
func (ColumnIndex) isColumnRef() {}

// resolveColumn converts ref to a 0-based offset
func resolveColumn(ref ColumnRef) (int, error) {
	switch c := ref.(type) {
	case ColumnLabel:
		n, err := LabelToIndex(string(c))
		if err != nil {
			return 0, err
		}
		return n - 1, nil
	case ColumnIndex:
		if c < 0 {
			return 0, invalidArgument("negative column index %d", int(c))
		}
		return int(c), nil
	default:
		return 0, invalidArgument("invalid column identifier of type %T", ref)
	}
}
