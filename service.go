package sheetgrid

import "context"

// IdentifierKind is the interpretation used to open a document
type IdentifierKind int

const (
	ByKey IdentifierKind = iota
	ByName
	ByURL
)

// identifierOrder is the priority in which ConnectDocument tries kinds
var identifierOrder = []IdentifierKind{ByKey, ByName, ByURL}

func (k IdentifierKind) String() string {
	switch k {
	case ByKey:
		return "key"
	case ByName:
		return "name"
	case ByURL:
		return "url"
	default:
		return "unknown"
	}
}

// Service is the remote sheet service the client reads from and writes to.
// Lookups that do not resolve return ErrNotFound.
type Service interface {
	// Open resolves identifier as a document of the given kind
	Open(ctx context.Context, identifier string, kind IdentifierKind) (Document, error)
}

// Document is an opened spreadsheet document
type Document interface {
	// Worksheet resolves a sheet by its title
	Worksheet(ctx context.Context, name string) (Worksheet, error)

	// WorksheetByIndex resolves a sheet by its 0-based position
	WorksheetByIndex(ctx context.Context, index int) (Worksheet, error)
}

// Worksheet is a single sheet inside a document
type Worksheet interface {
	// FetchAllValues returns every cell value of the sheet, row by row
	FetchAllValues(ctx context.Context) ([][]string, error)

	// WriteCells writes the edits in order; later edits win
	WriteCells(ctx context.Context, edits []CellEdit) error

	// DeleteRows removes the given 1-based rows (ascending, unique)
	DeleteRows(ctx context.Context, indices []int) error

	// DeleteColumns removes the given 1-based columns (ascending, unique)
	DeleteColumns(ctx context.Context, indices []int) error
}

// ServiceFactory builds a Service from credentials. It is called once by New.
type ServiceFactory func(ctx context.Context, creds Credentials) (Service, error)
