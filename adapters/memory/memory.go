// Package memory provides an in-process sheetgrid.Service. Documents and
// sheets live in memory, which makes it suitable for tests and offline use.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/ideamans/go-sheetgrid"
)

// Service implements sheetgrid.Service over in-memory documents
type Service struct {
	mu        sync.Mutex
	documents []*Document
}

// New creates a Service holding docs
func New(docs ...*Document) *Service {
	return &Service{documents: docs}
}

// Factory returns a sheetgrid.ServiceFactory that always yields s.
// Credentials are accepted but not inspected.
func Factory(s *Service) sheetgrid.ServiceFactory {
	return func(ctx context.Context, creds sheetgrid.Credentials) (sheetgrid.Service, error) {
		return s, nil
	}
}

// Add registers a document
func (s *Service) Add(doc *Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents = append(s.documents, doc)
}

// Open implements sheetgrid.Service
func (s *Service) Open(ctx context.Context, identifier string, kind sheetgrid.IdentifierKind) (sheetgrid.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, doc := range s.documents {
		var match bool
		switch kind {
		case sheetgrid.ByKey:
			match = doc.Key != "" && doc.Key == identifier
		case sheetgrid.ByName:
			match = doc.Name != "" && doc.Name == identifier
		case sheetgrid.ByURL:
			match = doc.URL != "" && doc.URL == identifier
		}
		if match {
			return doc, nil
		}
	}
	return nil, sheetgrid.ErrNotFound
}

// Document is an in-memory spreadsheet document
type Document struct {
	Key    string
	Name   string
	URL    string
	Sheets []*Sheet
}

// NewDocument creates a document reachable by key, name and url. Empty
// identifiers never match.
func NewDocument(key, name, url string, sheets ...*Sheet) *Document {
	return &Document{Key: key, Name: name, URL: url, Sheets: sheets}
}

// Worksheet implements sheetgrid.Document
func (d *Document) Worksheet(ctx context.Context, name string) (sheetgrid.Worksheet, error) {
	for _, sh := range d.Sheets {
		if sh.Title == name {
			return sh, nil
		}
	}
	return nil, sheetgrid.ErrNotFound
}

// WorksheetByIndex implements sheetgrid.Document
func (d *Document) WorksheetByIndex(ctx context.Context, index int) (sheetgrid.Worksheet, error) {
	if index < 0 || index >= len(d.Sheets) {
		return nil, sheetgrid.ErrNotFound
	}
	return d.Sheets[index], nil
}

// Sheet is an in-memory worksheet. The exported error fields make the
// matching operation fail when set.
type Sheet struct {
	Title string

	FetchErr  error
	WriteErr  error
	DeleteErr error

	mu      sync.Mutex
	values  [][]string
	fetches int
	writes  [][]sheetgrid.CellEdit
}

// NewSheet creates a sheet holding a copy of values
func NewSheet(title string, values [][]string) *Sheet {
	return &Sheet{Title: title, values: copyValues(values)}
}

// Values returns a copy of the sheet contents
func (s *Sheet) Values() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyValues(s.values)
}

// Fetches returns how many times FetchAllValues succeeded
func (s *Sheet) Fetches() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetches
}

// Writes returns every successful WriteCells batch, oldest first
func (s *Sheet) Writes() [][]sheetgrid.CellEdit {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]sheetgrid.CellEdit, len(s.writes))
	for i, w := range s.writes {
		out[i] = append([]sheetgrid.CellEdit(nil), w...)
	}
	return out
}

// FetchAllValues implements sheetgrid.Worksheet
func (s *Sheet) FetchAllValues(ctx context.Context) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FetchErr != nil {
		return nil, s.FetchErr
	}
	s.fetches++
	return copyValues(s.values), nil
}

// WriteCells implements sheetgrid.Worksheet. The grid grows to fit.
func (s *Sheet) WriteCells(ctx context.Context, edits []sheetgrid.CellEdit) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.WriteErr != nil {
		return s.WriteErr
	}
	for _, e := range edits {
		if e.Row < 1 || e.Col < 1 {
			return fmt.Errorf("invalid cell (%d, %d)", e.Row, e.Col)
		}
	}

	for _, e := range edits {
		for len(s.values) < e.Row {
			s.values = append(s.values, []string{})
		}
		row := s.values[e.Row-1]
		for len(row) < e.Col {
			row = append(row, "")
		}
		row[e.Col-1] = e.Value
		s.values[e.Row-1] = row
	}
	s.writes = append(s.writes, append([]sheetgrid.CellEdit(nil), edits...))
	return nil
}

// DeleteRows implements sheetgrid.Worksheet
func (s *Sheet) DeleteRows(ctx context.Context, indices []int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	for _, i := range descending(indices) {
		if i < 1 || i > len(s.values) {
			continue
		}
		s.values = append(s.values[:i-1], s.values[i:]...)
	}
	return nil
}

// DeleteColumns implements sheetgrid.Worksheet
func (s *Sheet) DeleteColumns(ctx context.Context, indices []int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	for _, j := range descending(indices) {
		for r, row := range s.values {
			if j < 1 || j > len(row) {
				continue
			}
			s.values[r] = append(row[:j-1], row[j:]...)
		}
	}
	return nil
}

func descending(indices []int) []int {
	out := append([]int(nil), indices...)
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

func copyValues(values [][]string) [][]string {
	out := make([][]string, len(values))
	for i, row := range values {
		out[i] = append([]string{}, row...)
	}
	return out
}
