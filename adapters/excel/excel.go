package excel

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/ideamans/go-sheetgrid"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

// Adapter implements the sheetgrid.Service interface for Excel workbooks.
// A document key is a file path, a name is a file inside Config.Dir and a
// url is a file:// URL.
type Adapter struct {
	config *Config
	mu     sync.RWMutex
}

// New creates a new Excel adapter with the given configuration
func New(config *Config) (*Adapter, error) {
	if config == nil {
		config = &Config{}
	}

	// Create a copy of config to avoid external modifications
	configCopy := *config
	if err := configCopy.Validate(); err != nil {
		return nil, err
	}

	return &Adapter{
		config: &configCopy,
	}, nil
}

// Factory returns a sheetgrid.ServiceFactory building an Adapter from
// config. Workbooks need no credentials, so they are not inspected.
func Factory(config *Config) sheetgrid.ServiceFactory {
	return func(ctx context.Context, creds sheetgrid.Credentials) (sheetgrid.Service, error) {
		return New(config)
	}
}

// Open implements sheetgrid.Service
func (a *Adapter) Open(ctx context.Context, identifier string, kind sheetgrid.IdentifierKind) (sheetgrid.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, ok := a.resolvePath(identifier, kind)
	if !ok {
		return nil, sheetgrid.ErrNotFound
	}
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		return nil, sheetgrid.ErrNotFound
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFileFormat, path, err)
	}
	defer f.Close()

	log.Debug().Str("path", path).Stringer("kind", kind).Msg("Opened workbook")
	return &workbook{adapter: a, path: path}, nil
}

func (a *Adapter) resolvePath(identifier string, kind sheetgrid.IdentifierKind) (string, bool) {
	switch kind {
	case sheetgrid.ByKey:
		return identifier, identifier != ""
	case sheetgrid.ByName:
		if a.config.Dir == "" || identifier == "" || filepath.Base(identifier) != identifier {
			return "", false
		}
		name := identifier
		if filepath.Ext(name) == "" {
			name += a.config.Extension
		}
		return filepath.Join(a.config.Dir, name), true
	case sheetgrid.ByURL:
		u, err := url.Parse(identifier)
		if err != nil || u.Scheme != "file" || u.Path == "" {
			return "", false
		}
		return filepath.FromSlash(u.Path), true
	}
	return "", false
}

type workbook struct {
	adapter *Adapter
	path    string
}

// Worksheet implements sheetgrid.Document
func (w *workbook) Worksheet(ctx context.Context, name string) (sheetgrid.Worksheet, error) {
	names, err := w.sheetNames(ctx)
	if err != nil {
		return nil, err
	}
	for _, n := range names {
		if n == name {
			return &worksheet{workbook: w, name: n}, nil
		}
	}
	return nil, sheetgrid.ErrNotFound
}

// WorksheetByIndex implements sheetgrid.Document
func (w *workbook) WorksheetByIndex(ctx context.Context, index int) (sheetgrid.Worksheet, error) {
	names, err := w.sheetNames(ctx)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(names) {
		return nil, sheetgrid.ErrNotFound
	}
	return &worksheet{workbook: w, name: names[index]}, nil
}

func (w *workbook) sheetNames(ctx context.Context) ([]string, error) {
	var names []string
	err := w.read(ctx, func(f *excelize.File) error {
		names = f.GetSheetList()
		return nil
	})
	return names, err
}

// read opens the workbook for reading and passes it to fn
func (w *workbook) read(ctx context.Context, fn func(f *excelize.File) error) error {
	w.adapter.mu.RLock()
	defer w.adapter.mu.RUnlock()

	// Check if context is cancelled
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	return fn(f)
}

// modify opens the workbook, passes it to fn and saves it if fn succeeds
func (w *workbook) modify(ctx context.Context, fn func(f *excelize.File) error) error {
	w.adapter.mu.Lock()
	defer w.adapter.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	if err := fn(f); err != nil {
		return err
	}
	if err := f.Save(); err != nil {
		return fmt.Errorf("failed to save Excel file: %w", err)
	}
	return nil
}

type worksheet struct {
	workbook *workbook
	name     string
}

// FetchAllValues implements sheetgrid.Worksheet
func (s *worksheet) FetchAllValues(ctx context.Context) ([][]string, error) {
	var rows [][]string
	err := s.workbook.read(ctx, func(f *excelize.File) error {
		var err error
		rows, err = f.GetRows(s.name)
		if err != nil {
			return fmt.Errorf("failed to get rows: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = [][]string{}
	}
	return rows, nil
}

// WriteCells implements sheetgrid.Worksheet
func (s *worksheet) WriteCells(ctx context.Context, edits []sheetgrid.CellEdit) error {
	return s.workbook.modify(ctx, func(f *excelize.File) error {
		for _, e := range edits {
			cell, err := excelize.CoordinatesToCellName(e.Col, e.Row)
			if err != nil {
				return fmt.Errorf("invalid cell (%d, %d): %w", e.Row, e.Col, err)
			}
			if err := f.SetCellValue(s.name, cell, e.Value); err != nil {
				return fmt.Errorf("failed to write %s: %w", cell, err)
			}
		}
		log.Debug().Str("sheet", s.name).Int("cells", len(edits)).Msg("Wrote cells")
		return nil
	})
}

// DeleteRows implements sheetgrid.Worksheet
func (s *worksheet) DeleteRows(ctx context.Context, indices []int) error {
	return s.workbook.modify(ctx, func(f *excelize.File) error {
		// Highest first so earlier removals do not shift later ones
		for _, row := range descending(indices) {
			if err := f.RemoveRow(s.name, row); err != nil {
				return fmt.Errorf("failed to remove row %d: %w", row, err)
			}
		}
		return nil
	})
}

// DeleteColumns implements sheetgrid.Worksheet
func (s *worksheet) DeleteColumns(ctx context.Context, indices []int) error {
	return s.workbook.modify(ctx, func(f *excelize.File) error {
		for _, col := range descending(indices) {
			name, err := excelize.ColumnNumberToName(col)
			if err != nil {
				return fmt.Errorf("invalid column %d: %w", col, err)
			}
			if err := f.RemoveCol(s.name, name); err != nil {
				return fmt.Errorf("failed to remove column %s: %w", name, err)
			}
		}
		return nil
	})
}

// Create writes a new workbook at path holding one sheet with values.
// An existing file is replaced.
func Create(path, sheetName string, values [][]string) error {
	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if defaultSheet := f.GetSheetName(0); defaultSheet != sheetName {
		if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
			return fmt.Errorf("failed to name sheet: %w", err)
		}
	}

	for i, row := range values {
		rowValues := make([]interface{}, len(row))
		for j, v := range row {
			rowValues[j] = v
		}
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(sheetName, cell, &rowValues); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save Excel file: %w", err)
	}
	return nil
}

func descending(indices []int) []int {
	out := append([]int(nil), indices...)
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}
