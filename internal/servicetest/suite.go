// Package servicetest holds the behaviour every sheetgrid.Service
// implementation is expected to share. Adapter packages run it from their
// own tests with a Seed that knows how to create a document.
package servicetest

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/ideamans/go-sheetgrid"
)

// Seed creates a document holding one sheet named sheet with values and
// returns the service serving it and an identifier that opens it.
type Seed func(t *testing.T, sheet string, values [][]string) (service sheetgrid.Service, identifier string)

var people = [][]string{
	{"id", "name", "team"},
	{"1", "Alice", "blue"},
	{"2", "Bob", "red"},
	{"3", "Carol", "blue"},
}

// Run executes the conformance suite against seed
func Run(t *testing.T, seed Seed) {
	t.Run("OpenUnknown", func(t *testing.T) { testOpenUnknown(t, seed) })
	t.Run("Worksheets", func(t *testing.T) { testWorksheets(t, seed) })
	t.Run("FetchAllValues", func(t *testing.T) { testFetchAllValues(t, seed) })
	t.Run("WriteCellsGrows", func(t *testing.T) { testWriteCellsGrows(t, seed) })
	t.Run("DeleteRows", func(t *testing.T) { testDeleteRows(t, seed) })
	t.Run("DeleteColumns", func(t *testing.T) { testDeleteColumns(t, seed) })
	t.Run("CancelledContext", func(t *testing.T) { testCancelledContext(t, seed) })
	t.Run("ClientRoundTrip", func(t *testing.T) { testClientRoundTrip(t, seed) })
}

// Open resolves identifier the way sheetgrid.Client does
func Open(t *testing.T, service sheetgrid.Service, identifier string) sheetgrid.Document {
	t.Helper()
	ctx := context.Background()
	for _, kind := range []sheetgrid.IdentifierKind{sheetgrid.ByKey, sheetgrid.ByName, sheetgrid.ByURL} {
		doc, err := service.Open(ctx, identifier, kind)
		if errors.Is(err, sheetgrid.ErrNotFound) {
			continue
		}
		if err != nil {
			t.Fatalf("Open(%q, %s) error: %v", identifier, kind, err)
		}
		return doc
	}
	t.Fatalf("Open(%q) did not resolve", identifier)
	return nil
}

func worksheet(t *testing.T, seed Seed, values [][]string) sheetgrid.Worksheet {
	t.Helper()
	service, identifier := seed(t, "people", values)
	ws, err := Open(t, service, identifier).Worksheet(context.Background(), "people")
	if err != nil {
		t.Fatalf("Worksheet(people) error: %v", err)
	}
	return ws
}

func fetch(t *testing.T, ws sheetgrid.Worksheet) [][]string {
	t.Helper()
	values, err := ws.FetchAllValues(context.Background())
	if err != nil {
		t.Fatalf("FetchAllValues() error: %v", err)
	}
	return values
}

func testOpenUnknown(t *testing.T, seed Seed) {
	service, _ := seed(t, "people", people)
	for _, kind := range []sheetgrid.IdentifierKind{sheetgrid.ByKey, sheetgrid.ByName, sheetgrid.ByURL} {
		if _, err := service.Open(context.Background(), "no-such-document", kind); !errors.Is(err, sheetgrid.ErrNotFound) {
			t.Errorf("Open(no-such-document, %s) error = %v, want ErrNotFound", kind, err)
		}
	}
}

func testWorksheets(t *testing.T, seed Seed) {
	service, identifier := seed(t, "people", people)
	doc := Open(t, service, identifier)
	ctx := context.Background()

	if _, err := doc.Worksheet(ctx, "people"); err != nil {
		t.Errorf("Worksheet(people) error: %v", err)
	}
	if _, err := doc.Worksheet(ctx, "missing"); !errors.Is(err, sheetgrid.ErrNotFound) {
		t.Errorf("Worksheet(missing) error = %v, want ErrNotFound", err)
	}
	if _, err := doc.WorksheetByIndex(ctx, 0); err != nil {
		t.Errorf("WorksheetByIndex(0) error: %v", err)
	}
	if _, err := doc.WorksheetByIndex(ctx, 99); !errors.Is(err, sheetgrid.ErrNotFound) {
		t.Errorf("WorksheetByIndex(99) error = %v, want ErrNotFound", err)
	}
}

func testFetchAllValues(t *testing.T, seed Seed) {
	ws := worksheet(t, seed, people)
	if got := fetch(t, ws); !reflect.DeepEqual(got, people) {
		t.Errorf("FetchAllValues() = %v, want %v", got, people)
	}
}

func testWriteCellsGrows(t *testing.T, seed Seed) {
	ws := worksheet(t, seed, people)
	edits := []sheetgrid.CellEdit{
		{Row: 2, Col: 2, Value: "Alicia"},
		{Row: 6, Col: 5, Value: "far"},
	}
	if err := ws.WriteCells(context.Background(), edits); err != nil {
		t.Fatalf("WriteCells() error: %v", err)
	}

	got := fetch(t, ws)
	if len(got) != 6 {
		t.Fatalf("rows after write = %d, want 6", len(got))
	}
	if got[1][1] != "Alicia" {
		t.Errorf("B2 = %q, want Alicia", got[1][1])
	}
	if len(got[5]) < 5 || got[5][4] != "far" {
		t.Errorf("row 6 = %v, want E6 = far", got[5])
	}
}

func testDeleteRows(t *testing.T, seed Seed) {
	ws := worksheet(t, seed, people)
	if err := ws.DeleteRows(context.Background(), []int{2, 4}); err != nil {
		t.Fatalf("DeleteRows() error: %v", err)
	}
	want := [][]string{people[0], people[2]}
	if got := fetch(t, ws); !reflect.DeepEqual(got, want) {
		t.Errorf("after DeleteRows = %v, want %v", got, want)
	}
}

func testDeleteColumns(t *testing.T, seed Seed) {
	ws := worksheet(t, seed, people)
	if err := ws.DeleteColumns(context.Background(), []int{1, 3}); err != nil {
		t.Fatalf("DeleteColumns() error: %v", err)
	}
	want := [][]string{{"name"}, {"Alice"}, {"Bob"}, {"Carol"}}
	if got := fetch(t, ws); !reflect.DeepEqual(got, want) {
		t.Errorf("after DeleteColumns = %v, want %v", got, want)
	}
}

func testCancelledContext(t *testing.T, seed Seed) {
	ws := worksheet(t, seed, people)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := ws.FetchAllValues(ctx); err == nil {
		t.Error("FetchAllValues() with cancelled context succeeded")
	}
	if err := ws.WriteCells(ctx, []sheetgrid.CellEdit{{Row: 1, Col: 1, Value: "x"}}); err == nil {
		t.Error("WriteCells() with cancelled context succeeded")
	}
	if got := fetch(t, ws); !reflect.DeepEqual(got, people) {
		t.Errorf("sheet changed by cancelled write: %v", got)
	}
}

func testClientRoundTrip(t *testing.T, seed Seed) {
	service, identifier := seed(t, "people", people)
	ctx := context.Background()
	factory := func(ctx context.Context, creds sheetgrid.Credentials) (sheetgrid.Service, error) {
		return service, nil
	}

	client, err := sheetgrid.New(ctx, sheetgrid.CredentialsMap{"type": "none"}, factory, nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := client.ConnectDocument(ctx, identifier); err != nil {
		t.Fatalf("ConnectDocument() error: %v", err)
	}
	if err := client.ConnectSheet(ctx, sheetgrid.SheetName("people"), sheetgrid.Vertical, 1); err != nil {
		t.Fatalf("ConnectSheet() error: %v", err)
	}

	if _, err := client.CommitNewRow(ctx, sheetgrid.KeyedValues{"id": "4", "name": "Dave", "team": "red"}, 0, false); err != nil {
		t.Fatalf("CommitNewRow() error: %v", err)
	}
	if _, err := client.UpdateByPrimaryKey(ctx, map[string]string{"id": "2", "team": "green"}, "id", false); err != nil {
		t.Fatalf("UpdateByPrimaryKey() error: %v", err)
	}

	// Refresh writes pending edits before reading
	row, found, err := client.DimensionByHeader(ctx, "Dave", "name", true)
	if err != nil || !found {
		t.Fatalf("DimensionByHeader(Dave) = %v, %v, %v", row, found, err)
	}
	if want := []string{"4", "Dave", "red"}; !reflect.DeepEqual(row, want) {
		t.Errorf("DimensionByHeader(Dave) = %v, want %v", row, want)
	}
	if n := len(client.Pending()); n != 0 {
		t.Errorf("pending after refresh = %d, want 0", n)
	}

	bob, found, err := client.RowByColumn(ctx, "2", sheetgrid.ColumnLabel("A"), false)
	if err != nil || !found {
		t.Fatalf("RowByColumn(2) = %v, %v, %v", bob, found, err)
	}
	if bob[2] != "green" {
		t.Errorf("Bob's team = %q, want green", bob[2])
	}

	if err := client.DeleteRows(ctx, 1); err != nil {
		t.Fatalf("DeleteRows() error: %v", err)
	}
	grid, err := client.Grid()
	if err != nil {
		t.Fatalf("Grid() error: %v", err)
	}
	if len(grid) != 4 || grid[1][1] != "Bob" {
		t.Errorf("grid after deleting Alice = %v", grid)
	}
}
