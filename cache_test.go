package sheetgrid_test

import (
	"reflect"
	"testing"

	"github.com/ideamans/go-sheetgrid"
)

func TestCache_Load(t *testing.T) {
	tests := []struct {
		name     string
		values   [][]string
		wantRows sheetgrid.Grid
		wantCols int
	}{
		{
			name:     "rectangular",
			values:   [][]string{{"a", "b"}, {"c", "d"}},
			wantRows: sheetgrid.Grid{{"a", "b"}, {"c", "d"}},
			wantCols: 2,
		},
		{
			name:     "ragged rows are padded",
			values:   [][]string{{"a"}, {"b", "c", "d"}, {}},
			wantRows: sheetgrid.Grid{{"a", "", ""}, {"b", "c", "d"}, {"", "", ""}},
			wantCols: 3,
		},
		{
			name:     "empty",
			values:   [][]string{},
			wantRows: sheetgrid.Grid{},
			wantCols: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := sheetgrid.NewCache()
			if cache.Loaded() {
				t.Fatal("new cache reports loaded")
			}
			cache.Load(tt.values)

			if !cache.Loaded() {
				t.Error("Loaded() = false after Load")
			}
			if got := cache.Rows(); !reflect.DeepEqual(got, tt.wantRows) {
				t.Errorf("Rows() = %v, want %v", got, tt.wantRows)
			}
			if cache.RowCount() != len(tt.wantRows) || cache.ColCount() != tt.wantCols {
				t.Errorf("size = %dx%d, want %dx%d", cache.RowCount(), cache.ColCount(), len(tt.wantRows), tt.wantCols)
			}
		})
	}
}

func TestCache_Columns(t *testing.T) {
	cache := sheetgrid.NewCache()
	cache.Load([][]string{{"id", "name"}, {"1", "Alice"}, {"2"}})

	col, ok := cache.Column(1)
	if !ok || !reflect.DeepEqual(col, []string{"name", "Alice", ""}) {
		t.Errorf("Column(1) = %v, %v", col, ok)
	}
	if _, ok := cache.Column(2); ok {
		t.Error("Column(2) reported present")
	}
	if _, ok := cache.Column(-1); ok {
		t.Error("Column(-1) reported present")
	}

	// Every column has one entry per row
	for j := 0; j < cache.ColCount(); j++ {
		col, _ := cache.Column(j)
		if len(col) != cache.RowCount() {
			t.Errorf("Column(%d) has %d cells, want %d", j, len(col), cache.RowCount())
		}
	}
}

func TestCache_RowAndCell(t *testing.T) {
	cache := sheetgrid.NewCache()
	cache.Load([][]string{{"a", "b"}, {"c"}})

	row, ok := cache.Row(1)
	if !ok || !reflect.DeepEqual(row, []string{"c", ""}) {
		t.Errorf("Row(1) = %v, %v", row, ok)
	}
	if _, ok := cache.Row(2); ok {
		t.Error("Row(2) reported present")
	}

	if v, ok := cache.Cell(0, 1); !ok || v != "b" {
		t.Errorf("Cell(0, 1) = %q, %v", v, ok)
	}
	if v, ok := cache.Cell(1, 1); !ok || v != "" {
		t.Errorf("Cell(1, 1) = %q, %v, want padded empty cell", v, ok)
	}
	if _, ok := cache.Cell(0, 2); ok {
		t.Error("Cell(0, 2) reported present")
	}
}

func TestCache_Isolation(t *testing.T) {
	values := [][]string{{"a", "b"}}
	cache := sheetgrid.NewCache()
	cache.Load(values)

	values[0][0] = "changed"
	if v, _ := cache.Cell(0, 0); v != "a" {
		t.Errorf("cache shares loaded slice: %q", v)
	}

	rows := cache.Rows()
	rows[0][1] = "changed"
	row, _ := cache.Row(0)
	row[0] = "changed"
	col, _ := cache.Column(1)
	col[0] = "changed"

	if got := cache.Rows(); !reflect.DeepEqual(got, sheetgrid.Grid{{"a", "b"}}) {
		t.Errorf("cache modified through a copy: %v", got)
	}
}

func TestCache_Clear(t *testing.T) {
	cache := sheetgrid.NewCache()
	cache.Load([][]string{{"a"}})
	cache.Clear()

	if cache.Loaded() || cache.RowCount() != 0 || cache.ColCount() != 0 {
		t.Errorf("after Clear: loaded=%v size=%dx%d", cache.Loaded(), cache.RowCount(), cache.ColCount())
	}
}
