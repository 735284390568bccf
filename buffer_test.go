package sheetgrid_test

import (
	"reflect"
	"testing"

	"github.com/ideamans/go-sheetgrid"
)

func TestBuffer_Add(t *testing.T) {
	a1 := sheetgrid.CellEdit{Row: 1, Col: 1, Value: "a"}
	b1 := sheetgrid.CellEdit{Row: 1, Col: 2, Value: "b"}
	a1New := sheetgrid.CellEdit{Row: 1, Col: 1, Value: "z"}

	tests := []struct {
		name        string
		batches     [][]sheetgrid.CellEdit
		wantChanged []sheetgrid.CellEdit // of the last batch
		wantPending []sheetgrid.CellEdit
	}{
		{
			name:        "insertion order",
			batches:     [][]sheetgrid.CellEdit{{a1, b1}},
			wantChanged: []sheetgrid.CellEdit{a1, b1},
			wantPending: []sheetgrid.CellEdit{a1, b1},
		},
		{
			name:        "identical edit is ignored",
			batches:     [][]sheetgrid.CellEdit{{a1}, {a1}},
			wantChanged: []sheetgrid.CellEdit{},
			wantPending: []sheetgrid.CellEdit{a1},
		},
		{
			name:        "duplicate within one batch",
			batches:     [][]sheetgrid.CellEdit{{a1, a1, b1}},
			wantChanged: []sheetgrid.CellEdit{a1, b1},
			wantPending: []sheetgrid.CellEdit{a1, b1},
		},
		{
			name:        "new value replaces in place",
			batches:     [][]sheetgrid.CellEdit{{a1, b1}, {a1New}},
			wantChanged: []sheetgrid.CellEdit{a1New},
			wantPending: []sheetgrid.CellEdit{a1New, b1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buffer := sheetgrid.NewBuffer()
			var changed []sheetgrid.CellEdit
			for _, batch := range tt.batches {
				changed = buffer.Add(batch...)
			}
			if !reflect.DeepEqual(changed, tt.wantChanged) {
				t.Errorf("Add() = %v, want %v", changed, tt.wantChanged)
			}
			if got := buffer.Pending(); !reflect.DeepEqual(got, tt.wantPending) {
				t.Errorf("Pending() = %v, want %v", got, tt.wantPending)
			}
			if buffer.Len() != len(tt.wantPending) {
				t.Errorf("Len() = %d, want %d", buffer.Len(), len(tt.wantPending))
			}
		})
	}
}

func TestBuffer_Clear(t *testing.T) {
	buffer := sheetgrid.NewBuffer()
	buffer.Add(sheetgrid.CellEdit{Row: 1, Col: 1, Value: "a"})
	buffer.Clear()
	if buffer.Len() != 0 || len(buffer.Pending()) != 0 {
		t.Fatalf("buffer not empty after Clear: %v", buffer.Pending())
	}

	// The same edit can be queued again once cleared
	if got := buffer.Add(sheetgrid.CellEdit{Row: 1, Col: 1, Value: "a"}); len(got) != 1 {
		t.Errorf("Add() after Clear = %v", got)
	}
}

func TestBuffer_ZeroValue(t *testing.T) {
	var buffer sheetgrid.Buffer
	if got := buffer.Add(sheetgrid.CellEdit{Row: 2, Col: 3, Value: "x"}); len(got) != 1 {
		t.Errorf("Add() on zero Buffer = %v", got)
	}
}

func TestCellEdit_A1(t *testing.T) {
	tests := []struct {
		edit sheetgrid.CellEdit
		want string
	}{
		{sheetgrid.CellEdit{Row: 1, Col: 1}, "A1"},
		{sheetgrid.CellEdit{Row: 10, Col: 27}, "AA10"},
		{sheetgrid.CellEdit{Row: 0, Col: 3}, "R0C3"},
	}
	for _, tt := range tests {
		if got := tt.edit.A1(); got != tt.want {
			t.Errorf("%+v.A1() = %q, want %q", tt.edit, got, tt.want)
		}
	}
}
