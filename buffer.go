package sheetgrid

import "fmt"

// CellEdit is a pending write of Value into the 1-based cell (Row, Col)
type CellEdit struct {
	Row   int
	Col   int
	Value string
}

// A1 returns the edit's address in A1 notation
func (e CellEdit) A1() string {
	cell, err := IndexToLabel(e.Row, e.Col)
	if err != nil {
		return fmt.Sprintf("R%dC%d", e.Row, e.Col)
	}
	return cell
}

type cellPos struct {
	row, col int
}

// Buffer accumulates pending cell edits in insertion order. At most one
// edit is kept per cell: re-adding an identical edit is a no-op, and an
// edit with a new value for a pending cell replaces it in place.
type Buffer struct {
	edits []CellEdit
	index map[cellPos]int // セル位置 -> edits内の位置
}

// NewBuffer creates an empty Buffer
func NewBuffer() *Buffer {
	return &Buffer{
		index: make(map[cellPos]int),
	}
}

// Add queues edits and returns the ones that changed the buffer
func (b *Buffer) Add(edits ...CellEdit) []CellEdit {
	if b.index == nil {
		b.index = make(map[cellPos]int)
	}

	changed := make([]CellEdit, 0, len(edits))
	for _, e := range edits {
		pos := cellPos{e.Row, e.Col}
		if i, exists := b.index[pos]; exists {
			if b.edits[i].Value == e.Value {
				continue
			}
			b.edits[i] = e
		} else {
			b.index[pos] = len(b.edits)
			b.edits = append(b.edits, e)
		}
		changed = append(changed, e)
	}
	return changed
}

// Pending returns a copy of the queued edits
func (b *Buffer) Pending() []CellEdit {
	out := make([]CellEdit, len(b.edits))
	copy(out, b.edits)
	return out
}

// Len returns the number of queued edits
func (b *Buffer) Len() int {
	return len(b.edits)
}

// Clear drops every queued edit
func (b *Buffer) Clear() {
	b.edits = nil
	b.index = make(map[cellPos]int)
}
