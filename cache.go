package sheetgrid

// Grid is an ordered sequence of rows of cell values
type Grid [][]string

// Cache holds the last fetched snapshot of a sheet. Loaded grids are made
// rectangular by padding short rows with empty cells. Reads return copies.
type Cache struct {
	rows    [][]string // 行
	columns [][]string // 転置した列
	loaded  bool
}

// NewCache creates an empty, unloaded Cache
func NewCache() *Cache {
	return &Cache{}
}

// Load replaces the snapshot with values
func (c *Cache) Load(values [][]string) {
	width := 0
	for _, row := range values {
		if len(row) > width {
			width = len(row)
		}
	}

	rows := make([][]string, len(values))
	for i, row := range values {
		padded := make([]string, width)
		copy(padded, row)
		rows[i] = padded
	}

	columns := make([][]string, width)
	for j := range columns {
		col := make([]string, len(rows))
		for i := range rows {
			col[i] = rows[i][j]
		}
		columns[j] = col
	}

	c.rows = rows
	c.columns = columns
	c.loaded = true
}

// Loaded reports whether a snapshot has been loaded since the last Clear
func (c *Cache) Loaded() bool {
	return c.loaded
}

// Clear drops the snapshot
func (c *Cache) Clear() {
	c.rows = nil
	c.columns = nil
	c.loaded = false
}

// RowCount returns the number of rows
func (c *Cache) RowCount() int {
	return len(c.rows)
}

// ColCount returns the number of columns
func (c *Cache) ColCount() int {
	return len(c.columns)
}

// Rows returns a copy of every row
func (c *Cache) Rows() Grid {
	return copyGrid(c.rows)
}

// Row returns a copy of the 0-based row i
func (c *Cache) Row(i int) ([]string, bool) {
	if i < 0 || i >= len(c.rows) {
		return nil, false
	}
	return copyLine(c.rows[i]), true
}

// Column returns a copy of the 0-based column j
func (c *Cache) Column(j int) ([]string, bool) {
	if j < 0 || j >= len(c.columns) {
		return nil, false
	}
	return copyLine(c.columns[j]), true
}

// Cell returns the value at 0-based (i, j)
func (c *Cache) Cell(i, j int) (string, bool) {
	if i < 0 || i >= len(c.rows) || j < 0 || j >= len(c.columns) {
		return "", false
	}
	return c.rows[i][j], true
}

// rowsRef and columnsRef expose the snapshot without copying; callers
// must not modify the result
func (c *Cache) rowsRef() [][]string {
	return c.rows
}

func (c *Cache) columnsRef() [][]string {
	return c.columns
}

func copyLine(line []string) []string {
	out := make([]string, len(line))
	copy(out, line)
	return out
}

func copyGrid(g [][]string) Grid {
	out := make(Grid, len(g))
	for i, line := range g {
		out[i] = copyLine(line)
	}
	return out
}
