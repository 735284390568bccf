package sheetgrid

import "context"

// RowByColumn returns the first row whose cell in column equals value.
// The boolean is false when no row matches.
func (c *Client) RowByColumn(ctx context.Context, value string, column ColumnRef, refresh bool) ([]string, bool, error) {
	if err := c.state().require(HasSheet); err != nil {
		return nil, false, err
	}
	index, err := resolveColumn(column)
	if err != nil {
		return nil, false, err
	}
	if err := c.maybeRefresh(ctx, refresh); err != nil {
		return nil, false, err
	}
	if c.cache.RowCount() > 0 && index >= c.cache.ColCount() {
		return nil, false, invalidArgument("column %d out of range (%d columns)", index, c.cache.ColCount())
	}
	row, ok := c.findRow(value, index)
	return row, ok, nil
}

// RowsByPredicate returns every row for which predicate is true, in grid order
func (c *Client) RowsByPredicate(ctx context.Context, predicate func(row []string) bool, refresh bool) ([][]string, error) {
	if err := c.state().require(HasSheet); err != nil {
		return nil, err
	}
	if predicate == nil {
		return nil, invalidArgument("nil predicate")
	}
	if err := c.maybeRefresh(ctx, refresh); err != nil {
		return nil, err
	}

	matches := make([][]string, 0)
	for _, row := range c.cache.rowsRef() {
		candidate := copyLine(row)
		if predicate(candidate) {
			matches = append(matches, candidate)
		}
	}
	return matches, nil
}

// ColumnByRow finds value within the 0-based row and returns the column it
// sits in. The boolean is false when the row does not contain value.
func (c *Client) ColumnByRow(ctx context.Context, value string, row int, refresh bool) ([]string, bool, error) {
	if err := c.state().require(HasSheet); err != nil {
		return nil, false, err
	}
	if row < 0 {
		return nil, false, invalidArgument("negative row index %d", row)
	}
	if err := c.maybeRefresh(ctx, refresh); err != nil {
		return nil, false, err
	}
	if row >= c.cache.RowCount() {
		return nil, false, invalidArgument("row %d out of range (%d rows)", row, c.cache.RowCount())
	}
	col, ok := c.findColumn(value, row)
	return col, ok, nil
}

// DimensionByHeader searches the records under header for value: the
// matching row of a vertical sheet, or the matching column of a horizontal one
func (c *Client) DimensionByHeader(ctx context.Context, value, header string, refresh bool) ([]string, bool, error) {
	if err := c.prepare(ctx, refresh); err != nil {
		return nil, false, err
	}
	index, err := c.headerIndex(header)
	if err != nil {
		return nil, false, err
	}

	if c.orientation == Horizontal {
		col, ok := c.findColumn(value, index)
		return col, ok, nil
	}
	row, ok := c.findRow(value, index)
	return row, ok, nil
}

// findRow returns the first row holding value in column col
func (c *Client) findRow(value string, col int) ([]string, bool) {
	i, ok := c.findRowIndex(value, col, 0)
	if !ok {
		return nil, false
	}
	row, _ := c.cache.Row(i)
	return row, true
}

func (c *Client) findRowIndex(value string, col, start int) (int, bool) {
	rows := c.cache.rowsRef()
	for i := start; i < len(rows); i++ {
		if col < len(rows[i]) && rows[i][col] == value {
			return i, true
		}
	}
	return 0, false
}

// findColumn finds the first occurrence of value in row and returns its column
func (c *Client) findColumn(value string, row int) ([]string, bool) {
	r, ok := c.cache.Row(row)
	if !ok {
		return nil, false
	}
	for j := range r {
		if r[j] == value {
			return c.cache.Column(j)
		}
	}
	return nil, false
}
