package sheetgrid

import (
	"context"
	"fmt"
	"sort"
)

// CommitNewRow queues values as a new row appended after the last cached
// row, shifted right by offset columns. KeyedValues are placed under the
// matching labels of headers[offset:] and need a vertical sheet; unknown
// keys are skipped with a warning. It returns the edits that were queued.
//
// The new row number comes from the cache, so consecutive commits without
// a refresh in between target the same row.
func (c *Client) CommitNewRow(ctx context.Context, values Values, offset int, refresh bool) ([]CellEdit, error) {
	if err := c.state().require(HasSheet); err != nil {
		return nil, err
	}
	if err := c.checkValues(values, offset, Vertical); err != nil {
		return nil, err
	}
	if err := c.maybeRefresh(ctx, refresh); err != nil {
		return nil, err
	}

	edits, err := c.lineEdits(values, offset, c.cache.RowCount()+1, true)
	if err != nil {
		return nil, err
	}
	return c.buffer.Add(edits...), nil
}

// CommitNewColumn queues values as a new column appended after the last
// cached column, shifted down by offset rows. KeyedValues need a
// horizontal sheet.
func (c *Client) CommitNewColumn(ctx context.Context, values Values, offset int, refresh bool) ([]CellEdit, error) {
	if err := c.state().require(HasSheet); err != nil {
		return nil, err
	}
	if err := c.checkValues(values, offset, Horizontal); err != nil {
		return nil, err
	}
	if err := c.maybeRefresh(ctx, refresh); err != nil {
		return nil, err
	}

	edits, err := c.lineEdits(values, offset, c.cache.ColCount()+1, false)
	if err != nil {
		return nil, err
	}
	return c.buffer.Add(edits...), nil
}

// CommitNewRows queues several new rows at once, the i-th one i rows below
// the first new row. Nothing is queued if any entry is invalid.
func (c *Client) CommitNewRows(ctx context.Context, rows []Values, offset int, refresh bool) ([]CellEdit, error) {
	if err := c.state().require(HasSheet); err != nil {
		return nil, err
	}
	for _, values := range rows {
		if err := c.checkValues(values, offset, Vertical); err != nil {
			return nil, err
		}
	}
	if err := c.maybeRefresh(ctx, refresh); err != nil {
		return nil, err
	}

	base := c.cache.RowCount() + 1
	var all []CellEdit
	for i, values := range rows {
		edits, err := c.lineEdits(values, offset, base+i, true)
		if err != nil {
			return nil, err
		}
		all = append(all, edits...)
	}
	return c.buffer.Add(all...), nil
}

// UpdateByPrimaryKey finds the data row whose primaryKey cell equals
// data[primaryKey] and queues an edit for every other known header whose
// cell differs from data. Only vertical sheets are supported.
func (c *Client) UpdateByPrimaryKey(ctx context.Context, data map[string]string, primaryKey string, refresh bool) ([]CellEdit, error) {
	if err := c.state().require(HasSheet); err != nil {
		return nil, err
	}
	if c.orientation != Vertical {
		return nil, invalidArgument("update by primary key requires vertical orientation")
	}
	key, ok := data[primaryKey]
	if !ok {
		return nil, invalidArgument("data has no value for primary key %q", primaryKey)
	}
	if err := c.maybeRefresh(ctx, refresh); err != nil {
		return nil, err
	}

	keyCol, err := c.headerIndex(primaryKey)
	if err != nil {
		return nil, err
	}
	rowIndex, found := c.findRowIndex(key, keyCol, c.headerDepth)
	if !found {
		return nil, &IdentificationError{
			Resource:   "row",
			Identifier: fmt.Sprintf("with primary key %s=%q", primaryKey, key),
		}
	}

	row := c.cache.rowsRef()[rowIndex]
	headers := c.headers()
	used := make(map[string]bool, len(data))
	var edits []CellEdit
	for p, h := range headers {
		v, ok := data[h]
		if !ok || used[h] {
			continue
		}
		used[h] = true
		if row[p] != v {
			edits = append(edits, CellEdit{Row: rowIndex + 1, Col: p + 1, Value: v})
		}
	}

	for _, k := range unusedKeys(data, used) {
		c.log.Debug().Str("key", k).Msg("Ignoring key without a matching header")
	}
	return c.buffer.Add(edits...), nil
}

func (c *Client) maybeRefresh(ctx context.Context, refresh bool) error {
	if refresh {
		return c.refresh(ctx)
	}
	return nil
}

// checkValues validates a commit payload before anything is refreshed
func (c *Client) checkValues(values Values, offset int, keyedOrientation Orientation) error {
	if offset < 0 {
		return invalidArgument("negative offset %d", offset)
	}
	switch values.(type) {
	case OrderedValues:
	case KeyedValues:
		if c.orientation != keyedOrientation {
			return invalidArgument("keyed values need %s orientation, sheet is %s", keyedOrientation, c.orientation)
		}
	default:
		return invalidArgument("invalid values of type %T", values)
	}
	return nil
}

// lineEdits builds the edits for a new row (alongRow) or column at the
// 1-based position line
func (c *Client) lineEdits(values Values, offset, line int, alongRow bool) ([]CellEdit, error) {
	at := func(pos int, v string) CellEdit {
		if alongRow {
			return CellEdit{Row: line, Col: pos, Value: v}
		}
		return CellEdit{Row: pos, Col: line, Value: v}
	}

	switch vals := values.(type) {
	case OrderedValues:
		edits := make([]CellEdit, 0, len(vals))
		for i, v := range vals {
			edits = append(edits, at(i+1+offset, v))
		}
		return edits, nil

	case KeyedValues:
		headers := c.headers()
		if offset >= len(headers) {
			return nil, invalidArgument("header line empty (offset=%d)", offset)
		}
		used := make(map[string]bool, len(vals))
		edits := make([]CellEdit, 0, len(vals))
		for p := offset; p < len(headers); p++ {
			v, ok := vals[headers[p]]
			if !ok || used[headers[p]] {
				continue
			}
			used[headers[p]] = true
			edits = append(edits, at(p+1, v))
		}
		for _, k := range unusedKeys(vals, used) {
			c.log.Warn().
				Str("key", k).
				Int("offset", offset).
				Msg("Key could not be found in headers, skipping")
		}
		return edits, nil

	default:
		return nil, invalidArgument("invalid values of type %T", values)
	}
}

// unusedKeys returns the keys of m not in used, sorted
func unusedKeys(m map[string]string, used map[string]bool) []string {
	var keys []string
	for k := range m {
		if !used[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
