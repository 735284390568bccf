package sheetgrid_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/ideamans/go-sheetgrid"
	"github.com/ideamans/go-sheetgrid/adapters/memory"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// open connects a fresh client to a memory sheet holding values
func open(values [][]string) (*sheetgrid.Client, *memory.Sheet, error) {
	ctx := context.Background()
	sheet := memory.NewSheet("data", values)
	c, err := sheetgrid.New(ctx, testCreds, memory.Factory(newService(sheet)), quietConfig())
	if err != nil {
		return nil, nil, err
	}
	if err := c.ConnectDocument(ctx, "doc"); err != nil {
		return nil, nil, err
	}
	if err := c.ConnectSheet(ctx, sheetgrid.SheetName("data"), sheetgrid.Vertical, 1); err != nil {
		return nil, nil, err
	}
	return c, sheet, nil
}

func TestGridProperties(t *testing.T) {
	ctx := context.Background()
	properties := gopter.NewProperties(nil)
	header := []string{"a", "b"}

	// Property: rows committed one by one end up as the trailing rows, in order
	properties.Property("committed rows trail the grid", prop.ForAll(
		func(rows [][]string) bool {
			c, _, err := open([][]string{header})
			if err != nil {
				return false
			}
			for _, row := range rows {
				if _, err := c.CommitNewRow(ctx, sheetgrid.OrderedValues(row), 0, true); err != nil {
					return false
				}
			}
			if err := c.Refresh(ctx); err != nil {
				return false
			}
			grid, _ := c.Grid()
			if len(grid) != len(rows)+1 {
				return false
			}
			for i, row := range rows {
				if !reflect.DeepEqual(grid[i+1], row) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.SliceOfN(2, gen.AlphaString())),
	))

	// Property: a batch commit lands the same rows as one-by-one commits
	properties.Property("batch commit matches sequential commits", prop.ForAll(
		func(rows [][]string) bool {
			c, _, err := open([][]string{header})
			if err != nil {
				return false
			}
			batch := make([]sheetgrid.Values, len(rows))
			for i, row := range rows {
				batch[i] = sheetgrid.OrderedValues(row)
			}
			if _, err := c.CommitNewRows(ctx, batch, 0, false); err != nil {
				return false
			}
			if err := c.Refresh(ctx); err != nil {
				return false
			}
			grid, _ := c.Grid()
			want := append([][]string{header}, rows...)
			return reflect.DeepEqual([][]string(grid), want)
		},
		gen.SliceOf(gen.SliceOfN(2, gen.AlphaString())),
	))

	// Property: refreshing twice with nothing pending yields the same grid
	properties.Property("refresh idempotent", prop.ForAll(
		func(values [][]string) bool {
			c, sheet, err := open(values)
			if err != nil {
				return false
			}
			if err := c.Refresh(ctx); err != nil {
				return false
			}
			first, _ := c.Grid()
			if err := c.Refresh(ctx); err != nil {
				return false
			}
			second, _ := c.Grid()
			return reflect.DeepEqual(first, second) && len(sheet.Writes()) == 0
		},
		gen.SliceOf(gen.SliceOf(gen.AlphaString())),
	))

	// Property: HeaderIndex returns the first offset of every header label
	properties.Property("header index round trip", prop.ForAll(
		func(headers []string) bool {
			c, _, err := open([][]string{headers})
			if err != nil {
				return false
			}
			first := make(map[string]int)
			for i, h := range headers {
				if _, seen := first[h]; !seen {
					first[h] = i
				}
			}
			for h, want := range first {
				got, err := c.HeaderIndex(h)
				if err != nil || got != want {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.OneConstOf("id", "name", "age", "team", "email", "")),
	))

	// Property: RowByColumn reports an absent value as not found, not an error
	properties.Property("absent value is not found", prop.ForAll(
		func(rows [][]string, col int) bool {
			c, _, err := open(append([][]string{{"x", "y", "z"}}, rows...))
			if err != nil {
				return false
			}
			row, found, err := c.RowByColumn(ctx, "0-absent", sheetgrid.ColumnIndex(col), false)
			return err == nil && !found && row == nil
		},
		gen.SliceOf(gen.SliceOfN(3, gen.AlphaString())),
		gen.IntRange(0, 2),
	))

	properties.TestingRun(t)
}
