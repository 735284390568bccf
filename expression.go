package sheetgrid

import (
	"context"
	"strings"

	"github.com/antonmedv/expr"
)

// FindByExpression returns the records for which the boolean expression
// code holds, e.g. `Age >= 30 && Team == "blue"`. Header labels are the
// variables; cells that parse as numbers are exposed as numbers.
func (c *Client) FindByExpression(ctx context.Context, code string, refresh bool) ([]*Record, error) {
	if err := c.state().require(HasSheet); err != nil {
		return nil, err
	}
	if strings.TrimSpace(code) == "" {
		return nil, invalidArgument("empty expression")
	}
	program, err := expr.Compile(code, expr.AsBool())
	if err != nil {
		return nil, invalidArgument("expression %q: %v", code, err)
	}
	if err := c.maybeRefresh(ctx, refresh); err != nil {
		return nil, err
	}

	results := make([]*Record, 0)
	for _, record := range c.records() {
		out, err := expr.Run(program, expressionEnv(record))
		if err != nil {
			return nil, invalidArgument("expression %q on record %d: %v", code, record.Index, err)
		}
		match, ok := out.(bool)
		if !ok {
			return nil, invalidArgument("expression %q returned %T, not bool", code, out)
		}
		if match {
			results = append(results, record)
		}
	}
	return results, nil
}

func expressionEnv(record *Record) map[string]interface{} {
	env := make(map[string]interface{}, len(record.Values))
	for k, v := range record.Values {
		if f, ok := parseNumber(v); ok {
			env[k] = f
		} else {
			env[k] = v
		}
	}
	return env
}
