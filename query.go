package sheetgrid

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Condition represents a single query condition on a header
type Condition struct {
	Column   string      // ヘッダー名
	Operator string      // 演算子: ==, !=, >, >=, <, <=, in, between
	Value    interface{} // 比較値（inの場合は[]interface{}, betweenの場合は[2]interface{}）
}

// Query represents a query with multiple conditions
type Query struct {
	Conditions []Condition // AND条件として評価
	Limit      int
	Offset     int
}

// Find returns the records matching every condition of query, in grid order
func (c *Client) Find(ctx context.Context, query Query, refresh bool) ([]*Record, error) {
	if err := c.state().require(HasSheet); err != nil {
		return nil, err
	}
	if err := ValidateQuery(query); err != nil {
		return nil, invalidArgument("invalid query: %v", err)
	}
	if err := c.maybeRefresh(ctx, refresh); err != nil {
		return nil, err
	}
	return ApplyQuery(c.records(), query), nil
}

// evalCondition evaluates a single condition against a record
func evalCondition(record *Record, condition Condition) bool {
	value, exists := record.Values[condition.Column]

	switch condition.Operator {
	case "==":
		return exists && compareEqual(value, condition.Value)
	case "!=":
		return !exists || !compareEqual(value, condition.Value)
	case ">":
		return exists && compareOrdered(value, condition.Value, func(a, b float64) bool { return a > b })
	case ">=":
		return exists && compareOrdered(value, condition.Value, func(a, b float64) bool { return a >= b })
	case "<":
		return exists && compareOrdered(value, condition.Value, func(a, b float64) bool { return a < b })
	case "<=":
		return exists && compareOrdered(value, condition.Value, func(a, b float64) bool { return a <= b })
	case "in":
		return exists && compareIn(value, condition.Value)
	case "between":
		return exists && compareBetween(value, condition.Value)
	default:
		return false
	}
}

// MatchesQuery checks if a record matches all conditions in the query
func (r *Record) MatchesQuery(query Query) bool {
	// 全ての条件をANDで評価
	for _, condition := range query.Conditions {
		if !evalCondition(r, condition) {
			return false
		}
	}
	return true
}

// compareEqual compares a cell with a condition value. Numeric condition
// values compare numerically when the cell parses as a number.
func compareEqual(cell string, b interface{}) bool {
	if b == nil {
		return cell == ""
	}
	if bf, ok := toFloat64(b); ok {
		if af, ok := parseNumber(cell); ok {
			return af == bf
		}
		return false
	}
	return cell == fmt.Sprintf("%v", b)
}

// compareOrdered applies cmp when both sides are numbers
func compareOrdered(cell string, b interface{}, cmp func(a, b float64) bool) bool {
	af, ok := parseNumber(cell)
	if !ok {
		return false
	}
	bf, ok := toFloat64(b)
	if !ok {
		return false
	}
	return cmp(af, bf)
}

// compareIn checks if cell is in the list b
func compareIn(cell string, b interface{}) bool {
	// bは[]interface{}である必要がある
	list, ok := b.([]interface{})
	if !ok {
		return false
	}

	for _, item := range list {
		if compareEqual(cell, item) {
			return true
		}
	}
	return false
}

// compareBetween checks if cell is between b[0] and b[1] inclusive
func compareBetween(cell string, b interface{}) bool {
	var min, max interface{}

	switch v := b.(type) {
	case [2]interface{}:
		min, max = v[0], v[1]
	case []interface{}:
		if len(v) != 2 {
			return false
		}
		min, max = v[0], v[1]
	default:
		return false
	}

	return compareOrdered(cell, min, func(a, lo float64) bool { return a >= lo }) &&
		compareOrdered(cell, max, func(a, hi float64) bool { return a <= hi })
}

// parseNumber parses a cell as a float64
func parseNumber(cell string) (float64, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(cell, 64)
	return f, err == nil
}

// toFloat64 converts a numeric condition value to float64
func toFloat64(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case int:
		return float64(val), true
	case int8:
		return float64(val), true
	case int16:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint8:
		return float64(val), true
	case uint16:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	case float32:
		return float64(val), true
	case float64:
		return val, true
	default:
		return 0, false
	}
}

// ApplyQuery filters records based on query conditions
func ApplyQuery(records []*Record, query Query) []*Record {
	results := make([]*Record, 0)

	// フィルタリング
	for _, record := range records {
		if record.MatchesQuery(query) {
			results = append(results, record)
		}
	}

	// Offset適用
	if query.Offset >= len(results) && query.Offset > 0 {
		return []*Record{}
	}
	if query.Offset > 0 {
		results = results[query.Offset:]
	}

	// Limit適用
	if query.Limit > 0 && query.Limit < len(results) {
		results = results[:query.Limit]
	}

	return results
}

// ValidateQuery validates query structure
func ValidateQuery(query Query) error {
	validOps := []string{"==", "!=", ">", ">=", "<", "<=", "in", "between"}
	for i, cond := range query.Conditions {
		// 演算子の検証
		valid := false
		for _, op := range validOps {
			if cond.Operator == op {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("invalid operator '%s' in condition %d", cond.Operator, i)
		}

		// in演算子の値検証
		if cond.Operator == "in" {
			if _, ok := cond.Value.([]interface{}); !ok {
				return fmt.Errorf("operator 'in' requires []interface{} value in condition %d", i)
			}
		}

		// between演算子の値検証
		if cond.Operator == "between" {
			valid := false
			switch v := cond.Value.(type) {
			case [2]interface{}:
				valid = true
			case []interface{}:
				if len(v) == 2 {
					valid = true
				}
			}
			if !valid {
				return fmt.Errorf("operator 'between' requires [2]interface{} or []interface{} with 2 elements in condition %d", i)
			}
		}

		// カラム名の検証
		if cond.Column == "" {
			return fmt.Errorf("empty column name in condition %d", i)
		}
	}

	// Limit/Offsetの検証
	if query.Limit < 0 {
		return fmt.Errorf("limit must be non-negative")
	}
	if query.Offset < 0 {
		return fmt.Errorf("offset must be non-negative")
	}

	return nil
}
