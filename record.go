package sheetgrid

import (
	"context"
	"strconv"
	"strings"
	"time"
)

// Record is one row of a vertical sheet or one column of a horizontal
// sheet, keyed by header label
type Record struct {
	Index  int               // グリッド上の0始まりの行（横向きの場合は列）番号
	Values map[string]string // ヘッダー名と値のマップ
}

// Records returns every record after the header line. Cells under an
// empty header label are left out.
func (c *Client) Records(ctx context.Context, refresh bool) ([]*Record, error) {
	if err := c.prepare(ctx, refresh); err != nil {
		return nil, err
	}
	return c.records(), nil
}

func (c *Client) records() []*Record {
	headers := c.headers()
	var lines [][]string
	if c.orientation == Vertical {
		lines = c.cache.rowsRef()
	} else {
		lines = c.cache.columnsRef()
	}

	records := make([]*Record, 0)
	for i := c.headerDepth; i < len(lines); i++ {
		record := &Record{
			Index:  i,
			Values: make(map[string]string, len(headers)),
		}
		for j, h := range headers {
			if h == "" || j >= len(lines[i]) {
				continue
			}
			if _, dup := record.Values[h]; dup {
				continue // first column with a label wins
			}
			record.Values[h] = lines[i][j]
		}
		records = append(records, record)
	}
	return records
}

// Keyed returns the record's values as a commit payload
func (r *Record) Keyed() KeyedValues {
	out := make(KeyedValues, len(r.Values))
	for k, v := range r.Values {
		out[k] = v
	}
	return out
}

// GetAsString returns the value or defaultValue if not found
func (r *Record) GetAsString(col string, defaultValue string) string {
	v, ok := r.Values[col]
	if !ok {
		return defaultValue
	}
	return v
}

// GetAsInt64 returns the value as int64 or defaultValue if missing or not a number
func (r *Record) GetAsInt64(col string, defaultValue int64) int64 {
	v, ok := r.Values[col]
	if !ok {
		return defaultValue
	}
	v = strings.TrimSpace(v)
	if i, err := strconv.ParseInt(v, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return int64(f)
	}
	return defaultValue
}

// GetAsFloat64 returns the value as float64 or defaultValue if missing or not a number
func (r *Record) GetAsFloat64(col string, defaultValue float64) float64 {
	v, ok := r.Values[col]
	if !ok {
		return defaultValue
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
		return f
	}
	return defaultValue
}

// GetAsStrings splits a comma-separated value or returns defaultValue if not found
func (r *Record) GetAsStrings(col string, defaultValue []string) []string {
	v, ok := r.Values[col]
	if !ok {
		return defaultValue
	}
	if v == "" {
		return []string{}
	}
	return strings.Split(v, ",")
}

// GetAsBool returns the value as bool or defaultValue if not found
func (r *Record) GetAsBool(col string, defaultValue bool) bool {
	v, ok := r.Values[col]
	if !ok {
		return defaultValue
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1":
		return true
	case "false", "0", "":
		return false
	}
	return defaultValue
}

// GetAsTime returns the value as time.Time or defaultValue if not found
func (r *Record) GetAsTime(col string, defaultValue time.Time) time.Time {
	v, ok := r.Values[col]
	if !ok {
		return defaultValue
	}

	// Try various formats
	formats := []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, format := range formats {
		if t, err := time.Parse(format, v); err == nil {
			return t
		}
	}
	return defaultValue
}

// SetString sets a string value
func (r *Record) SetString(col string, value string) {
	if r.Values == nil {
		r.Values = make(map[string]string)
	}
	r.Values[col] = value
}

// SetInt64 sets an int64 value
func (r *Record) SetInt64(col string, value int64) {
	r.SetString(col, strconv.FormatInt(value, 10))
}

// SetFloat64 sets a float64 value
func (r *Record) SetFloat64(col string, value float64) {
	r.SetString(col, strconv.FormatFloat(value, 'g', -1, 64))
}

// SetStrings sets a []string value (stored as comma-separated string)
func (r *Record) SetStrings(col string, value []string) {
	r.SetString(col, strings.Join(value, ","))
}

// SetBool sets a bool value
func (r *Record) SetBool(col string, value bool) {
	r.SetString(col, strconv.FormatBool(value))
}

// SetTime sets a time.Time value (stored as ISO 8601 string)
func (r *Record) SetTime(col string, value time.Time) {
	r.SetString(col, value.Format(time.RFC3339))
}
