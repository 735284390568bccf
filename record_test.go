package sheetgrid_test

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/ideamans/go-sheetgrid"
)

func TestClient_Records(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		values      [][]string
		orientation sheetgrid.Orientation
		depth       int
		want        []*sheetgrid.Record
	}{
		{
			name:        "vertical",
			values:      [][]string{{"id", "name"}, {"1", "Alice"}, {"2", "Bob"}},
			orientation: sheetgrid.Vertical,
			depth:       1,
			want: []*sheetgrid.Record{
				{Index: 1, Values: map[string]string{"id": "1", "name": "Alice"}},
				{Index: 2, Values: map[string]string{"id": "2", "name": "Bob"}},
			},
		},
		{
			name:        "horizontal",
			values:      [][]string{{"id", "1", "2"}, {"name", "Alice", "Bob"}},
			orientation: sheetgrid.Horizontal,
			depth:       1,
			want: []*sheetgrid.Record{
				{Index: 1, Values: map[string]string{"id": "1", "name": "Alice"}},
				{Index: 2, Values: map[string]string{"id": "2", "name": "Bob"}},
			},
		},
		{
			name:        "header on second row",
			values:      [][]string{{"title"}, {"id", "name"}, {"1", "Alice"}},
			orientation: sheetgrid.Vertical,
			depth:       2,
			want: []*sheetgrid.Record{
				{Index: 2, Values: map[string]string{"id": "1", "name": "Alice"}},
			},
		},
		{
			name:        "empty and duplicate labels",
			values:      [][]string{{"id", "", "id"}, {"1", "x", "2"}},
			orientation: sheetgrid.Vertical,
			depth:       1,
			want: []*sheetgrid.Record{
				{Index: 1, Values: map[string]string{"id": "1"}},
			},
		},
		{
			name:        "headers only",
			values:      [][]string{{"id", "name"}},
			orientation: sheetgrid.Vertical,
			depth:       1,
			want:        []*sheetgrid.Record{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := connected(t, tt.values, tt.orientation, tt.depth)
			got, err := c.Records(ctx, false)
			if err != nil {
				t.Fatalf("Records() error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Records() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRecord_Keyed(t *testing.T) {
	record := &sheetgrid.Record{Index: 1, Values: map[string]string{"name": "Alice"}}
	keyed := record.Keyed()
	keyed["name"] = "changed"
	if record.Values["name"] != "Alice" {
		t.Errorf("Keyed() shares the record map")
	}
}

func TestRecord_GetAsString(t *testing.T) {
	record := sheetgrid.Record{Values: map[string]string{"name": "John Doe", "empty": ""}}

	tests := []struct {
		col  string
		want string
	}{
		{"name", "John Doe"},
		{"empty", ""},
		{"missing", "default"},
	}
	for _, tt := range tests {
		if got := record.GetAsString(tt.col, "default"); got != tt.want {
			t.Errorf("GetAsString(%q) = %q, want %q", tt.col, got, tt.want)
		}
	}
}

func TestRecord_GetAsInt64(t *testing.T) {
	record := sheetgrid.Record{Values: map[string]string{
		"int":   "30",
		"neg":   "-7",
		"float": "99.9",
		"space": " 12 ",
		"text":  "thirty",
	}}

	tests := []struct {
		col  string
		want int64
	}{
		{"int", 30},
		{"neg", -7},
		{"float", 99},
		{"space", 12},
		{"text", -1},
		{"missing", -1},
	}
	for _, tt := range tests {
		if got := record.GetAsInt64(tt.col, -1); got != tt.want {
			t.Errorf("GetAsInt64(%q) = %d, want %d", tt.col, got, tt.want)
		}
	}
}

func TestRecord_GetAsFloat64(t *testing.T) {
	record := sheetgrid.Record{Values: map[string]string{"score": "99.5", "int": "3", "text": "n/a"}}

	tests := []struct {
		col  string
		want float64
	}{
		{"score", 99.5},
		{"int", 3},
		{"text", 1.5},
		{"missing", 1.5},
	}
	for _, tt := range tests {
		if got := record.GetAsFloat64(tt.col, 1.5); got != tt.want {
			t.Errorf("GetAsFloat64(%q) = %v, want %v", tt.col, got, tt.want)
		}
	}
}

func TestRecord_GetAsStrings(t *testing.T) {
	record := sheetgrid.Record{Values: map[string]string{"tags": "a,b,c", "one": "x", "empty": ""}}

	tests := []struct {
		col  string
		want []string
	}{
		{"tags", []string{"a", "b", "c"}},
		{"one", []string{"x"}},
		{"empty", []string{}},
		{"missing", []string{"default"}},
	}
	for _, tt := range tests {
		if got := record.GetAsStrings(tt.col, []string{"default"}); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("GetAsStrings(%q) = %v, want %v", tt.col, got, tt.want)
		}
	}
}

func TestRecord_GetAsBool(t *testing.T) {
	record := sheetgrid.Record{Values: map[string]string{
		"true":  "TRUE",
		"one":   "1",
		"false": "false",
		"zero":  "0",
		"empty": "",
		"text":  "maybe",
	}}

	tests := []struct {
		col          string
		defaultValue bool
		want         bool
	}{
		{"true", false, true},
		{"one", false, true},
		{"false", true, false},
		{"zero", true, false},
		{"empty", true, false},
		{"text", true, true},
		{"missing", true, true},
	}
	for _, tt := range tests {
		if got := record.GetAsBool(tt.col, tt.defaultValue); got != tt.want {
			t.Errorf("GetAsBool(%q) = %v, want %v", tt.col, got, tt.want)
		}
	}
}

func TestRecord_GetAsTime(t *testing.T) {
	defaultTime := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	record := sheetgrid.Record{Values: map[string]string{
		"rfc3339":  "2024-01-15T10:30:00Z",
		"datetime": "2024-01-15 10:30:00",
		"date":     "2024-01-15",
		"text":     "yesterday",
	}}

	tests := []struct {
		col  string
		want time.Time
	}{
		{"rfc3339", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"datetime", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"date", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"text", defaultTime},
		{"missing", defaultTime},
	}
	for _, tt := range tests {
		if got := record.GetAsTime(tt.col, defaultTime); !got.Equal(tt.want) {
			t.Errorf("GetAsTime(%q) = %v, want %v", tt.col, got, tt.want)
		}
	}
}

func TestRecord_Setters(t *testing.T) {
	var record sheetgrid.Record
	when := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

	record.SetString("name", "Alice")
	record.SetInt64("age", 30)
	record.SetFloat64("score", 99.5)
	record.SetStrings("tags", []string{"a", "b"})
	record.SetBool("active", true)
	record.SetTime("joined", when)

	want := map[string]string{
		"name":   "Alice",
		"age":    "30",
		"score":  "99.5",
		"tags":   "a,b",
		"active": "true",
		"joined": "2024-01-15T10:30:00Z",
	}
	if !reflect.DeepEqual(record.Values, want) {
		t.Errorf("Values = %v, want %v", record.Values, want)
	}

	// Values written by the setters read back through the getters
	if record.GetAsInt64("age", 0) != 30 || !record.GetAsBool("active", false) || !record.GetAsTime("joined", time.Time{}).Equal(when) {
		t.Errorf("setters do not round trip: %v", record.Values)
	}
}
