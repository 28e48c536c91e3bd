// Package excel provides the tabular data model shared by the assistant
// workflows: worksheet ranges, frontend actions, and the validation,
// cleaning, and transformation operations that run on them.
package excel

import "fmt"

// Data is a rectangular grid of cell values read from a worksheet range.
type Data struct {
	Values    [][]any    `json:"values"`
	Formulas  [][]string `json:"formulas,omitempty"`
	Address   string     `json:"address"`
	Headers   []string   `json:"headers,omitempty"`
	SheetName string     `json:"sheet_name,omitempty"`
	DataTypes []string   `json:"data_types,omitempty"`
}

// RowCount returns the number of rows in the grid.
func (d *Data) RowCount() int {
	return len(d.Values)
}

// ColumnCount returns the width of the first row. Ragged rows are
// surfaced by the Validator rather than handled here.
func (d *Data) ColumnCount() int {
	if len(d.Values) == 0 {
		return 0
	}
	return len(d.Values[0])
}

// ColumnNames returns the declared headers, or generated names
// ("Column_1", "Column_2", ...) when the grid has none.
func (d *Data) ColumnNames() []string {
	if len(d.Headers) > 0 {
		return d.Headers
	}
	names := make([]string, d.ColumnCount())
	for i := range names {
		names[i] = fmt.Sprintf("Column_%d", i+1)
	}
	return names
}

// ColumnIndex returns the position of the named column, or -1 when the
// grid has no such column.
func (d *Data) ColumnIndex(name string) int {
	for i, n := range d.ColumnNames() {
		if n == name {
			return i
		}
	}
	return -1
}

// Context carries the worksheet state attached to a chat message.
type Context struct {
	Data          *Data  `json:"data,omitempty"`
	SelectedRange string `json:"selected_range,omitempty"`
	SheetName     string `json:"sheet_name,omitempty"`
}

// Action is a worksheet mutation for the frontend add-in to apply. The
// backend never executes actions itself; it only describes them.
type Action struct {
	Type        string         `json:"type"`
	Target      string         `json:"target"`
	Payload     map[string]any `json:"payload"`
	Description string         `json:"description"`
}

// isEmptyCell reports whether a cell carries no value.
func isEmptyCell(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

// cellKind buckets a cell value into a coarse type name used for
// mixed-type detection.
func cellKind(v any) string {
	switch v.(type) {
	case nil:
		return "empty"
	case bool:
		return "bool"
	case int, int32, int64, float32, float64:
		return "number"
	case string:
		return "string"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// toFloat coerces numeric cell values to float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
