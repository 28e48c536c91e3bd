package excel

import (
	"fmt"
	"sort"
	"strings"
)

// Transformation operations. Operations the transformer does not
// recognize leave the data unchanged.
const (
	OpSort   = "sort"
	OpFilter = "filter"
	OpGroup  = "group"
)

// Filter conditions for OpFilter.
const (
	CondEquals      = "equals"
	CondGreaterThan = "greater_than"
	CondLessThan    = "less_than"
	CondContains    = "contains"
)

// Transformation is a single data operation with its parameters, e.g.
// {Operation: "sort", Parameters: {"column": "Sales", "ascending": false}}.
type Transformation struct {
	Operation   string         `json:"operation"`
	Parameters  map[string]any `json:"parameters"`
	Description string         `json:"description,omitempty"`
}

// Transform applies the operations to the grid in order and returns the
// transformed grid. Operations that cannot be applied are skipped and
// leave the data as it was; transformation never fails hard, so the
// caller always gets usable data back.
func Transform(data *Data, ops []Transformation) *Data {
	if data == nil || len(data.Values) == 0 {
		return data
	}

	rows := make([][]any, len(data.Values))
	for i, row := range data.Values {
		rows[i] = append([]any(nil), row...)
	}
	headers := data.ColumnNames()

	for _, op := range ops {
		switch op.Operation {
		case OpSort:
			rows = applySort(rows, headers, op.Parameters)
		case OpFilter:
			rows = applyFilter(rows, headers, op.Parameters)
		case OpGroup:
			rows, headers = applyGroup(rows, headers, op.Parameters)
		}
	}

	return &Data{
		Values:    rows,
		Headers:   headers,
		Address:   data.Address,
		SheetName: data.SheetName,
	}
}

func applySort(rows [][]any, headers []string, params map[string]any) [][]any {
	col := columnParam(rows, headers, params, "column")
	if col < 0 {
		return rows
	}
	ascending := true
	if v, ok := params["ascending"].(bool); ok {
		ascending = v
	}
	sorted := append([][]any(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool {
		less := compareCells(cellAt(sorted[i], col), cellAt(sorted[j], col)) < 0
		if ascending {
			return less
		}
		return compareCells(cellAt(sorted[i], col), cellAt(sorted[j], col)) > 0
	})
	return sorted
}

func applyFilter(rows [][]any, headers []string, params map[string]any) [][]any {
	col := columnParam(rows, headers, params, "column")
	cond, _ := params["condition"].(string)
	value, hasValue := params["value"]
	if col < 0 || cond == "" || !hasValue {
		return rows
	}

	var kept [][]any
	for _, row := range rows {
		cell := cellAt(row, col)
		match := false
		switch cond {
		case CondEquals:
			match = compareCells(cell, value) == 0
		case CondGreaterThan:
			match = compareCells(cell, value) > 0
		case CondLessThan:
			match = compareCells(cell, value) < 0
		case CondContains:
			match = strings.Contains(fmt.Sprint(cell), fmt.Sprint(value))
		}
		if match {
			kept = append(kept, row)
		}
	}
	return kept
}

// applyGroup groups rows by a column and aggregates every numeric column
// with the requested function (sum, mean, count, min, or max; sum when
// unspecified). Non-numeric columns other than the key are dropped.
func applyGroup(rows [][]any, headers []string, params map[string]any) ([][]any, []string) {
	keyCol := -1
	if name, ok := params["group_by"].(string); ok {
		keyCol = indexOf(headers, name)
	}
	if keyCol < 0 {
		return rows, headers
	}
	aggFunc, _ := params["agg_func"].(string)
	if aggFunc == "" {
		aggFunc = "sum"
	}

	numeric := numericColumns(rows, keyCol)
	outHeaders := []string{headers[keyCol]}
	for _, col := range numeric {
		if col < len(headers) {
			outHeaders = append(outHeaders, headers[col])
		}
	}

	groups := map[string][][]any{}
	var order []string
	for _, row := range rows {
		key := fmt.Sprint(cellAt(row, keyCol))
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], row)
	}

	var out [][]any
	for _, key := range order {
		group := groups[key]
		row := []any{cellAt(group[0], keyCol)}
		for _, col := range numeric {
			row = append(row, aggregate(group, col, aggFunc))
		}
		out = append(out, row)
	}
	return out, outHeaders
}

func aggregate(rows [][]any, col int, fn string) any {
	var vals []float64
	for _, row := range rows {
		if f, ok := toFloat(cellAt(row, col)); ok {
			vals = append(vals, f)
		}
	}
	if fn == "count" {
		return float64(len(vals))
	}
	if len(vals) == 0 {
		return nil
	}
	switch fn {
	case "mean":
		sum := 0.0
		for _, v := range vals {
			sum += v
		}
		return sum / float64(len(vals))
	case "min":
		min := vals[0]
		for _, v := range vals[1:] {
			if v < min {
				min = v
			}
		}
		return min
	case "max":
		max := vals[0]
		for _, v := range vals[1:] {
			if v > max {
				max = v
			}
		}
		return max
	default:
		sum := 0.0
		for _, v := range vals {
			sum += v
		}
		return sum
	}
}

// numericColumns returns the columns (excluding the key) whose non-empty
// cells are all numeric.
func numericColumns(rows [][]any, keyCol int) []int {
	if len(rows) == 0 {
		return nil
	}
	width := len(rows[0])
	var cols []int
	for col := 0; col < width; col++ {
		if col == keyCol {
			continue
		}
		any := false
		ok := true
		for _, row := range rows {
			cell := cellAt(row, col)
			if isEmptyCell(cell) {
				continue
			}
			if _, isNum := toFloat(cell); !isNum {
				ok = false
				break
			}
			any = true
		}
		if ok && any {
			cols = append(cols, col)
		}
	}
	return cols
}

// compareCells orders two cells, numerically when both coerce to
// numbers and lexically otherwise.
func compareCells(a, b any) int {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			}
			return 0
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func columnParam(rows [][]any, headers []string, params map[string]any, key string) int {
	name, ok := params[key].(string)
	if !ok {
		return -1
	}
	col := indexOf(headers, name)
	if col < 0 || len(rows) == 0 || col >= len(rows[0]) {
		return -1
	}
	return col
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}

func cellAt(row []any, col int) any {
	if col < len(row) {
		return row[col]
	}
	return nil
}
