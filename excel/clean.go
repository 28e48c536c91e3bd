package excel

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var numericPattern = regexp.MustCompile(`^-?\d+\.?\d*$`)

// CleanedData reports the outcome of a cleaning pass: the cleaned grid
// plus a human-readable account of what changed.
type CleanedData struct {
	Values         [][]any  `json:"values"`
	ChangesApplied []string `json:"changes_applied"`
	RowsRemoved    int      `json:"rows_removed"`
	CellsModified  int      `json:"cells_modified"`
}

// Cleaner normalizes data grids: it drops empty rows, trims whitespace
// from text cells, and converts numeric-looking text columns to numbers.
type Cleaner struct{}

// NewCleaner returns a Cleaner.
func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// Clean runs the cleaning pass over the grid. The input is never
// modified; a new grid is returned alongside the change report.
func (c *Cleaner) Clean(data *Data) CleanedData {
	result := CleanedData{ChangesApplied: []string{}}

	// Drop fully empty rows first so column statistics below only see
	// rows that carry data.
	var values [][]any
	for _, row := range data.Values {
		empty := true
		for _, cell := range row {
			if !isEmptyCell(cell) {
				empty = false
				break
			}
		}
		if empty {
			result.RowsRemoved++
			continue
		}
		values = append(values, append([]any(nil), row...))
	}
	if result.RowsRemoved > 0 {
		result.ChangesApplied = append(result.ChangesApplied,
			fmt.Sprintf("Removed %d empty rows", result.RowsRemoved))
	}

	names := data.ColumnNames()
	cols := 0
	if len(values) > 0 {
		cols = len(values[0])
	}

	for col := 0; col < cols; col++ {
		trimmed := 0
		for _, row := range values {
			if col >= len(row) {
				continue
			}
			s, ok := row[col].(string)
			if !ok {
				continue
			}
			if t := strings.TrimSpace(s); t != s {
				row[col] = t
				trimmed++
			}
		}
		if trimmed > 0 {
			result.CellsModified += trimmed
			result.ChangesApplied = append(result.ChangesApplied,
				fmt.Sprintf("Trimmed whitespace in column %q", columnName(names, col)))
		}
	}

	for col := 0; col < cols; col++ {
		if convertNumericColumn(values, col) {
			result.ChangesApplied = append(result.ChangesApplied,
				fmt.Sprintf("Converted column %q to numeric", columnName(names, col)))
		}
	}

	result.Values = values
	return result
}

// convertNumericColumn converts a text column to float64 values when at
// least 80% of its non-empty cells look numeric. Cells that do not parse
// are left as-is.
func convertNumericColumn(values [][]any, col int) bool {
	total, numeric := 0, 0
	for _, row := range values {
		if col >= len(row) || isEmptyCell(row[col]) {
			continue
		}
		s, ok := row[col].(string)
		if !ok {
			return false
		}
		total++
		if numericPattern.MatchString(s) {
			numeric++
		}
	}
	if total == 0 || float64(numeric) < float64(total)*0.8 {
		return false
	}
	for _, row := range values {
		if col >= len(row) {
			continue
		}
		if s, ok := row[col].(string); ok {
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				row[col] = f
			}
		}
	}
	return true
}

func columnName(names []string, col int) string {
	if col < len(names) {
		return names[col]
	}
	return fmt.Sprintf("Column_%d", col+1)
}
