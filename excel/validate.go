package excel

import (
	"fmt"
	"strings"
)

// Validation severities, ordered from most to least serious. Only
// SeverityError entries make a dataset invalid.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// ValidationError locates a single problem in a data grid. Row and
// Column are zero-based; grid-wide problems use row 0, column 0.
type ValidationError struct {
	Row      int    `json:"row"`
	Column   int    `json:"column"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// ValidationResult reports the outcome of validating a data grid.
// Errors holds SeverityError entries, Warnings everything softer.
type ValidationResult struct {
	Valid       bool              `json:"is_valid"`
	Errors      []ValidationError `json:"errors"`
	Warnings    []ValidationError `json:"warnings"`
	Suggestions []string          `json:"suggestions"`
}

// Validator checks data grids for structural problems: empty grids,
// ragged rows, mixed-type columns, and duplicate rows.
type Validator struct{}

// NewValidator returns a Validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate inspects the grid and returns every problem found. It never
// fails; an unusable grid comes back as an invalid result.
func (v *Validator) Validate(data *Data) ValidationResult {
	result := ValidationResult{
		Errors:      []ValidationError{},
		Warnings:    []ValidationError{},
		Suggestions: []string{},
	}

	if len(data.Values) == 0 {
		result.Errors = append(result.Errors, ValidationError{
			Row: 0, Column: 0,
			Message:  "data is empty",
			Severity: SeverityError,
		})
		return result
	}

	expected := len(data.Values[0])
	for i, row := range data.Values {
		if len(row) != expected {
			result.Warnings = append(result.Warnings, ValidationError{
				Row: i, Column: len(row),
				Message:  fmt.Sprintf("row has %d columns, expected %d", len(row), expected),
				Severity: SeverityWarning,
			})
		}
	}

	names := data.ColumnNames()
	mixed := false
	for col := 0; col < expected; col++ {
		kinds := columnKinds(data, col)
		if len(kinds) > 2 {
			mixed = true
			result.Warnings = append(result.Warnings, ValidationError{
				Row: 0, Column: col,
				Message:  fmt.Sprintf("column %q has mixed data types: %s", names[col], strings.Join(kinds, ", ")),
				Severity: SeverityWarning,
			})
		}
	}

	if len(data.Headers) == 0 {
		result.Suggestions = append(result.Suggestions,
			"Consider adding column headers for better data organization")
	}

	if dups := countDuplicateRows(data.Values); dups > 0 {
		result.Warnings = append(result.Warnings, ValidationError{
			Row: 0, Column: 0,
			Message:  fmt.Sprintf("found %d potential duplicate rows", dups),
			Severity: SeverityInfo,
		})
	}

	if mixed || countEmptyRows(data.Values) > 0 {
		result.Suggestions = append(result.Suggestions,
			"Data may benefit from cleaning (removing empty cells, standardizing formats)")
	}

	result.Valid = len(result.Errors) == 0
	return result
}

// columnKinds returns the sorted distinct kinds of the non-empty cells
// in a column.
func columnKinds(data *Data, col int) []string {
	seen := map[string]bool{}
	var kinds []string
	for _, row := range data.Values {
		if col >= len(row) || isEmptyCell(row[col]) {
			continue
		}
		k := cellKind(row[col])
		if !seen[k] {
			seen[k] = true
			kinds = append(kinds, k)
		}
	}
	return kinds
}

func countDuplicateRows(values [][]any) int {
	seen := map[string]bool{}
	dups := 0
	for _, row := range values {
		key := fmt.Sprint(row)
		if seen[key] {
			dups++
		}
		seen[key] = true
	}
	return dups
}

func countEmptyRows(values [][]any) int {
	empty := 0
	for _, row := range values {
		all := true
		for _, cell := range row {
			if !isEmptyCell(cell) {
				all = false
				break
			}
		}
		if all {
			empty++
		}
	}
	return empty
}
