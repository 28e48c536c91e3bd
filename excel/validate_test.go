package excel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	v := NewValidator()

	t.Run("empty data is invalid", func(t *testing.T) {
		result := v.Validate(&Data{Address: "A1:A1"})
		assert.False(t, result.Valid)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, SeverityError, result.Errors[0].Severity)
		assert.Equal(t, "data is empty", result.Errors[0].Message)
	})

	t.Run("ragged rows warn but stay valid", func(t *testing.T) {
		result := v.Validate(&Data{
			Address: "A1:B3",
			Headers: []string{"Name", "Sales"},
			Values: [][]any{
				{"Alice", 100.0},
				{"Bob"},
				{"Carol", 300.0},
			},
		})
		assert.True(t, result.Valid)
		require.NotEmpty(t, result.Warnings)
		assert.Equal(t, 1, result.Warnings[0].Row)
		assert.Contains(t, result.Warnings[0].Message, "expected 2")
	})

	t.Run("mixed type column warns", func(t *testing.T) {
		result := v.Validate(&Data{
			Address: "A1:A3",
			Headers: []string{"Value"},
			Values:  [][]any{{1.0}, {"two"}, {true}},
		})
		assert.True(t, result.Valid)
		found := false
		for _, w := range result.Warnings {
			if w.Column == 0 && w.Severity == SeverityWarning {
				assert.Contains(t, w.Message, "mixed data types")
				found = true
			}
		}
		assert.True(t, found)
	})

	t.Run("missing headers suggested", func(t *testing.T) {
		result := v.Validate(&Data{
			Address: "A1:A2",
			Values:  [][]any{{1.0}, {2.0}},
		})
		assert.True(t, result.Valid)
		assert.Contains(t, result.Suggestions,
			"Consider adding column headers for better data organization")
	})

	t.Run("duplicate rows reported as info", func(t *testing.T) {
		result := v.Validate(&Data{
			Address: "A1:B3",
			Headers: []string{"Name", "Sales"},
			Values: [][]any{
				{"Alice", 100.0},
				{"Alice", 100.0},
				{"Bob", 200.0},
			},
		})
		found := false
		for _, w := range result.Warnings {
			if w.Severity == SeverityInfo {
				assert.Contains(t, w.Message, "1 potential duplicate rows")
				found = true
			}
		}
		assert.True(t, found)
	})
}

func TestColumnNames(t *testing.T) {
	d := &Data{Values: [][]any{{1.0, 2.0, 3.0}}}
	assert.Equal(t, []string{"Column_1", "Column_2", "Column_3"}, d.ColumnNames())

	d.Headers = []string{"A", "B", "C"}
	assert.Equal(t, []string{"A", "B", "C"}, d.ColumnNames())
	assert.Equal(t, 1, d.ColumnIndex("B"))
	assert.Equal(t, -1, d.ColumnIndex("Z"))
}
