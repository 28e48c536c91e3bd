package excel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	c := NewCleaner()

	t.Run("removes empty rows", func(t *testing.T) {
		result := c.Clean(&Data{
			Headers: []string{"Name"},
			Values: [][]any{
				{"Alice"},
				{nil},
				{""},
				{"Bob"},
			},
		})
		assert.Equal(t, 2, result.RowsRemoved)
		require.Len(t, result.Values, 2)
		assert.Contains(t, result.ChangesApplied, "Removed 2 empty rows")
	})

	t.Run("trims whitespace and counts cells", func(t *testing.T) {
		result := c.Clean(&Data{
			Headers: []string{"Name", "City"},
			Values: [][]any{
				{"  Alice ", "Berlin"},
				{"Bob", " Paris"},
			},
		})
		assert.Equal(t, 2, result.CellsModified)
		assert.Equal(t, "Alice", result.Values[0][0])
		assert.Equal(t, "Paris", result.Values[1][1])
		assert.Contains(t, result.ChangesApplied, `Trimmed whitespace in column "Name"`)
		assert.Contains(t, result.ChangesApplied, `Trimmed whitespace in column "City"`)
	})

	t.Run("converts numeric-looking text columns", func(t *testing.T) {
		result := c.Clean(&Data{
			Headers: []string{"Sales"},
			Values:  [][]any{{"100"}, {"250.5"}, {"-3"}},
		})
		assert.Contains(t, result.ChangesApplied, `Converted column "Sales" to numeric`)
		assert.Equal(t, 100.0, result.Values[0][0])
		assert.Equal(t, 250.5, result.Values[1][0])
		assert.Equal(t, -3.0, result.Values[2][0])
	})

	t.Run("leaves mostly-text columns alone", func(t *testing.T) {
		result := c.Clean(&Data{
			Headers: []string{"Mixed"},
			Values:  [][]any{{"abc"}, {"def"}, {"42"}},
		})
		assert.Equal(t, "abc", result.Values[0][0])
		assert.Equal(t, "42", result.Values[2][0])
	})

	t.Run("does not modify the input grid", func(t *testing.T) {
		data := &Data{
			Headers: []string{"Name"},
			Values:  [][]any{{"  Alice "}},
		}
		c.Clean(data)
		assert.Equal(t, "  Alice ", data.Values[0][0])
	})
}
