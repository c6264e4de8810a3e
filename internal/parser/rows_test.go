package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyRow(t *testing.T) {
	tests := []struct {
		name  string
		cells []string
		want  RowClass
	}{
		{"empty row", []string{"", "", ""}, RowSkip},
		{"divider", []string{"----------"}, RowSkip},
		{"note", []string{"Note: subject to survey"}, RowSkip},
		// A divider first cell wins even when "TOTAL" appears later.
		{"divider beats total", []string{"------", "TOTAL", "$100,000,000"}, RowSkip},
		{"total row", []string{"", "TOTAL", "$75,000,000", "$1,250,000"}, RowTotal},
		{"grand total", []string{"GRAND TOTAL", "", "$75,000,000"}, RowTotal},
		{"layer header", []string{"$75M ex $100M", "", ""}, RowLayerHeader},
		{"column header", []string{"", "Participant", "Line", "Premium"}, RowColumnHeader},
		{"data row", []string{"", "AIG Insurance", "$25,000,000", "$500,000"}, RowData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyRow(tt.cells))
		})
	}
}

func TestIsTotalRow(t *testing.T) {
	assert.True(t, IsTotalRow([]string{"", "", "Subtotal", ""}))
	// Markers beyond the first four cells do not make a total row.
	assert.False(t, IsTotalRow([]string{"a", "b", "c", "d", "TOTAL"}))
	assert.False(t, IsTotalRow([]string{"Total premium due", ""}))
}

func TestDetectLayerHeader(t *testing.T) {
	t.Run("excess header in first cell", func(t *testing.T) {
		m, kind, ok := DetectLayerHeader([]string{"$75M ex $100M", "AIG Insurance"})
		require.True(t, ok)
		assert.Equal(t, Matched, kind)
		assert.Equal(t, 75_000_000.0, m.Limit)
		assert.Equal(t, 100_000_000.0, m.Attachment)
	})

	t.Run("carrier name in first cell is skipped", func(t *testing.T) {
		m, kind, ok := DetectLayerHeader([]string{"Zurich Insurance Company", "$75M ex $100M"})
		require.True(t, ok)
		assert.Equal(t, Matched, kind)
		assert.Equal(t, 75_000_000.0, m.Limit)
	})

	t.Run("numeric header without dollar signs", func(t *testing.T) {
		m, kind, ok := DetectLayerHeader([]string{"75M xs 100M"})
		require.True(t, ok)
		assert.Equal(t, Matched, kind)
		assert.Equal(t, 75_000_000.0, m.Limit)
		assert.Equal(t, 100_000_000.0, m.Attachment)
	})

	t.Run("named layer resolves limit from sibling cell", func(t *testing.T) {
		m, kind, ok := DetectLayerHeader([]string{"ALL RISKS EX ZURICH LEAD", "", "$75,000,000"})
		require.True(t, ok)
		assert.Equal(t, Matched, kind)
		assert.Equal(t, 75_000_000.0, m.Limit)
		assert.False(t, m.IsPrimary)
	})

	t.Run("named layer without sibling amount stays ambiguous", func(t *testing.T) {
		_, kind, ok := DetectLayerHeader([]string{"ALL RISKS EX ZURICH LEAD", "", "$500"})
		require.True(t, ok)
		assert.Equal(t, Ambiguous, kind)
	})

	t.Run("subtotal label with amount is not a layer header", func(t *testing.T) {
		_, _, ok := DetectLayerHeader([]string{"All Risk Total", "$100,000,000"})
		assert.False(t, ok)
	})

	t.Run("special primary title takes sibling amount", func(t *testing.T) {
		m, kind, ok := DetectLayerHeader([]string{"Primary Layer including Flood", "$10,000,000"})
		require.True(t, ok)
		assert.Equal(t, Matched, kind)
		assert.Equal(t, 10_000_000.0, m.Limit)
		assert.True(t, m.IsPrimary)
	})

	t.Run("layer text beyond second cell is ignored", func(t *testing.T) {
		_, _, ok := DetectLayerHeader([]string{"", "", "$75M ex $100M"})
		assert.False(t, ok)
	})

	t.Run("data row", func(t *testing.T) {
		_, _, ok := DetectLayerHeader([]string{"", "AIG Insurance", "$25,000,000"})
		assert.False(t, ok)
	})
}

func TestIsColumnHeaderRow(t *testing.T) {
	tests := []struct {
		name  string
		cells []string
		want  bool
	}{
		{"three keywords", []string{"", "Participant", "Line", "Premium"}, true},
		{"keywords with units", []string{"Layer", "Participant", "Line ($)", "Premium ($)", "Fees"}, true},
		{"two keywords only", []string{"Participant", "Line"}, false},
		{"stray total in data", []string{"", "AIG Insurance", "$25,000,000", "Total"}, false},
		{"empty", []string{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsColumnHeaderRow(tt.cells))
		})
	}
}
