package parser

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type testSheet struct {
	name string
	rows [][]interface{}
}

func buildWorkbook(t *testing.T, sheets ...testSheet) []byte {
	t.Helper()
	f := excelize.NewFile()
	for i, sheet := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", sheet.name))
		} else {
			_, err := f.NewSheet(sheet.name)
			require.NoError(t, err)
		}
		for r, row := range sheet.rows {
			cell := fmt.Sprintf("A%d", r+1)
			require.NoError(t, f.SetSheetRow(sheet.name, cell, &row))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestParseSpreadsheetProgram(t *testing.T) {
	data := buildWorkbook(t, testSheet{
		name: "Program",
		rows: [][]interface{}{
			{"$100M ex $100M"},
			{"", "Participant", "Line", "Premium", "Fees", "SL Tax"},
			{"", "AIG Insurance Company", "$50,000,000", "$750,000", "$5,000", "$2,500"},
			{"", "Zurich Insurance Ltd", "$50,000,000", "$650,000", "", ""},
			{"", "TOTAL", "$100,000,000", "$1,400,000", "", ""},
		},
	})

	res := ParseSpreadsheetProgram(data, "program.xlsx", false)
	require.True(t, res.Success, res.Error)
	require.Len(t, res.Layers, 1)

	layer := res.Layers[0]
	assert.Equal(t, 100_000_000.0, layer.Limit)
	assert.Equal(t, 100_000_000.0, layer.Attachment)
	require.Len(t, layer.Carriers, 2)

	assert.Equal(t, "AIG Insurance Company", layer.Carriers[0].CarrierName)
	assert.InDelta(t, 0.5, layer.Carriers[0].Share, 1e-9)
	assert.Equal(t, 750_000.0, layer.Carriers[0].Premium)
	assert.Equal(t, 5_000.0, layer.Carriers[0].CarrierFee)
	assert.Equal(t, 2_500.0, layer.Carriers[0].SurplusFee)

	assert.Equal(t, "Zurich Insurance Ltd", layer.Carriers[1].CarrierName)
	assert.InDelta(t, 0.5, layer.Carriers[1].Share, 1e-9)

	// Shares sum to 100%, so no warnings.
	assert.Empty(t, res.Warnings)
	// Trace is only collected in debug mode.
	assert.Nil(t, res.Trace)
}

func TestParseSpreadsheetProgramShareWarning(t *testing.T) {
	data := buildWorkbook(t, testSheet{
		name: "Program",
		rows: [][]interface{}{
			{"$100M ex $100M"},
			{"", "Participant", "Line", "Premium"},
			{"", "AIG Insurance Company", "$25,000,000", "$500,000"},
		},
	})

	res := ParseSpreadsheetProgram(data, "partial.xlsx", false)
	require.True(t, res.Success, res.Error)
	require.Len(t, res.Layers, 1)
	assert.InDelta(t, 0.25, res.Layers[0].Carriers[0].Share, 1e-9)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "25.00%")
}

func TestParseSpreadsheetProgramMultipleLayers(t *testing.T) {
	data := buildWorkbook(t, testSheet{
		name: "Program",
		rows: [][]interface{}{
			{"", "Participant", "Line", "Premium"},
			{"$100M ex $100M"},
			{"", "AIG Insurance Company", "$100,000,000", "$1,500,000"},
			{"----------"},
			{"$25M Primary"},
			{"", "Zurich Insurance Ltd", "$25,000,000", "$400,000"},
		},
	})

	res := ParseSpreadsheetProgram(data, "tower.xlsx", true)
	require.True(t, res.Success, res.Error)
	require.Len(t, res.Layers, 2)

	// Sorted by attachment: primary first.
	assert.Equal(t, 25_000_000.0, res.Layers[0].Limit)
	assert.True(t, res.Layers[0].IsPrimary)
	assert.Equal(t, "Zurich Insurance Ltd", res.Layers[0].Carriers[0].CarrierName)

	assert.Equal(t, 100_000_000.0, res.Layers[1].Attachment)
	assert.Equal(t, "AIG Insurance Company", res.Layers[1].Carriers[0].CarrierName)

	assert.NotEmpty(t, res.Trace)
}

func TestParseSpreadsheetProgramDuplicateAcrossSheets(t *testing.T) {
	rows := [][]interface{}{
		{"$100M ex $100M"},
		{"", "Participant", "Line", "Premium"},
		{"", "AIG Insurance Company", "$50,000,000", "$750,000"},
	}
	data := buildWorkbook(t,
		testSheet{name: "Quote", rows: rows},
		testSheet{name: "Binder", rows: rows},
	)

	res := ParseSpreadsheetProgram(data, "dupes.xlsx", false)
	require.True(t, res.Success, res.Error)
	require.Len(t, res.Layers, 1)
	// The identical carrier entry from the second sheet is dropped, not
	// summed: within one document it is a repeat, not a new placement.
	require.Len(t, res.Layers[0].Carriers, 1)
	assert.Equal(t, 750_000.0, res.Layers[0].Carriers[0].Premium)
}

func TestParseSpreadsheetProgramBoilerplateRows(t *testing.T) {
	data := buildWorkbook(t, testSheet{
		name: "Program",
		rows: [][]interface{}{
			{"$100M ex $100M"},
			{"", "Participant", "Line", "Premium"},
			{"", "TBD", "$50,000,000", "$750,000"},
			{"", "$1,234", "$50,000,000", "$750,000"},
			{"", "AIG Insurance Company", "$100,000,000", "$1,500,000"},
		},
	})

	res := ParseSpreadsheetProgram(data, "boilerplate.xlsx", false)
	require.True(t, res.Success, res.Error)
	require.Len(t, res.Layers, 1)
	require.Len(t, res.Layers[0].Carriers, 1)
	assert.Equal(t, "AIG Insurance Company", res.Layers[0].Carriers[0].CarrierName)
}

func TestParseSpreadsheetProgramSubtotalLabelRow(t *testing.T) {
	// A label row like "All Risk Subtotal" mentions "all risk" but is not a
	// layer title; it must not start a new layer and split the carriers
	// around it.
	data := buildWorkbook(t, testSheet{
		name: "Program",
		rows: [][]interface{}{
			{"$100M ex $100M"},
			{"", "Participant", "Line", "Premium"},
			{"", "AIG Insurance Company", "$50,000,000", "$750,000"},
			{"All Risk Subtotal", "", "$100,000,000", ""},
			{"", "Zurich Insurance Ltd", "$50,000,000", "$650,000"},
		},
	})

	res := ParseSpreadsheetProgram(data, "subtotal.xlsx", false)
	require.True(t, res.Success, res.Error)
	require.Len(t, res.Layers, 1)

	layer := res.Layers[0]
	assert.Equal(t, 100_000_000.0, layer.Limit)
	assert.Equal(t, 100_000_000.0, layer.Attachment)
	require.Len(t, layer.Carriers, 2)
	assert.Equal(t, "AIG Insurance Company", layer.Carriers[0].CarrierName)
	assert.Equal(t, "Zurich Insurance Ltd", layer.Carriers[1].CarrierName)
}

func TestParseSpreadsheetProgramPremiumFallsBackToTotal(t *testing.T) {
	data := buildWorkbook(t, testSheet{
		name: "Program",
		rows: [][]interface{}{
			{"$100M ex $100M"},
			{"", "Participant", "Line", "Premium", "Total"},
			{"", "AIG Insurance Company", "$100,000,000", "", "$1,500,000"},
		},
	})

	res := ParseSpreadsheetProgram(data, "totals.xlsx", false)
	require.True(t, res.Success, res.Error)
	require.Len(t, res.Layers, 1)
	assert.Equal(t, 1_500_000.0, res.Layers[0].Carriers[0].Premium)
}

func TestParseSpreadsheetProgramInvalidBytes(t *testing.T) {
	res := ParseSpreadsheetProgram([]byte("this is not a workbook"), "broken.xlsx", false)
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Error)
	assert.Empty(t, res.Layers)
}
