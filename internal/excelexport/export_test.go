package excelexport

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/cpeacock1649-gif/layer-builder/internal/domain"
)

func exportProgram(t *testing.T, prog *domain.Program) [][]string {
	t.Helper()
	data, err := Export(prog)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	return rows
}

func TestExportLayout(t *testing.T) {
	prog := &domain.Program{
		Account: "Acme Holdings",
		Layers: []domain.Layer{
			{
				Limit:     100_000_000,
				IsPrimary: true,
				Carriers: []domain.CarrierParticipation{
					{CarrierName: "AIG", Share: 1, Premium: 1_200_000, PolicyNumber: "PN-100"},
				},
			},
			{
				Limit:      75_000_000,
				Attachment: 100_000_000,
				Carriers: []domain.CarrierParticipation{
					{CarrierName: "Zurich", Share: 0.5, Premium: 400_000},
					{CarrierName: "Chubb", Share: 0.5, Premium: 350_000},
				},
			},
		},
	}

	rows := exportProgram(t, prog)

	require.NotEmpty(t, rows)
	assert.Equal(t, "Acme Holdings", rows[0][0])

	// Row 3 holds the first layer band, row 4 the carrier column headers.
	assert.Equal(t, "Layer 1: $100,000,000 Primary", rows[2][0])
	assert.Equal(t, "Carrier", rows[3][0])
	assert.Equal(t, "Total Fees ($)", rows[3][4])

	assert.Equal(t, "AIG", rows[4][0])
	assert.Equal(t, "100.0%", rows[4][1])
	assert.Equal(t, "$1,200,000", rows[4][2])
	assert.Equal(t, "PN-100", rows[4][3])

	// Second layer band follows after the blank spacer row.
	assert.Equal(t, "Layer 2: $75,000,000 xs $100,000,000", rows[6][0])
	assert.Equal(t, "Zurich", rows[8][0])
	assert.Equal(t, "50.0%", rows[8][1])
	assert.Equal(t, "Chubb", rows[9][0])
}

func TestExportRBEBreakdown(t *testing.T) {
	prog := &domain.Program{
		Account: "Acme Holdings",
		Layers: []domain.Layer{
			{
				Limit: 50_000_000,
				Carriers: []domain.CarrierParticipation{
					{
						CarrierName:     "Lloyd's Consortium",
						Share:           0.4,
						PolicyNumber:    "PN-200",
						HasMultipleRBEs: true,
						RBEs: []domain.RBE{
							{RBE: "Syndicate 2987", Share: 0.75, Premium: 90_000, PolicyNumber: "SYN-1"},
							{RBE: "Syndicate 33", Share: 0.25, Premium: 30_000, PolicyNumber: "SYN-2"},
						},
					},
				},
			},
		},
	}

	rows := exportProgram(t, prog)

	assert.Equal(t, "Lloyd's Consortium", rows[4][0])
	assert.Equal(t, "Multiple", rows[4][3])

	assert.Contains(t, rows[5][0], "RBE breakdown")
	assert.Contains(t, rows[5][0], "40.0%")
	assert.Equal(t, "RBE", rows[6][0])

	assert.Equal(t, "Syndicate 2987", rows[7][0])
	assert.Equal(t, "75.0%", rows[7][1])
	assert.Equal(t, "30.00%", rows[7][2])
	assert.Equal(t, "SYN-1", rows[7][4])
	assert.Equal(t, "Syndicate 33", rows[8][0])
}

func TestExportEmptyProgram(t *testing.T) {
	rows := exportProgram(t, &domain.Program{Account: "Empty Co"})
	require.NotEmpty(t, rows)
	assert.Equal(t, "Empty Co", rows[0][0])
}

func TestMoneyFormatting(t *testing.T) {
	assert.Equal(t, "0", money(0))
	assert.Equal(t, "950", money(950))
	assert.Equal(t, "75,000,000", money(75_000_000))
	assert.Equal(t, "1,000,000,000", money(1_000_000_000))
}

func TestBuildFilename(t *testing.T) {
	got := BuildFilename("Acme Holdings")
	assert.Regexp(t, `^Acme_Holdings_\d{4}-\d{2}-\d{2}\.xlsx$`, got)
}
