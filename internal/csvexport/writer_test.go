package csvexport

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpeacock1649-gif/layer-builder/internal/domain"
)

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	row, err := r.Read()
	require.NoError(t, err)

	assert.Len(t, row, 12)
	assert.Equal(t, "Layer", row[0])
	assert.Equal(t, "Carrier", row[4])
	assert.Equal(t, "RBE Share %", row[11])
}

func TestWriteProgram(t *testing.T) {
	prog := &domain.Program{
		Account: "Acme Holdings",
		Layers: []domain.Layer{
			{
				Limit:     100_000_000,
				IsPrimary: true,
				Carriers: []domain.CarrierParticipation{
					{CarrierName: "AIG", Share: 1, Premium: 1_200_000, PolicyNumber: "PN-100",
						CarrierFee: 5_000, SurplusFee: 2_500},
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

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteProgram(prog))
	w.Flush()
	require.NoError(t, w.Error())

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4) // header + 3 carrier rows

	assert.Equal(t, "Layer 1: $100000000.00 Primary", rows[1][0])
	assert.Equal(t, "AIG", rows[1][4])
	assert.Equal(t, "100.00", rows[1][5])
	assert.Equal(t, "1200000.00", rows[1][6])
	assert.Equal(t, "PN-100", rows[1][7])
	assert.Equal(t, "5000.00", rows[1][8])
	assert.Equal(t, "2500.00", rows[1][9])
	assert.Equal(t, "Yes", rows[1][3])

	assert.Equal(t, "Layer 2: $75000000.00 xs $100000000.00", rows[2][0])
	assert.Equal(t, "Zurich", rows[2][4])
	assert.Equal(t, "50.00", rows[2][5])
	assert.Equal(t, "No", rows[2][3])
	assert.Equal(t, "Chubb", rows[3][4])
}

func TestWriteProgramRBERows(t *testing.T) {
	prog := &domain.Program{
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

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteProgram(prog))
	w.Flush()
	require.NoError(t, w.Error())

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3) // carrier row + 2 RBE rows

	// Carrier with multiple RBEs shows "Multiple" instead of its policy number.
	assert.Equal(t, "Multiple", rows[0][7])
	assert.Empty(t, rows[0][10])

	assert.Equal(t, "Syndicate 2987", rows[1][10])
	assert.Equal(t, "75.00", rows[1][11])
	// Layer share column carries the RBE's effective share of the layer.
	assert.Equal(t, "30.00", rows[1][5])
	assert.Equal(t, "SYN-1", rows[1][7])
	assert.Equal(t, "Syndicate 33", rows[2][10])
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"spaces and punctuation", "Acme Holdings, Inc.", "Acme_Holdings_Inc"},
		{"already clean", "acme-2024", "acme-2024"},
		{"collapses runs", "a   &&&   b", "a_b"},
		{"trims underscores", "__acme__", "acme"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.in))
		})
	}
}

func TestBuildFilename(t *testing.T) {
	got := BuildFilename("Acme Holdings")
	assert.Regexp(t, `^Acme_Holdings_\d{4}-\d{2}-\d{2}\.csv$`, got)
}
