package program

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpeacock1649-gif/layer-builder/internal/domain"
)

func TestShareSumRule(t *testing.T) {
	p := &domain.Program{Layers: []domain.Layer{
		{Limit: 100_000_000, Carriers: []domain.CarrierParticipation{
			{CarrierName: "A", Share: 0.5},
			{CarrierName: "B", Share: 0.5},
		}},
		{Limit: 50_000_000, Carriers: []domain.CarrierParticipation{
			{CarrierName: "C", Share: 0.25},
		}},
	}}

	findings := (&ShareSumRule{}).Validate(p)
	require.Len(t, findings, 1)
	assert.Equal(t, 1, findings[0].LayerIndex)
	assert.Contains(t, findings[0].Message, "25.00%")
}

func TestShareSumRuleTolerance(t *testing.T) {
	p := &domain.Program{Layers: []domain.Layer{
		{Limit: 100_000_000, Carriers: []domain.CarrierParticipation{
			{CarrierName: "A", Share: 0.333},
			{CarrierName: "B", Share: 0.333},
			{CarrierName: "C", Share: 0.333},
		}},
	}}
	assert.Empty(t, (&ShareSumRule{}).Validate(p))
}

func TestRBEShareSumRule(t *testing.T) {
	p := &domain.Program{Layers: []domain.Layer{
		{Limit: 100_000_000, Carriers: []domain.CarrierParticipation{
			{CarrierName: "A", Share: 1, HasMultipleRBEs: true, RBEs: []domain.RBE{
				{RBE: "RBE One", Share: 0.6},
				{RBE: "RBE Two", Share: 0.2},
			}},
		}},
	}}

	findings := (&RBEShareSumRule{}).Validate(p)
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0].Message, "80.00%")
}

func TestPrimaryAttachmentRule(t *testing.T) {
	p := &domain.Program{Layers: []domain.Layer{
		{Limit: 25_000_000, IsPrimary: true, Attachment: 0},
		{Limit: 75_000_000, IsPrimary: true, Attachment: 25_000_000},
	}}

	findings := (&PrimaryAttachmentRule{}).Validate(p)
	require.Len(t, findings, 1)
	assert.Equal(t, 1, findings[0].LayerIndex)
}

func TestTowerContinuityRule(t *testing.T) {
	p := &domain.Program{Layers: []domain.Layer{
		{Limit: 25_000_000, Attachment: 0},
		{Limit: 75_000_000, Attachment: 25_000_000},
		{Limit: 100_000_000, Attachment: 150_000_000},
	}}

	findings := (&TowerContinuityRule{}).Validate(p)
	require.Len(t, findings, 1)
	assert.Equal(t, 2, findings[0].LayerIndex)
	assert.Contains(t, findings[0].Message, "gap")
}

func TestDefaultRegistryRunsAllRules(t *testing.T) {
	p := &domain.Program{Layers: []domain.Layer{
		{Limit: 0, IsPrimary: true, Attachment: 10_000_000,
			Carriers: []domain.CarrierParticipation{{CarrierName: "A", Share: 0.1}}},
	}}

	findings := DefaultRegistry().Validate(p)
	keys := make(map[string]bool)
	for _, f := range findings {
		keys[f.RuleKey] = true
	}
	assert.True(t, keys["positive_limit"])
	assert.True(t, keys["share_sum"])
	assert.True(t, keys["primary_attachment"])
}
