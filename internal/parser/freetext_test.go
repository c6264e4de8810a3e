package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpeacock1649-gif/layer-builder/internal/domain"
)

func staticText(text string) ExtractTextFunc {
	return func([]byte) (string, error) { return text, nil }
}

func TestParseTextualProgram(t *testing.T) {
	text := "INSURANCE BINDER\n" +
		"Binder Number: BND-2024-001\n" +
		"$75,000,000 excess of $100,000,000\n" +
		"Zurich Insurance Company - 50%\n" +
		"Premium: $250,000\n"

	res := ParseTextualProgram(nil, "binder.pdf", staticText(text))
	require.True(t, res.Success, res.Error)

	assert.Equal(t, domain.DocumentKindBinder, res.DocumentType)
	assert.Equal(t, "BND-2024-001", res.PolicyNumber)

	require.Len(t, res.Limits, 1)
	assert.Equal(t, 75_000_000.0, res.Limits[0].Limit)
	assert.Equal(t, 100_000_000.0, res.Limits[0].Attachment)
	assert.False(t, res.Limits[0].IsPrimary)

	require.Len(t, res.Carriers, 1)
	assert.Equal(t, "Zurich Insurance Company", res.Carriers[0].CarrierName)
	assert.InDelta(t, 0.5, res.Carriers[0].Share, 1e-9)
	assert.Equal(t, 250_000.0, res.Carriers[0].Premium)
}

func TestParseTextualProgramExtractionFailure(t *testing.T) {
	fail := func([]byte) (string, error) { return "", errors.New("encrypted document") }

	res := ParseTextualProgram(nil, "locked.pdf", fail)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "encrypted document")
	assert.NotNil(t, res.Limits)
	assert.NotNil(t, res.Carriers)
	assert.NotNil(t, res.PartOf)
}

func TestExtractLimitMentions(t *testing.T) {
	t.Run("primary mention", func(t *testing.T) {
		limits := extractLimitMentions("Coverage is $25,000,000 Primary for the period")
		require.NotEmpty(t, limits)
		assert.Equal(t, 25_000_000.0, limits[0].Limit)
		assert.True(t, limits[0].IsPrimary)
		assert.Equal(t, 0.0, limits[0].Attachment)
	})

	t.Run("labeled limit with nearby attachment", func(t *testing.T) {
		limits := extractLimitMentions("Limit: $50,000,000\nAttachment: $25,000,000\n")
		require.Len(t, limits, 1)
		assert.Equal(t, 50_000_000.0, limits[0].Limit)
		assert.Equal(t, 25_000_000.0, limits[0].Attachment)
		assert.False(t, limits[0].IsPrimary)
	})

	t.Run("labeled limit without attachment reads as primary", func(t *testing.T) {
		limits := extractLimitMentions("Limit: $10,000,000 per occurrence")
		require.Len(t, limits, 1)
		assert.True(t, limits[0].IsPrimary)
	})

	t.Run("suffix notation", func(t *testing.T) {
		limits := extractLimitMentions("placement of $5M xs $10M as agreed")
		require.Len(t, limits, 1)
		assert.Equal(t, 5_000_000.0, limits[0].Limit)
		assert.Equal(t, 10_000_000.0, limits[0].Attachment)
	})
}

func TestExtractPartOfAllocations(t *testing.T) {
	t.Run("named parenthesized share", func(t *testing.T) {
		text := "Ironshore Limits: $2,500,000 (being 3.333%) part of $75,000,000 excess of $100,000,000"
		got := extractPartOfAllocations(text)
		require.Len(t, got, 1)
		assert.Equal(t, "Ironshore", got[0].CarrierName)
		assert.Equal(t, 2_500_000.0, got[0].CarrierLimit)
		assert.InDelta(t, 0.03333, got[0].Share, 1e-9)
		assert.Equal(t, 75_000_000.0, got[0].LayerLimit)
		assert.Equal(t, 100_000_000.0, got[0].Attachment)
		assert.False(t, got[0].IsPrimary)
	})

	t.Run("that-being phrasing", func(t *testing.T) {
		text := "Policy Limit: $5,000,000 that being 6.67% Annual Aggregate; part of $75,000,000 Excess of $100,000,000"
		got := extractPartOfAllocations(text)
		require.Len(t, got, 1)
		assert.Equal(t, "Policy", got[0].CarrierName)
		assert.Equal(t, 5_000_000.0, got[0].CarrierLimit)
		assert.InDelta(t, 0.0667, got[0].Share, 1e-9)
		assert.Equal(t, 75_000_000.0, got[0].LayerLimit)
	})

	t.Run("anonymous allocation", func(t *testing.T) {
		text := "Participation of $2,500,000 (3.333%) part of $75,000,000 xs $100,000,000"
		got := extractPartOfAllocations(text)
		require.Len(t, got, 1)
		assert.Equal(t, "Unknown Carrier", got[0].CarrierName)
		assert.Equal(t, 2_500_000.0, got[0].CarrierLimit)
	})

	t.Run("named primary allocation", func(t *testing.T) {
		text := "AXA: $5,000,000 (50%) part of $10,000,000 Primary"
		got := extractPartOfAllocations(text)
		require.Len(t, got, 1)
		assert.Equal(t, "AXA", got[0].CarrierName)
		assert.True(t, got[0].IsPrimary)
		assert.Equal(t, 0.0, got[0].Attachment)
		assert.Equal(t, 10_000_000.0, got[0].LayerLimit)
	})

	t.Run("no allocations", func(t *testing.T) {
		assert.Empty(t, extractPartOfAllocations("standard terms and conditions apply"))
	})
}

func TestExtractCarrierMentions(t *testing.T) {
	t.Run("short percentage line is ignored", func(t *testing.T) {
		assert.Empty(t, extractCarrierMentions("Tax 5%"))
	})

	t.Run("keyword line qualifies", func(t *testing.T) {
		got := extractCarrierMentions("Lloyd's Syndicate 2987 - 25.5%")
		require.Len(t, got, 1)
		assert.InDelta(t, 0.255, got[0].Share, 1e-9)
	})

	t.Run("premium found in nearby lines", func(t *testing.T) {
		text := "ABC Insurance Company - 50%\nsome terms\nPremium: $1,250,000"
		got := extractCarrierMentions(text)
		require.Len(t, got, 1)
		assert.Equal(t, "ABC Insurance Company", got[0].CarrierName)
		assert.Equal(t, 1_250_000.0, got[0].Premium)
	})
}

func TestExtractPolicyNumber(t *testing.T) {
	assert.Equal(t, "POL-77-1234", ExtractPolicyNumber("Policy Number: POL-77-1234"))
	assert.Equal(t, "CERT-9", ExtractPolicyNumber("Certificate No: CERT-9"))
	assert.Equal(t, "", ExtractPolicyNumber("no identifiers here"))
	// Policy numbers win over certificate numbers regardless of position.
	assert.Equal(t, "P-1", ExtractPolicyNumber("Certificate #: C-1\nPolicy #: P-1"))
}

func TestClassifyDocumentKind(t *testing.T) {
	assert.Equal(t, domain.DocumentKindQuote, ClassifyDocumentKind("Quote for property coverage"))
	// Quote wins even when binder also appears.
	assert.Equal(t, domain.DocumentKindQuote, ClassifyDocumentKind("Binder referencing quote Q-1"))
	assert.Equal(t, domain.DocumentKindBinder, ClassifyDocumentKind("BINDER of coverage"))
	assert.Equal(t, domain.DocumentKindPolicy, ClassifyDocumentKind("Policy wording"))
	assert.Equal(t, domain.DocumentKindCertificate, ClassifyDocumentKind("Certificate of insurance"))
	assert.Equal(t, domain.DocumentKindUnknown, ClassifyDocumentKind("meeting notes"))
}
