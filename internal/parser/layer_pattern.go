package parser

import (
	"regexp"
	"strings"
)

// MatchKind tags the outcome of the layer pattern cascade.
type MatchKind int

const (
	// NoMatch means no rule recognized a layer in the text.
	NoMatch MatchKind = iota
	// Matched means a complete layer (limit, attachment, primary flag) was
	// recognized.
	Matched
	// Ambiguous means a layer was detected but its amount must be found
	// elsewhere (sibling cells, surrounding context).
	Ambiguous
)

// LayerMatch is the layer definition recognized inside a text fragment.
type LayerMatch struct {
	Limit      float64
	Attachment float64
	IsPrimary  bool
	RawText    string
}

var (
	excessRe = regexp.MustCompile(
		`(?i)\$?([\d,]+(?:\.\d+)?)\s*([MKB](?:L)?|MM)?\s*(?:ex|excess|xs|excess\s+of)\s*\$?([\d,]+(?:\.\d+)?)\s*([MKB](?:L)?|MM)?`)
	primaryRe = regexp.MustCompile(
		`(?i)\$?([\d,]+(?:\.\d+)?)\s*([MKB](?:L)?|MM)?\s*(?:primary|primary\s+layer)`)
	standaloneRe = regexp.MustCompile(
		`(?i)^\$?([\d,]+(?:\.\d+)?)\s*([MKB](?:L)?|MM)?\s*(?:terrorism|all\s*risk|property|liability|umbrella|excess)?`)
	bareAmountRe = regexp.MustCompile(`(?i)^\$[\d,]+(?:\.\d+)?[MKB]?(?:L)?$`)
	namedLayerRe = regexp.MustCompile(`(?i)^all\s*risks?\s*(?:ex|excess|xs)\b`)
)

// standaloneKeywords mark a bare amount as a layer definition rather than a
// peripheral number in a sentence.
var standaloneKeywords = []string{
	"terrorism", "all risk", "property", "liability", "umbrella",
	"excess", "primary", "lead",
}

// layerRule is one step of the recognition cascade.
type layerRule struct {
	name  string
	apply func(text string) (LayerMatch, MatchKind)
}

// layerRules is evaluated in order; the first rule that matches wins, with
// no fallback to a later, possibly conflicting rule.
var layerRules = []layerRule{
	{"excess", matchExcess},
	{"primary", matchPrimary},
	{"standalone", matchStandalone},
	{"named-layer", matchNamedLayer},
}

// RecognizeLayer detects a layer definition inside a text fragment, e.g.
// "$75M ex $100M EQ", "$1BL Primary", "$250M Terrorism", or the named form
// "ALL RISKS EX ZURICH LEAD" (which yields Ambiguous: the amount lives in a
// sibling field).
func RecognizeLayer(text string) (LayerMatch, MatchKind) {
	text = strings.TrimSpace(text)
	if text == "" {
		return LayerMatch{}, NoMatch
	}
	for _, rule := range layerRules {
		if m, kind := rule.apply(text); kind != NoMatch {
			return m, kind
		}
	}
	return LayerMatch{}, NoMatch
}

// matchExcess handles "<amount> ex|excess|xs|excess of <amount>" with
// optional trailing descriptors (EQ, AR ex, ...).
func matchExcess(text string) (LayerMatch, MatchKind) {
	m := excessRe.FindStringSubmatch(text)
	if m == nil {
		return LayerMatch{}, NoMatch
	}
	return LayerMatch{
		Limit:      ParseAmount(m[1] + m[2]),
		Attachment: ParseAmount(m[3] + m[4]),
		IsPrimary:  false,
		RawText:    text,
	}, Matched
}

// matchPrimary handles "<amount> primary" / "<amount> primary layer".
func matchPrimary(text string) (LayerMatch, MatchKind) {
	m := primaryRe.FindStringSubmatch(text)
	if m == nil {
		return LayerMatch{}, NoMatch
	}
	return LayerMatch{
		Limit:     ParseAmount(m[1] + m[2]),
		IsPrimary: true,
		RawText:   text,
	}, Matched
}

// matchStandalone handles a bare amount at the start of the fragment,
// accepted only when a layer keyword appears somewhere in the text or the
// whole fragment is exactly "$<amount><suffix>". Without that gate, any
// number in a sentence would look like a layer.
func matchStandalone(text string) (LayerMatch, MatchKind) {
	m := standaloneRe.FindStringSubmatch(text)
	if m == nil || m[1] == "" {
		return LayerMatch{}, NoMatch
	}
	limit := ParseAmount(m[1] + m[2])
	if limit <= 0 {
		return LayerMatch{}, NoMatch
	}

	lower := strings.ToLower(text)
	hasKeyword := false
	for _, kw := range standaloneKeywords {
		if strings.Contains(lower, kw) {
			hasKeyword = true
			break
		}
	}
	if !hasKeyword && !bareAmountRe.MatchString(text) {
		return LayerMatch{}, NoMatch
	}

	// Heuristic carried over from the source schedules: no "ex"/"xs"
	// phrasing means the amount reads as a primary layer.
	isPrimary := strings.Contains(lower, "primary") ||
		(!strings.Contains(lower, "ex") && !strings.Contains(lower, "xs"))

	return LayerMatch{
		Limit:     limit,
		IsPrimary: isPrimary,
		RawText:   text,
	}, Matched
}

// matchNamedLayer handles amount-less named layers like
// "ALL RISKS EX ZURICH LEAD"; the limit must come from a sibling field.
// The title must start with "all risk(s)" and carry an excess token.
// Incidental mentions ("All Risk Subtotal") are not layer titles.
func matchNamedLayer(text string) (LayerMatch, MatchKind) {
	if !namedLayerRe.MatchString(text) {
		return LayerMatch{}, NoMatch
	}
	return LayerMatch{RawText: text}, Ambiguous
}
