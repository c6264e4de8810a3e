package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/cpeacock1649-gif/layer-builder/internal/domain"
)

// amountToken matches a currency figure with an optional magnitude suffix,
// as written in quotes and binders: "1,000,000", "75M", "2.5M", "500K".
const amountToken = `[\d,]+(?:\.\d+)?[MK]?`

var (
	excessMentionRe  = regexp.MustCompile(`(?i)\$?` + amountToken + `\s*(?:excess\s+of|xs|x/s)\s*\$?` + amountToken)
	excessSplitRe    = regexp.MustCompile(`(?i)excess\s+of|xs|x/s`)
	primaryMentionRe = regexp.MustCompile(`(?i)\$?(` + amountToken + `)\s*(?:primary|primary\s+layer)`)
	labeledLimitRe   = regexp.MustCompile(`(?i)(?:limit|coverage)[:\s]+\$?(` + amountToken + `)`)
	attachmentNearRe = regexp.MustCompile(`(?i)(?:attachment|retention)[:\s]+\$?(` + amountToken + `)`)
)

// carrierPrefix matches "Carrier Name:" or "Carrier Name Limits:" at the
// start of a part-of clause.
const carrierPrefix = `([A-Za-z][A-Za-z\s&'.]+?)(?:Limits?)?:\s*`

// The part-of family covers carrier-specific stakes inside a shared layer,
// e.g. "Ironshore Limits: $2,500,000 (being 3.333%) part of $75,000,000
// excess of $100,000,000". Two phrasings (semicolon "that being" and
// parenthesized percentage) times three shapes (named, anonymous, named
// primary). Named forms run first so the anonymous forms can be dropped
// when a named match already covers the same text.
var partOfRes = []struct {
	re        *regexp.Regexp
	named     bool
	isPrimary bool
}{
	{regexp.MustCompile(`(?i)` + carrierPrefix + `\$?(` + amountToken + `)\s+that\s+being\s+([\d.]+)%[^;]*?;\s*part\s+of\s+\$?(` + amountToken + `)\s*(?:excess\s+of|xs|x/s)\s*\$?(` + amountToken + `)`), true, false},
	{regexp.MustCompile(`(?i)` + carrierPrefix + `\$?(` + amountToken + `)\s*\((?:being\s+)?([\d.]+)%\)\s*part\s+of\s+\$?(` + amountToken + `)\s*(?:excess\s+of|xs|x/s)\s*\$?(` + amountToken + `)`), true, false},
	{regexp.MustCompile(`(?i)\$?(` + amountToken + `)\s+that\s+being\s+([\d.]+)%[^;]*?;\s*part\s+of\s+\$?(` + amountToken + `)\s*(?:excess\s+of|xs|x/s)\s*\$?(` + amountToken + `)`), false, false},
	{regexp.MustCompile(`(?i)\$?(` + amountToken + `)\s*\((?:being\s+)?([\d.]+)%\)\s*part\s+of\s+\$?(` + amountToken + `)\s*(?:excess\s+of|xs|x/s)\s*\$?(` + amountToken + `)`), false, false},
	{regexp.MustCompile(`(?i)` + carrierPrefix + `\$?(` + amountToken + `)\s+that\s+being\s+([\d.]+)%[^;]*?;\s*part\s+of\s+\$?(` + amountToken + `)\s*(?:primary|primary\s+layer)`), true, true},
	{regexp.MustCompile(`(?i)` + carrierPrefix + `\$?(` + amountToken + `)\s*\((?:being\s+)?([\d.]+)%\)\s*part\s+of\s+\$?(` + amountToken + `)\s*(?:primary|primary\s+layer)`), true, true},
}

var (
	percentRe     = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)
	carrierNameRe = regexp.MustCompile(`^(.+?)[\s-]*\d+(?:\.\d+)?\s*%`)
	premiumNearRe = regexp.MustCompile(`(?i)(?:premium|prem)[:\s]+\$?(` + amountToken + `)`)

	policyNumberRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:policy\s+(?:no|number|#))[:\s]+([A-Z0-9-]+)`),
		regexp.MustCompile(`(?i)(?:certificate\s+(?:no|number|#))[:\s]+([A-Z0-9-]+)`),
		regexp.MustCompile(`(?i)(?:binder\s+(?:no|number|#))[:\s]+([A-Z0-9-]+)`),
	}
)

// carrierLineKeywords mark a percentage-bearing line as carrier-related.
var carrierLineKeywords = []string{
	"insurance", "assurance", "indemnity", "underwriters", "syndicate",
	"lloyd", "mutual", "casualty", "risk",
}

// ParseTextualProgram parses a quote/binder/policy document into structured
// mentions. Text extraction is injected so the parser stays pure; a failed
// extraction yields {Success: false, Error: ...} with empty slices rather
// than nils, so downstream JSON always carries arrays.
func ParseTextualProgram(data []byte, filename string, extract ExtractTextFunc) *TextResult {
	text, err := extract(data)
	if err != nil {
		return &TextResult{
			Filename:     filename,
			DocumentType: domain.DocumentKindUnknown,
			Limits:       []LayerMention{},
			Carriers:     []CarrierMention{},
			PartOf:       []PartOfAllocation{},
			Success:      false,
			Error:        fmt.Sprintf("extracting text: %v", err),
		}
	}

	preview := text
	if len(preview) > 1000 {
		preview = preview[:1000]
	}

	return &TextResult{
		Filename:     filename,
		DocumentType: ClassifyDocumentKind(text),
		PolicyNumber: ExtractPolicyNumber(text),
		Limits:       extractLimitMentions(text),
		Carriers:     extractCarrierMentions(text),
		PartOf:       extractPartOfAllocations(text),
		RawText:      preview,
		Success:      true,
	}
}

// extractLimitMentions finds layer-shaped fragments: "X excess of Y" /
// "X xs Y", "X Primary", and labeled "Limit: $X" (with a nearby
// "Attachment:" searched within 100 characters either side).
func extractLimitMentions(text string) []LayerMention {
	limits := []LayerMention{}

	for _, raw := range excessMentionRe.FindAllString(text, -1) {
		parts := excessSplitRe.Split(raw, -1)
		if len(parts) != 2 {
			continue
		}
		limits = append(limits, LayerMention{
			Limit:      ParseAmount(strings.TrimSpace(parts[0])),
			Attachment: ParseAmount(strings.TrimSpace(parts[1])),
			IsPrimary:  false,
			RawText:    strings.TrimSpace(raw),
		})
	}

	for _, m := range primaryMentionRe.FindAllStringSubmatch(text, -1) {
		limit := ParseAmount(m[1])
		if limit <= 0 {
			continue
		}
		limits = append(limits, LayerMention{
			Limit:     limit,
			IsPrimary: true,
			RawText:   strings.TrimSpace(m[0]),
		})
	}

	for _, loc := range labeledLimitRe.FindAllStringSubmatchIndex(text, -1) {
		raw := text[loc[0]:loc[1]]
		limit := ParseAmount(text[loc[2]:loc[3]])
		if limit <= 0 {
			continue
		}

		start := loc[0] - 100
		if start < 0 {
			start = 0
		}
		end := loc[1] + 100
		if end > len(text) {
			end = len(text)
		}
		var attachment float64
		if am := attachmentNearRe.FindStringSubmatch(text[start:end]); am != nil {
			attachment = ParseAmount(am[1])
		}

		limits = append(limits, LayerMention{
			Limit:      limit,
			Attachment: attachment,
			IsPrimary:  attachment == 0,
			RawText:    strings.TrimSpace(raw),
		})
	}

	return limits
}

// extractPartOfAllocations runs the part-of pattern family. Anonymous
// matches duplicating a named match (their span contains a named match's
// raw text) are dropped; the named result carries strictly more
// information.
func extractPartOfAllocations(text string) []PartOfAllocation {
	results := []PartOfAllocation{}

	for _, pat := range partOfRes {
		for _, m := range pat.re.FindAllStringSubmatch(text, -1) {
			var (
				name       string
				fields     []string
				attachment float64
			)
			if pat.named {
				name = strings.TrimSpace(m[1])
				fields = m[2:]
			} else {
				name = "Unknown Carrier"
				fields = m[1:]
				if coveredByNamed(results, m[0]) {
					continue
				}
			}

			pct, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				continue
			}
			layerLimit := ParseAmount(fields[2])
			if !pat.isPrimary {
				attachment = ParseAmount(fields[3])
			}

			results = append(results, PartOfAllocation{
				CarrierName:  name,
				CarrierLimit: ParseAmount(fields[0]),
				Share:        pct / 100.0,
				LayerLimit:   layerLimit,
				Attachment:   attachment,
				IsPrimary:    pat.isPrimary,
				RawText:      strings.TrimSpace(m[0]),
			})
		}
	}

	return results
}

func coveredByNamed(results []PartOfAllocation, span string) bool {
	for i := range results {
		if strings.Contains(results[i].RawText, strings.TrimSpace(span)) {
			return true
		}
	}
	return false
}

// extractCarrierMentions finds carrier/percentage lines such as
// "ABC Insurance Company - 50%". A line qualifies when it carries a carrier
// keyword or has more than two words, which keeps bare figures like
// "Tax 5%" out. The premium is searched on the two lines before through two
// lines after the mention.
func extractCarrierMentions(text string) []CarrierMention {
	carriers := []CarrierMention{}
	lines := strings.Split(text, "\n")

	for i, line := range lines {
		pctMatch := percentRe.FindStringSubmatch(line)
		if pctMatch == nil {
			continue
		}

		lower := strings.ToLower(line)
		hasKeyword := false
		for _, kw := range carrierLineKeywords {
			if strings.Contains(lower, kw) {
				hasKeyword = true
				break
			}
		}
		if !hasKeyword && len(strings.Fields(line)) <= 2 {
			continue
		}

		nameMatch := carrierNameRe.FindStringSubmatch(line)
		if nameMatch == nil {
			continue
		}
		pct, err := strconv.ParseFloat(pctMatch[1], 64)
		if err != nil {
			continue
		}

		var premium float64
		start := i - 2
		if start < 0 {
			start = 0
		}
		end := i + 3
		if end > len(lines) {
			end = len(lines)
		}
		for _, ctx := range lines[start:end] {
			if pm := premiumNearRe.FindStringSubmatch(ctx); pm != nil {
				premium = ParseAmount(pm[1])
				break
			}
		}

		carriers = append(carriers, CarrierMention{
			CarrierName: strings.TrimSpace(nameMatch[1]),
			Share:       pct / 100.0,
			Premium:     premium,
			RawText:     strings.TrimSpace(line),
		})
	}

	return carriers
}

// ExtractPolicyNumber finds the first policy, certificate, or binder number
// in the text, in that preference order. Empty when none is present.
func ExtractPolicyNumber(text string) string {
	for _, re := range policyNumberRes {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// ClassifyDocumentKind labels a document by keyword presence, first match
// wins in the order quote, binder, policy, certificate.
func ClassifyDocumentKind(text string) domain.DocumentKind {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "quote"):
		return domain.DocumentKindQuote
	case strings.Contains(lower, "binder"):
		return domain.DocumentKindBinder
	case strings.Contains(lower, "policy"):
		return domain.DocumentKindPolicy
	case strings.Contains(lower, "certificate"):
		return domain.DocumentKindCertificate
	default:
		return domain.DocumentKindUnknown
	}
}
