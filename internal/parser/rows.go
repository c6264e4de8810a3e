package parser

import (
	"regexp"
	"strings"
)

// RowClass labels a spreadsheet row for the sheet walker.
type RowClass int

const (
	RowData RowClass = iota
	RowSkip
	RowTotal
	RowLayerHeader
	RowColumnHeader
)

var (
	skipRowRes = []*regexp.Regexp{
		regexp.MustCompile(`^[-=_\s]+$`), // divider rows
		regexp.MustCompile(`(?i)^note[s]?:`),
		regexp.MustCompile(`(?i)^comment[s]?:`),
		regexp.MustCompile(`(?i)^see\s+`),
	}

	// numericExcessRe spots "75M ex 100M" written without dollar signs;
	// such cells are retried with $ inserted before each numeric token.
	numericExcessRe = regexp.MustCompile(`(?i)\d+[MKB]?(?:L)?\s*(?:ex|excess|xs)\s*\d+[MKB]?`)
	numericTokenRe  = regexp.MustCompile(`(?i)(\d+[MKB]?(?:L)?)`)

	// specialLayerRes mark layer titles whose amount lives in another cell.
	specialLayerRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^all\s*risks?\s*(?:ex|excess|xs)`),
		regexp.MustCompile(`(?i)^\$?\d+[MKB]?\s*terrorism`),
		regexp.MustCompile(`(?i)^primary.*(?:all\s*risk|including|flood|eq)`),
	}

	nonAlphaSpaceRe = regexp.MustCompile(`[^a-z\s]`)
)

// carrierIndicators flag a cell as a carrier name, which must not be fed to
// the layer pattern cascade (a name like "AXA Insurance Company Ltd" would
// otherwise be misread via its embedded numbers). Matching is by substring,
// so "inc" also catches words like "including" and "Principal"; such cells
// are skipped for header detection too.
var carrierIndicators = []string{
	"insurance", "company", "assurance", "underwriter", "syndicate",
	"lloyds", "lloyd's", "inc", "ltd", "corp",
}

var totalRowMarkers = map[string]bool{
	"TOTAL":       true,
	"TOTALS":      true,
	"SUBTOTAL":    true,
	"SUM":         true,
	"GRAND TOTAL": true,
	"LAYER TOTAL": true,
}

// headerKeywords identify participant/column header rows.
var headerKeywords = map[string]bool{
	"participant": true,
	"line":        true,
	"ppm":         true,
	"premium":     true,
	"fees":        true,
	"fee":         true,
	"carrier":     true,
	"share":       true,
	"firm":        true,
	"sl tax":      true,
	"surplus":     true,
	"total":       true,
	"rate":        true,
}

// ClassifyRow labels a row, applying the fixed precedence
// Skip → Total → LayerHeader → ColumnHeader → Data. A row can legitimately
// be both a layer header and a column header; the sheet walker re-checks
// ColumnHeader on layer-header rows rather than relying on this single
// label.
func ClassifyRow(cells []string) RowClass {
	switch {
	case IsSkipRow(cells):
		return RowSkip
	case IsTotalRow(cells):
		return RowTotal
	}
	if _, _, ok := DetectLayerHeader(cells); ok {
		return RowLayerHeader
	}
	if IsColumnHeaderRow(cells) {
		return RowColumnHeader
	}
	return RowData
}

// IsSkipRow reports whether a row is empty, a divider, or a note/comment/
// reference row that carries no program data.
func IsSkipRow(cells []string) bool {
	empty := true
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			empty = false
			break
		}
	}
	if empty {
		return true
	}

	first := strings.TrimSpace(cellAt(cells, 0))
	if first == "" {
		return false
	}
	for _, re := range skipRowRes {
		if re.MatchString(first) {
			return true
		}
	}
	return false
}

// IsTotalRow reports whether any of the first four cells is a total/summary
// marker.
func IsTotalRow(cells []string) bool {
	for i := 0; i < 4 && i < len(cells); i++ {
		if totalRowMarkers[strings.ToUpper(strings.TrimSpace(cells[i]))] {
			return true
		}
	}
	return false
}

// DetectLayerHeader reports whether a row defines a layer. Only the first
// two cells are considered: layer labels live in the leading columns, not
// buried mid-row. The returned kind is Ambiguous when a layer title was
// recognized but no amount could be recovered from the row.
func DetectLayerHeader(cells []string) (LayerMatch, MatchKind, bool) {
	for i := 0; i < 2 && i < len(cells); i++ {
		cell := strings.TrimSpace(cells[i])
		if cell == "" || looksLikeCarrierName(cell) {
			continue
		}

		if m, kind := RecognizeLayer(cell); kind == Matched {
			return m, Matched, true
		} else if kind == Ambiguous {
			if m, ok := layerFromSiblings(cells, i, cell); ok {
				return m, Matched, true
			}
			return LayerMatch{RawText: cell}, Ambiguous, true
		}

		// "75M ex 100M" without $ signs: retry with $ inserted.
		if numericExcessRe.MatchString(cell) {
			modified := numericTokenRe.ReplaceAllString(cell, "$$${1}")
			if m, kind := RecognizeLayer(modified); kind == Matched {
				m.RawText = cell
				return m, Matched, true
			}
		}

		for _, re := range specialLayerRes {
			if re.MatchString(cell) {
				if m, ok := layerFromSiblings(cells, i, cell); ok {
					return m, Matched, true
				}
				return LayerMatch{RawText: cell}, Ambiguous, true
			}
		}
	}
	return LayerMatch{}, NoMatch, false
}

// layerFromSiblings searches the rest of the row for a monetary value large
// enough ($1M or more) to be the limit of a layer whose title carried no
// amount.
func layerFromSiblings(cells []string, titleIdx int, title string) (LayerMatch, bool) {
	for j := range cells {
		if j == titleIdx {
			continue
		}
		if v := ParseAmount(cells[j]); v >= 1_000_000 {
			return LayerMatch{
				Limit:     v,
				IsPrimary: strings.Contains(strings.ToLower(title), "primary"),
				RawText:   title,
			}, true
		}
	}
	return LayerMatch{}, false
}

// IsColumnHeaderRow reports whether a row is a participant/column header.
// At least three cells must match a header keyword; a single stray
// "Total" or "Rate" in a data row must not re-map the columns.
func IsColumnHeaderRow(cells []string) bool {
	matches := 0
	for _, cell := range cells {
		if isHeaderKeywordCell(cell) {
			matches++
		}
	}
	return matches >= 3
}

// isHeaderKeywordCell reports whether a cell's cleaned text equals a header
// keyword, or starts with one followed by a space or parenthesis (e.g.
// "Premium ($)").
func isHeaderKeywordCell(cell string) bool {
	text := strings.ToLower(strings.TrimSpace(cell))
	if text == "" {
		return false
	}
	if headerKeywords[cleanHeaderCell(text)] {
		return true
	}
	for kw := range headerKeywords {
		if strings.HasPrefix(text, kw+" ") || strings.HasPrefix(text, kw+"(") {
			return true
		}
	}
	return false
}

// cleanHeaderCell lowercases a cell and strips everything but letters and
// spaces, so "Premium ($)" compares equal to "premium".
func cleanHeaderCell(cell string) string {
	return strings.TrimSpace(nonAlphaSpaceRe.ReplaceAllString(strings.ToLower(cell), ""))
}

func looksLikeCarrierName(cell string) bool {
	lower := strings.ToLower(cell)
	for _, ind := range carrierIndicators {
		if strings.Contains(lower, ind) {
			return true
		}
	}
	return false
}

// cellAt returns the cell at idx, or "" when idx is out of range or
// negative. Spreadsheet rows are ragged; every indexed access goes through
// here.
func cellAt(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return cells[idx]
}
