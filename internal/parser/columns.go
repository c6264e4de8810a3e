package parser

import (
	"regexp"
	"strings"
)

// ColumnMap maps semantic roles to column positions on a detected column
// header row. A role not present in the header is -1.
type ColumnMap struct {
	Carrier int
	Line    int
	PPM     int
	Premium int
	Fees    int
	SLTax   int
	Total   int
	// DataStart is the first column carrying participant data. Column A is
	// excluded (DataStart = 1) when it holds the layer label, so the layer
	// title is never misread as a carrier name.
	DataStart int
}

// HasCarrier reports whether a carrier column was resolved; without one, no
// data rows can be read.
func (m ColumnMap) HasCarrier() bool { return m.Carrier >= 0 }

var layerLabelColumnRe = regexp.MustCompile(`(?i)\$?\d+[mkb]?\s*(?:ex|xs|excess)`)

var carrierRoleKeywords = map[string]bool{
	"participant":  true,
	"participants": true,
	"carrier":      true,
	"carriers":     true,
	"firm":         true,
}

// MapColumns maps header keywords to column indices. Matching is by exact
// cleaned-text equality per role; the surplus-lines-tax role additionally
// accepts any cell containing both "sl" and "tax".
func MapColumns(cells []string) ColumnMap {
	m := ColumnMap{Carrier: -1, Line: -1, PPM: -1, Premium: -1, Fees: -1, SLTax: -1, Total: -1}
	m.DataStart = detectDataStart(cells)

	for idx := m.DataStart; idx < len(cells); idx++ {
		text := strings.ToLower(strings.TrimSpace(cells[idx]))
		if text == "" {
			continue
		}
		clean := cleanHeaderCell(text)

		switch {
		case carrierRoleKeywords[clean]:
			m.Carrier = idx
		case clean == "line" || clean == "lines":
			m.Line = idx
		case clean == "ppm" || clean == "rate":
			m.PPM = idx
		case clean == "premium" || clean == "premiums":
			m.Premium = idx
		case clean == "fee" || clean == "fees":
			m.Fees = idx
		case clean == "sl tax" || clean == "sl taxes":
			m.SLTax = idx
		case strings.Contains(text, "sl") && strings.Contains(text, "tax"):
			m.SLTax = idx
		case clean == "total" || clean == "totals":
			m.Total = idx
		}
	}
	return m
}

// detectDataStart decides whether column A holds the layer label rather
// than a role header. It does when the cell matches excess-pattern text, or
// when it is not itself a header keyword while columns B–E contain header
// keywords.
func detectDataStart(cells []string) int {
	first := strings.TrimSpace(cellAt(cells, 0))
	if first == "" {
		return 0
	}
	firstLower := strings.ToLower(first)

	if layerLabelColumnRe.MatchString(firstLower) {
		return 1
	}

	switch firstLower {
	case "participant", "carrier", "firm", "line", "premium":
		return 0
	}
	for i := 1; i < 5 && i < len(cells); i++ {
		switch strings.ToLower(strings.TrimSpace(cells[i])) {
		case "participant", "line", "premium":
			return 1
		}
	}
	return 0
}
