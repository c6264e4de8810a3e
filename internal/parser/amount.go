package parser

import (
	"regexp"
	"strconv"
	"strings"
)

var nonNumericRe = regexp.MustCompile(`[^\d.\-]`)

// ParseAmount canonicalizes a heterogeneous monetary value into a number.
// Numeric input is returned verbatim as a float. Text is stripped of
// currency symbols, thousands separators and whitespace, then checked for a
// multiplier suffix. Suffix precedence matters: MM before M ("MM" is an
// alternate millions notation), BL before bare B ("BL" contains "B").
// Returns 0 for empty or unparseable input; never errors.
func ParseAmount(value any) float64 {
	switch v := value.(type) {
	case nil:
		return 0
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		return parseAmountString(v)
	default:
		return 0
	}
}

func parseAmountString(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(s, "$", ""), ",", ""))
	if s == "" {
		return 0
	}

	upper := strings.ToUpper(s)
	multiplier := 1.0
	switch {
	case strings.Contains(upper, "MM"):
		multiplier = 1_000_000
		upper = strings.ReplaceAll(upper, "MM", "")
	case strings.Contains(upper, "BL"):
		multiplier = 1_000_000_000
		upper = strings.ReplaceAll(upper, "BL", "")
	case strings.Contains(upper, "B"):
		multiplier = 1_000_000_000
		upper = strings.ReplaceAll(upper, "B", "")
	case strings.Contains(upper, "M"):
		multiplier = 1_000_000
		upper = strings.ReplaceAll(upper, "M", "")
	case strings.Contains(upper, "K"):
		multiplier = 1_000
		upper = strings.ReplaceAll(upper, "K", "")
	}

	cleaned := nonNumericRe.ReplaceAllString(upper, "")
	if cleaned == "" {
		return 0
	}
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return n * multiplier
}
