package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cpeacock1649-gif/layer-builder/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row (12 columns). Each carrier
// participation is one row; RBE breakdowns follow as indented rows that
// repeat the layer columns.
var columns = []string{
	"Layer",
	"Limit ($)",
	"Attachment ($)",
	"Primary",
	"Carrier",
	"Share %",
	"Premium ($)",
	"Policy #",
	"Carrier Fee ($)",
	"Surplus Fee ($)",
	"RBE",
	"RBE Share %",
}

// Writer wraps csv.Writer for exporting a program as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the 12-column header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteProgram converts the program to CSV rows and writes them. Layers are
// numbered in attachment order as they appear in the program.
func (w *Writer) WriteProgram(prog *domain.Program) error {
	for i := range prog.Layers {
		layer := &prog.Layers[i]
		label := layerLabel(i+1, layer)
		for j := range layer.Carriers {
			carrier := &layer.Carriers[j]
			if err := w.csv.Write(carrierRow(label, layer, carrier)); err != nil {
				return err
			}
			if !carrier.HasMultipleRBEs {
				continue
			}
			for k := range carrier.RBEs {
				if err := w.csv.Write(rbeRow(label, layer, carrier, &carrier.RBEs[k])); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func layerLabel(n int, layer *domain.Layer) string {
	if layer.IsPrimary {
		return fmt.Sprintf("Layer %d: $%s Primary", n, formatMoney(layer.Limit))
	}
	return fmt.Sprintf("Layer %d: $%s xs $%s", n, formatMoney(layer.Limit), formatMoney(layer.Attachment))
}

func carrierRow(label string, layer *domain.Layer, c *domain.CarrierParticipation) []string {
	row := make([]string, len(columns))
	row[0] = label
	row[1] = formatMoney(layer.Limit)
	row[2] = formatMoney(layer.Attachment)
	row[3] = formatBool(layer.IsPrimary)
	row[4] = c.CarrierName
	row[5] = formatPercent(c.Share)
	row[6] = formatMoney(c.Premium)
	row[7] = c.PolicyNumber
	row[8] = formatMoney(c.CarrierFee)
	row[9] = formatMoney(c.SurplusFee)
	if c.HasMultipleRBEs && len(c.RBEs) > 0 {
		row[7] = "Multiple"
	}
	return row
}

// rbeRow repeats the layer and carrier columns so the flat file filters
// cleanly in a spreadsheet. RBE share is a fraction of the carrier's share.
func rbeRow(label string, layer *domain.Layer, c *domain.CarrierParticipation, r *domain.RBE) []string {
	row := make([]string, len(columns))
	row[0] = label
	row[1] = formatMoney(layer.Limit)
	row[2] = formatMoney(layer.Attachment)
	row[3] = formatBool(layer.IsPrimary)
	row[4] = c.CarrierName
	row[5] = formatPercent(c.Share * r.Share)
	row[6] = formatMoney(r.Premium)
	row[7] = r.PolicyNumber
	row[10] = r.RBE
	row[11] = formatPercent(r.Share)
	return row
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v*100, 'f', 2, 64)
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans an account name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: {sanitized_account_name}_{YYYY-MM-DD}.csv
func BuildFilename(accountName string) string {
	sanitized := SanitizeFilename(accountName)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.csv", sanitized, date)
}
