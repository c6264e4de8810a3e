package parser

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/cpeacock1649-gif/layer-builder/internal/domain"
)

// numericNameRe rejects carrier-name cells that are really numbers,
// currency or percentages.
var numericNameRe = regexp.MustCompile(`^[\$\d,.\-\s%]+$`)

// boilerplateNames are values that can appear in a carrier column but are
// never carrier names: leaked headers, totals, checkbox values.
var boilerplateNames = map[string]bool{
	"PARTICIPANT": true, "CARRIER": true, "TOTAL": true, "TOTALS": true,
	"FIRM": true, "INSURER": true, "UNDERWRITER": true, "GRAND TOTAL": true,
	"SUBTOTAL": true, "N/A": true, "TBD": true,
	"YES": true, "NO": true, "Y": true, "N": true, "TRUE": true, "FALSE": true,
	"LINE": true, "PREMIUM": true, "FEES": true, "FEE": true, "PPM": true,
	"RATE": true, "SL TAX": true, "SURPLUS": true,
}

// ParseSpreadsheetProgram parses an insurance program spreadsheet into
// layers and carrier participations. All sheets of the workbook contribute
// to one flat layer list, which is deduplicated by (limit, attachment) and
// sorted by attachment before being returned.
//
// A byte stream that cannot be opened as a workbook yields
// {Success: false, Error: ...}; rows that match no pattern are silently
// skipped. The debug flag only adds trace lines to the result, it never
// changes what is parsed.
func ParseSpreadsheetProgram(data []byte, filename string, debug bool) *SpreadsheetResult {
	tr := newTrace(debug)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return &SpreadsheetResult{
			Filename: filename,
			Success:  false,
			Error:    fmt.Sprintf("opening workbook: %v", err),
		}
	}
	defer func() { _ = f.Close() }()

	var allLayers []domain.Layer
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return &SpreadsheetResult{
				Filename: filename,
				Success:  false,
				Error:    fmt.Sprintf("reading sheet %q: %v", sheet, err),
			}
		}
		tr.Logf("sheet %q: %d rows", sheet, len(rows))
		allLayers = append(allLayers, walkSheet(rows, tr)...)
	}

	layers := dedupWithinDocument(allLayers)
	domain.SortLayers(layers)

	tr.Logf("parse complete: %d layers", len(layers))
	return &SpreadsheetResult{
		Filename: filename,
		Layers:   layers,
		Success:  true,
		Warnings: shareWarnings(layers),
		Trace:    tr.Lines(),
	}
}

// walkSheet drives the row classifier and column mapper across one sheet's
// rows, accumulating the current layer and its carrier list.
//
// The column map persists across layer boundaries: schedules do not repeat
// the header before every layer. A layer-header row is additionally
// re-checked as a column header, because some formats put both on one line.
func walkSheet(rows [][]string, tr *Trace) []domain.Layer {
	var layers []domain.Layer
	var current *domain.Layer
	colMap := ColumnMap{Carrier: -1, Line: -1, PPM: -1, Premium: -1, Fees: -1, SLTax: -1, Total: -1}

	flush := func() {
		if current != nil && len(current.Carriers) > 0 {
			layers = append(layers, *current)
			tr.Logf("flushed layer $%.0f xs $%.0f with %d carriers",
				current.Limit, current.Attachment, len(current.Carriers))
		}
		current = nil
	}

	for rowIdx, row := range rows {
		if IsSkipRow(row) {
			continue
		}
		if IsTotalRow(row) {
			tr.Logf("row %d: total row, skipped", rowIdx+1)
			continue
		}

		if match, kind, ok := DetectLayerHeader(row); ok {
			flush()
			if kind == Matched {
				tr.Logf("row %d: layer header %q -> limit=%.0f attachment=%.0f primary=%v",
					rowIdx+1, match.RawText, match.Limit, match.Attachment, match.IsPrimary)
				current = &domain.Layer{
					Limit:      match.Limit,
					Attachment: match.Attachment,
					IsPrimary:  match.IsPrimary,
				}
			} else {
				// Layer title recognized but no amount found in the row;
				// stay without an active layer.
				tr.Logf("row %d: ambiguous layer header %q, no amount found", rowIdx+1, match.RawText)
			}
			// Fall through: the same row may also carry the column headers.
		}

		if IsColumnHeaderRow(row) {
			colMap = MapColumns(row)
			tr.Logf("row %d: column header -> carrier=%d line=%d premium=%d fees=%d sl_tax=%d total=%d (data starts col %d)",
				rowIdx+1, colMap.Carrier, colMap.Line, colMap.Premium, colMap.Fees, colMap.SLTax, colMap.Total, colMap.DataStart)
			continue
		}

		if current != nil && colMap.HasCarrier() {
			if carrier, ok := extractCarrier(row, current, colMap, tr); ok {
				current.Carriers = append(current.Carriers, carrier)
			}
		}
	}
	flush()
	return layers
}

// extractCarrier reads one data row into a carrier participation. The share
// is the carrier's line (participation amount) over the layer limit; the
// premium falls back to the total column when no premium column value is
// present.
func extractCarrier(row []string, layer *domain.Layer, cm ColumnMap, tr *Trace) (domain.CarrierParticipation, bool) {
	name := strings.TrimSpace(cellAt(row, cm.Carrier))
	if name == "" || len(name) < 3 {
		return domain.CarrierParticipation{}, false
	}
	if boilerplateNames[strings.ToUpper(name)] {
		tr.Logf("skipping boilerplate name %q", name)
		return domain.CarrierParticipation{}, false
	}
	if numericNameRe.MatchString(name) {
		tr.Logf("skipping numeric value %q in carrier column", name)
		return domain.CarrierParticipation{}, false
	}

	line := ParseAmount(cellAt(row, cm.Line))
	premium := ParseAmount(cellAt(row, cm.Premium))
	if premium == 0 && cm.Total >= 0 {
		premium = ParseAmount(cellAt(row, cm.Total))
	}
	carrierFee := ParseAmount(cellAt(row, cm.Fees))
	surplusFee := ParseAmount(cellAt(row, cm.SLTax))

	var share float64
	if layer.Limit > 0 && line > 0 {
		share = line / layer.Limit
	}

	if line <= 0 && premium <= 0 {
		return domain.CarrierParticipation{}, false
	}

	tr.Logf("carrier %q: line=%.0f / limit=%.0f -> share=%.4f, premium=%.0f",
		name, line, layer.Limit, share, premium)

	return domain.CarrierParticipation{
		CarrierName: name,
		Share:       share,
		Premium:     premium,
		CarrierFee:  carrierFee,
		SurplusFee:  surplusFee,
		RBEs:        []domain.RBE{},
	}, true
}

// dedupWithinDocument merges layers split by repeated headers (or spread
// across sheets) under one (limit, attachment) key. Within a single
// document an identical carrier entry (same name, same share within 1e-4)
// is dropped rather than summed; the same carrier with a different share is
// a distinct participation and kept.
func dedupWithinDocument(layers []domain.Layer) []domain.Layer {
	var order []mergeKey
	buckets := make(map[mergeKey]*domain.Layer)

	for i := range layers {
		layer := &layers[i]
		key := keyFor(layer.Limit, layer.Attachment)
		bucket, ok := buckets[key]
		if !ok {
			bucket = &domain.Layer{
				Limit:      layer.Limit,
				Attachment: layer.Attachment,
				IsPrimary:  layer.IsPrimary,
			}
			buckets[key] = bucket
			order = append(order, key)
		}
		for _, carrier := range layer.Carriers {
			if !containsExactCarrier(bucket.Carriers, carrier) {
				bucket.Carriers = append(bucket.Carriers, carrier)
			}
		}
	}

	merged := make([]domain.Layer, 0, len(order))
	for _, key := range order {
		merged = append(merged, *buckets[key])
	}
	return merged
}

func containsExactCarrier(carriers []domain.CarrierParticipation, c domain.CarrierParticipation) bool {
	for i := range carriers {
		if carriers[i].CarrierName == c.CarrierName && sharesEqual(carriers[i].Share, c.Share) {
			return true
		}
	}
	return false
}

// shareWarnings surfaces layers whose carrier shares do not sum to ~100%.
// These are advisory only and never fail the parse.
func shareWarnings(layers []domain.Layer) []string {
	var warnings []string
	for i := range layers {
		layer := &layers[i]
		if len(layer.Carriers) == 0 {
			continue
		}
		total := layer.TotalShare()
		if diff := total - 1.0; diff > domain.ShareTolerance || diff < -domain.ShareTolerance {
			warnings = append(warnings, fmt.Sprintf(
				"layer $%.0f xs $%.0f: carrier shares sum to %.2f%%, expected ~100%%",
				layer.Limit, layer.Attachment, total*100))
		}
	}
	return warnings
}
