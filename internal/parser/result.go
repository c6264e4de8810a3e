// Package parser recovers insurance program structure (layers, carriers,
// shares, premiums) from loosely structured broker spreadsheets and
// free-form quote/binder text, and merges the per-document results into one
// consistent program. All entry points are pure: the same bytes always
// produce the same result, and nothing here touches shared state.
package parser

import "github.com/cpeacock1649-gif/layer-builder/internal/domain"

// ExtractTextFunc extracts plain text from a PDF byte stream. The
// implementation is owned by the caller (see internal/pdftext).
type ExtractTextFunc func(data []byte) (string, error)

// SpreadsheetResult is the outcome of parsing one spreadsheet document.
// Immutable once produced; consumed by MergeSpreadsheetPrograms and the
// presentation layer.
type SpreadsheetResult struct {
	Filename string         `json:"filename"`
	Layers   []domain.Layer `json:"layers"`
	Success  bool           `json:"success"`
	Error    string         `json:"error,omitempty"`
	// Warnings carries non-fatal findings, e.g. layer shares not summing
	// to ~100%. They never block merging or saving.
	Warnings []string `json:"warnings,omitempty"`
	// Trace holds human-readable diagnostic lines when the parse ran with
	// debug enabled. Trace output never alters parse results.
	Trace []string `json:"trace,omitempty"`
}

// LayerMention is a layer-shaped fragment found in free text.
type LayerMention struct {
	Limit      float64 `json:"limit"`
	Attachment float64 `json:"attachment"`
	IsPrimary  bool    `json:"is_primary"`
	RawText    string  `json:"raw_text"`
}

// PartOfAllocation is a carrier-specific stake stated as part of a larger
// layer, e.g. "Ironshore: $2,500,000 (being 3.333%) part of $75,000,000
// excess of $100,000,000".
type PartOfAllocation struct {
	CarrierName  string  `json:"carrier_name"`
	CarrierLimit float64 `json:"carrier_limit"`
	Share        float64 `json:"share"`
	LayerLimit   float64 `json:"layer_limit"`
	Attachment   float64 `json:"attachment"`
	IsPrimary    bool    `json:"is_primary"`
	RawText      string  `json:"raw_text"`
}

// CarrierMention is a carrier/percentage pair found on a single text line.
type CarrierMention struct {
	CarrierName string  `json:"carrier_name"`
	Share       float64 `json:"share"`
	Premium     float64 `json:"premium"`
	RawText     string  `json:"raw_text"`
}

// TextResult is the outcome of parsing one textual (PDF) document.
type TextResult struct {
	Filename     string              `json:"filename"`
	DocumentType domain.DocumentKind `json:"document_type"`
	PolicyNumber string              `json:"policy_number,omitempty"`
	Limits       []LayerMention      `json:"limits"`
	Carriers     []CarrierMention    `json:"carriers"`
	PartOf       []PartOfAllocation  `json:"part_of_data"`
	// RawText holds the first kilobyte of extracted text for preview.
	RawText string `json:"raw_text,omitempty"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// MergedProgram is the reconciled structure produced by the merge engine.
type MergedProgram struct {
	Layers             []domain.Layer `json:"layers"`
	DocumentsProcessed int            `json:"documents_processed"`
	DocumentsFailed    int            `json:"documents_failed"`
}
