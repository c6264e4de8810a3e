// Package excelexport renders an assembled program as a styled "Program
// Structure" workbook: one banded section per layer with carrier rows and
// RBE breakdown sub-tables.
package excelexport

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/cpeacock1649-gif/layer-builder/internal/csvexport"
	"github.com/cpeacock1649-gif/layer-builder/internal/domain"
)

const sheetName = "Program Structure"

var carrierHeaders = []string{"Carrier", "Share %", "Premium ($)", "Policy #", "Total Fees ($)"}

var rbeHeaders = []string{"RBE", "RBE Share %", "Layer Share %", "Premium ($)", "Policy #"}

type styles struct {
	title      int
	layerBand  int
	colHeader  int
	carrier    int
	carrierNum int
	rbeHeader  int
	rbeColHead int
	rbe        int
}

// Export renders the program into workbook bytes. Layers are written in
// attachment order; the program is expected to be sorted already.
func Export(prog *domain.Program) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("excelexport.Export: %w", err)
	}

	st, err := newStyles(f)
	if err != nil {
		return nil, fmt.Errorf("excelexport.Export: %w", err)
	}

	if err := writeTitle(f, st, prog.Account); err != nil {
		return nil, fmt.Errorf("excelexport.Export: %w", err)
	}

	row := 3
	for i := range prog.Layers {
		row, err = writeLayer(f, st, i, &prog.Layers[i], row)
		if err != nil {
			return nil, fmt.Errorf("excelexport.Export: layer %d: %w", i+1, err)
		}
		row++ // blank row between layers
	}

	setColumnWidths(f)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excelexport.Export: %w", err)
	}
	return buf.Bytes(), nil
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: {sanitized_account_name}_{YYYY-MM-DD}.xlsx
func BuildFilename(accountName string) string {
	sanitized := csvexport.SanitizeFilename(accountName)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.xlsx", sanitized, date)
}

func newStyles(f *excelize.File) (*styles, error) {
	thin := []excelize.Border{
		{Type: "left", Style: 1, Color: "000000"},
		{Type: "right", Style: 1, Color: "000000"},
		{Type: "top", Style: 1, Color: "000000"},
		{Type: "bottom", Style: 1, Color: "000000"},
	}

	st := &styles{}
	var err error

	st.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}

	st.layerBand, err = f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"366092"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    thin,
	})
	if err != nil {
		return nil, err
	}

	st.colHeader, err = f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"D9E1F2"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thin,
	})
	if err != nil {
		return nil, err
	}

	st.carrier, err = f.NewStyle(&excelize.Style{
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"EBF1FA"}, Pattern: 1},
		Font:   &excelize.Font{Bold: true},
		Border: thin,
	})
	if err != nil {
		return nil, err
	}

	st.carrierNum, err = f.NewStyle(&excelize.Style{
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"EBF1FA"}, Pattern: 1},
		Border: thin,
	})
	if err != nil {
		return nil, err
	}

	st.rbeHeader, err = f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"E6EEF9"}, Pattern: 1},
		Font:      &excelize.Font{Italic: true},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}

	st.rbeColHead, err = f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"E6EEF9"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true, Size: 9},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thin,
	})
	if err != nil {
		return nil, err
	}

	st.rbe, err = f.NewStyle(&excelize.Style{
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"F5F9FF"}, Pattern: 1},
		Border: thin,
	})
	if err != nil {
		return nil, err
	}

	return st, nil
}

func writeTitle(f *excelize.File, st *styles, account string) error {
	if err := f.SetCellValue(sheetName, "A1", account); err != nil {
		return err
	}
	if err := f.MergeCell(sheetName, "A1", "E1"); err != nil {
		return err
	}
	return f.SetCellStyle(sheetName, "A1", "E1", st.title)
}

func writeLayer(f *excelize.File, st *styles, idx int, layer *domain.Layer, row int) (int, error) {
	var label string
	if layer.IsPrimary {
		label = fmt.Sprintf("Layer %d: $%s Primary", idx+1, money(layer.Limit))
	} else {
		label = fmt.Sprintf("Layer %d: $%s xs $%s", idx+1, money(layer.Limit), money(layer.Attachment))
	}

	if err := writeBand(f, st.layerBand, row, label); err != nil {
		return row, err
	}
	if err := f.SetRowHeight(sheetName, row, 35); err != nil {
		return row, err
	}
	row++

	if err := writeHeaderRow(f, st.colHeader, row, carrierHeaders); err != nil {
		return row, err
	}
	row++

	for i := range layer.Carriers {
		var err error
		row, err = writeCarrier(f, st, &layer.Carriers[i], row)
		if err != nil {
			return row, err
		}
	}
	return row, nil
}

func writeCarrier(f *excelize.File, st *styles, c *domain.CarrierParticipation, row int) (int, error) {
	policyNum := c.PolicyNumber
	if c.HasMultipleRBEs && len(c.RBEs) > 0 {
		policyNum = "Multiple"
	}

	values := []interface{}{
		c.CarrierName,
		fmt.Sprintf("%.1f%%", c.Share*100),
		"$" + money(c.Premium),
		policyNum,
		fmt.Sprintf("$%.2f", c.CarrierFee+c.SurplusFee),
	}
	if err := writeRow(f, row, values); err != nil {
		return row, err
	}
	start, end := cellRange(row)
	if err := f.SetCellStyle(sheetName, start, end, st.carrierNum); err != nil {
		return row, err
	}
	if err := f.SetCellStyle(sheetName, start, start, st.carrier); err != nil {
		return row, err
	}
	row++

	if !c.HasMultipleRBEs {
		return row, nil
	}

	banner := fmt.Sprintf("RBE breakdown of carrier's %.1f%% layer participation:", c.Share*100)
	if err := writeBand(f, st.rbeHeader, row, banner); err != nil {
		return row, err
	}
	row++

	if err := writeHeaderRow(f, st.rbeColHead, row, rbeHeaders); err != nil {
		return row, err
	}
	row++

	for i := range c.RBEs {
		rbe := &c.RBEs[i]
		values := []interface{}{
			rbe.RBE,
			fmt.Sprintf("%.1f%%", rbe.Share*100),
			fmt.Sprintf("%.2f%%", rbe.Share*c.Share*100),
			"$" + money(rbe.Premium),
			rbe.PolicyNumber,
		}
		if err := writeRow(f, row, values); err != nil {
			return row, err
		}
		start, end := cellRange(row)
		if err := f.SetCellStyle(sheetName, start, end, st.rbe); err != nil {
			return row, err
		}
		row++
	}
	return row, nil
}

// writeBand fills A..E on the row with one merged styled cell.
func writeBand(f *excelize.File, styleID, row int, value string) error {
	start, end := cellRange(row)
	if err := f.SetCellValue(sheetName, start, value); err != nil {
		return err
	}
	if err := f.MergeCell(sheetName, start, end); err != nil {
		return err
	}
	return f.SetCellStyle(sheetName, start, end, styleID)
}

func writeHeaderRow(f *excelize.File, styleID, row int, headers []string) error {
	if err := writeRow(f, row, toInterfaces(headers)); err != nil {
		return err
	}
	start, end := cellRange(row)
	return f.SetCellStyle(sheetName, start, end, styleID)
}

func writeRow(f *excelize.File, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheetName, cell, &values)
}

func cellRange(row int) (string, string) {
	return fmt.Sprintf("A%d", row), fmt.Sprintf("E%d", row)
}

func setColumnWidths(f *excelize.File) {
	f.SetColWidth(sheetName, "A", "A", 40)
	f.SetColWidth(sheetName, "B", "B", 14)
	f.SetColWidth(sheetName, "C", "C", 16)
	f.SetColWidth(sheetName, "D", "D", 25)
	f.SetColWidth(sheetName, "E", "E", 18)
}

func toInterfaces(ss []string) []interface{} {
	out := make([]interface{}, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// money renders v with thousands separators, e.g. 75000000 -> "75,000,000".
func money(v float64) string {
	s := fmt.Sprintf("%.0f", v)
	sign := ""
	if len(s) > 0 && s[0] == '-' {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}
	var out []byte
	for i := 0; i < len(s); i++ {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	return sign + string(out)
}
