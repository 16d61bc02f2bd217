// Package excel renders the movement report as an XLSX workbook with three
// sheets: the movement log, the statistics block and the current stock table.
package excel

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/uniform-stock/internal/application/report"
)

var _ report.Encoder = (*ReportEncoder)(nil)

const (
	sheetMovements = "Movements"
	sheetStats     = "Statistics"
	sheetStock     = "Current Stock"

	datetimeLayout = "02/01/2006 15:04:05"
)

// ReportEncoder implements report.Encoder using excelize.
type ReportEncoder struct{}

// NewReportEncoder builds the encoder.
func NewReportEncoder() *ReportEncoder { return &ReportEncoder{} }

func (e *ReportEncoder) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (e *ReportEncoder) Extension() string { return "xlsx" }

// Encode writes the workbook and returns its bytes.
func (e *ReportEncoder) Encode(data *report.Data) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	// The default sheet becomes the movement log.
	if err := f.SetSheetName(f.GetSheetName(0), sheetMovements); err != nil {
		return nil, fmt.Errorf("excel: rename sheet: %w", err)
	}
	if err := e.writeMovements(f, data); err != nil {
		return nil, err
	}
	if err := e.writeStats(f, data); err != nil {
		return nil, err
	}
	if err := e.writeStock(f, data); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// writeMovements: one row per movement with the product resolved through the
// lookup table ("Product not found" when the weak reference dangles).
func (e *ReportEncoder) writeMovements(f *excelize.File, data *report.Data) error {
	header := []interface{}{
		"Date/Time", "Kind", "Product", "Code", "Size", "Color", "Quantity", "Notes",
	}
	if err := f.SetSheetRow(sheetMovements, "A1", &header); err != nil {
		return fmt.Errorf("excel: movements header: %w", err)
	}

	for i, m := range data.Movements {
		name, size, color := "Product not found", "-", "-"
		if p, ok := data.Products[m.ProductID]; ok {
			name, size, color = p.Name, p.Size, p.Color
		}
		notes := m.Notes
		if notes == "" {
			notes = "-"
		}
		row := []interface{}{
			m.Timestamp.Format(datetimeLayout),
			m.KindLabel(),
			name,
			m.ProductID,
			size,
			color,
			m.SignedQuantity(),
			notes,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("excel: movements cell: %w", err)
		}
		if err := f.SetSheetRow(sheetMovements, cell, &row); err != nil {
			return fmt.Errorf("excel: movements row %d: %w", i+2, err)
		}
	}
	return nil
}

// writeStats: key/value statistics sheet.
func (e *ReportEncoder) writeStats(f *excelize.File, data *report.Data) error {
	if _, err := f.NewSheet(sheetStats); err != nil {
		return fmt.Errorf("excel: stats sheet: %w", err)
	}

	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Total Movements", data.Stats.TotalMovements},
		{"Total Entries", data.Stats.TotalEntries},
		{"Total Exits", data.Stats.TotalExits},
		{"Period Start", data.Stats.PeriodStart},
		{"Period End", data.Stats.PeriodEnd},
	}
	for i, row := range rows {
		r := row
		if err := f.SetSheetRow(sheetStats, "A"+strconv.Itoa(i+1), &r); err != nil {
			return fmt.Errorf("excel: stats row %d: %w", i+1, err)
		}
	}
	return nil
}

// writeStock: one row per product with the derived low-stock status label.
func (e *ReportEncoder) writeStock(f *excelize.File, data *report.Data) error {
	if _, err := f.NewSheet(sheetStock); err != nil {
		return fmt.Errorf("excel: stock sheet: %w", err)
	}

	header := []interface{}{
		"Code", "Name", "Size", "Color", "Current Quantity", "Minimum Stock", "Status", "Last Movement",
	}
	if err := f.SetSheetRow(sheetStock, "A1", &header); err != nil {
		return fmt.Errorf("excel: stock header: %w", err)
	}

	row := 2
	for _, p := range data.Products {
		status := "OK"
		if p.LowStock() {
			status = "LOW STOCK"
		}
		values := []interface{}{
			p.Code,
			p.Name,
			p.Size,
			p.Color,
			p.Quantity,
			p.MinimumStock,
			status,
			p.LastMovement.Format(datetimeLayout),
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return fmt.Errorf("excel: stock cell: %w", err)
		}
		if err := f.SetSheetRow(sheetStock, cell, &values); err != nil {
			return fmt.Errorf("excel: stock row %d: %w", row, err)
		}
		row++
	}
	return nil
}
