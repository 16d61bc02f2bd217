package excel_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/uniform-stock/internal/application/report"
	"github.com/jhoicas/uniform-stock/internal/domain/entity"
	infraexcel "github.com/jhoicas/uniform-stock/internal/infrastructure/excel"
)

func sampleData() *report.Data {
	ts := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	return &report.Data{
		Movements: []entity.Movement{
			{ID: "m2", ProductID: "123", Kind: entity.KindExit, Quantity: 3, Timestamp: ts.Add(time.Hour), Notes: "Exit via barcode scan"},
			{ID: "m1", ProductID: "123", Kind: entity.KindEntry, Quantity: 10, Timestamp: ts, Notes: "Entry via invoice"},
			{ID: "m0", ProductID: "gone", Kind: entity.KindEntry, Quantity: 1, Timestamp: ts.Add(-time.Hour)},
		},
		Products: map[string]entity.Product{
			"123": {ID: "123", Code: "123", Name: "Polo", Size: "G", Color: "White", Quantity: 7, MinimumStock: 10, LastMovement: ts},
		},
		Filter: report.Filter{Tipo: report.TipoTodos},
		Stats: report.Stats{
			TotalMovements: 3, TotalEntries: 2, TotalExits: 1,
			PeriodStart: "15/03/2024", PeriodEnd: "15/03/2024",
		},
	}
}

func TestEncode_WorkbookStructure(t *testing.T) {
	enc := infraexcel.NewReportEncoder()

	payload, err := enc.Encode(sampleData())
	require.NoError(t, err)
	require.NotEmpty(t, payload)

	f, err := excelize.OpenReader(bytes.NewReader(payload))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Movements", "Statistics", "Current Stock"}, f.GetSheetList())
}

func TestEncode_MovementRows(t *testing.T) {
	enc := infraexcel.NewReportEncoder()

	payload, err := enc.Encode(sampleData())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(payload))
	require.NoError(t, err)
	defer f.Close()

	cell := func(ref string) string {
		v, err := f.GetCellValue("Movements", ref)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Date/Time", cell("A1"))
	assert.Equal(t, "Quantity", cell("G1"))

	// First movement: an exit on a known product.
	assert.Equal(t, "Exit", cell("B2"))
	assert.Equal(t, "Polo", cell("C2"))
	assert.Equal(t, "123", cell("D2"))
	assert.Equal(t, "-3", cell("G2"))
	assert.Equal(t, "Exit via barcode scan", cell("H2"))

	assert.Equal(t, "+10", cell("G3"))

	// Third movement references a product missing from the lookup table.
	assert.Equal(t, "Product not found", cell("C4"))
	assert.Equal(t, "-", cell("E4"))
	assert.Equal(t, "-", cell("H4"), "empty notes render as a dash")
}

func TestEncode_StatsAndStockSheets(t *testing.T) {
	enc := infraexcel.NewReportEncoder()

	payload, err := enc.Encode(sampleData())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(payload))
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue("Statistics", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Total Movements", v)
	v, err = f.GetCellValue("Statistics", "B2")
	require.NoError(t, err)
	assert.Equal(t, "3", v)

	v, err = f.GetCellValue("Current Stock", "A2")
	require.NoError(t, err)
	assert.Equal(t, "123", v)
	v, err = f.GetCellValue("Current Stock", "G2")
	require.NoError(t, err)
	assert.Equal(t, "LOW STOCK", v, "quantity 7 with threshold 10 is low stock")
}

func TestEncoderContract(t *testing.T) {
	enc := infraexcel.NewReportEncoder()

	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", enc.ContentType())
	assert.Equal(t, "xlsx", enc.Extension())
}
