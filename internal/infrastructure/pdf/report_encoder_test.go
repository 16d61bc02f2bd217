package pdf_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/uniform-stock/internal/application/report"
	"github.com/jhoicas/uniform-stock/internal/domain/entity"
	infrapdf "github.com/jhoicas/uniform-stock/internal/infrastructure/pdf"
)

func sampleData() *report.Data {
	ts := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	return &report.Data{
		Movements: []entity.Movement{
			{ID: "m1", ProductID: "123", Kind: entity.KindEntry, Quantity: 10, Timestamp: ts, Notes: "Entry via invoice"},
			{ID: "m0", ProductID: "gone", Kind: entity.KindExit, Quantity: 2, Timestamp: ts.Add(-time.Hour)},
		},
		Products: map[string]entity.Product{
			"123": {ID: "123", Code: "123", Name: "Polo", Size: "G", Color: "White", Quantity: 10, MinimumStock: 10, LastMovement: ts},
		},
		Filter: report.Filter{Tipo: report.TipoEntrada},
		Stats: report.Stats{
			TotalMovements: 2, TotalEntries: 1, TotalExits: 1,
			PeriodStart: "15/03/2024", PeriodEnd: "15/03/2024",
		},
	}
}

func TestEncode_ProducesPDF(t *testing.T) {
	enc := infrapdf.NewReportEncoder()

	payload, err := enc.Encode(sampleData())
	require.NoError(t, err)
	require.NotEmpty(t, payload)
	assert.Equal(t, "%PDF", string(payload[:4]), "the payload must start with the PDF magic bytes")
}

func TestEncode_EmptyReport(t *testing.T) {
	enc := infrapdf.NewReportEncoder()

	payload, err := enc.Encode(&report.Data{
		Movements: nil,
		Products:  map[string]entity.Product{},
		Filter:    report.Filter{Tipo: report.TipoTodos},
		Stats:     report.Stats{PeriodStart: "Start of records", PeriodEnd: "End of records"},
	})
	require.NoError(t, err, "a report with no movements still renders the header and statistics")
	assert.NotEmpty(t, payload)
}

func TestEncoderContract(t *testing.T) {
	enc := infrapdf.NewReportEncoder()

	assert.Equal(t, "application/pdf", enc.ContentType())
	assert.Equal(t, "pdf", enc.Extension())
}
