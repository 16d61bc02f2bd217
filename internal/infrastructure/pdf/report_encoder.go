// Package pdf renders the movement report as a paginated A4 document.
//
// Page layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  TITLE: Uniform Stock Movement Report                        │
//	│  Generated at / Period / Filter                              │
//	│  ───────────────────────────────────────────────────────    │
//	│  STATISTICS: movements / entries / exits                     │
//	│  ───────────────────────────────────────────────────────    │
//	│  TABLE: Date | Kind | Product | Code | Qty | Notes           │
//	│  FOOTER: Page n of total                                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/uniform-stock/internal/application/report"
)

var _ report.Encoder = (*ReportEncoder)(nil)

var (
	colorPrimary = &props.Color{Red: 41, Green: 128, Blue: 185}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

const (
	dateLayout     = "02/01/2006"
	datetimeLayout = "02/01/2006 15:04:05"
)

// ReportEncoder implements report.Encoder using Maroto v2.
type ReportEncoder struct{}

// NewReportEncoder builds the encoder.
func NewReportEncoder() *ReportEncoder { return &ReportEncoder{} }

func (e *ReportEncoder) ContentType() string { return "application/pdf" }

func (e *ReportEncoder) Extension() string { return "pdf" }

// Encode generates the document and returns its bytes.
func (e *ReportEncoder) Encode(data *report.Data) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    8,
		}).
		WithTitle("Uniform Stock Movement Report", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(titleRow())
	m.AddRows(metadataRows(data)...)
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(statsRows(data.Stats)...)
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(data)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

func titleRow() core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("Uniform Stock Movement Report", props.Text{
				Style: fontstyle.Bold, Size: 16, Color: colorPrimary, Top: 2,
			}),
		),
	)
}

// metadataRows: generation timestamp, reporting period and active filter.
func metadataRows(data *report.Data) []core.Row {
	meta := func(s string) core.Row {
		return row.New(5).Add(col.New(12).Add(
			text.New(s, props.Text{Size: 9, Color: colorGray, Top: 1}),
		))
	}
	return []core.Row{
		meta("Generated at: " + time.Now().Format(datetimeLayout)),
		meta(fmt.Sprintf("Period: %s to %s", data.Stats.PeriodStart, data.Stats.PeriodEnd)),
		meta("Filter: " + data.Filter.Description()),
	}
}

// statsRows: the summary block.
func statsRows(stats report.Stats) []core.Row {
	header := row.New(7).Add(col.New(12).Add(
		text.New("Statistics", props.Text{
			Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 1,
		}),
	))
	value := func(s string) core.Row {
		return row.New(5).Add(col.New(12).Add(
			text.New(s, props.Text{Size: 9, Top: 1, Left: 2}),
		))
	}
	return []core.Row{
		header,
		value(fmt.Sprintf("Total Movements: %d", stats.TotalMovements)),
		value(fmt.Sprintf("Entries: %d", stats.TotalEntries)),
		value(fmt.Sprintf("Exits: %d", stats.TotalExits)),
	}
}

// tableHeaderRow: fixed column widths — date 2, kind 1, product 4, code 2,
// qty 1, notes 2 (grid of 12).
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Date", 2, align.Left),
		h("Kind", 1, align.Left),
		h("Product", 4, align.Left),
		h("Code", 2, align.Left),
		h("Qty", 1, align.Right),
		h("Notes", 2, align.Left),
	)
}

// tableRows: one row per movement, product name resolved or "N/A".
func tableRows(data *report.Data) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1}))
	}

	rows := make([]core.Row, 0, len(data.Movements))
	for _, m := range data.Movements {
		name := "N/A"
		if p, ok := data.Products[m.ProductID]; ok {
			name = p.Name
		}
		notes := m.Notes
		if notes == "" {
			notes = "-"
		}
		rows = append(rows, row.New(6).Add(
			cell(m.Timestamp.Format(dateLayout), 2, align.Left),
			cell(m.KindLabel(), 1, align.Left),
			cell(name, 4, align.Left),
			cell(m.ProductID, 2, align.Left),
			cell(m.SignedQuantity(), 1, align.Right),
			cell(notes, 2, align.Left),
		))
	}
	return rows
}
