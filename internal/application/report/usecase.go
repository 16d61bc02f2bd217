// Package report assembles one movement-report model from the inventory
// ledger and hands it to format-specific encoders (spreadsheet, PDF).
package report

import (
	"fmt"
	"time"

	"github.com/jhoicas/uniform-stock/internal/application/inventory"
	"github.com/jhoicas/uniform-stock/internal/domain"
	"github.com/jhoicas/uniform-stock/internal/domain/entity"
)

// Movement-type filter values as they appear on the wire.
const (
	TipoEntrada = "entrada"
	TipoSaida   = "saida"
	TipoTodos   = "todos"
)

// Report formats.
const (
	FormatExcel = "excel"
	FormatPDF   = "pdf"
)

// DateLayout is the wire format for startDate/endDate query parameters.
const DateLayout = "2006-01-02"

// displayDate is the day-precision rendering used in period labels.
const displayDate = "02/01/2006"

// Filter are the report query parameters after validation.
type Filter struct {
	StartDate string // YYYY-MM-DD, optional
	EndDate   string // YYYY-MM-DD, optional
	Tipo      string // entrada | saida | todos
	Format    string // excel | pdf
}

// Description is the human-readable filter line printed on the document.
func (f Filter) Description() string {
	switch f.Tipo {
	case TipoEntrada:
		return "Entries only"
	case TipoSaida:
		return "Exits only"
	default:
		return "All movements"
	}
}

// Stats are the precomputed figures shown in both renderings.
type Stats struct {
	TotalMovements int
	TotalEntries   int
	TotalExits     int
	PeriodStart    string
	PeriodEnd      string
}

// Data is the single report model both encoders consume: the filtered
// movement slice, a product lookup table, the filter used and the statistics.
type Data struct {
	Movements []entity.Movement
	Products  map[string]entity.Product
	Filter    Filter
	Stats     Stats
}

// Artifact is a rendered report ready to be served as an attachment.
type Artifact struct {
	Bytes       []byte
	Filename    string
	ContentType string
}

// UseCase builds report data from the inventory manager and dispatches to the
// registered encoders.
type UseCase struct {
	inv      *inventory.UseCase
	encoders map[string]Encoder
}

// NewUseCase registers the encoders by format key.
func NewUseCase(inv *inventory.UseCase, encoders map[string]Encoder) *UseCase {
	return &UseCase{inv: inv, encoders: encoders}
}

// Generate validates the filter, assembles the model and renders it.
func (uc *UseCase) Generate(f Filter) (*Artifact, error) {
	enc, ok := uc.encoders[f.Format]
	if !ok {
		return nil, fmt.Errorf(`%w: invalid format %q, use "excel" or "pdf"`, domain.ErrInvalidInput, f.Format)
	}
	if f.Tipo == "" {
		f.Tipo = TipoTodos
	}

	mf, err := movementFilter(f)
	if err != nil {
		return nil, err
	}

	data := uc.assemble(f, mf)
	payload, err := enc.Encode(data)
	if err != nil {
		return nil, fmt.Errorf("report: encode %s: %w", f.Format, err)
	}

	return &Artifact{
		Bytes:       payload,
		Filename:    Filename(f.Tipo, enc.Extension(), time.Now()),
		ContentType: enc.ContentType(),
	}, nil
}

// assemble pulls the filtered movements plus the product table and computes
// the statistics block.
func (uc *UseCase) assemble(f Filter, mf inventory.MovementFilter) *Data {
	movements := uc.inv.GetMovementsByFilter(mf)

	products := make(map[string]entity.Product)
	for _, p := range uc.inv.GetAllProducts() {
		products[p.Code] = p
	}

	stats := Stats{
		TotalMovements: len(movements),
		PeriodStart:    "Start of records",
		PeriodEnd:      "End of records",
	}
	for _, m := range movements {
		if m.Kind == entity.KindEntry {
			stats.TotalEntries++
		} else {
			stats.TotalExits++
		}
	}
	if len(movements) > 0 {
		// Movements arrive newest first.
		stats.PeriodStart = movements[len(movements)-1].Timestamp.Format(displayDate)
		stats.PeriodEnd = movements[0].Timestamp.Format(displayDate)
	}
	if f.StartDate != "" {
		stats.PeriodStart = f.StartDate
	}
	if f.EndDate != "" {
		stats.PeriodEnd = f.EndDate
	}

	return &Data{Movements: movements, Products: products, Filter: f, Stats: stats}
}

// movementFilter translates the wire filter into ledger terms.
func movementFilter(f Filter) (inventory.MovementFilter, error) {
	var mf inventory.MovementFilter

	if f.StartDate != "" {
		t, err := time.Parse(DateLayout, f.StartDate)
		if err != nil {
			return mf, fmt.Errorf("%w: startDate %q", domain.ErrInvalidInput, f.StartDate)
		}
		mf.StartDate = t
	}
	if f.EndDate != "" {
		t, err := time.Parse(DateLayout, f.EndDate)
		if err != nil {
			return mf, fmt.Errorf("%w: endDate %q", domain.ErrInvalidInput, f.EndDate)
		}
		mf.EndDate = t
	}
	switch f.Tipo {
	case TipoEntrada:
		mf.Kind = entity.KindEntry
	case TipoSaida:
		mf.Kind = entity.KindExit
	case TipoTodos:
		// no kind constraint
	default:
		return mf, fmt.Errorf("%w: tipo %q", domain.ErrInvalidInput, f.Tipo)
	}
	return mf, nil
}

// Filename derives the attachment name shared by both renderings:
// report-movements-{suffix}-{date}.{ext}, where suffix is "full" for an
// unfiltered report and the tipo value otherwise.
func Filename(tipo, ext string, now time.Time) string {
	suffix := tipo
	if tipo == TipoTodos || tipo == "" {
		suffix = "full"
	}
	return fmt.Sprintf("report-movements-%s-%s.%s", suffix, now.Format(DateLayout), ext)
}
