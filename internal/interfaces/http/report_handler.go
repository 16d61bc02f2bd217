package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/uniform-stock/internal/application/dto"
	"github.com/jhoicas/uniform-stock/internal/application/report"
	"github.com/jhoicas/uniform-stock/internal/domain"
	"github.com/jhoicas/uniform-stock/internal/infrastructure/metrics"
)

// ReportHandler serves movement-history reports as binary attachments.
type ReportHandler struct {
	reports *report.UseCase
	metrics *metrics.Metrics
}

// NewReportHandler builds the handler.
func NewReportHandler(reports *report.UseCase, m *metrics.Metrics) *ReportHandler {
	return &ReportHandler{reports: reports, metrics: m}
}

// Generate godoc
// @Summary      Generate a movement report
// @Tags         reports
// @Produce      application/octet-stream
// @Param        startDate  query  string  false  "YYYY-MM-DD, inclusive"
// @Param        endDate    query  string  false  "YYYY-MM-DD, full-day inclusive"
// @Param        tipo       query  string  false  "entrada | saida | todos (default todos)"
// @Param        format     query  string  true   "excel | pdf"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports [get]
func (h *ReportHandler) Generate(c *fiber.Ctx) error {
	filter := report.Filter{
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		Tipo:      c.Query("tipo", report.TipoTodos),
		Format:    c.Query("format"),
	}

	artifact, err := h.reports.Generate(filter)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "generating report"})
	}
	h.metrics.ReportsByType.WithLabelValues(filter.Format).Inc()

	c.Set(fiber.HeaderContentType, artifact.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, artifact.Filename))
	return c.Send(artifact.Bytes)
}
