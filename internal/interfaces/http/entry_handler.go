package http

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/uniform-stock/internal/application/dto"
	"github.com/jhoicas/uniform-stock/internal/application/inventory"
	"github.com/jhoicas/uniform-stock/internal/application/ports"
	"github.com/jhoicas/uniform-stock/internal/domain"
	"github.com/jhoicas/uniform-stock/internal/domain/invoice"
	"github.com/jhoicas/uniform-stock/internal/infrastructure/metrics"
)

// maxImageSize is the upload limit for invoice photos.
const maxImageSize = 10 * 1024 * 1024 // 10MB

// EntryHandler registers stock entries: manual JSON payloads or invoice
// photos routed through OCR extraction.
type EntryHandler struct {
	inv       *inventory.UseCase
	ocr       ports.OCRService
	extractor *invoice.Extractor
	metrics   *metrics.Metrics
}

// NewEntryHandler builds the handler.
func NewEntryHandler(inv *inventory.UseCase, ocr ports.OCRService, extractor *invoice.Extractor, m *metrics.Metrics) *EntryHandler {
	return &EntryHandler{inv: inv, ocr: ocr, extractor: extractor, metrics: m}
}

// Register godoc
// @Summary      Register a stock entry
// @Description  Manual path: JSON {manual:true, code, name, quantity, size?, color?}.
//
//	Image path: multipart form with an "image" file (JPEG/PNG, max 10MB);
//	the invoice is OCR-processed and the extracted fields must include
//	code and quantity.
//
// @Tags         inventory
// @Accept       json,mpfd
// @Produce      json
// @Success      200  {object}  dto.EntryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/entries [post]
func (h *EntryHandler) Register(c *fiber.Ctx) error {
	if strings.Contains(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		return h.registerManual(c)
	}
	return h.registerFromImage(c)
}

// registerManual: the form-based path; every field is the caller's claim.
func (h *EntryHandler) registerManual(c *fiber.Ctx) error {
	var in dto.EntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	if !in.Manual {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid request"})
	}
	if in.Code == "" || in.Name == "" || in.Quantity <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "all fields are required and quantity must be positive"})
	}

	size := in.Size
	if size == "" {
		size = "M"
	}
	color := in.Color
	if color == "" {
		color = "Blue"
	}

	fields := dto.ExtractedFields{Code: in.Code, Name: in.Name, Quantity: in.Quantity, Size: size, Color: color}
	return h.addAndRespond(c, fields, "Product added manually! Current stock: %d units")
}

// registerFromImage: multipart upload, OCR, field extraction.
func (h *EntryHandler) registerFromImage(c *fiber.Ctx) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "no image was uploaded"})
	}

	contentType := fh.Header.Get(fiber.HeaderContentType)
	switch contentType {
	case "image/jpeg", "image/jpg", "image/png":
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "unsupported file type, use JPEG or PNG"})
	}
	if fh.Size > maxImageSize {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "file too large, maximum 10MB"})
	}

	file, err := fh.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "reading uploaded image"})
	}
	defer file.Close()
	raw, err := io.ReadAll(io.LimitReader(file, maxImageSize+1))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "reading uploaded image"})
	}

	text, err := h.ocr.RecognizeText(c.Context(), base64.StdEncoding.EncodeToString(raw))
	if err != nil {
		h.metrics.OCRFailures.Inc()
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "OCR_FAILED", Message: err.Error()})
	}

	extracted := h.extractor.Extract(text)
	if extracted.Code == "" || extracted.Quantity == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "OCR_INCOMPLETE", Message: "could not extract code or quantity from the invoice"})
	}

	fields := dto.ExtractedFields{
		Code:     extracted.Code,
		Name:     extracted.Name,
		Quantity: extracted.Quantity,
		Size:     extracted.Size,
		Color:    extracted.Color,
	}
	return h.addAndRespond(c, fields, "Product added successfully! Current stock: %d units")
}

// addAndRespond runs the shared tail of both paths: AddStock, then echo the
// updated product plus the fields that produced it.
func (h *EntryHandler) addAndRespond(c *fiber.Ctx, fields dto.ExtractedFields, msgFormat string) error {
	err := h.inv.AddStock(c.Context(), fields.Code, fields.Quantity, &inventory.ProductDefaults{
		Name:  fields.Name,
		Size:  fields.Size,
		Color: fields.Color,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid entry data"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "adding product to stock"})
	}
	h.metrics.StockEntries.Inc()

	product, _ := h.inv.GetProduct(fields.Code)
	return c.JSON(dto.EntryResponse{
		Message:   fmt.Sprintf(msgFormat, product.Quantity),
		Product:   dto.NewProductDTO(product),
		Extracted: fields,
	})
}
