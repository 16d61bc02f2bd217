package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/uniform-stock/internal/application/dto"
	"github.com/jhoicas/uniform-stock/internal/application/inventory"
	"github.com/jhoicas/uniform-stock/internal/infrastructure/metrics"
)

// ExitHandler registers stock exits from barcode scans and answers product
// lookups for the scanner screen.
type ExitHandler struct {
	inv     *inventory.UseCase
	metrics *metrics.Metrics
}

// NewExitHandler builds the handler.
func NewExitHandler(inv *inventory.UseCase, m *metrics.Metrics) *ExitHandler {
	return &ExitHandler{inv: inv, metrics: m}
}

// Register godoc
// @Summary      Register a stock exit
// @Description  Removes quantity (default 1) from the product identified by
//
//	its barcode. Fails with 404 when the product is unknown and 400 when
//	the requested quantity exceeds the available stock.
//
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Success      200  {object}  dto.ExitResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/exits [post]
func (h *ExitHandler) Register(c *fiber.Ctx) error {
	var in dto.ExitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	if in.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "barcode is required"})
	}
	if in.Quantity < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity must be a positive number"})
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}

	// Existence is checked before attempting the removal so an unknown
	// barcode is a 404, not a generic failure.
	if _, ok := h.inv.GetProduct(in.Code); !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "Product not found in stock"})
	}

	result := h.inv.RemoveStock(c.Context(), in.Code, in.Quantity)
	if !result.Success {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: result.Message})
	}
	h.metrics.StockExits.Inc()

	product, _ := h.inv.GetProduct(in.Code)
	return c.JSON(dto.ExitResponse{
		Message:       result.Message,
		Product:       dto.NewProductDTO(product),
		LowStockAlert: result.LowStock,
		CurrentStock:  result.NewQuantity,
	})
}

// Lookup godoc
// @Summary      Look up a product by barcode
// @Tags         inventory
// @Produce      json
// @Param        code  path  string  true  "product barcode"
// @Success      200  {object}  dto.ProductDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{code} [get]
func (h *ExitHandler) Lookup(c *fiber.Ctx) error {
	code := c.Params("code")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "barcode is required"})
	}

	product, ok := h.inv.GetProduct(code)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "Product not found"})
	}
	return c.JSON(dto.NewProductDTO(product))
}
