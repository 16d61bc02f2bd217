package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/uniform-stock/internal/application/dto"
	"github.com/jhoicas/uniform-stock/internal/application/inventory"
)

// recentMovementsLimit is how many movements the dashboard shows.
const recentMovementsLimit = 10

// DashboardHandler serves the aggregate inventory read.
type DashboardHandler struct {
	inv *inventory.UseCase
}

// NewDashboardHandler builds the handler.
func NewDashboardHandler(inv *inventory.UseCase) *DashboardHandler {
	return &DashboardHandler{inv: inv}
}

// Get godoc
// @Summary      Dashboard read
// @Description  All products, the low-stock subset, the 10 most recent
//
//	movements and the aggregate counters.
//
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	products := h.inv.GetAllProducts()
	lowStock := h.inv.GetLowStockAlerts()
	recent := h.inv.GetRecentMovements(recentMovementsLimit)

	return c.JSON(dto.DashboardResponse{
		Products:        dto.NewProductDTOs(products),
		LowStockAlerts:  dto.NewProductDTOs(lowStock),
		RecentMovements: dto.NewMovementDTOs(recent),
		Stats: dto.DashboardStats{
			TotalProducts: h.inv.GetTotalProducts(),
			TotalStock:    h.inv.GetTotalStock(),
			LowStockCount: len(lowStock),
			RecentCount:   len(recent),
		},
	})
}
