package dto

import (
	"time"

	"github.com/jhoicas/uniform-stock/internal/domain/entity"
)

// ProductDTO is the wire representation of a product.
type ProductDTO struct {
	ID           string    `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	Size         string    `json:"size"`
	Color        string    `json:"color"`
	Quantity     int       `json:"quantity"`
	MinimumStock int       `json:"minimum_stock"`
	LastMovement time.Time `json:"last_movement"`
}

// NewProductDTO maps the entity.
func NewProductDTO(p entity.Product) ProductDTO {
	return ProductDTO{
		ID:           p.ID,
		Code:         p.Code,
		Name:         p.Name,
		Size:         p.Size,
		Color:        p.Color,
		Quantity:     p.Quantity,
		MinimumStock: p.MinimumStock,
		LastMovement: p.LastMovement,
	}
}

// NewProductDTOs maps a slice.
func NewProductDTOs(ps []entity.Product) []ProductDTO {
	out := make([]ProductDTO, len(ps))
	for i, p := range ps {
		out[i] = NewProductDTO(p)
	}
	return out
}

// MovementDTO is the wire representation of a movement.
type MovementDTO struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Kind      string    `json:"kind"`
	Quantity  int       `json:"quantity"`
	Timestamp time.Time `json:"timestamp"`
	Notes     string    `json:"notes,omitempty"`
}

// NewMovementDTOs maps a slice.
func NewMovementDTOs(ms []entity.Movement) []MovementDTO {
	out := make([]MovementDTO, len(ms))
	for i, m := range ms {
		out[i] = MovementDTO{
			ID:        m.ID,
			ProductID: m.ProductID,
			Kind:      m.Kind,
			Quantity:  m.Quantity,
			Timestamp: m.Timestamp,
			Notes:     m.Notes,
		}
	}
	return out
}

// EntryRequest is the manual stock-entry payload. The image path uses
// multipart form data instead and never reaches this struct.
type EntryRequest struct {
	Manual   bool   `json:"manual"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Size     string `json:"size"`
	Color    string `json:"color"`
}

// ExtractedFields echoes what was read from the invoice (or submitted
// manually) back to the caller.
type ExtractedFields struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Size     string `json:"size"`
	Color    string `json:"color"`
}

// EntryResponse is returned by both entry paths.
type EntryResponse struct {
	Message   string          `json:"message"`
	Product   ProductDTO      `json:"product"`
	Extracted ExtractedFields `json:"extracted"`
}

// ExitRequest is the stock-exit payload; Quantity defaults to 1.
type ExitRequest struct {
	Code     string `json:"code"`
	Quantity int    `json:"quantity"`
}

// ExitResponse reports the updated product and the low-stock flag.
type ExitResponse struct {
	Message       string     `json:"message"`
	Product       ProductDTO `json:"product"`
	LowStockAlert bool       `json:"low_stock_alert"`
	CurrentStock  int        `json:"current_stock"`
}
