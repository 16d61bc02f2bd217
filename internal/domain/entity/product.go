package entity

import "time"

// DefaultMinimumStock is the alert threshold assigned to every product at
// creation time. The threshold is fixed for the product's lifetime.
const DefaultMinimumStock = 10

// Product is a stocked uniform item identified by its barcode. Quantity is
// mutated in place on every entry or exit; products are never deleted.
type Product struct {
	ID           string    `json:"id"`
	Code         string    `json:"code"` // barcode, unique, map key in the ledger
	Name         string    `json:"name"`
	Size         string    `json:"size"`
	Color        string    `json:"color"`
	Quantity     int       `json:"quantity"` // never negative
	MinimumStock int       `json:"minimum_stock"`
	LastMovement time.Time `json:"last_movement"`
}

// LowStock reports whether the product is at or below its alert threshold.
func (p Product) LowStock() bool {
	return p.Quantity <= p.MinimumStock
}
