package entity

import (
	"strconv"
	"time"
)

// Movement kinds.
const (
	KindEntry = "entry"
	KindExit  = "exit"
)

// Movement is an immutable record of a single stock entry or exit event.
// Movements are append-only: never mutated, never deleted.
type Movement struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"` // weak reference to Product.Code
	Kind      string    `json:"kind"`       // entry | exit
	Quantity  int       `json:"quantity"`   // always positive; sign comes from Kind
	Timestamp time.Time `json:"timestamp"`
	Notes     string    `json:"notes,omitempty"`
}

// SignedQuantity renders the quantity with the sign implied by the kind,
// e.g. "+5" for an entry and "-5" for an exit.
func (m Movement) SignedQuantity() string {
	if m.Kind == KindEntry {
		return "+" + strconv.Itoa(m.Quantity)
	}
	return "-" + strconv.Itoa(m.Quantity)
}

// KindLabel is the human-readable label used in reports.
func (m Movement) KindLabel() string {
	if m.Kind == KindEntry {
		return "Entry"
	}
	return "Exit"
}
