package entity

// Ledger is the aggregate root persisted as a single blob: every product
// keyed by barcode plus the append-only movement history in insertion order.
//
// Invariant: for each code, sum(entry quantities) - sum(exit quantities)
// equals Products[code].Quantity.
type Ledger struct {
	Products  map[string]*Product `json:"products"`
	Movements []Movement          `json:"movements"`
}

// NewLedger returns an empty, ready-to-use aggregate.
func NewLedger() *Ledger {
	return &Ledger{
		Products:  make(map[string]*Product),
		Movements: []Movement{},
	}
}
