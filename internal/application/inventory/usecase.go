package inventory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/uniform-stock/internal/domain"
	"github.com/jhoicas/uniform-stock/internal/domain/entity"
	"github.com/jhoicas/uniform-stock/pkg/logger"
)

// Movement notes recorded by the two mutation paths.
const (
	entryNotes = "Entry via invoice"
	exitNotes  = "Exit via barcode scan"
)

const lowStockWarning = " ⚠️ ALERT: Low stock!"

// UseCase is the inventory manager: every stock mutation and query goes
// through it. One instance owns the in-memory ledger for the whole process;
// an RWMutex serializes the load-mutate-save cycle so concurrent requests
// cannot break the entry/exit sum invariant.
type UseCase struct {
	mu     sync.RWMutex
	store  *LedgerStore
	ledger *entity.Ledger
	log    *logger.Logger
}

// NewUseCase loads the persisted ledger once and keeps it in memory; every
// mutation rewrites the blob through the store.
func NewUseCase(ctx context.Context, store *LedgerStore, log *logger.Logger) *UseCase {
	return &UseCase{
		store:  store,
		ledger: store.Load(ctx),
		log:    log,
	}
}

// ProductDefaults are the optional attributes for a product created on its
// first stock entry. Empty fields fall back to the built-in defaults.
type ProductDefaults struct {
	Name  string
	Size  string
	Color string
}

// AddStock registers a stock entry for code. An existing product gets the
// quantity added; an unknown code creates the product from defaults. The
// movement is appended and the ledger persisted.
func (uc *UseCase) AddStock(ctx context.Context, code string, quantity int, defaults *ProductDefaults) error {
	if code == "" || quantity <= 0 {
		return domain.ErrInvalidInput
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	now := time.Now()
	if p, ok := uc.ledger.Products[code]; ok {
		p.Quantity += quantity
		p.LastMovement = now
	} else {
		np := &entity.Product{
			ID:           code,
			Code:         code,
			Name:         fmt.Sprintf("Uniform %s", code),
			Size:         "M",
			Color:        "Blue",
			Quantity:     quantity,
			MinimumStock: entity.DefaultMinimumStock,
			LastMovement: now,
		}
		if defaults != nil {
			if defaults.Name != "" {
				np.Name = defaults.Name
			}
			if defaults.Size != "" {
				np.Size = defaults.Size
			}
			if defaults.Color != "" {
				np.Color = defaults.Color
			}
		}
		uc.ledger.Products[code] = np
	}

	uc.appendMovement(code, entity.KindEntry, quantity, entryNotes, now)
	uc.store.Save(ctx, uc.ledger)

	uc.log.Info().Str("code", code).Int("quantity", quantity).Msg("stock entry registered")
	return nil
}

// RemoveResult is the outcome of a stock exit attempt.
type RemoveResult struct {
	Success     bool
	Message     string
	NewQuantity int
	LowStock    bool
}

// RemoveStock registers a stock exit for code. The quantity is never allowed
// to go negative: an exit larger than the available stock fails and leaves
// the product untouched. A success message carries the new quantity and, when
// the product falls to or below its threshold, a low-stock warning.
func (uc *UseCase) RemoveStock(ctx context.Context, code string, quantity int) RemoveResult {
	if quantity <= 0 {
		quantity = 1
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	p, ok := uc.ledger.Products[code]
	if !ok {
		return RemoveResult{Success: false, Message: "Product not found in stock"}
	}
	if p.Quantity < quantity {
		return RemoveResult{
			Success: false,
			Message: fmt.Sprintf("Insufficient stock. Available: %d units", p.Quantity),
		}
	}

	now := time.Now()
	p.Quantity -= quantity
	p.LastMovement = now

	uc.appendMovement(code, entity.KindExit, quantity, exitNotes, now)
	uc.store.Save(ctx, uc.ledger)

	msg := fmt.Sprintf("Exit recorded. Current stock: %d units", p.Quantity)
	low := p.LowStock()
	if low {
		msg += lowStockWarning
	}

	uc.log.Info().Str("code", code).Int("quantity", quantity).Int("remaining", p.Quantity).Msg("stock exit registered")
	return RemoveResult{Success: true, Message: msg, NewQuantity: p.Quantity, LowStock: low}
}

// appendMovement adds an append-only record. The ID is time-based with a
// random suffix; collisions are astronomically unlikely, not impossible.
// Caller holds the write lock.
func (uc *UseCase) appendMovement(code, kind string, quantity int, notes string, now time.Time) {
	uc.ledger.Movements = append(uc.ledger.Movements, entity.Movement{
		ID:        fmt.Sprintf("%d-%s", now.UnixMilli(), uuid.NewString()[:8]),
		ProductID: code,
		Kind:      kind,
		Quantity:  quantity,
		Timestamp: now,
		Notes:     notes,
	})
}

// GetStock returns the current quantity for code, 0 when absent.
func (uc *UseCase) GetStock(code string) int {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	if p, ok := uc.ledger.Products[code]; ok {
		return p.Quantity
	}
	return 0
}

// GetProduct returns a copy of the product, or false when absent.
func (uc *UseCase) GetProduct(code string) (entity.Product, bool) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	if p, ok := uc.ledger.Products[code]; ok {
		return *p, true
	}
	return entity.Product{}, false
}

// GetAllProducts returns every product (map order, unordered).
func (uc *UseCase) GetAllProducts() []entity.Product {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	out := make([]entity.Product, 0, len(uc.ledger.Products))
	for _, p := range uc.ledger.Products {
		out = append(out, *p)
	}
	return out
}

// GetLowStockAlerts returns exactly the products at or below their threshold.
func (uc *UseCase) GetLowStockAlerts() []entity.Product {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	out := make([]entity.Product, 0)
	for _, p := range uc.ledger.Products {
		if p.LowStock() {
			out = append(out, *p)
		}
	}
	return out
}

// GetRecentMovements returns up to limit movements, newest first.
func (uc *UseCase) GetRecentMovements(limit int) []entity.Movement {
	if limit <= 0 {
		limit = 10
	}
	movs := uc.GetAllMovements()
	if len(movs) > limit {
		movs = movs[:limit]
	}
	return movs
}

// MovementFilter restricts the movement history. Zero values mean no
// constraint on that dimension; the filters compose conjunctively.
type MovementFilter struct {
	StartDate time.Time // inclusive, start-of-day as given
	EndDate   time.Time // extended to 23:59:59.999 of that day
	Kind      string    // entity.KindEntry | entity.KindExit | ""
}

// GetMovementsByFilter returns matching movements, newest first.
func (uc *UseCase) GetMovementsByFilter(f MovementFilter) []entity.Movement {
	uc.mu.RLock()
	filtered := make([]entity.Movement, 0, len(uc.ledger.Movements))
	var end time.Time
	if !f.EndDate.IsZero() {
		// Full-day inclusive: push the bound to the last millisecond of the day.
		end = time.Date(f.EndDate.Year(), f.EndDate.Month(), f.EndDate.Day(),
			23, 59, 59, 999_000_000, f.EndDate.Location())
	}
	for _, m := range uc.ledger.Movements {
		if !f.StartDate.IsZero() && m.Timestamp.Before(f.StartDate) {
			continue
		}
		if !end.IsZero() && m.Timestamp.After(end) {
			continue
		}
		if f.Kind != "" && m.Kind != f.Kind {
			continue
		}
		filtered = append(filtered, m)
	}
	uc.mu.RUnlock()

	sortByTimestampDesc(filtered)
	return filtered
}

// GetAllMovements returns the full history, newest first.
func (uc *UseCase) GetAllMovements() []entity.Movement {
	uc.mu.RLock()
	movs := make([]entity.Movement, len(uc.ledger.Movements))
	copy(movs, uc.ledger.Movements)
	uc.mu.RUnlock()

	sortByTimestampDesc(movs)
	return movs
}

// GetTotalProducts returns the count of distinct product codes.
func (uc *UseCase) GetTotalProducts() int {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return len(uc.ledger.Products)
}

// GetTotalStock returns the sum of all product quantities.
func (uc *UseCase) GetTotalStock() int {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	total := 0
	for _, p := range uc.ledger.Products {
		total += p.Quantity
	}
	return total
}

func sortByTimestampDesc(movs []entity.Movement) {
	sort.SliceStable(movs, func(i, j int) bool {
		return movs[i].Timestamp.After(movs[j].Timestamp)
	})
}
