package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/uniform-stock/internal/domain/entity"
)

func TestProductLowStock(t *testing.T) {
	p := entity.Product{Quantity: 10, MinimumStock: 10}
	assert.True(t, p.LowStock(), "quantity equal to the threshold is low stock")

	p.Quantity = 11
	assert.False(t, p.LowStock())

	p.Quantity = 0
	assert.True(t, p.LowStock())
}

func TestMovementSignedQuantity(t *testing.T) {
	entry := entity.Movement{Kind: entity.KindEntry, Quantity: 5}
	exit := entity.Movement{Kind: entity.KindExit, Quantity: 5}

	assert.Equal(t, "+5", entry.SignedQuantity())
	assert.Equal(t, "-5", exit.SignedQuantity())
	assert.Equal(t, "Entry", entry.KindLabel())
	assert.Equal(t, "Exit", exit.KindLabel())
}

func TestNewLedgerIsEmptyButInitialized(t *testing.T) {
	l := entity.NewLedger()
	assert.NotNil(t, l.Products)
	assert.NotNil(t, l.Movements)
	assert.Empty(t, l.Products)
	assert.Empty(t, l.Movements)
}
