package inventory

import (
	"testing"

	"github.com/orgms/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestItem(t *testing.T) *StockItem {
	t.Helper()
	item, err := NewStockItem("Brake Pad", "BP-1001", UnitPieces, valueobject.NewMoneyBDTFromFloat(450))
	require.NoError(t, err)
	return item
}

func TestNewStockItem(t *testing.T) {
	item := newTestItem(t)
	assert.Equal(t, "Brake Pad", item.PartName)
	assert.Equal(t, "BP-1001", item.PartCode)
	assert.Equal(t, int64(0), item.Quantity)
	assert.Equal(t, UnitPieces, item.Unit)
	assert.Equal(t, DefaultMinimumStock, item.MinimumStock)
	assert.Equal(t, 1, item.GetVersion())
}

func TestNewStockItemValidation(t *testing.T) {
	_, err := NewStockItem("", "BP-1001", UnitPieces, valueobject.ZeroBDT())
	assert.Error(t, err)

	_, err = NewStockItem("Brake Pad", "", UnitPieces, valueobject.ZeroBDT())
	assert.Error(t, err)

	_, err = NewStockItem("Brake Pad", "BP-1001", "crate", valueobject.ZeroBDT())
	assert.Error(t, err)

	_, err = NewStockItem("Brake Pad", "BP-1001", UnitPieces, valueobject.NewMoneyBDTFromFloat(-1))
	assert.Error(t, err)

	// Empty unit defaults to pieces
	item, err := NewStockItem("Brake Pad", "BP-1001", "", valueobject.ZeroBDT())
	require.NoError(t, err)
	assert.Equal(t, UnitPieces, item.Unit)
}

func TestStockItemIncrement(t *testing.T) {
	item := newTestItem(t)

	history, err := item.Increment(25, "initial purchase", "admin")
	require.NoError(t, err)
	assert.Equal(t, int64(25), item.Quantity)
	assert.Equal(t, MovementIn, history.MovementType)
	assert.Equal(t, int64(0), history.PreviousQuantity)
	assert.Equal(t, int64(25), history.NewQuantity)
	assert.Equal(t, int64(25), history.QuantityChange())

	_, err = item.Increment(0, "noop", "admin")
	assert.Error(t, err)
	_, err = item.Increment(-5, "noop", "admin")
	assert.Error(t, err)
}

func TestStockItemDecrement(t *testing.T) {
	item := newTestItem(t)
	_, err := item.Increment(20, "restock", "admin")
	require.NoError(t, err)
	item.ClearDomainEvents()

	history, err := item.Decrement(5, "sale SAL-20250101-0001", "admin")
	require.NoError(t, err)
	assert.Equal(t, int64(15), item.Quantity)
	assert.Equal(t, MovementOut, history.MovementType)
	assert.Equal(t, int64(20), history.PreviousQuantity)
	assert.Equal(t, int64(15), history.NewQuantity)

	events := item.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventStockDecremented, events[0].EventType())
}

func TestStockItemDecrementInsufficient(t *testing.T) {
	item := newTestItem(t)
	_, err := item.Increment(3, "restock", "admin")
	require.NoError(t, err)

	_, err = item.Decrement(10, "sale", "admin")
	assert.Error(t, err)
	assert.Equal(t, int64(3), item.Quantity)
}

func TestStockItemDecrementEmitsLowStock(t *testing.T) {
	item := newTestItem(t)
	_, err := item.Increment(12, "restock", "admin")
	require.NoError(t, err)
	item.ClearDomainEvents()

	// 12 - 3 = 9, below the default minimum of 10
	_, err = item.Decrement(3, "sale", "admin")
	require.NoError(t, err)

	var sawLowStock bool
	for _, e := range item.GetDomainEvents() {
		if e.EventType() == EventLowStock {
			sawLowStock = true
		}
	}
	assert.True(t, sawLowStock)
	assert.True(t, item.IsLowStock())
}

func TestStockItemAdjust(t *testing.T) {
	item := newTestItem(t)
	_, err := item.Increment(50, "restock", "admin")
	require.NoError(t, err)

	history, err := item.Adjust(47, "annual count", "auditor")
	require.NoError(t, err)
	assert.Equal(t, int64(47), item.Quantity)
	assert.Equal(t, MovementAdjustment, history.MovementType)
	assert.Equal(t, int64(-3), history.QuantityChange())

	_, err = item.Adjust(-1, "bad", "auditor")
	assert.Error(t, err)
	_, err = item.Adjust(10, "", "auditor")
	assert.Error(t, err)
}

func TestStockItemIsLowStock(t *testing.T) {
	item := newTestItem(t)
	require.NoError(t, item.SetMinimumStock(5))

	item.Quantity = 5
	assert.True(t, item.IsLowStock())
	item.Quantity = 6
	assert.False(t, item.IsLowStock())
}

func TestStockItemCanFulfill(t *testing.T) {
	item := newTestItem(t)
	item.Quantity = 10

	assert.True(t, item.CanFulfill(10))
	assert.True(t, item.CanFulfill(1))
	assert.False(t, item.CanFulfill(11))
}

func TestStockItemTotalValue(t *testing.T) {
	item := newTestItem(t)
	item.Quantity = 4
	assert.Equal(t, "1800.00", item.TotalValue().StringFixed(2))
}

func TestStockItemSetters(t *testing.T) {
	item := newTestItem(t)

	require.NoError(t, item.SetUnitPrice(valueobject.NewMoneyBDTFromFloat(500)))
	assert.Equal(t, "500.00", item.UnitPrice.StringFixed(2))
	assert.Error(t, item.SetUnitPrice(valueobject.NewMoneyBDTFromFloat(-1)))

	require.NoError(t, item.SetMinimumStock(20))
	assert.Equal(t, int64(20), item.MinimumStock)
	assert.Error(t, item.SetMinimumStock(-1))

	require.NoError(t, item.UpdateDetails("Brake Pad Set", "Rack 3", "Dhaka Auto Parts", "front axle"))
	assert.Equal(t, "Brake Pad Set", item.PartName)
	assert.Equal(t, "Rack 3", item.Location)
	assert.Error(t, item.UpdateDetails("", "", "", ""))
}
