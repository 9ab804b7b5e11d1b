package inventory

import (
	"github.com/orgms/backend/internal/domain/shared"
)

// Event type constants for the inventory context
const (
	EventStockDecremented = "inventory.stock.decremented"
	EventStockIncremented = "inventory.stock.incremented"
	EventStockAdjusted    = "inventory.stock.adjusted"
	EventLowStock         = "inventory.stock.low"
)

// StockDecrementedEvent is emitted when stock is taken out
type StockDecrementedEvent struct {
	shared.BaseDomainEvent
	PartCode         string `json:"part_code"`
	PartName         string `json:"part_name"`
	Quantity         int64  `json:"quantity"`
	PreviousQuantity int64  `json:"previous_quantity"`
	NewQuantity      int64  `json:"new_quantity"`
}

// NewStockDecrementedEvent creates a stock decremented event
func NewStockDecrementedEvent(item *StockItem, quantity, previous int64) *StockDecrementedEvent {
	return &StockDecrementedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventStockDecremented, "StockItem", item.ID),
		PartCode:         item.PartCode,
		PartName:         item.PartName,
		Quantity:         quantity,
		PreviousQuantity: previous,
		NewQuantity:      item.Quantity,
	}
}

// StockIncrementedEvent is emitted when stock is added
type StockIncrementedEvent struct {
	shared.BaseDomainEvent
	PartCode         string `json:"part_code"`
	PartName         string `json:"part_name"`
	Quantity         int64  `json:"quantity"`
	PreviousQuantity int64  `json:"previous_quantity"`
	NewQuantity      int64  `json:"new_quantity"`
}

// NewStockIncrementedEvent creates a stock incremented event
func NewStockIncrementedEvent(item *StockItem, quantity, previous int64) *StockIncrementedEvent {
	return &StockIncrementedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventStockIncremented, "StockItem", item.ID),
		PartCode:         item.PartCode,
		PartName:         item.PartName,
		Quantity:         quantity,
		PreviousQuantity: previous,
		NewQuantity:      item.Quantity,
	}
}

// StockAdjustedEvent is emitted for stock-take corrections
type StockAdjustedEvent struct {
	shared.BaseDomainEvent
	PartCode         string `json:"part_code"`
	PreviousQuantity int64  `json:"previous_quantity"`
	NewQuantity      int64  `json:"new_quantity"`
}

// NewStockAdjustedEvent creates a stock adjusted event
func NewStockAdjustedEvent(item *StockItem, previous, actual int64) *StockAdjustedEvent {
	return &StockAdjustedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventStockAdjusted, "StockItem", item.ID),
		PartCode:         item.PartCode,
		PreviousQuantity: previous,
		NewQuantity:      actual,
	}
}

// LowStockEvent is emitted when an item drops to or below its minimum stock
type LowStockEvent struct {
	shared.BaseDomainEvent
	PartCode     string `json:"part_code"`
	PartName     string `json:"part_name"`
	Quantity     int64  `json:"quantity"`
	MinimumStock int64  `json:"minimum_stock"`
}

// NewLowStockEvent creates a low stock event
func NewLowStockEvent(item *StockItem) *LowStockEvent {
	return &LowStockEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventLowStock, "StockItem", item.ID),
		PartCode:        item.PartCode,
		PartName:        item.PartName,
		Quantity:        item.Quantity,
		MinimumStock:    item.MinimumStock,
	}
}
