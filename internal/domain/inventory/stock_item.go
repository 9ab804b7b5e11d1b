package inventory

import (
	"time"

	"github.com/orgms/backend/internal/domain/shared"
	"github.com/orgms/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Unit represents the measurement unit of a stock item
type Unit string

const (
	UnitPieces Unit = "pcs"
	UnitBox    Unit = "box"
	UnitKg     Unit = "kg"
	UnitLitre  Unit = "ltr"
	UnitMetre  Unit = "mtr"
)

// IsValid checks if the unit is a known value
func (u Unit) IsValid() bool {
	switch u {
	case UnitPieces, UnitBox, UnitKg, UnitLitre, UnitMetre:
		return true
	}
	return false
}

// DefaultMinimumStock is the low-stock threshold applied when none is given
const DefaultMinimumStock int64 = 10

// StockItem represents a physical part held in inventory.
// It is the aggregate root for stock operations; every quantity change
// produces a StockHistory record through the movement methods.
type StockItem struct {
	shared.BaseAggregateRoot
	PartName     string            `gorm:"type:varchar(200);not null"`
	PartCode     string            `gorm:"type:varchar(50);not null;uniqueIndex"`
	Quantity     int64             `gorm:"not null;default:0"`
	Unit         Unit              `gorm:"type:varchar(10);not null;default:'pcs'"`
	UnitPrice    valueobject.Money `gorm:"type:decimal(12,2);not null;default:0"`
	Location     string            `gorm:"type:varchar(100)"`
	MinimumStock int64             `gorm:"not null;default:10"`
	Supplier     string            `gorm:"type:varchar(200)"`
	Notes        string            `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (StockItem) TableName() string {
	return "stock_items"
}

// NewStockItem creates a new stock item
func NewStockItem(partName, partCode string, unit Unit, unitPrice valueobject.Money) (*StockItem, error) {
	if partName == "" {
		return nil, shared.NewDomainError("INVALID_PART_NAME", "Part name cannot be empty")
	}
	if partCode == "" {
		return nil, shared.NewDomainError("INVALID_PART_CODE", "Part code cannot be empty")
	}
	if unit == "" {
		unit = UnitPieces
	}
	if !unit.IsValid() {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unknown stock unit")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_UNIT_PRICE", "Unit price cannot be negative")
	}

	return &StockItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PartName:          partName,
		PartCode:          partCode,
		Quantity:          0,
		Unit:              unit,
		UnitPrice:         unitPrice.RoundMoney(),
		MinimumStock:      DefaultMinimumStock,
	}, nil
}

// IsLowStock returns true when quantity is at or below the minimum threshold
func (s *StockItem) IsLowStock() bool {
	return s.Quantity <= s.MinimumStock
}

// CanFulfill returns true if the requested quantity can be taken from stock
func (s *StockItem) CanFulfill(quantity int64) bool {
	return s.Quantity >= quantity
}

// Decrement removes quantity from stock (sale fulfillment or manual stock-out).
// Returns the history record describing the movement.
func (s *StockItem) Decrement(quantity int64, reason, createdBy string) (*StockHistory, error) {
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if s.Quantity < quantity {
		return nil, shared.NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock for "+s.PartName)
	}

	previous := s.Quantity
	s.Quantity -= quantity
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	history := NewStockHistory(s.ID, MovementOut, previous, s.Quantity, reason, createdBy)

	s.AddDomainEvent(NewStockDecrementedEvent(s, quantity, previous))
	if s.IsLowStock() {
		s.AddDomainEvent(NewLowStockEvent(s))
	}

	return history, nil
}

// Increment adds quantity to stock (restock or return)
func (s *StockItem) Increment(quantity int64, reason, createdBy string) (*StockHistory, error) {
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	previous := s.Quantity
	s.Quantity += quantity
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	history := NewStockHistory(s.ID, MovementIn, previous, s.Quantity, reason, createdBy)

	s.AddDomainEvent(NewStockIncrementedEvent(s, quantity, previous))

	return history, nil
}

// Adjust sets the quantity to the counted value from a physical stock take
func (s *StockItem) Adjust(actualQuantity int64, reason, createdBy string) (*StockHistory, error) {
	if actualQuantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Actual quantity cannot be negative")
	}
	if reason == "" {
		return nil, shared.NewDomainError("INVALID_REASON", "Adjustment reason is required")
	}

	previous := s.Quantity
	s.Quantity = actualQuantity
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	history := NewStockHistory(s.ID, MovementAdjustment, previous, s.Quantity, reason, createdBy)

	s.AddDomainEvent(NewStockAdjustedEvent(s, previous, actualQuantity))
	if s.IsLowStock() {
		s.AddDomainEvent(NewLowStockEvent(s))
	}

	return history, nil
}

// SetUnitPrice updates the unit price
func (s *StockItem) SetUnitPrice(price valueobject.Money) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_UNIT_PRICE", "Unit price cannot be negative")
	}
	s.UnitPrice = price.RoundMoney()
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// SetMinimumStock updates the low-stock threshold
func (s *StockItem) SetMinimumStock(minimum int64) error {
	if minimum < 0 {
		return shared.NewDomainError("INVALID_MINIMUM", "Minimum stock cannot be negative")
	}
	s.MinimumStock = minimum
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// UpdateDetails updates the descriptive fields of the item
func (s *StockItem) UpdateDetails(partName, location, supplier, notes string) error {
	if partName == "" {
		return shared.NewDomainError("INVALID_PART_NAME", "Part name cannot be empty")
	}
	s.PartName = partName
	s.Location = location
	s.Supplier = supplier
	s.Notes = notes
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// TotalValue returns quantity * unit price
func (s *StockItem) TotalValue() valueobject.Money {
	return s.UnitPrice.MultiplyByInt(s.Quantity)
}

// QuantityDecimal returns the quantity as a decimal for arithmetic with Money
func (s *StockItem) QuantityDecimal() decimal.Decimal {
	return decimal.NewFromInt(s.Quantity)
}

var _ shared.AggregateRoot = (*StockItem)(nil)
