package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/orgms/backend/internal/domain/shared"
	"github.com/orgms/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ItemType discriminates the two kinds of sale line items
type ItemType string

const (
	// ItemTypeInventory lines reference a stock item; the unit price is
	// taken from the stock item, never from user input.
	ItemTypeInventory ItemType = "inventory"
	// ItemTypeNonInventory lines are free-text (machine work, services)
	// with an explicit description and price.
	ItemTypeNonInventory ItemType = "non_inventory"
)

// IsValid checks if the item type is a known value
func (t ItemType) IsValid() bool {
	return t == ItemTypeInventory || t == ItemTypeNonInventory
}

// SaleItem represents a line item of a sale.
// Exactly one variant is populated: inventory lines carry a stock item
// reference with denormalized part info, non-inventory lines carry a
// free-text description.
type SaleItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SaleID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemType    ItemType        `gorm:"type:varchar(20);not null"`
	StockItemID *uuid.UUID      `gorm:"type:uuid"`
	PartName    string          `gorm:"type:varchar(200)"`
	PartCode    string          `gorm:"type:varchar(50)"`
	Description string          `gorm:"type:text"`
	Quantity    int64           `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SaleItem) TableName() string {
	return "sale_items"
}

// NewInventorySaleItem creates an inventory-backed line item.
// The unit price comes from the stock item, not the caller's request.
func NewInventorySaleItem(saleID, stockItemID uuid.UUID, partName, partCode string, quantity int64, unitPrice valueobject.Money) (*SaleItem, error) {
	if stockItemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STOCK_ITEM", "Stock item ID cannot be empty")
	}
	if partName == "" {
		return nil, shared.NewDomainError("INVALID_PART_NAME", "Part name cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()
	price := unitPrice.RoundMoney().Amount()
	return &SaleItem{
		ID:          uuid.New(),
		SaleID:      saleID,
		ItemType:    ItemTypeInventory,
		StockItemID: &stockItemID,
		PartName:    partName,
		PartCode:    partCode,
		Quantity:    quantity,
		UnitPrice:   price,
		LineTotal:   price.Mul(decimal.NewFromInt(quantity)).Round(valueobject.MoneyScale),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// NewNonInventorySaleItem creates a free-text line item
func NewNonInventorySaleItem(saleID uuid.UUID, description string, quantity int64, unitPrice valueobject.Money) (*SaleItem, error) {
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description is required for non-inventory items")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()
	price := unitPrice.RoundMoney().Amount()
	return &SaleItem{
		ID:          uuid.New(),
		SaleID:      saleID,
		ItemType:    ItemTypeNonInventory,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   price,
		LineTotal:   price.Mul(decimal.NewFromInt(quantity)).Round(valueobject.MoneyScale),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// IsInventory returns true for inventory-backed lines
func (i *SaleItem) IsInventory() bool {
	return i.ItemType == ItemTypeInventory
}

// DisplayName returns the human-readable name of the line
func (i *SaleItem) DisplayName() string {
	if i.IsInventory() {
		return i.PartName
	}
	return i.Description
}

// GetUnitPriceMoney returns the unit price as Money
func (i *SaleItem) GetUnitPriceMoney() valueobject.Money {
	return valueobject.NewMoneyBDT(i.UnitPrice)
}

// GetLineTotalMoney returns the line total as Money
func (i *SaleItem) GetLineTotalMoney() valueobject.Money {
	return valueobject.NewMoneyBDT(i.LineTotal)
}
