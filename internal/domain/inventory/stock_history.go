package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/orgms/backend/internal/domain/shared"
)

// MovementType classifies a stock movement
type MovementType string

const (
	MovementIn         MovementType = "in"
	MovementOut        MovementType = "out"
	MovementAdjustment MovementType = "adjustment"
)

// IsValid checks if the movement type is a known value
func (m MovementType) IsValid() bool {
	switch m {
	case MovementIn, MovementOut, MovementAdjustment:
		return true
	}
	return false
}

// StockHistory is an immutable audit record of a single stock movement.
// Records are only ever inserted, never updated or deleted.
type StockHistory struct {
	shared.BaseEntity
	StockItemID      uuid.UUID    `gorm:"type:uuid;not null;index"`
	MovementType     MovementType `gorm:"type:varchar(10);not null"`
	PreviousQuantity int64        `gorm:"not null"`
	NewQuantity      int64        `gorm:"not null"`
	Reason           string       `gorm:"type:varchar(255)"`
	CreatedBy        string       `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (StockHistory) TableName() string {
	return "stock_histories"
}

// NewStockHistory creates a stock movement record
func NewStockHistory(stockItemID uuid.UUID, movementType MovementType, previousQuantity, newQuantity int64, reason, createdBy string) *StockHistory {
	return &StockHistory{
		BaseEntity:       shared.NewBaseEntity(),
		StockItemID:      stockItemID,
		MovementType:     movementType,
		PreviousQuantity: previousQuantity,
		NewQuantity:      newQuantity,
		Reason:           reason,
		CreatedBy:        createdBy,
	}
}

// QuantityChange returns the signed delta of the movement
func (h *StockHistory) QuantityChange() int64 {
	return h.NewQuantity - h.PreviousQuantity
}

// Age returns how long ago the movement was recorded
func (h *StockHistory) Age() time.Duration {
	return time.Since(h.CreatedAt)
}
