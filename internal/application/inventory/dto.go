package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/orgms/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// CreateStockItemRequest represents a request to register a stock item
type CreateStockItemRequest struct {
	PartName        string          `json:"part_name" binding:"required,min=1,max=200"`
	PartCode        string          `json:"part_code" binding:"required,min=1,max=50"`
	Unit            string          `json:"unit" binding:"omitempty,oneof=pcs box kg ltr mtr"`
	UnitPrice       decimal.Decimal `json:"unit_price" binding:"required,dpositive"`
	InitialQuantity int64           `json:"initial_quantity" binding:"omitempty,min=0"`
	Location        string          `json:"location" binding:"max=100"`
	MinimumStock    *int64          `json:"minimum_stock" binding:"omitempty,min=0"`
	Supplier        string          `json:"supplier" binding:"max=200"`
	Notes           string          `json:"notes" binding:"max=1000"`
}

// UpdateStockItemRequest represents a request to update item details
type UpdateStockItemRequest struct {
	PartName     string           `json:"part_name" binding:"required,min=1,max=200"`
	UnitPrice    *decimal.Decimal `json:"unit_price"`
	Location     string           `json:"location" binding:"max=100"`
	MinimumStock *int64           `json:"minimum_stock" binding:"omitempty,min=0"`
	Supplier     string           `json:"supplier" binding:"max=200"`
	Notes        string           `json:"notes" binding:"max=1000"`
}

// AdjustStockRequest represents a manual stock movement.
// Movement "in" and "out" shift the quantity by the given amount;
// "adjustment" sets it to the counted value.
type AdjustStockRequest struct {
	MovementType string `json:"movement_type" binding:"required,oneof=in out adjustment"`
	Quantity     int64  `json:"quantity" binding:"min=0"`
	Reason       string `json:"reason" binding:"required,min=1,max=255"`
	Actor        string `json:"actor" binding:"required,min=1,max=100"`
}

// StockListFilter represents filter options for the stock item list
type StockListFilter struct {
	Search   string  `form:"search"`
	Unit     *string `form:"unit" binding:"omitempty,oneof=pcs box kg ltr mtr"`
	Location *string `form:"location"`
	Supplier *string `form:"supplier"`
	LowStock bool    `form:"low_stock"`
	Page     int     `form:"page" binding:"omitempty,min=1"`
	PageSize int     `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string  `form:"order_by"`
	OrderDir string  `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// HistoryListFilter represents filter options for the movement history list
type HistoryListFilter struct {
	MovementType *string `form:"movement_type" binding:"omitempty,oneof=in out adjustment"`
	Page         int     `form:"page" binding:"omitempty,min=1"`
	PageSize     int     `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// StockItemResponse represents a stock item in API responses
type StockItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	PartName     string          `json:"part_name"`
	PartCode     string          `json:"part_code"`
	Quantity     int64           `json:"quantity"`
	Unit         string          `json:"unit"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TotalValue   decimal.Decimal `json:"total_value"`
	Location     string          `json:"location,omitempty"`
	MinimumStock int64           `json:"minimum_stock"`
	LowStock     bool            `json:"low_stock"`
	Supplier     string          `json:"supplier,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// StockHistoryResponse represents a stock movement in API responses
type StockHistoryResponse struct {
	ID               uuid.UUID `json:"id"`
	StockItemID      uuid.UUID `json:"stock_item_id"`
	MovementType     string    `json:"movement_type"`
	PreviousQuantity int64     `json:"previous_quantity"`
	NewQuantity      int64     `json:"new_quantity"`
	QuantityChange   int64     `json:"quantity_change"`
	Reason           string    `json:"reason,omitempty"`
	CreatedBy        string    `json:"created_by,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// ToStockItemResponse maps a stock item to its API representation
func ToStockItemResponse(item *inventory.StockItem) StockItemResponse {
	return StockItemResponse{
		ID:           item.ID,
		PartName:     item.PartName,
		PartCode:     item.PartCode,
		Quantity:     item.Quantity,
		Unit:         string(item.Unit),
		UnitPrice:    item.UnitPrice.Amount(),
		TotalValue:   item.TotalValue().Amount(),
		Location:     item.Location,
		MinimumStock: item.MinimumStock,
		LowStock:     item.IsLowStock(),
		Supplier:     item.Supplier,
		Notes:        item.Notes,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}

// ToStockItemResponses maps a slice of stock items
func ToStockItemResponses(items []*inventory.StockItem) []StockItemResponse {
	responses := make([]StockItemResponse, len(items))
	for i, item := range items {
		responses[i] = ToStockItemResponse(item)
	}
	return responses
}

// ToStockHistoryResponse maps a stock movement to its API representation
func ToStockHistoryResponse(history *inventory.StockHistory) StockHistoryResponse {
	return StockHistoryResponse{
		ID:               history.ID,
		StockItemID:      history.StockItemID,
		MovementType:     string(history.MovementType),
		PreviousQuantity: history.PreviousQuantity,
		NewQuantity:      history.NewQuantity,
		QuantityChange:   history.QuantityChange(),
		Reason:           history.Reason,
		CreatedBy:        history.CreatedBy,
		CreatedAt:        history.CreatedAt,
	}
}

// ToStockHistoryResponses maps a slice of stock movements
func ToStockHistoryResponses(items []*inventory.StockHistory) []StockHistoryResponse {
	responses := make([]StockHistoryResponse, len(items))
	for i, history := range items {
		responses[i] = ToStockHistoryResponse(history)
	}
	return responses
}
