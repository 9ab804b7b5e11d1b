package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/orgms/backend/internal/domain/sales"
	"github.com/shopspring/decimal"
)

// CreateSaleItemInput represents one line item in a create or add request.
// Inventory lines carry a stock item reference and take their unit price
// from the stock item; non-inventory lines carry a free-text description
// and an explicit price.
type CreateSaleItemInput struct {
	ItemType    string           `json:"item_type" binding:"required,oneof=inventory non_inventory"`
	StockItemID *uuid.UUID       `json:"stock_item_id"`
	Description string           `json:"description" binding:"max=500"`
	Quantity    int64            `json:"quantity" binding:"required,min=1"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
}

// InitialPaymentInput represents an optional payment recorded at creation
type InitialPaymentInput struct {
	Amount      decimal.Decimal `json:"amount" binding:"required,dpositive"`
	PaymentDate *time.Time      `json:"payment_date"`
	Method      string          `json:"method" binding:"required,oneof=cash bank_transfer card cheque other"`
	Notes       string          `json:"notes" binding:"max=500"`
}

// CreateSaleRequest represents a request to create a sale or quote
type CreateSaleRequest struct {
	CustomerID           uuid.UUID             `json:"customer_id" binding:"required"`
	CustomerName         string                `json:"customer_name" binding:"required,min=1,max=200"`
	Status               string                `json:"status" binding:"omitempty,oneof=draft quote"`
	ExpectedInstallments int                   `json:"expected_installments" binding:"omitempty,min=1"`
	Notes                string                `json:"notes" binding:"max=1000"`
	Items                []CreateSaleItemInput `json:"items"`
	InitialPayment       *InitialPaymentInput  `json:"initial_payment"`
}

// AddItemRequest represents a request to add a line item to a sale
type AddItemRequest = CreateSaleItemInput

// AddPaymentRequest represents a request to record a payment against a sale
type AddPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required,dpositive"`
	PaymentDate *time.Time      `json:"payment_date"`
	Method      string          `json:"method" binding:"required,oneof=cash bank_transfer card cheque other"`
	Notes       string          `json:"notes" binding:"max=500"`
}

// FinalizeSaleRequest represents a request to finalize a sale
type FinalizeSaleRequest struct {
	Actor string `json:"actor" binding:"required,min=1,max=100"`
}

// CancelSaleRequest represents a request to cancel a sale
type CancelSaleRequest struct {
	Actor  string `json:"actor" binding:"required,min=1,max=100"`
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// SaleListFilter represents filter options for the sale list
type SaleListFilter struct {
	Search     string     `form:"search"`
	Status     *string    `form:"status" binding:"omitempty,oneof=draft quote finalized cancelled"`
	CustomerID *uuid.UUID `form:"customer_id"`
	StartDate  *time.Time `form:"start_date"`
	EndDate    *time.Time `form:"end_date"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// SaleItemResponse represents a sale line item in API responses
type SaleItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ItemType    string          `json:"item_type"`
	StockItemID *uuid.UUID      `json:"stock_item_id,omitempty"`
	PartName    string          `json:"part_name,omitempty"`
	PartCode    string          `json:"part_code,omitempty"`
	Description string          `json:"description,omitempty"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// SalePaymentResponse represents a sale payment in API responses
type SalePaymentResponse struct {
	ID            uuid.UUID       `json:"id"`
	ReceiptNumber string          `json:"receipt_number"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   time.Time       `json:"payment_date"`
	Method        string          `json:"method"`
	Notes         string          `json:"notes,omitempty"`
}

// SaleResponse represents a sale in API responses
type SaleResponse struct {
	ID                   uuid.UUID             `json:"id"`
	SaleNumber           string                `json:"sale_number"`
	CustomerID           uuid.UUID             `json:"customer_id"`
	CustomerName         string                `json:"customer_name"`
	Status               string                `json:"status"`
	TotalAmount          decimal.Decimal       `json:"total_amount"`
	PaidTotal            decimal.Decimal       `json:"paid_total"`
	BalanceDue           decimal.Decimal       `json:"balance_due"`
	ExpectedInstallments int                   `json:"expected_installments"`
	Notes                string                `json:"notes,omitempty"`
	Items                []SaleItemResponse    `json:"items"`
	Payments             []SalePaymentResponse `json:"payments"`
	FinalizedAt          *time.Time            `json:"finalized_at,omitempty"`
	FinalizedBy          string                `json:"finalized_by,omitempty"`
	CancelledAt          *time.Time            `json:"cancelled_at,omitempty"`
	CancelReason         string                `json:"cancel_reason,omitempty"`
	CreatedAt            time.Time             `json:"created_at"`
	UpdatedAt            time.Time             `json:"updated_at"`
}

// LowStockAlert flags a stock item that dropped to or below its minimum
// during finalization
type LowStockAlert struct {
	StockItemID  uuid.UUID `json:"stock_item_id"`
	PartName     string    `json:"part_name"`
	PartCode     string    `json:"part_code"`
	Quantity     int64     `json:"quantity"`
	MinimumStock int64     `json:"minimum_stock"`
}

// FinalizeSaleResponse carries the finalized sale plus low-stock warnings
type FinalizeSaleResponse struct {
	Sale     SaleResponse    `json:"sale"`
	LowStock []LowStockAlert `json:"low_stock,omitempty"`
}

// ToSaleItemResponse maps a sale item to its API representation
func ToSaleItemResponse(item *sales.SaleItem) SaleItemResponse {
	return SaleItemResponse{
		ID:          item.ID,
		ItemType:    string(item.ItemType),
		StockItemID: item.StockItemID,
		PartName:    item.PartName,
		PartCode:    item.PartCode,
		Description: item.Description,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		LineTotal:   item.LineTotal,
	}
}

// ToSalePaymentResponse maps a sale payment to its API representation
func ToSalePaymentResponse(payment *sales.SalePayment) SalePaymentResponse {
	return SalePaymentResponse{
		ID:            payment.ID,
		ReceiptNumber: payment.ReceiptNumber,
		Amount:        payment.Amount,
		PaymentDate:   payment.PaymentDate,
		Method:        string(payment.Method),
		Notes:         payment.Notes,
	}
}

// ToSaleResponse maps a sale aggregate to its API representation
func ToSaleResponse(sale *sales.Sale) SaleResponse {
	items := make([]SaleItemResponse, len(sale.Items))
	for i := range sale.Items {
		items[i] = ToSaleItemResponse(&sale.Items[i])
	}
	payments := make([]SalePaymentResponse, len(sale.Payments))
	for i := range sale.Payments {
		payments[i] = ToSalePaymentResponse(&sale.Payments[i])
	}

	return SaleResponse{
		ID:                   sale.ID,
		SaleNumber:           sale.SaleNumber,
		CustomerID:           sale.CustomerID,
		CustomerName:         sale.CustomerName,
		Status:               sale.Status.String(),
		TotalAmount:          sale.TotalAmount,
		PaidTotal:            sale.PaidTotal(),
		BalanceDue:           sale.BalanceDue(),
		ExpectedInstallments: sale.ExpectedInstallments,
		Notes:                sale.Notes,
		Items:                items,
		Payments:             payments,
		FinalizedAt:          sale.FinalizedAt,
		FinalizedBy:          sale.FinalizedBy,
		CancelledAt:          sale.CancelledAt,
		CancelReason:         sale.CancelReason,
		CreatedAt:            sale.CreatedAt,
		UpdatedAt:            sale.UpdatedAt,
	}
}

// ToSaleResponses maps a slice of sales
func ToSaleResponses(items []*sales.Sale) []SaleResponse {
	responses := make([]SaleResponse, len(items))
	for i, sale := range items {
		responses[i] = ToSaleResponse(sale)
	}
	return responses
}
