package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/orgms/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest represents a request to record an expense
type CreateExpenseRequest struct {
	ExpenseDate   *time.Time      `json:"expense_date"`
	Category      string          `json:"category" binding:"omitempty,oneof=salary utilities maintenance transport supplies rent marketing other"`
	Description   string          `json:"description" binding:"required,min=1,max=255"`
	Amount        decimal.Decimal `json:"amount" binding:"required,dpositive"`
	PaidTo        string          `json:"paid_to" binding:"max=200"`
	ReceiptNumber string          `json:"receipt_number" binding:"max=100"`
	PaymentMethod string          `json:"payment_method" binding:"max=50"`
	Notes         string          `json:"notes" binding:"max=1000"`
}

// ExpenseListFilter represents filter options for the expense list
type ExpenseListFilter struct {
	Search    string     `form:"search"`
	Category  *string    `form:"category" binding:"omitempty,oneof=salary utilities maintenance transport supplies rent marketing other"`
	StartDate *time.Time `form:"start_date"`
	EndDate   *time.Time `form:"end_date"`
	Page      int        `form:"page" binding:"omitempty,min=1"`
	PageSize  int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string     `form:"order_by"`
	OrderDir  string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID            uuid.UUID       `json:"id"`
	ExpenseDate   time.Time       `json:"expense_date"`
	Category      string          `json:"category"`
	CategoryLabel string          `json:"category_label"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	PaidTo        string          `json:"paid_to,omitempty"`
	ReceiptNumber string          `json:"receipt_number,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// CreatePaymentRequest represents a request to open a standalone payment
type CreatePaymentRequest struct {
	CustomerID      uuid.UUID        `json:"customer_id" binding:"required"`
	CustomerName    string           `json:"customer_name" binding:"required,min=1,max=200"`
	PaymentType     string           `json:"payment_type" binding:"omitempty,oneof=down_payment installment full_payment"`
	InvoiceNumber   string           `json:"invoice_number" binding:"required,min=1,max=100"`
	TotalAmount     decimal.Decimal  `json:"total_amount" binding:"required,dpositive"`
	PaidAmount      *decimal.Decimal `json:"paid_amount"`
	PaymentDate     *time.Time       `json:"payment_date"`
	NextPaymentDate *time.Time       `json:"next_payment_date"`
	Notes           string           `json:"notes" binding:"max=1000"`
}

// CompletePaymentRequest represents a request to mark a payment collected.
// PaidAmount, when given, records the final collected amount first.
type CompletePaymentRequest struct {
	PaidAmount *decimal.Decimal `json:"paid_amount"`
}

// PaymentListFilter represents filter options for the payment list
type PaymentListFilter struct {
	Search      string     `form:"search"`
	Status      *string    `form:"status" binding:"omitempty,oneof=pending completed overdue cancelled"`
	PaymentType *string    `form:"payment_type" binding:"omitempty,oneof=down_payment installment full_payment"`
	CustomerID  *uuid.UUID `form:"customer_id"`
	StartDate   *time.Time `form:"start_date"`
	EndDate     *time.Time `form:"end_date"`
	Page        int        `form:"page" binding:"omitempty,min=1"`
	PageSize    int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy     string     `form:"order_by"`
	OrderDir    string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// PaymentResponse represents a standalone payment in API responses
type PaymentResponse struct {
	ID              uuid.UUID       `json:"id"`
	CustomerID      uuid.UUID       `json:"customer_id"`
	CustomerName    string          `json:"customer_name"`
	PaymentType     string          `json:"payment_type"`
	InvoiceNumber   string          `json:"invoice_number"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	PaymentDate     time.Time       `json:"payment_date"`
	NextPaymentDate *time.Time      `json:"next_payment_date,omitempty"`
	Status          string          `json:"status"`
	Notes           string          `json:"notes,omitempty"`
	CompletedAt     *time.Time      `json:"completed_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ToExpenseResponse maps an expense to its API representation
func ToExpenseResponse(expense *finance.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:            expense.ID,
		ExpenseDate:   expense.ExpenseDate,
		Category:      string(expense.Category),
		CategoryLabel: expense.Category.Display(),
		Description:   expense.Description,
		Amount:        expense.Amount,
		PaidTo:        expense.PaidTo,
		ReceiptNumber: expense.ReceiptNumber,
		PaymentMethod: expense.PaymentMethod,
		Notes:         expense.Notes,
		CreatedAt:     expense.CreatedAt,
	}
}

// ToExpenseResponses maps a slice of expenses
func ToExpenseResponses(items []*finance.Expense) []ExpenseResponse {
	responses := make([]ExpenseResponse, len(items))
	for i, expense := range items {
		responses[i] = ToExpenseResponse(expense)
	}
	return responses
}

// ToPaymentResponse maps a payment to its API representation
func ToPaymentResponse(payment *finance.Payment) PaymentResponse {
	return PaymentResponse{
		ID:              payment.ID,
		CustomerID:      payment.CustomerID,
		CustomerName:    payment.CustomerName,
		PaymentType:     string(payment.PaymentType),
		InvoiceNumber:   payment.InvoiceNumber,
		TotalAmount:     payment.TotalAmount,
		PaidAmount:      payment.PaidAmount,
		PaymentDate:     payment.PaymentDate,
		NextPaymentDate: payment.NextPaymentDate,
		Status:          string(payment.Status),
		Notes:           payment.Notes,
		CompletedAt:     payment.CompletedAt,
		CreatedAt:       payment.CreatedAt,
		UpdatedAt:       payment.UpdatedAt,
	}
}

// ToPaymentResponses maps a slice of payments
func ToPaymentResponses(items []*finance.Payment) []PaymentResponse {
	responses := make([]PaymentResponse, len(items))
	for i, payment := range items {
		responses[i] = ToPaymentResponse(payment)
	}
	return responses
}
