package handler

import (
	"github.com/gin-gonic/gin"

	financeapp "github.com/orgms/backend/internal/application/finance"
)

// PaymentHandler handles standalone payment API endpoints
type PaymentHandler struct {
	BaseHandler
	payments *financeapp.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *financeapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: paymentService}
}

// RegisterRoutes registers payment routes on the given router group
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/payments")
	{
		payments.POST("", h.Create)
		payments.GET("", h.List)
		payments.GET("/:id", h.Get)
		payments.POST("/:id/complete", h.Complete)
		payments.POST("/:id/overdue", h.MarkOverdue)
		payments.POST("/:id/cancel", h.Cancel)
	}
}

// Create opens a standalone payment
func (h *PaymentHandler) Create(c *gin.Context) {
	var req financeapp.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	payment, err := h.payments.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, payment)
}

// Get retrieves a payment by ID
func (h *PaymentHandler) Get(c *gin.Context) {
	paymentID, ok := parseID(c, "id")
	if !ok {
		h.InvalidID(c)
		return
	}

	payment, err := h.payments.Get(c.Request.Context(), paymentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payment)
}

// List retrieves payments with filtering and pagination
func (h *PaymentHandler) List(c *gin.Context) {
	var filter financeapp.PaymentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	payments, total, err := h.payments.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	page, pageSize := filter.Page, filter.PageSize
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, payments, total, page, pageSize)
}

// Complete marks a payment as collected
func (h *PaymentHandler) Complete(c *gin.Context) {
	paymentID, ok := parseID(c, "id")
	if !ok {
		h.InvalidID(c)
		return
	}
	// The body is optional; an empty body completes at the recorded amount
	var req financeapp.CompletePaymentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}

	payment, err := h.payments.Complete(c.Request.Context(), paymentID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payment)
}

// MarkOverdue flags a pending payment as overdue
func (h *PaymentHandler) MarkOverdue(c *gin.Context) {
	paymentID, ok := parseID(c, "id")
	if !ok {
		h.InvalidID(c)
		return
	}

	payment, err := h.payments.MarkOverdue(c.Request.Context(), paymentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payment)
}

// Cancel voids a payment that was never collected
func (h *PaymentHandler) Cancel(c *gin.Context) {
	paymentID, ok := parseID(c, "id")
	if !ok {
		h.InvalidID(c)
		return
	}

	payment, err := h.payments.Cancel(c.Request.Context(), paymentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payment)
}
