package handler

import (
	"github.com/gin-gonic/gin"

	salesapp "github.com/orgms/backend/internal/application/sales"
)

// SaleHandler handles sale lifecycle API endpoints
type SaleHandler struct {
	BaseHandler
	sales *salesapp.Service
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(saleService *salesapp.Service) *SaleHandler {
	return &SaleHandler{sales: saleService}
}

// RegisterRoutes registers sale routes on the given router group
func (h *SaleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sales := rg.Group("/sales")
	{
		sales.POST("", h.Create)
		sales.GET("", h.List)
		sales.GET("/:id", h.Get)
		sales.DELETE("/:id", h.Delete)
		sales.POST("/:id/items", h.AddItem)
		sales.DELETE("/:id/items/:itemID", h.RemoveItem)
		sales.POST("/:id/convert", h.ConvertToDraft)
		sales.POST("/:id/finalize", h.Finalize)
		sales.POST("/:id/cancel", h.Cancel)
		sales.POST("/:id/payments", h.AddPayment)
	}
}

// Create creates a sale or quote
func (h *SaleHandler) Create(c *gin.Context) {
	var req salesapp.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.sales.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, sale)
}

// Get retrieves a sale with its items and payments
func (h *SaleHandler) Get(c *gin.Context) {
	saleID, ok := parseID(c, "id")
	if !ok {
		h.InvalidID(c)
		return
	}

	sale, err := h.sales.Get(c.Request.Context(), saleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// List retrieves sales with filtering and pagination
func (h *SaleHandler) List(c *gin.Context) {
	var filter salesapp.SaleListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sales, total, err := h.sales.List(c.Request.Context(), filter)
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
	h.SuccessWithMeta(c, sales, total, page, pageSize)
}

// AddItem adds a line item to a draft or quote sale
func (h *SaleHandler) AddItem(c *gin.Context) {
	saleID, ok := parseID(c, "id")
	if !ok {
		h.InvalidID(c)
		return
	}
	var req salesapp.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.sales.AddItem(c.Request.Context(), saleID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// RemoveItem removes a line item from a draft sale
func (h *SaleHandler) RemoveItem(c *gin.Context) {
	saleID, ok := parseID(c, "id")
	if !ok {
		h.InvalidID(c)
		return
	}
	itemID, ok := parseID(c, "itemID")
	if !ok {
		h.InvalidID(c)
		return
	}

	sale, err := h.sales.RemoveItem(c.Request.Context(), saleID, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// ConvertToDraft turns a quote into a draft invoice
func (h *SaleHandler) ConvertToDraft(c *gin.Context) {
	saleID, ok := parseID(c, "id")
	if !ok {
		h.InvalidID(c)
		return
	}

	sale, err := h.sales.ConvertToDraft(c.Request.Context(), saleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// Finalize finalizes a draft sale and decrements stock
func (h *SaleHandler) Finalize(c *gin.Context) {
	saleID, ok := parseID(c, "id")
	if !ok {
		h.InvalidID(c)
		return
	}
	var req salesapp.FinalizeSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.sales.Finalize(c.Request.Context(), saleID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Cancel cancels a draft or quote sale
func (h *SaleHandler) Cancel(c *gin.Context) {
	saleID, ok := parseID(c, "id")
	if !ok {
		h.InvalidID(c)
		return
	}
	var req salesapp.CancelSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.sales.Cancel(c.Request.Context(), saleID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// AddPayment records a payment against a sale
func (h *SaleHandler) AddPayment(c *gin.Context) {
	saleID, ok := parseID(c, "id")
	if !ok {
		h.InvalidID(c)
		return
	}
	var req salesapp.AddPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.sales.AddPayment(c.Request.Context(), saleID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, sale)
}

// Delete removes a draft sale
func (h *SaleHandler) Delete(c *gin.Context) {
	saleID, ok := parseID(c, "id")
	if !ok {
		h.InvalidID(c)
		return
	}

	if err := h.sales.Delete(c.Request.Context(), saleID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
