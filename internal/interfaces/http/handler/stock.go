package handler

import (
	"github.com/gin-gonic/gin"

	inventoryapp "github.com/orgms/backend/internal/application/inventory"
)

// StockHandler handles stock item API endpoints
type StockHandler struct {
	BaseHandler
	inventory *inventoryapp.Service
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(inventoryService *inventoryapp.Service) *StockHandler {
	return &StockHandler{inventory: inventoryService}
}

// RegisterRoutes registers stock routes on the given router group
func (h *StockHandler) RegisterRoutes(rg *gin.RouterGroup) {
	stock := rg.Group("/stock")
	{
		stock.POST("", h.Create)
		stock.GET("", h.List)
		stock.GET("/low", h.LowStock)
		stock.GET("/:id", h.Get)
		stock.PUT("/:id", h.Update)
		stock.DELETE("/:id", h.Delete)
		stock.POST("/:id/adjust", h.Adjust)
		stock.GET("/:id/history", h.History)
	}
}

// Create registers a stock item
func (h *StockHandler) Create(c *gin.Context) {
	var req inventoryapp.CreateStockItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.inventory.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// Get retrieves a stock item by ID
func (h *StockHandler) Get(c *gin.Context) {
	itemID, ok := parseID(c, "id")
	if !ok {
		h.InvalidID(c)
		return
	}

	item, err := h.inventory.Get(c.Request.Context(), itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// List retrieves stock items with filtering and pagination
func (h *StockHandler) List(c *gin.Context) {
	var filter inventoryapp.StockListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	items, total, err := h.inventory.List(c.Request.Context(), filter)
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
	h.SuccessWithMeta(c, items, total, page, pageSize)
}

// LowStock lists items at or below their minimum threshold
func (h *StockHandler) LowStock(c *gin.Context) {
	items, err := h.inventory.LowStock(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// Update changes the details, price and threshold of a stock item
func (h *StockHandler) Update(c *gin.Context) {
	itemID, ok := parseID(c, "id")
	if !ok {
		h.InvalidID(c)
		return
	}
	var req inventoryapp.UpdateStockItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.inventory.Update(c.Request.Context(), itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Adjust applies a manual stock movement
func (h *StockHandler) Adjust(c *gin.Context) {
	itemID, ok := parseID(c, "id")
	if !ok {
		h.InvalidID(c)
		return
	}
	var req inventoryapp.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.inventory.Adjust(c.Request.Context(), itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// History lists the movement records of a stock item
func (h *StockHandler) History(c *gin.Context) {
	itemID, ok := parseID(c, "id")
	if !ok {
		h.InvalidID(c)
		return
	}
	var filter inventoryapp.HistoryListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	history, total, err := h.inventory.History(c.Request.Context(), itemID, filter)
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
	h.SuccessWithMeta(c, history, total, page, pageSize)
}

// Delete removes an empty stock item
func (h *StockHandler) Delete(c *gin.Context) {
	itemID, ok := parseID(c, "id")
	if !ok {
		h.InvalidID(c)
		return
	}

	if err := h.inventory.Delete(c.Request.Context(), itemID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
