package handler

import (
	"github.com/gin-gonic/gin"

	financeapp "github.com/orgms/backend/internal/application/finance"
)

// ExpenseHandler handles expense API endpoints
type ExpenseHandler struct {
	BaseHandler
	expenses *financeapp.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *financeapp.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenseService}
}

// RegisterRoutes registers expense routes on the given router group
func (h *ExpenseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	expenses := rg.Group("/expenses")
	{
		expenses.POST("", h.Create)
		expenses.GET("", h.List)
		expenses.GET("/:id", h.Get)
		expenses.DELETE("/:id", h.Delete)
	}
}

// Create records an expense
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req financeapp.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	expense, err := h.expenses.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, expense)
}

// Get retrieves an expense by ID
func (h *ExpenseHandler) Get(c *gin.Context) {
	expenseID, ok := parseID(c, "id")
	if !ok {
		h.InvalidID(c)
		return
	}

	expense, err := h.expenses.Get(c.Request.Context(), expenseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, expense)
}

// List retrieves expenses with filtering and pagination
func (h *ExpenseHandler) List(c *gin.Context) {
	var filter financeapp.ExpenseListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	expenses, total, err := h.expenses.List(c.Request.Context(), filter)
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
	h.SuccessWithMeta(c, expenses, total, page, pageSize)
}

// Delete removes an expense record
func (h *ExpenseHandler) Delete(c *gin.Context) {
	expenseID, ok := parseID(c, "id")
	if !ok {
		h.InvalidID(c)
		return
	}

	if err := h.expenses.Delete(c.Request.Context(), expenseID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
