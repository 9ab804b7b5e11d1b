package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	ledgerapp "github.com/orgms/backend/internal/application/ledger"
)

// LedgerHandler handles ledger API endpoints
type LedgerHandler struct {
	BaseHandler
	ledger *ledgerapp.Service
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(ledgerService *ledgerapp.Service) *LedgerHandler {
	return &LedgerHandler{ledger: ledgerService}
}

// RegisterRoutes registers ledger routes on the given router group
func (h *LedgerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	ledger := rg.Group("/ledger")
	{
		ledger.GET("/balance", h.Balance)
		ledger.GET("/statement", h.Statement)
		ledger.POST("/rebuild", h.Rebuild)
	}
}

// Balance returns the running balance over all ledger entries
func (h *LedgerHandler) Balance(c *gin.Context) {
	balance, err := h.ledger.Balance(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, balance)
}

// Statement returns a paginated ledger statement with period subtotals
func (h *LedgerHandler) Statement(c *gin.Context) {
	var filter ledgerapp.StatementFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	statement, err := h.ledger.Statement(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, statement)
}

// Rebuild re-derives ledger entries from their source records.
// With ?dry_run=true it only reports what would be inserted.
func (h *LedgerHandler) Rebuild(c *gin.Context) {
	dryRun, err := strconv.ParseBool(c.DefaultQuery("dry_run", "false"))
	if err != nil {
		h.BadRequest(c, "dry_run must be true or false")
		return
	}

	result, err := h.ledger.Rebuild(c.Request.Context(), dryRun)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
