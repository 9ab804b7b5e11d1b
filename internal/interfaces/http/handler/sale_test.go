package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	salesapp "github.com/orgms/backend/internal/application/sales"
	"github.com/orgms/backend/internal/domain/inventory"
	"github.com/orgms/backend/internal/domain/sales"
	"github.com/orgms/backend/internal/domain/shared"
	"github.com/orgms/backend/internal/domain/shared/valueobject"
	"github.com/orgms/backend/internal/interfaces/http/dto"
	"github.com/orgms/backend/internal/interfaces/http/middleware"
)

// MockSaleRepository implements sales.SaleRepository for testing
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindBySaleNumber(ctx context.Context, saleNumber string) (*sales.Sale, error) {
	args := m.Called(ctx, saleNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*sales.Sale], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*sales.Sale]), args.Error(1)
}

func (m *MockSaleRepository) Save(ctx context.Context, sale *sales.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) SaveWithLock(ctx context.Context, sale *sales.Sale, expectedVersion int) error {
	args := m.Called(ctx, sale, expectedVersion)
	return args.Error(0)
}

func (m *MockSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSaleRepository) GenerateSaleNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockSaleRepository) GenerateReceiptNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockSaleRepository) FindPaymentByReceiptNumber(ctx context.Context, receiptNumber string) (*sales.SalePayment, error) {
	args := m.Called(ctx, receiptNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.SalePayment), args.Error(1)
}

func (m *MockSaleRepository) FindAllPayments(ctx context.Context) ([]*sales.SalePayment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*sales.SalePayment), args.Error(1)
}

// MockStockItemRepository implements inventory.StockItemRepository for testing
type MockStockItemRepository struct {
	mock.Mock
}

func (m *MockStockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockItem), args.Error(1)
}

func (m *MockStockItemRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*inventory.StockItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockItem), args.Error(1)
}

func (m *MockStockItemRepository) FindByPartCode(ctx context.Context, partCode string) (*inventory.StockItem, error) {
	args := m.Called(ctx, partCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockItem), args.Error(1)
}

func (m *MockStockItemRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*inventory.StockItem], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*inventory.StockItem]), args.Error(1)
}

func (m *MockStockItemRepository) FindLowStock(ctx context.Context) ([]*inventory.StockItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*inventory.StockItem), args.Error(1)
}

func (m *MockStockItemRepository) Save(ctx context.Context, item *inventory.StockItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockStockItemRepository) SaveWithLock(ctx context.Context, item *inventory.StockItem, expectedVersion int) error {
	args := m.Called(ctx, item, expectedVersion)
	return args.Error(0)
}

func (m *MockStockItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStockItemRepository) ExistsByPartCode(ctx context.Context, partCode string) (bool, error) {
	args := m.Called(ctx, partCode)
	return args.Bool(0), args.Error(1)
}

// MockStockHistoryRepository implements inventory.StockHistoryRepository for testing
type MockStockHistoryRepository struct {
	mock.Mock
}

func (m *MockStockHistoryRepository) Append(ctx context.Context, history *inventory.StockHistory) error {
	args := m.Called(ctx, history)
	return args.Error(0)
}

func (m *MockStockHistoryRepository) FindByStockItem(ctx context.Context, stockItemID uuid.UUID, filter shared.Filter) (*shared.Paginated[*inventory.StockHistory], error) {
	args := m.Called(ctx, stockItemID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*inventory.StockHistory]), args.Error(1)
}

func (m *MockStockHistoryRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*inventory.StockHistory], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[*inventory.StockHistory]), args.Error(1)
}

// passthroughScope runs the transactional function against the mocks directly
type passthroughScope struct {
	sales     *MockSaleRepository
	stock     *MockStockItemRepository
	histories *MockStockHistoryRepository
}

func (s *passthroughScope) Sales() sales.SaleRepository                      { return s.sales }
func (s *passthroughScope) StockItems() inventory.StockItemRepository        { return s.stock }
func (s *passthroughScope) StockHistories() inventory.StockHistoryRepository { return s.histories }

func (s *passthroughScope) Execute(ctx context.Context, fn func(repos salesapp.TransactionalRepositories) error) error {
	return fn(s)
}

type saleHandlerFixture struct {
	engine    *gin.Engine
	sales     *MockSaleRepository
	stock     *MockStockItemRepository
	histories *MockStockHistoryRepository
}

func newSaleHandlerFixture(t *testing.T) *saleHandlerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()

	saleRepo := new(MockSaleRepository)
	stockRepo := new(MockStockItemRepository)
	historyRepo := new(MockStockHistoryRepository)
	scope := &passthroughScope{sales: saleRepo, stock: stockRepo, histories: historyRepo}

	service := salesapp.NewService(scope, saleRepo, stockRepo, 3, zap.NewNop())
	handler := NewSaleHandler(service)

	engine := gin.New()
	engine.Use(middleware.RequestID())
	api := engine.Group("/api/v1")
	handler.RegisterRoutes(api)

	return &saleHandlerFixture{
		engine:    engine,
		sales:     saleRepo,
		stock:     stockRepo,
		histories: historyRepo,
	}
}

func performJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func newDraftSale(t *testing.T) *sales.Sale {
	t.Helper()

	sale, err := sales.NewSale("SAL-20260828-0001", uuid.New(), "Rahim Traders", sales.StatusDraft)
	require.NoError(t, err)
	_, err = sale.AddNonInventoryItem("engine tune", 1, valueobject.NewMoneyBDTFromFloat(900))
	require.NoError(t, err)
	sale.ClearDomainEvents()
	return sale
}

func TestSaleHandler_Create(t *testing.T) {
	f := newSaleHandlerFixture(t)

	f.sales.On("GenerateSaleNumber", mock.Anything).Return("SAL-20260828-0001", nil)
	f.sales.On("Save", mock.Anything, mock.AnythingOfType("*sales.Sale")).Return(nil)

	w := performJSON(t, f.engine, http.MethodPost, "/api/v1/sales", gin.H{
		"customer_id":   uuid.New().String(),
		"customer_name": "Rahim Traders",
		"items": []gin.H{{
			"item_type":   "non_inventory",
			"description": "engine tune",
			"quantity":    1,
			"unit_price":  "900",
		}},
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "SAL-20260828-0001", data["sale_number"])
	assert.Equal(t, "draft", data["status"])
}

func TestSaleHandler_Create_MissingCustomerName(t *testing.T) {
	f := newSaleHandlerFixture(t)

	w := performJSON(t, f.engine, http.MethodPost, "/api/v1/sales", gin.H{
		"customer_id": uuid.New().String(),
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
	assert.NotEmpty(t, resp.Error.RequestID)
}

func TestSaleHandler_Get_InvalidID(t *testing.T) {
	f := newSaleHandlerFixture(t)

	w := performJSON(t, f.engine, http.MethodGet, "/api/v1/sales/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSaleHandler_Get_NotFound(t *testing.T) {
	f := newSaleHandlerFixture(t)

	saleID := uuid.New()
	f.sales.On("FindByID", mock.Anything, saleID).Return(nil, shared.ErrNotFound)

	w := performJSON(t, f.engine, http.MethodGet, "/api/v1/sales/"+saleID.String(), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
}

func TestSaleHandler_Finalize_InsufficientStock(t *testing.T) {
	f := newSaleHandlerFixture(t)

	stockItem, err := inventory.NewStockItem("Brake Pad", "BP-104", inventory.UnitPieces, valueobject.NewMoneyBDTFromFloat(450))
	require.NoError(t, err)
	stockItem.Quantity = 1

	sale, err := sales.NewSale("SAL-20260828-0002", uuid.New(), "Rahim Traders", sales.StatusDraft)
	require.NoError(t, err)
	_, err = sale.AddInventoryItem(stockItem.ID, "Brake Pad", "BP-104", 5, valueobject.NewMoneyBDTFromFloat(450))
	require.NoError(t, err)

	f.sales.On("FindByID", mock.Anything, sale.ID).Return(sale, nil)
	f.stock.On("FindByIDForUpdate", mock.Anything, stockItem.ID).Return(stockItem, nil)

	w := performJSON(t, f.engine, http.MethodPost, "/api/v1/sales/"+sale.ID.String()+"/finalize", gin.H{
		"actor": "admin",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, dto.ErrCodeInsufficientStock, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "Brake Pad")
}

func TestSaleHandler_Delete_FinalizedSale(t *testing.T) {
	f := newSaleHandlerFixture(t)

	sale := newDraftSale(t)
	require.NoError(t, sale.Finalize("admin"))

	f.sales.On("FindByID", mock.Anything, sale.ID).Return(sale, nil)

	w := performJSON(t, f.engine, http.MethodDelete, "/api/v1/sales/"+sale.ID.String(), nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, dto.ErrCodeInvalidState, resp.Error.Code)
}

func TestSaleHandler_Delete_Draft(t *testing.T) {
	f := newSaleHandlerFixture(t)

	sale := newDraftSale(t)

	f.sales.On("FindByID", mock.Anything, sale.ID).Return(sale, nil)
	f.sales.On("Delete", mock.Anything, sale.ID).Return(nil)

	w := performJSON(t, f.engine, http.MethodDelete, "/api/v1/sales/"+sale.ID.String(), nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	f.sales.AssertExpectations(t)
}

func TestSaleHandler_AddPayment(t *testing.T) {
	f := newSaleHandlerFixture(t)

	sale := newDraftSale(t)

	f.sales.On("FindByID", mock.Anything, sale.ID).Return(sale, nil)
	f.sales.On("GenerateReceiptNumber", mock.Anything).Return("RCT-20260828-A7K2MQ", nil)
	f.sales.On("SaveWithLock", mock.Anything, sale, mock.AnythingOfType("int")).Return(nil)

	w := performJSON(t, f.engine, http.MethodPost, "/api/v1/sales/"+sale.ID.String()+"/payments", gin.H{
		"amount": "300",
		"method": "cash",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]interface{})
	payments := data["payments"].([]interface{})
	require.Len(t, payments, 1)
	payment := payments[0].(map[string]interface{})
	assert.Equal(t, "RCT-20260828-A7K2MQ", payment["receipt_number"])
}
