package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/orgms/backend/internal/domain/inventory"
	"github.com/orgms/backend/internal/domain/shared"
)

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

// fakeScope runs the transactional function directly against the bundled
// mocks, without a database transaction.
type fakeScope struct {
	repos fakeRepos
}

type fakeRepos struct {
	stock     *MockStockItemRepository
	histories *MockStockHistoryRepository
}

func (r fakeRepos) StockItems() inventory.StockItemRepository        { return r.stock }
func (r fakeRepos) StockHistories() inventory.StockHistoryRepository { return r.histories }

func (s *fakeScope) Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s.repos)
}

var (
	_ inventory.StockItemRepository    = (*MockStockItemRepository)(nil)
	_ inventory.StockHistoryRepository = (*MockStockHistoryRepository)(nil)
	_ TransactionScope                 = (*fakeScope)(nil)
	_ TransactionalRepositories        = fakeRepos{}
)
