package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/orgms/backend/internal/domain/finance"
	"github.com/orgms/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormExpenseRepository implements ExpenseRepository using GORM
type GormExpenseRepository struct {
	db *gorm.DB
}

// NewGormExpenseRepository creates a new GormExpenseRepository
func NewGormExpenseRepository(db *gorm.DB) *GormExpenseRepository {
	return &GormExpenseRepository{db: db}
}

// FindByID finds an expense by its ID
func (r *GormExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Expense, error) {
	var expense finance.Expense
	if err := r.db.WithContext(ctx).First(&expense, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &expense, nil
}

// FindAll finds expenses with filtering and pagination
func (r *GormExpenseRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*finance.Expense], error) {
	var total int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&finance.Expense{}), filter).
		Count(&total).Error; err != nil {
		return nil, err
	}

	var expenses []*finance.Expense
	query := applyPagination(
		r.applyFilter(r.db.WithContext(ctx).Model(&finance.Expense{}), filter),
		filter, "expense_date DESC",
	)
	if err := query.Find(&expenses).Error; err != nil {
		return nil, err
	}

	page, pageSize := pageOf(filter)
	result := shared.NewPaginated(expenses, total, page, pageSize)
	return &result, nil
}

// FindAllUnpaged returns every expense, oldest first
func (r *GormExpenseRepository) FindAllUnpaged(ctx context.Context) ([]*finance.Expense, error) {
	var expenses []*finance.Expense
	if err := r.db.WithContext(ctx).
		Order("expense_date ASC, created_at ASC").
		Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

// Save creates or updates an expense
func (r *GormExpenseRepository) Save(ctx context.Context, expense *finance.Expense) error {
	return r.db.WithContext(ctx).Save(expense).Error
}

// Delete hard-deletes an expense
func (r *GormExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&finance.Expense{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies search and field filters to the query
func (r *GormExpenseRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("description ILIKE ? OR paid_to ILIKE ?", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "category":
			query = query.Where("category = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("expense_date >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("expense_date <= ?", t)
			}
		}
	}

	return query
}

// Ensure GormExpenseRepository implements ExpenseRepository
var _ finance.ExpenseRepository = (*GormExpenseRepository)(nil)
