package persistence

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/orgms/backend/internal/domain/sales"
	"github.com/orgms/backend/internal/domain/shared"
	"gorm.io/gorm"
)

const receiptSuffixChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GormSaleRepository implements SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByID loads a sale with its items and payments
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	var sale sales.Sale
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Payments").
		First(&sale, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindBySaleNumber loads a sale by its sale number
func (r *GormSaleRepository) FindBySaleNumber(ctx context.Context, saleNumber string) (*sales.Sale, error) {
	var sale sales.Sale
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Payments").
		Where("sale_number = ?", saleNumber).
		First(&sale).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindAll finds sales with filtering and pagination
func (r *GormSaleRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[*sales.Sale], error) {
	var total int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&sales.Sale{}), filter).
		Count(&total).Error; err != nil {
		return nil, err
	}

	var result []*sales.Sale
	query := applyPagination(
		r.applyFilter(r.db.WithContext(ctx).Model(&sales.Sale{}), filter),
		filter, "created_at DESC",
	).Preload("Items").Preload("Payments")
	if err := query.Find(&result).Error; err != nil {
		return nil, err
	}

	page, pageSize := pageOf(filter)
	paginated := shared.NewPaginated(result, total, page, pageSize)
	return &paginated, nil
}

// Save persists a sale and reconciles its items and payments
func (r *GormSaleRepository) Save(ctx context.Context, sale *sales.Sale) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items", "Payments").Save(sale).Error; err != nil {
			return err
		}
		return r.saveChildren(tx, sale)
	})
}

// SaveWithLock persists a sale with an optimistic version check
func (r *GormSaleRepository) SaveWithLock(ctx context.Context, sale *sales.Sale, expectedVersion int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sale.Version = expectedVersion + 1
		sale.UpdatedAt = time.Now()

		result := tx.Model(&sales.Sale{}).
			Where("id = ? AND version = ?", sale.ID, expectedVersion).
			Updates(map[string]interface{}{
				"customer_id":           sale.CustomerID,
				"customer_name":         sale.CustomerName,
				"status":                sale.Status,
				"total_amount":          sale.TotalAmount,
				"expected_installments": sale.ExpectedInstallments,
				"notes":                 sale.Notes,
				"finalized_at":          sale.FinalizedAt,
				"finalized_by":          sale.FinalizedBy,
				"cancelled_at":          sale.CancelledAt,
				"cancel_reason":         sale.CancelReason,
				"version":               sale.Version,
				"updated_at":            sale.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}

		return r.saveChildren(tx, sale)
	})
}

// saveChildren reconciles sale items and appends payments. Items removed
// from the aggregate are deleted; payments are append-only.
func (r *GormSaleRepository) saveChildren(tx *gorm.DB, sale *sales.Sale) error {
	itemIDs := make([]uuid.UUID, len(sale.Items))
	for i, item := range sale.Items {
		itemIDs[i] = item.ID
	}

	if len(itemIDs) > 0 {
		if err := tx.Where("sale_id = ? AND id NOT IN ?", sale.ID, itemIDs).
			Delete(&sales.SaleItem{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("sale_id = ?", sale.ID).
			Delete(&sales.SaleItem{}).Error; err != nil {
			return err
		}
	}

	for i := range sale.Items {
		sale.Items[i].SaleID = sale.ID
		if err := tx.Save(&sale.Items[i]).Error; err != nil {
			return err
		}
	}

	for i := range sale.Payments {
		sale.Payments[i].SaleID = sale.ID
		if err := tx.Save(&sale.Payments[i]).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("receipt number %s: %w",
					sale.Payments[i].ReceiptNumber, shared.ErrAlreadyExists)
			}
			return err
		}
	}

	return nil
}

// Delete hard-deletes a sale with its items and payments
func (r *GormSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sale_id = ?", id).Delete(&sales.SalePayment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("sale_id = ?", id).Delete(&sales.SaleItem{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&sales.Sale{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// GenerateSaleNumber produces the next sale number for today.
// Format: SAL-YYYYMMDD-NNNN, sequential within the day.
func (r *GormSaleRepository) GenerateSaleNumber(ctx context.Context) (string, error) {
	prefix := fmt.Sprintf("SAL-%s-", time.Now().Format("20060102"))

	var lastNumbers []string
	err := r.db.WithContext(ctx).
		Model(&sales.Sale{}).
		Where("sale_number LIKE ?", prefix+"%").
		Order("sale_number DESC").
		Limit(1).
		Pluck("sale_number", &lastNumbers).Error
	if err != nil {
		return "", err
	}

	next := int64(1)
	if len(lastNumbers) > 0 {
		parts := strings.Split(lastNumbers[0], "-")
		if len(parts) == 3 {
			if n, parseErr := strconv.ParseInt(parts[2], 10, 64); parseErr == nil {
				next = n + 1
			}
		}
	}

	for attempt := 0; attempt < 100; attempt++ {
		candidate := fmt.Sprintf("%s%04d", prefix, next)
		exists, err := r.existsBySaleNumber(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		next++
	}

	return "", fmt.Errorf("could not generate a unique sale number with prefix %s", prefix)
}

// GenerateReceiptNumber produces a candidate receipt number.
// Format: RCT-YYYYMMDD-XXXXXX with a random suffix. Callers retry on a
// unique constraint violation when recording the payment.
func (r *GormSaleRepository) GenerateReceiptNumber(ctx context.Context) (string, error) {
	prefix := fmt.Sprintf("RCT-%s-", time.Now().Format("20060102"))

	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = receiptSuffixChars[rand.Intn(len(receiptSuffixChars))]
	}
	candidate := prefix + string(suffix)

	exists, err := r.existsByReceiptNumber(ctx, candidate)
	if err != nil {
		return "", err
	}
	if exists {
		return "", shared.ErrAlreadyExists
	}
	return candidate, nil
}

// FindPaymentByReceiptNumber looks up a payment by its receipt number
func (r *GormSaleRepository) FindPaymentByReceiptNumber(ctx context.Context, receiptNumber string) (*sales.SalePayment, error) {
	var payment sales.SalePayment
	if err := r.db.WithContext(ctx).
		Where("receipt_number = ?", receiptNumber).
		First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &payment, nil
}

// FindAllPayments returns every payment across all sales, oldest first
func (r *GormSaleRepository) FindAllPayments(ctx context.Context) ([]*sales.SalePayment, error) {
	var payments []*sales.SalePayment
	if err := r.db.WithContext(ctx).
		Order("payment_date ASC, created_at ASC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *GormSaleRepository) existsBySaleNumber(ctx context.Context, saleNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&sales.Sale{}).
		Where("sale_number = ?", saleNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormSaleRepository) existsByReceiptNumber(ctx context.Context, receiptNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&sales.SalePayment{}).
		Where("receipt_number = ?", receiptNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies search and field filters to the query
func (r *GormSaleRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("sale_number ILIKE ? OR customer_name ILIKE ?", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "statuses":
			if statuses, ok := value.([]string); ok && len(statuses) > 0 {
				query = query.Where("status IN ?", statuses)
			}
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at <= ?", t)
			}
		}
	}

	return query
}

// Ensure GormSaleRepository implements SaleRepository
var _ sales.SaleRepository = (*GormSaleRepository)(nil)
