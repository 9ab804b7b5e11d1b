package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/orgms/backend/internal/domain/finance"
	"github.com/orgms/backend/internal/domain/shared"
	"github.com/orgms/backend/internal/domain/shared/valueobject"
)

// PaymentService handles standalone invoice payments. Completing a
// payment emits the event that posts its ledger credit keyed by the
// invoice number.
type PaymentService struct {
	payments  finance.PaymentRepository
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(paymentRepo finance.PaymentRepository, logger *zap.Logger) *PaymentService {
	return &PaymentService{
		payments: paymentRepo,
		logger:   logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *PaymentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.publisher = publisher
}

// Create opens a standalone payment in pending status
func (s *PaymentService) Create(ctx context.Context, req CreatePaymentRequest) (*PaymentResponse, error) {
	exists, err := s.payments.ExistsByInvoiceNumber(ctx, req.InvoiceNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("DUPLICATE_INVOICE", "A payment for this invoice number already exists")
	}

	paymentDate := time.Now()
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}

	payment, err := finance.NewPayment(
		req.CustomerID,
		req.CustomerName,
		finance.PaymentType(req.PaymentType),
		req.InvoiceNumber,
		valueobject.NewMoneyBDT(req.TotalAmount),
		paymentDate,
	)
	if err != nil {
		return nil, err
	}
	payment.NextPaymentDate = req.NextPaymentDate
	payment.Notes = req.Notes

	if req.PaidAmount != nil {
		if err := payment.RecordPaidAmount(valueobject.NewMoneyBDT(*req.PaidAmount)); err != nil {
			return nil, err
		}
	}

	if err := s.payments.Save(ctx, payment); err != nil {
		return nil, err
	}

	response := ToPaymentResponse(payment)
	return &response, nil
}

// Get retrieves a payment by ID
func (s *PaymentService) Get(ctx context.Context, paymentID uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.payments.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	response := ToPaymentResponse(payment)
	return &response, nil
}

// GetByInvoiceNumber retrieves a payment by its invoice number
func (s *PaymentService) GetByInvoiceNumber(ctx context.Context, invoiceNumber string) (*PaymentResponse, error) {
	payment, err := s.payments.FindByInvoiceNumber(ctx, invoiceNumber)
	if err != nil {
		return nil, err
	}
	response := ToPaymentResponse(payment)
	return &response, nil
}

// List retrieves payments with filtering and pagination
func (s *PaymentService) List(ctx context.Context, filter PaymentListFilter) ([]PaymentResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Status != nil {
		domainFilter.Filters["status"] = *filter.Status
	}
	if filter.PaymentType != nil {
		domainFilter.Filters["payment_type"] = *filter.PaymentType
	}
	if filter.CustomerID != nil {
		domainFilter.Filters["customer_id"] = *filter.CustomerID
	}
	if filter.StartDate != nil {
		domainFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["end_date"] = *filter.EndDate
	}

	page, err := s.payments.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToPaymentResponses(page.Items), page.Total, nil
}

// Complete marks a payment as collected and publishes the completion
// event for the ledger
func (s *PaymentService) Complete(ctx context.Context, paymentID uuid.UUID, req CompletePaymentRequest) (*PaymentResponse, error) {
	payment, err := s.payments.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if req.PaidAmount != nil {
		if err := payment.RecordPaidAmount(valueobject.NewMoneyBDT(*req.PaidAmount)); err != nil {
			return nil, err
		}
	}
	if err := payment.Complete(); err != nil {
		return nil, err
	}
	if err := s.payments.Save(ctx, payment); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, payment)
	response := ToPaymentResponse(payment)
	return &response, nil
}

// MarkOverdue flags a pending payment as overdue
func (s *PaymentService) MarkOverdue(ctx context.Context, paymentID uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.payments.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if err := payment.MarkOverdue(); err != nil {
		return nil, err
	}
	if err := s.payments.Save(ctx, payment); err != nil {
		return nil, err
	}

	response := ToPaymentResponse(payment)
	return &response, nil
}

// Cancel voids a payment that was never collected
func (s *PaymentService) Cancel(ctx context.Context, paymentID uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.payments.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if err := payment.Cancel(); err != nil {
		return nil, err
	}
	if err := s.payments.Save(ctx, payment); err != nil {
		return nil, err
	}

	response := ToPaymentResponse(payment)
	return &response, nil
}

func (s *PaymentService) publishEvents(ctx context.Context, payment *finance.Payment) {
	if s.publisher == nil {
		return
	}
	events := payment.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Error("failed to publish payment events",
			zap.String("invoice_number", payment.InvoiceNumber),
			zap.Error(err),
		)
	}
	payment.ClearDomainEvents()
}
