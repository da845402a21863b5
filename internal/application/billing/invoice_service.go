package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/washdesk/backend/internal/domain/billing"
	"github.com/washdesk/backend/internal/domain/sequence"
	"github.com/washdesk/backend/internal/domain/shared"
)

// InvoiceService handles invoicing and payment recording
type InvoiceService struct {
	invoiceRepo    billing.InvoiceRepository
	paymentRepo    billing.PaymentRepository
	eventPublisher shared.EventPublisher
	maxRetries     int
}

// NewInvoiceService creates a new InvoiceService. maxRetries bounds how
// often a create is retried after a retryable numbering conflict.
func NewInvoiceService(invoiceRepo billing.InvoiceRepository, paymentRepo billing.PaymentRepository, eventPublisher shared.EventPublisher, maxRetries int) *InvoiceService {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &InvoiceService{
		invoiceRepo:    invoiceRepo,
		paymentRepo:    paymentRepo,
		eventPublisher: eventPublisher,
		maxRetries:     maxRetries,
	}
}

// Create creates a new invoice. The invoice number is allocated and the
// items inserted inside one transaction; if the transaction rolls back the
// number is released and no gap appears in the owner's series.
func (s *InvoiceService) Create(ctx context.Context, ownerID uuid.UUID, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("INVALID_ITEMS", "Invoice requires at least one item")
	}

	inv, err := billing.NewInvoice(ownerID, req.CustomerID)
	if err != nil {
		return nil, err
	}

	if req.JobCardID != nil && *req.JobCardID != uuid.Nil {
		inv.AttachJobCard(*req.JobCardID)
	}

	for _, item := range req.Items {
		if err := inv.AddItem(item.ServiceID, item.Description, item.Quantity, item.UnitPrice); err != nil {
			return nil, err
		}
	}

	if !req.TaxAmount.IsZero() || !req.DiscountAmount.IsZero() {
		if err := inv.SetAdjustments(req.TaxAmount, req.DiscountAmount); err != nil {
			return nil, err
		}
	}

	if req.Notes != "" {
		inv.SetNotes(req.Notes)
	}

	if err := s.createWithRetry(ctx, inv); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, inv)

	response := ToInvoiceResponse(inv)
	return &response, nil
}

// createWithRetry retries the insert transaction when it failed on a
// transient numbering conflict. Non-retryable errors are returned as-is.
func (s *InvoiceService) createWithRetry(ctx context.Context, inv *billing.Invoice) error {
	var err error
	for attempt := 0; attempt < s.maxRetries; attempt++ {
		err = s.invoiceRepo.Create(ctx, inv)
		if err == nil || !sequence.IsRetryable(err) {
			return err
		}
	}
	return err
}

// GetByID retrieves an invoice with its items
func (s *InvoiceService) GetByID(ctx context.Context, ownerID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, ownerID, invoiceID)
	if err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(inv)
	return &response, nil
}

// GetByInvoiceNo retrieves an invoice by its number
func (s *InvoiceService) GetByInvoiceNo(ctx context.Context, ownerID uuid.UUID, invoiceNo int64) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByInvoiceNo(ctx, ownerID, invoiceNo)
	if err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(inv)
	return &response, nil
}

// List retrieves invoices with the sums over the whole filtered set
func (s *InvoiceService) List(ctx context.Context, ownerID uuid.UUID, filter InvoiceListFilter) (*InvoiceListResult, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Filters:  make(map[string]any),
	}

	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.CustomerID != nil {
		domainFilter.Filters["customer_id"] = *filter.CustomerID
	}
	if filter.From != nil {
		domainFilter.Filters["from"] = *filter.From
	}
	if filter.To != nil {
		domainFilter.Filters["to"] = *filter.To
	}

	invoices, err := s.invoiceRepo.FindAll(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, err
	}

	totals, err := s.invoiceRepo.Totals(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, err
	}

	return &InvoiceListResult{
		Invoices:    ToInvoiceResponses(invoices),
		TotalAmount: totals.TotalAmount,
		PaidAmount:  totals.PaidAmount,
	}, nil
}

// RecordPayment records money received against an invoice, updates the
// invoice's paid amount and recomputes its status
func (s *InvoiceService) RecordPayment(ctx context.Context, ownerID, invoiceID uuid.UUID, req RecordPaymentRequest) (*PaymentResponse, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, ownerID, invoiceID)
	if err != nil {
		return nil, err
	}

	payment, err := billing.NewPayment(ownerID, invoiceID, req.Amount, req.Method)
	if err != nil {
		return nil, err
	}

	// Validate against the invoice before persisting anything
	if err := inv.ApplyPayment(req.Amount); err != nil {
		return nil, err
	}

	if err := payment.Complete(req.Reference); err != nil {
		return nil, err
	}

	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, inv)
	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, billing.NewPaymentRecordedEvent(payment))
	}

	response := ToPaymentResponse(payment)
	return &response, nil
}

// ListPayments lists the payments recorded against an invoice
func (s *InvoiceService) ListPayments(ctx context.Context, ownerID, invoiceID uuid.UUID) ([]PaymentResponse, error) {
	payments, err := s.paymentRepo.FindByInvoice(ctx, ownerID, invoiceID)
	if err != nil {
		return nil, err
	}

	return ToPaymentResponses(payments), nil
}

// MarkSent marks a draft invoice as handed to the customer
func (s *InvoiceService) MarkSent(ctx context.Context, ownerID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	return s.transition(ctx, ownerID, invoiceID, func(inv *billing.Invoice) error {
		return inv.MarkSent()
	})
}

// MarkOverdue flags an unpaid invoice past its due date
func (s *InvoiceService) MarkOverdue(ctx context.Context, ownerID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	return s.transition(ctx, ownerID, invoiceID, func(inv *billing.Invoice) error {
		return inv.MarkOverdue()
	})
}

// Cancel voids an invoice. Its number stays consumed.
func (s *InvoiceService) Cancel(ctx context.Context, ownerID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	return s.transition(ctx, ownerID, invoiceID, func(inv *billing.Invoice) error {
		return inv.Cancel()
	})
}

func (s *InvoiceService) transition(ctx context.Context, ownerID, invoiceID uuid.UUID, apply func(*billing.Invoice) error) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, ownerID, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := apply(inv); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, inv)

	response := ToInvoiceResponse(inv)
	return &response, nil
}

// Update updates an invoice's adjustable fields
func (s *InvoiceService) Update(ctx context.Context, ownerID, invoiceID uuid.UUID, req UpdateInvoiceRequest) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, ownerID, invoiceID)
	if err != nil {
		return nil, err
	}

	if req.TaxAmount != nil || req.DiscountAmount != nil {
		tax := inv.TaxAmount
		discount := inv.DiscountAmount
		if req.TaxAmount != nil {
			tax = *req.TaxAmount
		}
		if req.DiscountAmount != nil {
			discount = *req.DiscountAmount
		}
		if err := inv.SetAdjustments(tax, discount); err != nil {
			return nil, err
		}
	}

	if req.Notes != nil {
		inv.SetNotes(*req.Notes)
	}

	if err := s.invoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, inv)

	response := ToInvoiceResponse(inv)
	return &response, nil
}

// Delete removes an invoice and its items. The invoice number is never
// reallocated; the owner's series keeps its gap-free history of issued
// numbers and simply continues past the deleted one.
func (s *InvoiceService) Delete(ctx context.Context, ownerID, invoiceID uuid.UUID) error {
	inv, err := s.invoiceRepo.FindByID(ctx, ownerID, invoiceID)
	if err != nil {
		return err
	}

	if err := s.invoiceRepo.Delete(ctx, ownerID, invoiceID); err != nil {
		return err
	}

	inv.MarkDeleted()
	s.publishDomainEvents(ctx, inv)

	return nil
}

func (s *InvoiceService) publishDomainEvents(ctx context.Context, inv *billing.Invoice) {
	if s.eventPublisher == nil {
		return
	}
	events := inv.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	inv.ClearDomainEvents()
}
