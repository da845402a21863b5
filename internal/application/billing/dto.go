package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/washdesk/backend/internal/domain/billing"
)

// InvoiceItemRequest is one billed line on a create request
type InvoiceItemRequest struct {
	ServiceID   *uuid.UUID      `json:"service_id"`
	Description string          `json:"description" binding:"required,min=1,max=200"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
}

// CreateInvoiceRequest represents a request to create a new invoice
type CreateInvoiceRequest struct {
	CustomerID     uuid.UUID            `json:"customer_id" binding:"required"`
	JobCardID      *uuid.UUID           `json:"job_card_id"`
	Items          []InvoiceItemRequest `json:"items" binding:"required,min=1"`
	TaxAmount      decimal.Decimal      `json:"tax_amount"`
	DiscountAmount decimal.Decimal      `json:"discount_amount"`
	Notes          string               `json:"notes"`
}

// UpdateInvoiceRequest represents a request to update an invoice's
// adjustable fields. The invoice number and items are immutable here.
type UpdateInvoiceRequest struct {
	TaxAmount      *decimal.Decimal `json:"tax_amount"`
	DiscountAmount *decimal.Decimal `json:"discount_amount"`
	Notes          *string          `json:"notes"`
}

// RecordPaymentRequest represents money received against an invoice
type RecordPaymentRequest struct {
	Amount    decimal.Decimal       `json:"amount" binding:"required"`
	Method    billing.PaymentMethod `json:"method" binding:"required"`
	Reference string                `json:"reference"`
}

// InvoiceListFilter represents filtering options for invoice lists
type InvoiceListFilter struct {
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
	Status     string     `form:"status"`
	CustomerID *uuid.UUID `form:"customer_id"`
	From       *time.Time `form:"from"`
	To         *time.Time `form:"to"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir"`
}

// InvoiceItemResponse represents one invoice line in API responses
type InvoiceItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ServiceID   *uuid.UUID      `json:"service_id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID             uuid.UUID             `json:"id"`
	OwnerID        uuid.UUID             `json:"owner_id"`
	InvoiceNo      int64                 `json:"invoice_no"`
	DisplayNo      string                `json:"display_no"`
	CustomerID     uuid.UUID             `json:"customer_id"`
	JobCardID      *uuid.UUID            `json:"job_card_id"`
	Subtotal       decimal.Decimal       `json:"subtotal"`
	TaxAmount      decimal.Decimal       `json:"tax_amount"`
	DiscountAmount decimal.Decimal       `json:"discount_amount"`
	TotalAmount    decimal.Decimal       `json:"total_amount"`
	PaidAmount     decimal.Decimal       `json:"paid_amount"`
	BalanceAmount  decimal.Decimal       `json:"balance_amount"`
	Status         string                `json:"status"`
	Notes          string                `json:"notes"`
	Items          []InvoiceItemResponse `json:"items"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

// InvoiceListResult is a filtered invoice page together with the sums
// over the whole filtered set
type InvoiceListResult struct {
	Invoices    []InvoiceResponse `json:"invoices"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
	PaidAmount  decimal.Decimal   `json:"paid_amount"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID        uuid.UUID       `json:"id"`
	InvoiceID uuid.UUID       `json:"invoice_id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Status    string          `json:"status"`
	Reference string          `json:"reference"`
	PaidAt    *time.Time      `json:"paid_at"`
	CreatedAt time.Time       `json:"created_at"`
}

// ToInvoiceResponse converts an Invoice to InvoiceResponse
func ToInvoiceResponse(inv *billing.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, len(inv.Items))
	for i, item := range inv.Items {
		items[i] = InvoiceItemResponse{
			ID:          item.ID,
			ServiceID:   item.ServiceID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		}
	}

	return InvoiceResponse{
		ID:             inv.ID,
		OwnerID:        inv.OwnerID,
		InvoiceNo:      inv.InvoiceNo,
		DisplayNo:      inv.DisplayNo(),
		CustomerID:     inv.CustomerID,
		JobCardID:      inv.JobCardID,
		Subtotal:       inv.Subtotal,
		TaxAmount:      inv.TaxAmount,
		DiscountAmount: inv.DiscountAmount,
		TotalAmount:    inv.TotalAmount,
		PaidAmount:     inv.PaidAmount,
		BalanceAmount:  inv.BalanceAmount(),
		Status:         string(inv.Status),
		Notes:          inv.Notes,
		Items:          items,
		CreatedAt:      inv.CreatedAt,
		UpdatedAt:      inv.UpdatedAt,
	}
}

// ToInvoiceResponses converts a slice of invoices
func ToInvoiceResponses(invoices []billing.Invoice) []InvoiceResponse {
	responses := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = ToInvoiceResponse(&invoices[i])
	}
	return responses
}

// ToPaymentResponse converts a Payment to PaymentResponse
func ToPaymentResponse(p *billing.Payment) PaymentResponse {
	return PaymentResponse{
		ID:        p.ID,
		InvoiceID: p.InvoiceID,
		Amount:    p.Amount,
		Method:    string(p.Method),
		Status:    string(p.Status),
		Reference: p.Reference,
		PaidAt:    p.PaidAt,
		CreatedAt: p.CreatedAt,
	}
}

// ToPaymentResponses converts a slice of payments
func ToPaymentResponses(payments []billing.Payment) []PaymentResponse {
	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPaymentResponse(&payments[i])
	}
	return responses
}
