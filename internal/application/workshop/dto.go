package workshop

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/washdesk/backend/internal/domain/workshop"
)

// CreateJobCardRequest represents an intake request for a new job card
type CreateJobCardRequest struct {
	CustomerID    uuid.UUID       `json:"customer_id" binding:"required"`
	Item          string          `json:"item" binding:"required,min=1,max=200"`
	Problem       string          `json:"problem"`
	Notes         string          `json:"notes"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
	DeliveryDate  *time.Time      `json:"delivery_date"`
}

// UpdateJobCardRequest represents a request to update a job card's details
type UpdateJobCardRequest struct {
	Problem       *string          `json:"problem"`
	Notes         *string          `json:"notes"`
	EstimatedCost *decimal.Decimal `json:"estimated_cost"`
	DeliveryDate  *time.Time       `json:"delivery_date"`
}

// JobCardListFilter represents filtering options for job card lists
type JobCardListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Status   string `form:"status"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
}

// JobCardResponse represents a job card in API responses
type JobCardResponse struct {
	ID            uuid.UUID       `json:"id"`
	OwnerID       uuid.UUID       `json:"owner_id"`
	JobNo         int64           `json:"job_no"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	Item          string          `json:"item"`
	Problem       string          `json:"problem"`
	Status        string          `json:"status"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
	DeliveryDate  *time.Time      `json:"delivery_date"`
	Notes         string          `json:"notes"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToJobCardResponse converts a JobCard to JobCardResponse
func ToJobCardResponse(card *workshop.JobCard) JobCardResponse {
	return JobCardResponse{
		ID:            card.ID,
		OwnerID:       card.OwnerID,
		JobNo:         card.JobNo,
		CustomerID:    card.CustomerID,
		Item:          card.Item,
		Problem:       card.Problem,
		Status:        string(card.Status),
		EstimatedCost: card.EstimatedCost,
		DeliveryDate:  card.DeliveryDate,
		Notes:         card.Notes,
		CreatedAt:     card.CreatedAt,
		UpdatedAt:     card.UpdatedAt,
	}
}

// ToJobCardResponses converts a slice of job cards
func ToJobCardResponses(cards []workshop.JobCard) []JobCardResponse {
	responses := make([]JobCardResponse, len(cards))
	for i := range cards {
		responses[i] = ToJobCardResponse(&cards[i])
	}
	return responses
}
