package workshop

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/washdesk/backend/internal/domain/shared"
)

// JobCardStatus represents the lifecycle state of a job card
type JobCardStatus string

const (
	JobCardStatusReceived   JobCardStatus = "received"
	JobCardStatusInProgress JobCardStatus = "in_progress"
	JobCardStatusReady      JobCardStatus = "ready"
	JobCardStatusDelivered  JobCardStatus = "delivered"
	JobCardStatusCancelled  JobCardStatus = "cancelled"
)

// IsValid reports whether s is a known job card status
func (s JobCardStatus) IsValid() bool {
	switch s {
	case JobCardStatusReceived, JobCardStatusInProgress, JobCardStatusReady,
		JobCardStatusDelivered, JobCardStatusCancelled:
		return true
	}
	return false
}

// JobCard represents an item taken in for work (washing, ironing, repair).
// JobNo is allocated at creation time from the owner's job_no sequence and
// never changes afterwards, even if the card is later deleted.
type JobCard struct {
	shared.OwnerAggregateRoot
	JobNo         int64           `gorm:"not null;uniqueIndex:idx_jobcard_owner_no,priority:2"`
	CustomerID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Item          string          `gorm:"type:varchar(200);not null"`
	Problem       string          `gorm:"type:text"`
	Status        JobCardStatus   `gorm:"type:varchar(20);not null;default:'received'"`
	EstimatedCost decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	DeliveryDate  *time.Time      `gorm:""`
	Notes         string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (JobCard) TableName() string {
	return "job_cards"
}

// NewJobCard creates a job card without a number. The number is assigned by
// the repository inside the insert transaction; see sequence.Allocator.
func NewJobCard(ownerID, customerID uuid.UUID, item string) (*JobCard, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Job card requires a customer")
	}
	if item == "" {
		return nil, shared.NewDomainError("INVALID_ITEM", "Job card item cannot be empty")
	}
	if len(item) > 200 {
		return nil, shared.NewDomainError("INVALID_ITEM", "Job card item cannot exceed 200 characters")
	}

	card := &JobCard{
		OwnerAggregateRoot: shared.NewOwnerAggregateRoot(ownerID),
		CustomerID:         customerID,
		Item:               item,
		Status:             JobCardStatusReceived,
		EstimatedCost:      decimal.Zero,
	}

	card.AddDomainEvent(NewJobCardCreatedEvent(card))

	return card, nil
}

// SetDetails sets the optional intake fields
func (j *JobCard) SetDetails(problem, notes string, estimatedCost decimal.Decimal, deliveryDate *time.Time) error {
	if estimatedCost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Estimated cost cannot be negative")
	}

	j.Problem = problem
	j.Notes = notes
	j.EstimatedCost = estimatedCost
	j.DeliveryDate = deliveryDate
	j.UpdatedAt = time.Now()
	j.IncrementVersion()

	return nil
}

// ChangeStatus moves the card to a new lifecycle state. Delivered and
// cancelled cards are terminal.
func (j *JobCard) ChangeStatus(status JobCardStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown job card status")
	}
	if j.Status == JobCardStatusDelivered || j.Status == JobCardStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Job card is already closed")
	}
	if status == j.Status {
		return nil
	}

	j.Status = status
	j.UpdatedAt = time.Now()
	j.IncrementVersion()

	j.AddDomainEvent(NewJobCardUpdatedEvent(j))

	return nil
}

// MarkDeleted records the deletion event before the row is removed
func (j *JobCard) MarkDeleted() {
	j.AddDomainEvent(NewJobCardDeletedEvent(j))
}

// IsClosed reports whether the card reached a terminal state
func (j *JobCard) IsClosed() bool {
	return j.Status == JobCardStatusDelivered || j.Status == JobCardStatusCancelled
}
