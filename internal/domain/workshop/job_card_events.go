package workshop

import (
	"github.com/google/uuid"
	"github.com/washdesk/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeJobCard = "JobCard"

// Event type constants
const (
	EventTypeJobCardCreated = "JobCardCreated"
	EventTypeJobCardUpdated = "JobCardUpdated"
	EventTypeJobCardDeleted = "JobCardDeleted"
)

// JobCardCreatedEvent is published when a new job card is created
type JobCardCreatedEvent struct {
	shared.BaseDomainEvent
	JobCardID  uuid.UUID `json:"job_card_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	Item       string    `json:"item"`
}

// NewJobCardCreatedEvent creates a new JobCardCreatedEvent
func NewJobCardCreatedEvent(card *JobCard) *JobCardCreatedEvent {
	return &JobCardCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeJobCardCreated, AggregateTypeJobCard, card.ID, card.OwnerID),
		JobCardID:       card.ID,
		CustomerID:      card.CustomerID,
		Item:            card.Item,
	}
}

// JobCardUpdatedEvent is published when a job card changes state
type JobCardUpdatedEvent struct {
	shared.BaseDomainEvent
	JobCardID uuid.UUID     `json:"job_card_id"`
	JobNo     int64         `json:"job_no"`
	Status    JobCardStatus `json:"status"`
}

// NewJobCardUpdatedEvent creates a new JobCardUpdatedEvent
func NewJobCardUpdatedEvent(card *JobCard) *JobCardUpdatedEvent {
	return &JobCardUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeJobCardUpdated, AggregateTypeJobCard, card.ID, card.OwnerID),
		JobCardID:       card.ID,
		JobNo:           card.JobNo,
		Status:          card.Status,
	}
}

// JobCardDeletedEvent is published when a job card is deleted
type JobCardDeletedEvent struct {
	shared.BaseDomainEvent
	JobCardID uuid.UUID `json:"job_card_id"`
	JobNo     int64     `json:"job_no"`
}

// NewJobCardDeletedEvent creates a new JobCardDeletedEvent
func NewJobCardDeletedEvent(card *JobCard) *JobCardDeletedEvent {
	return &JobCardDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeJobCardDeleted, AggregateTypeJobCard, card.ID, card.OwnerID),
		JobCardID:       card.ID,
		JobNo:           card.JobNo,
	}
}
