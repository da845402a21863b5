package workshop

import (
	"context"

	"github.com/google/uuid"
	"github.com/washdesk/backend/internal/domain/sequence"
	"github.com/washdesk/backend/internal/domain/shared"
	"github.com/washdesk/backend/internal/domain/workshop"
)

// JobCardService handles job card intake and lifecycle operations
type JobCardService struct {
	jobCardRepo    workshop.JobCardRepository
	eventPublisher shared.EventPublisher
	maxRetries     int
}

// NewJobCardService creates a new JobCardService. maxRetries bounds how
// often a create is retried after a retryable numbering conflict.
func NewJobCardService(jobCardRepo workshop.JobCardRepository, eventPublisher shared.EventPublisher, maxRetries int) *JobCardService {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &JobCardService{
		jobCardRepo:    jobCardRepo,
		eventPublisher: eventPublisher,
		maxRetries:     maxRetries,
	}
}

// Create takes in a new job. The job number is allocated inside the insert
// transaction, so a failed insert never burns a number.
func (s *JobCardService) Create(ctx context.Context, ownerID uuid.UUID, req CreateJobCardRequest) (*JobCardResponse, error) {
	card, err := workshop.NewJobCard(ownerID, req.CustomerID, req.Item)
	if err != nil {
		return nil, err
	}

	if err := card.SetDetails(req.Problem, req.Notes, req.EstimatedCost, req.DeliveryDate); err != nil {
		return nil, err
	}

	if err := s.createWithRetry(ctx, card); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, card)

	response := ToJobCardResponse(card)
	return &response, nil
}

// createWithRetry retries the insert transaction when it failed on a
// transient numbering conflict. Non-retryable errors are returned as-is.
func (s *JobCardService) createWithRetry(ctx context.Context, card *workshop.JobCard) error {
	var err error
	for attempt := 0; attempt < s.maxRetries; attempt++ {
		err = s.jobCardRepo.Create(ctx, card)
		if err == nil || !sequence.IsRetryable(err) {
			return err
		}
	}
	return err
}

// GetByID retrieves a job card by ID
func (s *JobCardService) GetByID(ctx context.Context, ownerID, cardID uuid.UUID) (*JobCardResponse, error) {
	card, err := s.jobCardRepo.FindByID(ctx, ownerID, cardID)
	if err != nil {
		return nil, err
	}

	response := ToJobCardResponse(card)
	return &response, nil
}

// GetByJobNo retrieves a job card by its number
func (s *JobCardService) GetByJobNo(ctx context.Context, ownerID uuid.UUID, jobNo int64) (*JobCardResponse, error) {
	card, err := s.jobCardRepo.FindByJobNo(ctx, ownerID, jobNo)
	if err != nil {
		return nil, err
	}

	response := ToJobCardResponse(card)
	return &response, nil
}

// List retrieves job cards with optional status filtering
func (s *JobCardService) List(ctx context.Context, ownerID uuid.UUID, filter JobCardListFilter) ([]JobCardResponse, error) {
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

	var cards []workshop.JobCard
	var err error
	if filter.Status != "" {
		cards, err = s.jobCardRepo.FindByStatus(ctx, ownerID, workshop.JobCardStatus(filter.Status), domainFilter)
	} else {
		cards, err = s.jobCardRepo.FindAll(ctx, ownerID, domainFilter)
	}
	if err != nil {
		return nil, err
	}

	return ToJobCardResponses(cards), nil
}

// ChangeStatus moves a job card through its lifecycle
func (s *JobCardService) ChangeStatus(ctx context.Context, ownerID, cardID uuid.UUID, status workshop.JobCardStatus) (*JobCardResponse, error) {
	card, err := s.jobCardRepo.FindByID(ctx, ownerID, cardID)
	if err != nil {
		return nil, err
	}

	if err := card.ChangeStatus(status); err != nil {
		return nil, err
	}

	if err := s.jobCardRepo.Update(ctx, card); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, card)

	response := ToJobCardResponse(card)
	return &response, nil
}

// Update updates a job card's intake details
func (s *JobCardService) Update(ctx context.Context, ownerID, cardID uuid.UUID, req UpdateJobCardRequest) (*JobCardResponse, error) {
	card, err := s.jobCardRepo.FindByID(ctx, ownerID, cardID)
	if err != nil {
		return nil, err
	}

	problem := card.Problem
	notes := card.Notes
	cost := card.EstimatedCost
	delivery := card.DeliveryDate

	if req.Problem != nil {
		problem = *req.Problem
	}
	if req.Notes != nil {
		notes = *req.Notes
	}
	if req.EstimatedCost != nil {
		cost = *req.EstimatedCost
	}
	if req.DeliveryDate != nil {
		delivery = req.DeliveryDate
	}

	if err := card.SetDetails(problem, notes, cost, delivery); err != nil {
		return nil, err
	}

	if err := s.jobCardRepo.Update(ctx, card); err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, card)

	response := ToJobCardResponse(card)
	return &response, nil
}

// Delete removes a job card. Its number stays consumed; the next card
// still gets a fresh one.
func (s *JobCardService) Delete(ctx context.Context, ownerID, cardID uuid.UUID) error {
	card, err := s.jobCardRepo.FindByID(ctx, ownerID, cardID)
	if err != nil {
		return err
	}

	if err := s.jobCardRepo.Delete(ctx, ownerID, cardID); err != nil {
		return err
	}

	card.MarkDeleted()
	s.publishDomainEvents(ctx, card)

	return nil
}

func (s *JobCardService) publishDomainEvents(ctx context.Context, card *workshop.JobCard) {
	if s.eventPublisher == nil {
		return
	}
	events := card.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	card.ClearDomainEvents()
}
