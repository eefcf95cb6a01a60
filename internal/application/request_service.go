package application

import (
	"context"
	"fmt"
	"time"

	itemDomain "renthub/internal/domain/item"
	requestDomain "renthub/internal/domain/request"
	userDomain "renthub/internal/domain/user"
	"renthub/internal/pkg/clock"
	"renthub/internal/pkg/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateRequestRequest holds the body of a new item request.
type CreateRequestRequest struct {
	Description string `json:"description" binding:"required"`
}

// RequestItemDTO is the short item view attached to a request it answers.
type RequestItemDTO struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Name      string    `json:"name"`
	Available bool      `json:"available"`
}

// RequestDTO is the response representation of an item request, including
// the items listed in answer to it.
type RequestDTO struct {
	ID          uuid.UUID        `json:"id"`
	RequesterID uuid.UUID        `json:"requester_id"`
	Description string           `json:"description"`
	Items       []RequestItemDTO `json:"items"`
	CreatedAt   time.Time        `json:"created_at"`
}

// RequestService implements item request use cases.
type RequestService struct {
	requestRepo requestDomain.Repository
	itemRepo    itemDomain.Repository
	userRepo    userDomain.Repository
	clock       clock.Clock
	logger      *zap.Logger
}

// NewRequestService creates a new RequestService.
func NewRequestService(
	requestRepo requestDomain.Repository,
	itemRepo itemDomain.Repository,
	userRepo userDomain.Repository,
	clk clock.Clock,
	logger *zap.Logger,
) *RequestService {
	return &RequestService{
		requestRepo: requestRepo,
		itemRepo:    itemRepo,
		userRepo:    userRepo,
		clock:       clk,
		logger:      logger,
	}
}

// CreateRequest posts a new wanted-item request.
func (s *RequestService) CreateRequest(ctx context.Context, requesterID uuid.UUID, req CreateRequestRequest) (*RequestDTO, error) {
	if err := s.requireUser(ctx, requesterID); err != nil {
		return nil, err
	}

	r, err := requestDomain.NewItemRequest(requesterID, req.Description, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.requestRepo.Save(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to save item request: %w", err)
	}

	result := toRequestDTO(r, nil)
	return &result, nil
}

// GetOwnRequests lists the user's requests with the items answering them.
func (s *RequestService) GetOwnRequests(ctx context.Context, userID uuid.UUID) ([]RequestDTO, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	requests, err := s.requestRepo.FindByRequesterID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.attachItems(ctx, requests)
}

// GetOtherRequests lists other users' requests, paginated, with answering items.
func (s *RequestService) GetOtherRequests(ctx context.Context, userID uuid.UUID, from, size int) (*domain.PaginatedResult[RequestDTO], error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	if from < 0 || size <= 0 {
		return nil, domain.NewValidationError("invalid pagination parameters")
	}
	page := from/size + 1

	requests, total, err := s.requestRepo.FindOthers(ctx, userID, page, size)
	if err != nil {
		return nil, err
	}

	dtos, err := s.attachItems(ctx, requests)
	if err != nil {
		return nil, err
	}
	result := domain.NewPaginatedResult(dtos, total, page, size)
	return &result, nil
}

// GetRequest retrieves one request with its answering items. Any registered
// user may view any request.
func (s *RequestService) GetRequest(ctx context.Context, userID, requestID uuid.UUID) (*RequestDTO, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	r, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	dtos, err := s.attachItems(ctx, []*requestDomain.ItemRequest{r})
	if err != nil {
		return nil, err
	}
	return &dtos[0], nil
}

// attachItems resolves the items answering each request in one batched query.
func (s *RequestService) attachItems(ctx context.Context, requests []*requestDomain.ItemRequest) ([]RequestDTO, error) {
	ids := make([]uuid.UUID, len(requests))
	for i, r := range requests {
		ids[i] = r.ID()
	}

	items, err := s.itemRepo.FindByRequestIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	itemsByRequest := make(map[uuid.UUID][]RequestItemDTO)
	for _, it := range items {
		if it.RequestID() == nil {
			continue
		}
		itemsByRequest[*it.RequestID()] = append(itemsByRequest[*it.RequestID()], RequestItemDTO{
			ID:        it.ID(),
			OwnerID:   it.OwnerID(),
			Name:      it.Name(),
			Available: it.Available(),
		})
	}

	dtos := make([]RequestDTO, len(requests))
	for i, r := range requests {
		dtos[i] = toRequestDTO(r, itemsByRequest[r.ID()])
	}
	return dtos, nil
}

func (s *RequestService) requireUser(ctx context.Context, userID uuid.UUID) error {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return domain.NewNotFoundError("user", userID.String())
	}
	return nil
}

func toRequestDTO(r *requestDomain.ItemRequest, items []RequestItemDTO) RequestDTO {
	if items == nil {
		items = []RequestItemDTO{}
	}
	return RequestDTO{
		ID:          r.ID(),
		RequesterID: r.RequesterID(),
		Description: r.Description(),
		Items:       items,
		CreatedAt:   r.CreatedAt(),
	}
}
