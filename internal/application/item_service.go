package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	bookingDomain "renthub/internal/domain/booking"
	itemDomain "renthub/internal/domain/item"
	requestDomain "renthub/internal/domain/request"
	userDomain "renthub/internal/domain/user"
	"renthub/internal/pkg/clock"
	"renthub/internal/pkg/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateItemRequest holds the data needed to list a new item.
type CreateItemRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description" binding:"required"`
	Available   *bool      `json:"available" binding:"required"`
	RequestID   *uuid.UUID `json:"request_id"`
}

// UpdateItemRequest holds a partial item update; nil fields are unchanged.
type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

// BookingViewDTO is the short booking view attached to an item for its owner.
type BookingViewDTO struct {
	ID       uuid.UUID `json:"id"`
	BookerID uuid.UUID `json:"booker_id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

// CommentDTO is the response representation of an item comment.
type CommentDTO struct {
	ID         uuid.UUID `json:"id"`
	AuthorName string    `json:"author_name"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

// ItemDTO is the response representation of an item. LastBooking and
// NextBooking are transient views populated only when the viewer owns the
// item; they are never persisted.
type ItemDTO struct {
	ID          uuid.UUID       `json:"id"`
	OwnerID     uuid.UUID       `json:"owner_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Available   bool            `json:"available"`
	RequestID   *uuid.UUID      `json:"request_id,omitempty"`
	LastBooking *BookingViewDTO `json:"last_booking,omitempty"`
	NextBooking *BookingViewDTO `json:"next_booking,omitempty"`
	Comments    []CommentDTO    `json:"comments"`
	CreatedAt   time.Time       `json:"created_at"`
}

// AddCommentRequest holds the body of a new item comment.
type AddCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// ItemService implements item listing use cases and the owner-only
// last/next booking projection.
type ItemService struct {
	itemRepo    itemDomain.Repository
	bookingRepo bookingDomain.Repository
	commentRepo itemDomain.CommentRepository
	userRepo    userDomain.Repository
	requestRepo requestDomain.Repository
	clock       clock.Clock
	logger      *zap.Logger
}

// NewItemService creates a new ItemService.
func NewItemService(
	itemRepo itemDomain.Repository,
	bookingRepo bookingDomain.Repository,
	commentRepo itemDomain.CommentRepository,
	userRepo userDomain.Repository,
	requestRepo requestDomain.Repository,
	clk clock.Clock,
	logger *zap.Logger,
) *ItemService {
	return &ItemService{
		itemRepo:    itemRepo,
		bookingRepo: bookingRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		requestRepo: requestRepo,
		clock:       clk,
		logger:      logger,
	}
}

// CreateItem lists a new item for the given owner.
func (s *ItemService) CreateItem(ctx context.Context, ownerID uuid.UUID, req CreateItemRequest) (*ItemDTO, error) {
	exists, err := s.userRepo.Exists(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check owner: %w", err)
	}
	if !exists {
		return nil, domain.NewNotFoundError("user", ownerID.String())
	}

	if req.RequestID != nil {
		if _, err := s.requestRepo.FindByID(ctx, *req.RequestID); err != nil {
			return nil, err
		}
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	it, err := itemDomain.NewItem(ownerID, req.Name, req.Description, available, req.RequestID, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, it); err != nil {
		return nil, fmt.Errorf("failed to save item: %w", err)
	}

	result := toItemDTO(it, nil, nil, []CommentDTO{})
	return &result, nil
}

// UpdateItem applies a partial update; only the owner may edit a listing.
func (s *ItemService) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, req UpdateItemRequest) (*ItemDTO, error) {
	it, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !it.IsOwnedBy(userID) {
		return nil, domain.NewForbiddenError("item can be edited only by its owner")
	}

	if err := it.ApplyUpdate(req.Name, req.Description, req.Available, s.clock.Now()); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Update(ctx, it); err != nil {
		return nil, err
	}

	return s.GetItem(ctx, userID, itemID)
}

// GetItem retrieves an item with its comments. The last/next booking views
// are computed only when the viewer is the owner; other viewers always see
// them absent. This is a confidentiality boundary, not an optimization.
func (s *ItemService) GetItem(ctx context.Context, viewerID, itemID uuid.UUID) (*ItemDTO, error) {
	it, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.FindByItemID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	var last, next *BookingViewDTO
	if it.IsOwnedBy(viewerID) {
		now := s.clock.Now()
		lastByItem, err := s.bookingRepo.FindLastForItems(ctx, []uuid.UUID{itemID}, now)
		if err != nil {
			return nil, err
		}
		nextByItem, err := s.bookingRepo.FindNextForItems(ctx, []uuid.UUID{itemID}, now)
		if err != nil {
			return nil, err
		}
		last = toBookingView(lastByItem[itemID])
		next = toBookingView(nextByItem[itemID])
	}

	result := toItemDTO(it, last, next, toCommentDTOs(comments))
	return &result, nil
}

// GetOwnerItems lists the user's items with booking views and comments,
// batched per direction rather than per item.
func (s *ItemService) GetOwnerItems(ctx context.Context, ownerID uuid.UUID, from, size int) (*domain.PaginatedResult[ItemDTO], error) {
	exists, err := s.userRepo.Exists(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check owner: %w", err)
	}
	if !exists {
		return nil, domain.NewNotFoundError("user", ownerID.String())
	}
	if from < 0 || size <= 0 {
		return nil, domain.NewValidationError("invalid pagination parameters")
	}

	page := from/size + 1
	items, total, err := s.itemRepo.FindByOwnerID(ctx, ownerID, page, size)
	if err != nil {
		return nil, err
	}

	itemIDs := make([]uuid.UUID, len(items))
	for i, it := range items {
		itemIDs[i] = it.ID()
	}

	now := s.clock.Now()
	lastByItem, err := s.bookingRepo.FindLastForItems(ctx, itemIDs, now)
	if err != nil {
		return nil, err
	}
	nextByItem, err := s.bookingRepo.FindNextForItems(ctx, itemIDs, now)
	if err != nil {
		return nil, err
	}
	commentsByItem, err := s.commentRepo.FindByItemIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}

	dtos := make([]ItemDTO, len(items))
	for i, it := range items {
		dtos[i] = toItemDTO(
			it,
			toBookingView(lastByItem[it.ID()]),
			toBookingView(nextByItem[it.ID()]),
			toCommentDTOs(commentsByItem[it.ID()]),
		)
	}

	result := domain.NewPaginatedResult(dtos, total, page, size)
	return &result, nil
}

// SearchItems finds available items matching the text. A blank query returns
// an empty page rather than an error.
func (s *ItemService) SearchItems(ctx context.Context, text string, from, size int) (*domain.PaginatedResult[ItemDTO], error) {
	if from < 0 || size <= 0 {
		return nil, domain.NewValidationError("invalid pagination parameters")
	}
	page := from/size + 1

	if strings.TrimSpace(text) == "" {
		result := domain.NewPaginatedResult([]ItemDTO{}, 0, page, size)
		return &result, nil
	}

	items, total, err := s.itemRepo.SearchAvailable(ctx, text, page, size)
	if err != nil {
		return nil, err
	}

	dtos := make([]ItemDTO, len(items))
	for i, it := range items {
		dtos[i] = toItemDTO(it, nil, nil, []CommentDTO{})
	}
	result := domain.NewPaginatedResult(dtos, total, page, size)
	return &result, nil
}

// DeleteItem removes a listing; only the owner may delete it.
func (s *ItemService) DeleteItem(ctx context.Context, userID, itemID uuid.UUID) error {
	it, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return err
	}
	if !it.IsOwnedBy(userID) {
		return domain.NewForbiddenError("item can be deleted only by its owner")
	}
	return s.itemRepo.Delete(ctx, itemID)
}

// AddComment records feedback on an item. Only users with a finished
// APPROVED booking of the item may comment.
func (s *ItemService) AddComment(ctx context.Context, userID, itemID uuid.UUID, req AddCommentRequest) (*CommentDTO, error) {
	author, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	it, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	rented, err := s.bookingRepo.HasFinishedBooking(ctx, it.ID(), userID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to check booking history: %w", err)
	}
	if !rented {
		return nil, domain.NewValidationError("user has no finished rental of this item")
	}

	comment, err := itemDomain.NewComment(it.ID(), author.ID(), author.Name(), req.Text, now)
	if err != nil {
		return nil, err
	}
	if err := s.commentRepo.Save(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to save comment: %w", err)
	}

	dto := toCommentDTO(comment)
	return &dto, nil
}

// --- Helpers ---

func toItemDTO(it *itemDomain.Item, last, next *BookingViewDTO, comments []CommentDTO) ItemDTO {
	return ItemDTO{
		ID:          it.ID(),
		OwnerID:     it.OwnerID(),
		Name:        it.Name(),
		Description: it.Description(),
		Available:   it.Available(),
		RequestID:   it.RequestID(),
		LastBooking: last,
		NextBooking: next,
		Comments:    comments,
		CreatedAt:   it.CreatedAt(),
	}
}

func toBookingView(bk *bookingDomain.Booking) *BookingViewDTO {
	if bk == nil {
		return nil
	}
	return &BookingViewDTO{
		ID:       bk.ID(),
		BookerID: bk.BookerID(),
		Start:    bk.Start(),
		End:      bk.End(),
	}
}

func toCommentDTO(c *itemDomain.Comment) CommentDTO {
	return CommentDTO{
		ID:         c.ID(),
		AuthorName: c.AuthorName(),
		Text:       c.Text(),
		CreatedAt:  c.CreatedAt(),
	}
}

func toCommentDTOs(comments []*itemDomain.Comment) []CommentDTO {
	dtos := make([]CommentDTO, len(comments))
	for i, c := range comments {
		dtos[i] = toCommentDTO(c)
	}
	return dtos
}
