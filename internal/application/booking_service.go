package application

import (
	"context"
	"fmt"
	"time"

	bookingDomain "renthub/internal/domain/booking"
	itemDomain "renthub/internal/domain/item"
	userDomain "renthub/internal/domain/user"
	"renthub/internal/metrics"
	"renthub/internal/pkg/clock"
	"renthub/internal/pkg/domain"
	"renthub/internal/pkg/kafka"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateBookingRequest holds the data needed to create a new booking.
type CreateBookingRequest struct {
	ItemID uuid.UUID `json:"item_id" binding:"required"`
	Start  time.Time `json:"start" binding:"required"`
	End    time.Time `json:"end" binding:"required"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID        uuid.UUID `json:"id"`
	ItemID    uuid.UUID `json:"item_id"`
	BookerID  uuid.UUID `json:"booker_id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookingService orchestrates the booking lifecycle: creation, the owner's
// approve/reject decision, and filtered booking lists.
type BookingService struct {
	bookingRepo bookingDomain.Repository
	itemRepo    itemDomain.Repository
	userRepo    userDomain.Repository
	producer    EventPublisher
	clock       clock.Clock
	logger      *zap.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookingRepo bookingDomain.Repository,
	itemRepo itemDomain.Repository,
	userRepo userDomain.Repository,
	producer EventPublisher,
	clk clock.Clock,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		itemRepo:    itemRepo,
		userRepo:    userRepo,
		producer:    producer,
		clock:       clk,
		logger:      logger,
	}
}

// CreateBooking creates a booking in WAITING state against an available item.
// Preconditions are checked in a fixed order so each failure maps to a stable
// error kind: requester exists, item exists, item available, requester is not
// the owner, interval is ordered. Overlapping bookings on the same item are
// deliberately allowed; the owner arbitrates via approval.
func (s *BookingService) CreateBooking(ctx context.Context, requesterID uuid.UUID, req CreateBookingRequest) (*BookingDTO, error) {
	exists, err := s.userRepo.Exists(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to check requester: %w", err)
	}
	if !exists {
		return nil, domain.NewNotFoundError("user", requesterID.String())
	}

	it, err := s.itemRepo.FindByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if !it.Available() {
		return nil, domain.NewValidationError("item is not available for booking")
	}
	if it.IsOwnedBy(requesterID) {
		return nil, domain.NewForbiddenError("owner cannot book their own item")
	}

	now := s.clock.Now()
	bk, err := bookingDomain.NewBooking(req.ItemID, requesterID, req.Start, req.End, now)
	if err != nil {
		return nil, err
	}

	if err := s.bookingRepo.Save(ctx, bk); err != nil {
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}

	metrics.ObserveBookingTransition(string(bookingDomain.StatusWaiting))
	s.publishEvent(ctx, BookingCreated, bk.ID().String(), BookingCreatedEvent{
		BookingID:  bk.ID(),
		ItemID:     it.ID(),
		OwnerID:    it.OwnerID(),
		BookerID:   bk.BookerID(),
		Start:      bk.Start(),
		End:        bk.End(),
		OccurredAt: now,
	})

	result := toBookingDTO(bk)
	return &result, nil
}

// SetApproved lets the item's owner decide a WAITING booking. The transition
// is terminal; a second decision fails in the state machine, and a concurrent
// one loses the optimistic-lock race in the repository.
func (s *BookingService) SetApproved(ctx context.Context, requesterID, bookingID uuid.UUID, approve bool) (*BookingDTO, error) {
	bk, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	exists, err := s.userRepo.Exists(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to check requester: %w", err)
	}
	if !exists {
		return nil, domain.NewNotFoundError("user", requesterID.String())
	}

	it, err := s.itemRepo.FindByID(ctx, bk.ItemID())
	if err != nil {
		return nil, err
	}
	if !it.IsOwnedBy(requesterID) {
		return nil, domain.NewForbiddenError("only the item owner can decide a booking")
	}

	now := s.clock.Now()
	if approve {
		err = bk.Approve(now)
	} else {
		err = bk.Reject(now)
	}
	if err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.bookingRepo.Update(ctx, bk); err != nil {
		return nil, err
	}

	metrics.ObserveBookingTransition(string(bk.Status()))
	eventType := BookingApproved
	if !approve {
		eventType = BookingRejected
	}
	s.publishEvent(ctx, eventType, bk.ID().String(), BookingDecidedEvent{
		BookingID:  bk.ID(),
		ItemID:     it.ID(),
		OwnerID:    it.OwnerID(),
		BookerID:   bk.BookerID(),
		Status:     string(bk.Status()),
		OccurredAt: now,
	})

	result := toBookingDTO(bk)
	return &result, nil
}

// GetBooking retrieves a booking, visible only to its booker or the item's owner.
func (s *BookingService) GetBooking(ctx context.Context, requesterID, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if bk.BookerID() != requesterID {
		it, err := s.itemRepo.FindByID(ctx, bk.ItemID())
		if err != nil {
			return nil, err
		}
		if !it.IsOwnedBy(requesterID) {
			return nil, domain.NewForbiddenError("booking is visible only to the booker or the item owner")
		}
	}

	result := toBookingDTO(bk)
	return &result, nil
}

// GetBookerBookings lists bookings made by the user, scoped by the state
// filter, most recent start first.
func (s *BookingService) GetBookerBookings(ctx context.Context, userID uuid.UUID, filter bookingDomain.StateFilter, from, size int) (*domain.PaginatedResult[BookingDTO], error) {
	page, err := s.preparePage(ctx, userID, from, size)
	if err != nil {
		return nil, err
	}

	bookings, total, err := s.bookingRepo.FindByBookerID(ctx, userID, filter, s.clock.Now(), page, size)
	if err != nil {
		return nil, err
	}
	result := toPaginatedBookings(bookings, total, page, size)
	return &result, nil
}

// GetOwnerBookings lists bookings of items owned by the user, scoped by the
// state filter, most recent start first.
func (s *BookingService) GetOwnerBookings(ctx context.Context, userID uuid.UUID, filter bookingDomain.StateFilter, from, size int) (*domain.PaginatedResult[BookingDTO], error) {
	page, err := s.preparePage(ctx, userID, from, size)
	if err != nil {
		return nil, err
	}

	bookings, total, err := s.bookingRepo.FindByItemOwnerID(ctx, userID, filter, s.clock.Now(), page, size)
	if err != nil {
		return nil, err
	}
	result := toPaginatedBookings(bookings, total, page, size)
	return &result, nil
}

// preparePage validates the scoping user and converts an offset/size pair to
// a 1-based page index (page = from/size + 1, integer division).
func (s *BookingService) preparePage(ctx context.Context, userID uuid.UUID, from, size int) (int, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return 0, domain.NewNotFoundError("user", userID.String())
	}
	if from < 0 || size <= 0 {
		return 0, domain.NewValidationError("invalid pagination parameters")
	}
	return from/size + 1, nil
}

// --- Helpers ---

func toBookingDTO(bk *bookingDomain.Booking) BookingDTO {
	return BookingDTO{
		ID:        bk.ID(),
		ItemID:    bk.ItemID(),
		BookerID:  bk.BookerID(),
		Start:     bk.Start(),
		End:       bk.End(),
		Status:    string(bk.Status()),
		CreatedAt: bk.CreatedAt(),
		UpdatedAt: bk.UpdatedAt(),
	}
}

func toPaginatedBookings(bookings []*bookingDomain.Booking, total int64, page, limit int) domain.PaginatedResult[BookingDTO] {
	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}
	return domain.NewPaginatedResult(dtos, total, page, limit)
}

func (s *BookingService) publishEvent(ctx context.Context, eventType, key string, data interface{}) {
	if s.producer == nil {
		return
	}

	cloudEvent, err := kafka.NewCloudEvent(eventSource, eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.producer.PublishEvent(ctx, TopicBookingEvents, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", TopicBookingEvents),
			zap.String("event_type", eventType),
			zap.String("key", key),
			zap.Error(err),
		)
	}
}
