package booking

import (
	"time"

	"renthub/internal/pkg/domain"

	"github.com/google/uuid"
)

// Booking is the aggregate root for a rental booking. It references its item
// and booker by id only; their lifecycles are owned elsewhere.
type Booking struct {
	id       uuid.UUID
	itemID   uuid.UUID
	bookerID uuid.UUID
	start    time.Time
	end      time.Time
	status   Status

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a booking in WAITING state. The interval is half-open
// inclusive [start, end] and must be strictly ordered. The evaluation instant
// is passed in by the caller; the aggregate never reads a global clock.
func NewBooking(itemID, bookerID uuid.UUID, start, end, now time.Time) (*Booking, error) {
	if itemID == uuid.Nil {
		return nil, domain.NewValidationError("item ID is required")
	}
	if bookerID == uuid.Nil {
		return nil, domain.NewValidationError("booker ID is required")
	}
	if !end.After(start) {
		return nil, domain.NewValidationError("booking end must be strictly after start")
	}

	return &Booking{
		id:        uuid.New(),
		itemID:    itemID,
		bookerID:  bookerID,
		start:     start,
		end:       end,
		status:    StatusWaiting,
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a Booking from persistence data (no validation).
func Reconstruct(
	id, itemID, bookerID uuid.UUID,
	start, end time.Time,
	status Status,
	version int64,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		itemID:    itemID,
		bookerID:  bookerID,
		start:     start,
		end:       end,
		status:    status,
		version:   version,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// ItemID returns the booked item's identifier.
func (b *Booking) ItemID() uuid.UUID { return b.itemID }

// BookerID returns the booker's user identifier.
func (b *Booking) BookerID() uuid.UUID { return b.bookerID }

// Start returns the rental interval start.
func (b *Booking) Start() time.Time { return b.start }

// End returns the rental interval end.
func (b *Booking) End() time.Time { return b.end }

// Status returns the current booking status.
func (b *Booking) Status() Status { return b.status }

// Version returns the entity version for optimistic locking.
func (b *Booking) Version() int64 { return b.version }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// Approve transitions the booking from WAITING to APPROVED.
func (b *Booking) Approve(now time.Time) error {
	return b.transition(StatusApproved, now)
}

// Reject transitions the booking from WAITING to REJECTED.
func (b *Booking) Reject(now time.Time) error {
	return b.transition(StatusRejected, now)
}

func (b *Booking) transition(target Status, now time.Time) error {
	if !b.status.CanTransitionTo(target) {
		return domain.NewInvalidStateError(string(b.status), string(target))
	}
	b.status = target
	b.updatedAt = now
	return nil
}

// IncrementVersion bumps the version for optimistic locking.
func (b *Booking) IncrementVersion() {
	b.version++
}
