package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for booking aggregates.
// Temporal filters take the evaluation instant as a parameter; the repository
// never consults a clock of its own.
type Repository interface {
	// Save persists a new booking.
	Save(ctx context.Context, booking *Booking) error

	// Update persists changes to an existing booking with optimistic locking.
	Update(ctx context.Context, booking *Booking) error

	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindByBookerID retrieves bookings made by a user, scoped by the state
	// filter, sorted by start descending, with pagination.
	FindByBookerID(ctx context.Context, bookerID uuid.UUID, filter StateFilter, now time.Time, page, limit int) ([]*Booking, int64, error)

	// FindByItemOwnerID retrieves bookings of items owned by a user, scoped by
	// the state filter, sorted by start descending, with pagination.
	FindByItemOwnerID(ctx context.Context, ownerID uuid.UUID, filter StateFilter, now time.Time, page, limit int) ([]*Booking, int64, error)

	// FindLastForItems returns, per item, the APPROVED booking with the
	// greatest start among those with start < now. Items with no match are
	// absent from the result.
	FindLastForItems(ctx context.Context, itemIDs []uuid.UUID, now time.Time) (map[uuid.UUID]*Booking, error)

	// FindNextForItems returns, per item, the APPROVED booking with the
	// smallest start among those with start >= now. Items with no match are
	// absent from the result.
	FindNextForItems(ctx context.Context, itemIDs []uuid.UUID, now time.Time) (map[uuid.UUID]*Booking, error)

	// HasFinishedBooking reports whether the user has at least one APPROVED
	// booking of the item that ended before now.
	HasFinishedBooking(ctx context.Context, itemID, bookerID uuid.UUID, now time.Time) (bool, error)
}
