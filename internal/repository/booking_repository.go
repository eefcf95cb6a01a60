package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingDomain "renthub/internal/domain/booking"
	"renthub/internal/pkg/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingModel is the GORM model for the bookings table. The composite index
// on (item_id, status, start_date) backs the last/next projection queries.
type BookingModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ItemID    uuid.UUID `gorm:"type:uuid;not null;index:idx_bookings_item_status_start,priority:1"`
	BookerID  uuid.UUID `gorm:"type:uuid;index;not null"`
	Status    string    `gorm:"not null;size:20;index:idx_bookings_item_status_start,priority:2"`
	StartDate time.Time `gorm:"not null;index:idx_bookings_item_status_start,priority:3"`
	EndDate   time.Time `gorm:"not null"`
	Version   int64     `gorm:"not null;default:1"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of booking.Repository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// Save persists a new booking.
func (r *GormBookingRepository) Save(ctx context.Context, bk *bookingDomain.Booking) error {
	model := toBookingModel(bk)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

// Update persists changes to an existing booking. The versioned WHERE clause
// makes the loser of two concurrent transitions fail with a conflict instead
// of silently overwriting.
func (r *GormBookingRepository) Update(ctx context.Context, bk *bookingDomain.Booking) error {
	model := toBookingModel(bk)

	expectedVersion := bk.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"status":     model.Status,
			"start_date": model.StartDate,
			"end_date":   model.EndDate,
			"version":    model.Version,
			"updated_at": model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("booking was modified by another transaction")
	}
	return nil
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model)
}

// FindByBookerID retrieves bookings made by a user, scoped by the state filter.
func (r *GormBookingRepository) FindByBookerID(ctx context.Context, bookerID uuid.UUID, filter bookingDomain.StateFilter, now time.Time, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	base := r.db.WithContext(ctx).Model(&BookingModel{}).Where("booker_id = ?", bookerID)
	return r.findFiltered(base, filter, now, page, limit)
}

// FindByItemOwnerID retrieves bookings of items owned by a user, scoped by
// the state filter.
func (r *GormBookingRepository) FindByItemOwnerID(ctx context.Context, ownerID uuid.UUID, filter bookingDomain.StateFilter, now time.Time, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	base := r.db.WithContext(ctx).Model(&BookingModel{}).
		Joins("JOIN items ON items.id = bookings.item_id").
		Where("items.owner_id = ?", ownerID)
	return r.findFiltered(base, filter, now, page, limit)
}

// findFiltered applies the state filter, start-descending sort and pagination
// to an already scoped query.
func (r *GormBookingRepository) findFiltered(base *gorm.DB, filter bookingDomain.StateFilter, now time.Time, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	scoped, err := applyStateFilter(base, filter, now)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := scoped.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := scoped.Session(&gorm.Session{}).
		Order("bookings.start_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find bookings: %w", err)
	}

	bookings := make([]*bookingDomain.Booking, len(models))
	for i, m := range models {
		bk, err := toDomainBooking(&m)
		if err != nil {
			return nil, 0, err
		}
		bookings[i] = bk
	}
	return bookings, total, nil
}

// applyStateFilter resolves a logical state filter into concrete predicates
// against now. The default branch guards against values the enum does not
// declare; it is unreachable through ParseStateFilter.
func applyStateFilter(q *gorm.DB, filter bookingDomain.StateFilter, now time.Time) (*gorm.DB, error) {
	switch filter {
	case bookingDomain.FilterAll:
		return q, nil
	case bookingDomain.FilterCurrent:
		return q.Where("bookings.start_date <= ? AND bookings.end_date >= ?", now, now), nil
	case bookingDomain.FilterPast:
		return q.Where("bookings.end_date < ?", now), nil
	case bookingDomain.FilterFuture:
		return q.Where("bookings.start_date > ?", now), nil
	case bookingDomain.FilterWaiting:
		return q.Where("bookings.status = ?", string(bookingDomain.StatusWaiting)), nil
	case bookingDomain.FilterApproved:
		return q.Where("bookings.status = ?", string(bookingDomain.StatusApproved)), nil
	case bookingDomain.FilterRejected:
		return q.Where("bookings.status = ?", string(bookingDomain.StatusRejected)), nil
	default:
		return nil, domain.NewUnsupportedError("state filter: " + filter.String())
	}
}

// FindLastForItems returns the latest started APPROVED booking per item among
// those with start < now. One row per item via DISTINCT ON; the trailing id
// sort makes equal starts deterministic.
func (r *GormBookingRepository) FindLastForItems(ctx context.Context, itemIDs []uuid.UUID, now time.Time) (map[uuid.UUID]*bookingDomain.Booking, error) {
	if len(itemIDs) == 0 {
		return map[uuid.UUID]*bookingDomain.Booking{}, nil
	}

	var models []BookingModel
	err := r.db.WithContext(ctx).
		Select("DISTINCT ON (item_id) *").
		Where("item_id IN ? AND status = ? AND start_date < ?", itemIDs, string(bookingDomain.StatusApproved), now).
		Order("item_id, start_date DESC, id").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find last bookings: %w", err)
	}
	return keyByItem(models)
}

// FindNextForItems returns the earliest starting APPROVED booking per item
// among those with start >= now.
func (r *GormBookingRepository) FindNextForItems(ctx context.Context, itemIDs []uuid.UUID, now time.Time) (map[uuid.UUID]*bookingDomain.Booking, error) {
	if len(itemIDs) == 0 {
		return map[uuid.UUID]*bookingDomain.Booking{}, nil
	}

	var models []BookingModel
	err := r.db.WithContext(ctx).
		Select("DISTINCT ON (item_id) *").
		Where("item_id IN ? AND status = ? AND start_date >= ?", itemIDs, string(bookingDomain.StatusApproved), now).
		Order("item_id, start_date ASC, id").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find next bookings: %w", err)
	}
	return keyByItem(models)
}

// HasFinishedBooking reports whether the user has a finished APPROVED booking
// of the item.
func (r *GormBookingRepository) HasFinishedBooking(ctx context.Context, itemID, bookerID uuid.UUID, now time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("item_id = ? AND booker_id = ? AND status = ? AND end_date < ?",
			itemID, bookerID, string(bookingDomain.StatusApproved), now).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check finished bookings: %w", err)
	}
	return count > 0, nil
}

// --- Conversion Helpers ---

func keyByItem(models []BookingModel) (map[uuid.UUID]*bookingDomain.Booking, error) {
	result := make(map[uuid.UUID]*bookingDomain.Booking, len(models))
	for _, m := range models {
		bk, err := toDomainBooking(&m)
		if err != nil {
			return nil, err
		}
		result[m.ItemID] = bk
	}
	return result, nil
}

func toBookingModel(bk *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:        bk.ID(),
		ItemID:    bk.ItemID(),
		BookerID:  bk.BookerID(),
		Status:    string(bk.Status()),
		StartDate: bk.Start(),
		EndDate:   bk.End(),
		Version:   bk.Version(),
		CreatedAt: bk.CreatedAt(),
		UpdatedAt: bk.UpdatedAt(),
	}
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	status, err := bookingDomain.ParseStatus(m.Status)
	if err != nil {
		return nil, err
	}
	return bookingDomain.Reconstruct(
		m.ID,
		m.ItemID,
		m.BookerID,
		m.StartDate,
		m.EndDate,
		status,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}
