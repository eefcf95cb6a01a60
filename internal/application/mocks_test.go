package application

import (
	"context"
	"time"

	bookingDomain "renthub/internal/domain/booking"
	itemDomain "renthub/internal/domain/item"
	requestDomain "renthub/internal/domain/request"
	userDomain "renthub/internal/domain/user"
	"renthub/internal/pkg/kafka"

	"github.com/google/uuid"
)

// Function-field mocks: each test assigns only the calls it expects, and a
// call on a nil field panics, which surfaces unexpected repository access.

type mockBookingRepo struct {
	SaveFunc               func(ctx context.Context, bk *bookingDomain.Booking) error
	UpdateFunc             func(ctx context.Context, bk *bookingDomain.Booking) error
	FindByIDFunc           func(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error)
	FindByBookerIDFunc     func(ctx context.Context, bookerID uuid.UUID, filter bookingDomain.StateFilter, now time.Time, page, limit int) ([]*bookingDomain.Booking, int64, error)
	FindByItemOwnerIDFunc  func(ctx context.Context, ownerID uuid.UUID, filter bookingDomain.StateFilter, now time.Time, page, limit int) ([]*bookingDomain.Booking, int64, error)
	FindLastForItemsFunc   func(ctx context.Context, itemIDs []uuid.UUID, now time.Time) (map[uuid.UUID]*bookingDomain.Booking, error)
	FindNextForItemsFunc   func(ctx context.Context, itemIDs []uuid.UUID, now time.Time) (map[uuid.UUID]*bookingDomain.Booking, error)
	HasFinishedBookingFunc func(ctx context.Context, itemID, bookerID uuid.UUID, now time.Time) (bool, error)
}

func (m *mockBookingRepo) Save(ctx context.Context, bk *bookingDomain.Booking) error {
	return m.SaveFunc(ctx, bk)
}

func (m *mockBookingRepo) Update(ctx context.Context, bk *bookingDomain.Booking) error {
	return m.UpdateFunc(ctx, bk)
}

func (m *mockBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockBookingRepo) FindByBookerID(ctx context.Context, bookerID uuid.UUID, filter bookingDomain.StateFilter, now time.Time, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	return m.FindByBookerIDFunc(ctx, bookerID, filter, now, page, limit)
}

func (m *mockBookingRepo) FindByItemOwnerID(ctx context.Context, ownerID uuid.UUID, filter bookingDomain.StateFilter, now time.Time, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	return m.FindByItemOwnerIDFunc(ctx, ownerID, filter, now, page, limit)
}

func (m *mockBookingRepo) FindLastForItems(ctx context.Context, itemIDs []uuid.UUID, now time.Time) (map[uuid.UUID]*bookingDomain.Booking, error) {
	return m.FindLastForItemsFunc(ctx, itemIDs, now)
}

func (m *mockBookingRepo) FindNextForItems(ctx context.Context, itemIDs []uuid.UUID, now time.Time) (map[uuid.UUID]*bookingDomain.Booking, error) {
	return m.FindNextForItemsFunc(ctx, itemIDs, now)
}

func (m *mockBookingRepo) HasFinishedBooking(ctx context.Context, itemID, bookerID uuid.UUID, now time.Time) (bool, error) {
	return m.HasFinishedBookingFunc(ctx, itemID, bookerID, now)
}

type mockItemRepo struct {
	SaveFunc             func(ctx context.Context, it *itemDomain.Item) error
	UpdateFunc           func(ctx context.Context, it *itemDomain.Item) error
	FindByIDFunc         func(ctx context.Context, id uuid.UUID) (*itemDomain.Item, error)
	FindByOwnerIDFunc    func(ctx context.Context, ownerID uuid.UUID, page, limit int) ([]*itemDomain.Item, int64, error)
	FindByRequestIDsFunc func(ctx context.Context, requestIDs []uuid.UUID) ([]*itemDomain.Item, error)
	SearchAvailableFunc  func(ctx context.Context, text string, page, limit int) ([]*itemDomain.Item, int64, error)
	DeleteFunc           func(ctx context.Context, id uuid.UUID) error
}

func (m *mockItemRepo) Save(ctx context.Context, it *itemDomain.Item) error {
	return m.SaveFunc(ctx, it)
}

func (m *mockItemRepo) Update(ctx context.Context, it *itemDomain.Item) error {
	return m.UpdateFunc(ctx, it)
}

func (m *mockItemRepo) FindByID(ctx context.Context, id uuid.UUID) (*itemDomain.Item, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockItemRepo) FindByOwnerID(ctx context.Context, ownerID uuid.UUID, page, limit int) ([]*itemDomain.Item, int64, error) {
	return m.FindByOwnerIDFunc(ctx, ownerID, page, limit)
}

func (m *mockItemRepo) FindByRequestIDs(ctx context.Context, requestIDs []uuid.UUID) ([]*itemDomain.Item, error) {
	return m.FindByRequestIDsFunc(ctx, requestIDs)
}

func (m *mockItemRepo) SearchAvailable(ctx context.Context, text string, page, limit int) ([]*itemDomain.Item, int64, error) {
	return m.SearchAvailableFunc(ctx, text, page, limit)
}

func (m *mockItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}

type mockUserRepo struct {
	SaveFunc     func(ctx context.Context, u *userDomain.User) error
	UpdateFunc   func(ctx context.Context, u *userDomain.User) error
	FindByIDFunc func(ctx context.Context, id uuid.UUID) (*userDomain.User, error)
	ExistsFunc   func(ctx context.Context, id uuid.UUID) (bool, error)
	ListFunc     func(ctx context.Context, page, limit int) ([]*userDomain.User, int64, error)
	DeleteFunc   func(ctx context.Context, id uuid.UUID) error
}

func (m *mockUserRepo) Save(ctx context.Context, u *userDomain.User) error {
	return m.SaveFunc(ctx, u)
}

func (m *mockUserRepo) Update(ctx context.Context, u *userDomain.User) error {
	return m.UpdateFunc(ctx, u)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockUserRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return m.ExistsFunc(ctx, id)
}

func (m *mockUserRepo) List(ctx context.Context, page, limit int) ([]*userDomain.User, int64, error) {
	return m.ListFunc(ctx, page, limit)
}

func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}

type mockCommentRepo struct {
	SaveFunc          func(ctx context.Context, c *itemDomain.Comment) error
	FindByItemIDFunc  func(ctx context.Context, itemID uuid.UUID) ([]*itemDomain.Comment, error)
	FindByItemIDsFunc func(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID][]*itemDomain.Comment, error)
}

func (m *mockCommentRepo) Save(ctx context.Context, c *itemDomain.Comment) error {
	return m.SaveFunc(ctx, c)
}

func (m *mockCommentRepo) FindByItemID(ctx context.Context, itemID uuid.UUID) ([]*itemDomain.Comment, error) {
	return m.FindByItemIDFunc(ctx, itemID)
}

func (m *mockCommentRepo) FindByItemIDs(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID][]*itemDomain.Comment, error) {
	return m.FindByItemIDsFunc(ctx, itemIDs)
}

type mockRequestRepo struct {
	SaveFunc              func(ctx context.Context, req *requestDomain.ItemRequest) error
	FindByIDFunc          func(ctx context.Context, id uuid.UUID) (*requestDomain.ItemRequest, error)
	FindByRequesterIDFunc func(ctx context.Context, requesterID uuid.UUID) ([]*requestDomain.ItemRequest, error)
	FindOthersFunc        func(ctx context.Context, excludeUserID uuid.UUID, page, limit int) ([]*requestDomain.ItemRequest, int64, error)
}

func (m *mockRequestRepo) Save(ctx context.Context, req *requestDomain.ItemRequest) error {
	return m.SaveFunc(ctx, req)
}

func (m *mockRequestRepo) FindByID(ctx context.Context, id uuid.UUID) (*requestDomain.ItemRequest, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockRequestRepo) FindByRequesterID(ctx context.Context, requesterID uuid.UUID) ([]*requestDomain.ItemRequest, error) {
	return m.FindByRequesterIDFunc(ctx, requesterID)
}

func (m *mockRequestRepo) FindOthers(ctx context.Context, excludeUserID uuid.UUID, page, limit int) ([]*requestDomain.ItemRequest, int64, error) {
	return m.FindOthersFunc(ctx, excludeUserID, page, limit)
}

// mockPublisher records published events for assertion.
type mockPublisher struct {
	events []*kafka.CloudEvent
	topics []string
}

func (m *mockPublisher) PublishEvent(_ context.Context, topic string, event *kafka.CloudEvent) error {
	m.topics = append(m.topics, topic)
	m.events = append(m.events, event)
	return nil
}
