package application

import (
	"context"
	"testing"
	"time"

	bookingDomain "renthub/internal/domain/booking"
	itemDomain "renthub/internal/domain/item"
	userDomain "renthub/internal/domain/user"
	"renthub/internal/pkg/clock"
	"renthub/internal/pkg/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type itemFixture struct {
	ownerID  uuid.UUID
	viewerID uuid.UUID
	item     *itemDomain.Item
	items    *mockItemRepo
	bookings *mockBookingRepo
	comments *mockCommentRepo
	users    *mockUserRepo
	requests *mockRequestRepo
	service  *ItemService
}

func newItemFixture(t *testing.T) *itemFixture {
	t.Helper()

	ownerID := uuid.New()
	it := itemDomain.Reconstruct(uuid.New(), ownerID, "drill", "cordless drill", true, nil, testNow, testNow)

	f := &itemFixture{
		ownerID:  ownerID,
		viewerID: uuid.New(),
		item:     it,
		items:    &mockItemRepo{},
		bookings: &mockBookingRepo{},
		comments: &mockCommentRepo{},
		users:    &mockUserRepo{},
		requests: &mockRequestRepo{},
	}

	f.users.ExistsFunc = func(_ context.Context, _ uuid.UUID) (bool, error) {
		return true, nil
	}
	f.items.FindByIDFunc = func(_ context.Context, id uuid.UUID) (*itemDomain.Item, error) {
		if id == it.ID() {
			return it, nil
		}
		return nil, domain.NewNotFoundError("item", id.String())
	}
	f.comments.FindByItemIDFunc = func(_ context.Context, _ uuid.UUID) ([]*itemDomain.Comment, error) {
		return nil, nil
	}

	f.service = NewItemService(
		f.items, f.bookings, f.comments, f.users, f.requests,
		clock.NewMockClock(testNow), zap.NewNop(),
	)
	return f
}

func TestGetItemAsOwnerIncludesBookingViews(t *testing.T) {
	f := newItemFixture(t)

	lastBooking := bookingDomain.Reconstruct(
		uuid.New(), f.item.ID(), uuid.New(),
		testNow.Add(-48*time.Hour), testNow.Add(-24*time.Hour),
		bookingDomain.StatusApproved, 2, testNow, testNow,
	)
	nextBooking := bookingDomain.Reconstruct(
		uuid.New(), f.item.ID(), uuid.New(),
		testNow.Add(24*time.Hour), testNow.Add(48*time.Hour),
		bookingDomain.StatusApproved, 2, testNow, testNow,
	)

	f.bookings.FindLastForItemsFunc = func(_ context.Context, itemIDs []uuid.UUID, now time.Time) (map[uuid.UUID]*bookingDomain.Booking, error) {
		assert.Equal(t, []uuid.UUID{f.item.ID()}, itemIDs)
		assert.Equal(t, testNow, now)
		return map[uuid.UUID]*bookingDomain.Booking{f.item.ID(): lastBooking}, nil
	}
	f.bookings.FindNextForItemsFunc = func(_ context.Context, _ []uuid.UUID, _ time.Time) (map[uuid.UUID]*bookingDomain.Booking, error) {
		return map[uuid.UUID]*bookingDomain.Booking{f.item.ID(): nextBooking}, nil
	}

	dto, err := f.service.GetItem(context.Background(), f.ownerID, f.item.ID())
	require.NoError(t, err)

	require.NotNil(t, dto.LastBooking)
	assert.Equal(t, lastBooking.ID(), dto.LastBooking.ID)
	require.NotNil(t, dto.NextBooking)
	assert.Equal(t, nextBooking.ID(), dto.NextBooking.ID)
}

// A non-owner must never see booking views. The booking repo mock has no
// functions assigned, so any lookup attempt would panic the test.
func TestGetItemAsNonOwnerHidesBookingViews(t *testing.T) {
	f := newItemFixture(t)

	dto, err := f.service.GetItem(context.Background(), f.viewerID, f.item.ID())
	require.NoError(t, err)

	assert.Nil(t, dto.LastBooking)
	assert.Nil(t, dto.NextBooking)
	assert.Equal(t, f.item.ID(), dto.ID)
}

func TestGetItemIncludesComments(t *testing.T) {
	f := newItemFixture(t)

	comment, err := itemDomain.NewComment(f.item.ID(), uuid.New(), "alice", "great drill", testNow)
	require.NoError(t, err)
	f.comments.FindByItemIDFunc = func(_ context.Context, itemID uuid.UUID) ([]*itemDomain.Comment, error) {
		assert.Equal(t, f.item.ID(), itemID)
		return []*itemDomain.Comment{comment}, nil
	}

	dto, err := f.service.GetItem(context.Background(), f.viewerID, f.item.ID())
	require.NoError(t, err)

	require.Len(t, dto.Comments, 1)
	assert.Equal(t, "alice", dto.Comments[0].AuthorName)
	assert.Equal(t, "great drill", dto.Comments[0].Text)
}

func TestCreateItemUnknownOwner(t *testing.T) {
	f := newItemFixture(t)
	f.users.ExistsFunc = func(_ context.Context, _ uuid.UUID) (bool, error) {
		return false, nil
	}

	available := true
	_, err := f.service.CreateItem(context.Background(), f.ownerID, CreateItemRequest{
		Name: "drill", Description: "cordless drill", Available: &available,
	})
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))
}

func TestUpdateItemByNonOwner(t *testing.T) {
	f := newItemFixture(t)

	name := "hammer"
	_, err := f.service.UpdateItem(context.Background(), f.viewerID, f.item.ID(), UpdateItemRequest{Name: &name})
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.CodeForbidden))
}

func TestUpdateItemPartial(t *testing.T) {
	f := newItemFixture(t)
	f.items.UpdateFunc = func(_ context.Context, _ *itemDomain.Item) error {
		return nil
	}
	f.bookings.FindLastForItemsFunc = func(_ context.Context, _ []uuid.UUID, _ time.Time) (map[uuid.UUID]*bookingDomain.Booking, error) {
		return nil, nil
	}
	f.bookings.FindNextForItemsFunc = func(_ context.Context, _ []uuid.UUID, _ time.Time) (map[uuid.UUID]*bookingDomain.Booking, error) {
		return nil, nil
	}

	available := false
	dto, err := f.service.UpdateItem(context.Background(), f.ownerID, f.item.ID(), UpdateItemRequest{Available: &available})
	require.NoError(t, err)

	assert.False(t, dto.Available)
	assert.Equal(t, "drill", dto.Name, "unset fields stay unchanged")
}

func TestSearchItemsBlankQuery(t *testing.T) {
	f := newItemFixture(t)

	// The item repo search mock is unassigned; a blank query must not hit it.
	result, err := f.service.SearchItems(context.Background(), "   ", 0, 20)
	require.NoError(t, err)
	assert.Empty(t, result.Items)
	assert.Equal(t, int64(0), result.Total)
}

func TestSearchItems(t *testing.T) {
	f := newItemFixture(t)
	f.items.SearchAvailableFunc = func(_ context.Context, text string, page, limit int) ([]*itemDomain.Item, int64, error) {
		assert.Equal(t, "drill", text)
		assert.Equal(t, 1, page)
		return []*itemDomain.Item{f.item}, 1, nil
	}

	result, err := f.service.SearchItems(context.Background(), "drill", 0, 20)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, f.item.ID(), result.Items[0].ID)
}

func TestAddComment(t *testing.T) {
	f := newItemFixture(t)

	author := userDomain.Reconstruct(f.viewerID, "alice", "alice@example.com", testNow, testNow)
	f.users.FindByIDFunc = func(_ context.Context, _ uuid.UUID) (*userDomain.User, error) {
		return author, nil
	}
	f.bookings.HasFinishedBookingFunc = func(_ context.Context, itemID, bookerID uuid.UUID, now time.Time) (bool, error) {
		assert.Equal(t, f.item.ID(), itemID)
		assert.Equal(t, f.viewerID, bookerID)
		return true, nil
	}
	var saved *itemDomain.Comment
	f.comments.SaveFunc = func(_ context.Context, c *itemDomain.Comment) error {
		saved = c
		return nil
	}

	dto, err := f.service.AddComment(context.Background(), f.viewerID, f.item.ID(), AddCommentRequest{Text: "worked great"})
	require.NoError(t, err)

	require.NotNil(t, saved)
	assert.Equal(t, "alice", dto.AuthorName)
	assert.Equal(t, "worked great", dto.Text)
}

func TestAddCommentWithoutFinishedRental(t *testing.T) {
	f := newItemFixture(t)

	author := userDomain.Reconstruct(f.viewerID, "alice", "alice@example.com", testNow, testNow)
	f.users.FindByIDFunc = func(_ context.Context, _ uuid.UUID) (*userDomain.User, error) {
		return author, nil
	}
	f.bookings.HasFinishedBookingFunc = func(_ context.Context, _, _ uuid.UUID, _ time.Time) (bool, error) {
		return false, nil
	}

	_, err := f.service.AddComment(context.Background(), f.viewerID, f.item.ID(), AddCommentRequest{Text: "never rented it"})
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.CodeValidation))
}

func TestDeleteItemByNonOwner(t *testing.T) {
	f := newItemFixture(t)

	err := f.service.DeleteItem(context.Background(), f.viewerID, f.item.ID())
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.CodeForbidden))
}

func TestGetOwnerItemsBatchesProjections(t *testing.T) {
	f := newItemFixture(t)
	second := itemDomain.Reconstruct(uuid.New(), f.ownerID, "ladder", "tall ladder", true, nil, testNow, testNow)

	f.items.FindByOwnerIDFunc = func(_ context.Context, ownerID uuid.UUID, page, limit int) ([]*itemDomain.Item, int64, error) {
		assert.Equal(t, f.ownerID, ownerID)
		return []*itemDomain.Item{f.item, second}, 2, nil
	}

	var lastCalls, nextCalls int
	f.bookings.FindLastForItemsFunc = func(_ context.Context, itemIDs []uuid.UUID, _ time.Time) (map[uuid.UUID]*bookingDomain.Booking, error) {
		lastCalls++
		assert.Len(t, itemIDs, 2)
		return nil, nil
	}
	f.bookings.FindNextForItemsFunc = func(_ context.Context, itemIDs []uuid.UUID, _ time.Time) (map[uuid.UUID]*bookingDomain.Booking, error) {
		nextCalls++
		assert.Len(t, itemIDs, 2)
		return nil, nil
	}
	f.comments.FindByItemIDsFunc = func(_ context.Context, itemIDs []uuid.UUID) (map[uuid.UUID][]*itemDomain.Comment, error) {
		assert.Len(t, itemIDs, 2)
		return nil, nil
	}

	result, err := f.service.GetOwnerItems(context.Background(), f.ownerID, 0, 20)
	require.NoError(t, err)

	require.Len(t, result.Items, 2)
	assert.Equal(t, 1, lastCalls, "one batched query per direction")
	assert.Equal(t, 1, nextCalls)
}
