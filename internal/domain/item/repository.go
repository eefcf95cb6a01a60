package item

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for items.
type Repository interface {
	// Save persists a new item.
	Save(ctx context.Context, item *Item) error

	// Update persists changes to an existing item.
	Update(ctx context.Context, item *Item) error

	// FindByID retrieves an item by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)

	// FindByOwnerID retrieves items listed by a user, oldest first, with pagination.
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID, page, limit int) ([]*Item, int64, error)

	// FindByRequestIDs retrieves items answering any of the given requests.
	FindByRequestIDs(ctx context.Context, requestIDs []uuid.UUID) ([]*Item, error)

	// SearchAvailable retrieves available items whose name or description
	// contains the text, case-insensitive, with pagination.
	SearchAvailable(ctx context.Context, text string, page, limit int) ([]*Item, int64, error)

	// Delete removes an item.
	Delete(ctx context.Context, id uuid.UUID) error
}

// CommentRepository defines the persistence contract for item comments.
type CommentRepository interface {
	// Save persists a new comment.
	Save(ctx context.Context, comment *Comment) error

	// FindByItemID retrieves all comments on an item, newest first.
	FindByItemID(ctx context.Context, itemID uuid.UUID) ([]*Comment, error)

	// FindByItemIDs retrieves comments for a batch of items, keyed by item id.
	FindByItemIDs(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID][]*Comment, error)
}
