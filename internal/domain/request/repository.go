package request

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for item requests.
type Repository interface {
	// Save persists a new request.
	Save(ctx context.Context, req *ItemRequest) error

	// FindByID retrieves a request by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*ItemRequest, error)

	// FindByRequesterID retrieves a user's own requests, newest first.
	FindByRequesterID(ctx context.Context, requesterID uuid.UUID) ([]*ItemRequest, error)

	// FindOthers retrieves requests made by other users, newest first, with pagination.
	FindOthers(ctx context.Context, excludeUserID uuid.UUID, page, limit int) ([]*ItemRequest, int64, error)
}
