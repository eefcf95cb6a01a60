package request

import (
	"time"

	"renthub/internal/pkg/domain"

	"github.com/google/uuid"
)

// ItemRequest is a wanted-item posting; owners may answer it by listing an
// item that references the request.
type ItemRequest struct {
	id          uuid.UUID
	requesterID uuid.UUID
	description string
	createdAt   time.Time
}

// NewItemRequest creates a request with validated fields.
func NewItemRequest(requesterID uuid.UUID, description string, now time.Time) (*ItemRequest, error) {
	if requesterID == uuid.Nil {
		return nil, domain.NewValidationError("requester ID is required")
	}
	if description == "" {
		return nil, domain.NewValidationError("request description cannot be blank")
	}

	return &ItemRequest{
		id:          uuid.New(),
		requesterID: requesterID,
		description: description,
		createdAt:   now,
	}, nil
}

// Reconstruct rebuilds an ItemRequest from persistence data.
func Reconstruct(id, requesterID uuid.UUID, description string, createdAt time.Time) *ItemRequest {
	return &ItemRequest{
		id:          id,
		requesterID: requesterID,
		description: description,
		createdAt:   createdAt,
	}
}

// ID returns the request's unique identifier.
func (r *ItemRequest) ID() uuid.UUID { return r.id }

// RequesterID returns the requester's user identifier.
func (r *ItemRequest) RequesterID() uuid.UUID { return r.requesterID }

// Description returns what is being asked for.
func (r *ItemRequest) Description() string { return r.description }

// CreatedAt returns the creation timestamp.
func (r *ItemRequest) CreatedAt() time.Time { return r.createdAt }
