package item

import (
	"time"

	"renthub/internal/pkg/domain"

	"github.com/google/uuid"
)

// Comment is feedback left on an item by a past renter. The eligibility rule
// (a finished APPROVED booking) is enforced by the application service, which
// is the only place with access to the booking history.
type Comment struct {
	id         uuid.UUID
	itemID     uuid.UUID
	authorID   uuid.UUID
	authorName string
	text       string
	createdAt  time.Time
}

// NewComment creates a comment with validated fields.
func NewComment(itemID, authorID uuid.UUID, authorName, text string, now time.Time) (*Comment, error) {
	if itemID == uuid.Nil {
		return nil, domain.NewValidationError("item ID is required")
	}
	if authorID == uuid.Nil {
		return nil, domain.NewValidationError("author ID is required")
	}
	if text == "" {
		return nil, domain.NewValidationError("comment text cannot be blank")
	}

	return &Comment{
		id:         uuid.New(),
		itemID:     itemID,
		authorID:   authorID,
		authorName: authorName,
		text:       text,
		createdAt:  now,
	}, nil
}

// ReconstructComment rebuilds a Comment from persistence data.
func ReconstructComment(id, itemID, authorID uuid.UUID, authorName, text string, createdAt time.Time) *Comment {
	return &Comment{
		id:         id,
		itemID:     itemID,
		authorID:   authorID,
		authorName: authorName,
		text:       text,
		createdAt:  createdAt,
	}
}

// ID returns the comment's unique identifier.
func (c *Comment) ID() uuid.UUID { return c.id }

// ItemID returns the commented item's identifier.
func (c *Comment) ItemID() uuid.UUID { return c.itemID }

// AuthorID returns the author's user identifier.
func (c *Comment) AuthorID() uuid.UUID { return c.authorID }

// AuthorName returns the author's display name at comment time.
func (c *Comment) AuthorName() string { return c.authorName }

// Text returns the comment body.
func (c *Comment) Text() string { return c.text }

// CreatedAt returns the creation timestamp.
func (c *Comment) CreatedAt() time.Time { return c.createdAt }
