package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for users.
type Repository interface {
	// Save persists a new user.
	Save(ctx context.Context, user *User) error

	// Update persists changes to an existing user.
	Update(ctx context.Context, user *User) error

	// FindByID retrieves a user by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// Exists reports whether a user with the given id exists.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// List retrieves all users, oldest first, with pagination.
	List(ctx context.Context, page, limit int) ([]*User, int64, error)

	// Delete removes a user.
	Delete(ctx context.Context, id uuid.UUID) error
}
