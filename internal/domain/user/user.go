package user

import (
	"strings"
	"time"

	"renthub/internal/pkg/domain"

	"github.com/google/uuid"
)

// User is a registered account that can list items and book them.
type User struct {
	id        uuid.UUID
	name      string
	email     string
	createdAt time.Time
	updatedAt time.Time
}

// NewUser creates a user with validated fields.
func NewUser(name, email string, now time.Time) (*User, error) {
	if name == "" {
		return nil, domain.NewValidationError("user name is required")
	}
	if !validEmail(email) {
		return nil, domain.NewValidationError("invalid email address")
	}

	return &User{
		id:        uuid.New(),
		name:      name,
		email:     email,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a User from persistence data (no validation).
func Reconstruct(id uuid.UUID, name, email string, createdAt, updatedAt time.Time) *User {
	return &User{
		id:        id,
		name:      name,
		email:     email,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ID returns the user's unique identifier.
func (u *User) ID() uuid.UUID { return u.id }

// Name returns the user's display name.
func (u *User) Name() string { return u.name }

// Email returns the user's email address.
func (u *User) Email() string { return u.email }

// CreatedAt returns the creation timestamp.
func (u *User) CreatedAt() time.Time { return u.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// ApplyUpdate applies a partial update. Nil fields are left unchanged.
func (u *User) ApplyUpdate(name, email *string, now time.Time) error {
	if name != nil {
		if *name == "" {
			return domain.NewValidationError("user name cannot be blank")
		}
		u.name = *name
	}
	if email != nil {
		if !validEmail(*email) {
			return domain.NewValidationError("invalid email address")
		}
		u.email = *email
	}
	u.updatedAt = now
	return nil
}

// validEmail applies a minimal structural check; full RFC validation is the
// gateway's concern.
func validEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t")
}
