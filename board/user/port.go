package user

import (
	"context"

	"github.com/jobpulse/jobpulse/pkg/kernel"
)

type Repository interface {
	// Create inserts a new user. A duplicate email surfaces as ErrEmailTaken.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id kernel.UserID) (*User, error)

	// GetByEmail retrieves a user by email, hash included, for login
	GetByEmail(ctx context.Context, email kernel.Email) (*User, error)

	// UpdateProfile applies a partial profile update
	UpdateProfile(ctx context.Context, id kernel.UserID, update UpdateProfileRequest) (*User, error)
}
