package storage

import (
	"context"

	"github.com/iudanet/shareall/internal/models"
)

// UserStorage defines interface for user data persistence
type UserStorage interface {
	// CreateUser creates a new user in the storage and assigns its ID
	// Returns ErrUserAlreadyExists if username is taken; uniqueness is
	// enforced by the storage itself, not by a prior lookup
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByUsername retrieves user by exact username
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByID retrieves user by ID
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByID(ctx context.Context, id int64) (*models.User, error)

	// ListUsers returns one page of users ordered by ID
	// Empty excludeUsername means no user is excluded
	ListUsers(ctx context.Context, excludeUsername string, req PageRequest) (*Page[models.User], error)

	// UpdateUser updates display name and image of the user
	// Returns ErrUserNotFound if user doesn't exist
	UpdateUser(ctx context.Context, user *models.User) error
}
