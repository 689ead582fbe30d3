package storage

import (
	"context"
)

// AuthStorage defines interface for storing saved credentials on client
// The server is stateless, so the credentials are sent with every
// authenticated request instead of a token.
type AuthStorage interface {
	// SaveAuth stores credentials of the logged in user, replacing previous ones
	SaveAuth(ctx context.Context, auth *AuthData) error

	// GetAuth retrieves stored credentials
	// Returns ErrAuthNotFound if no user is logged in
	GetAuth(ctx context.Context) (*AuthData, error)

	// DeleteAuth removes stored credentials (logout)
	// Returns ErrAuthNotFound if no user is logged in
	DeleteAuth(ctx context.Context) error

	// IsAuthenticated reports whether credentials are stored
	IsAuthenticated(ctx context.Context) (bool, error)
}

// AuthData represents saved login of the current user
type AuthData struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	ServerURL   string `json:"server_url"`
	UserID      int64  `json:"user_id"`
}
