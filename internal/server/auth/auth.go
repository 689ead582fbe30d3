// Package auth resolves request credentials to a stored account.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/iudanet/shareall/internal/models"
	"github.com/iudanet/shareall/internal/server/storage"
)

// ErrInvalidCredentials is returned for an unknown username or a wrong password
var ErrInvalidCredentials = errors.New("invalid credentials")

// PasswordVerifier checks a password against a stored hash
type PasswordVerifier interface {
	Compare(hash, password string) bool
	// CompareDummy spends the same time as Compare without a real hash
	CompareDummy(password string)
}

// Authenticator verifies username/password pairs against UserStorage
type Authenticator struct {
	logger   *slog.Logger
	users    storage.UserStorage
	verifier PasswordVerifier
}

// NewAuthenticator creates a new Authenticator
func NewAuthenticator(logger *slog.Logger, users storage.UserStorage, verifier PasswordVerifier) *Authenticator {
	return &Authenticator{
		logger:   logger,
		users:    users,
		verifier: verifier,
	}
}

// Authenticate returns the account for valid credentials
// Unknown user and wrong password both yield ErrInvalidCredentials
// after one hash comparison each
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := a.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			a.verifier.CompareDummy(password)
			a.logger.DebugContext(ctx, "authentication failed: unknown user", slog.String("username", username))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !a.verifier.Compare(user.Password, password) {
		a.logger.DebugContext(ctx, "authentication failed: wrong password", slog.String("username", username))
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
