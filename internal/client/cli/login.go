package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/shareall/internal/client/api"
	"github.com/iudanet/shareall/internal/client/storage"
)

func (c *Cli) runLogin(ctx context.Context) error {
	c.io.Println("=== Login ===")
	c.io.Println()

	username, err := c.io.ReadInput("Username: ")
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}

	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	c.io.Println()
	c.io.Println("Authenticating...")

	creds := api.Credentials{Username: username, Password: password}
	user, err := c.api.Login(ctx, creds)
	if err != nil {
		return c.reportError(err)
	}

	// Сервер не выдает токенов, поэтому сохраняются сами учетные данные
	authData := &storage.AuthData{
		Username:    user.Username,
		Password:    password,
		DisplayName: user.DisplayName,
		ServerURL:   c.api.BaseURL(),
		UserID:      user.ID,
	}

	if err := c.store.SaveAuth(ctx, authData); err != nil {
		return fmt.Errorf("failed to save auth data: %w", err)
	}

	c.io.Println()
	c.io.Println("✓ Login successful!")
	printUser(c, user)

	return nil
}
