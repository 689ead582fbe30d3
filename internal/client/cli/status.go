package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/shareall/internal/client/storage"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Authentication Status ===")
	c.io.Println()

	auth, err := c.store.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			c.io.Println("Status: Not authenticated")
			c.io.Println()
			c.io.Println("Run 'shareall login' to authenticate.")
			return nil
		}
		return fmt.Errorf("failed to get auth data: %w", err)
	}

	c.io.Println("Status: Authenticated")
	c.io.Printf("Server:       %s\n", auth.ServerURL)
	c.io.Printf("User ID:      %d\n", auth.UserID)
	c.io.Printf("Username:     %s\n", auth.Username)
	c.io.Printf("Display name: %s\n", auth.DisplayName)

	if auth.ServerURL != "" && auth.ServerURL != c.api.BaseURL() {
		c.io.Println()
		c.io.Printf("⚠️  Credentials belong to %s, current server is %s\n", auth.ServerURL, c.api.BaseURL())
	}

	return nil
}
