package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/shareall/internal/client/storage"
)

func (c *Cli) runLogout(ctx context.Context) error {
	if err := c.store.DeleteAuth(ctx); err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			c.io.Println("Not logged in.")
			return nil
		}
		return fmt.Errorf("failed to delete auth data: %w", err)
	}

	c.io.Println("✓ Logged out. Saved credentials removed.")
	return nil
}
