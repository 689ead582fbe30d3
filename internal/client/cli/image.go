package cli

import (
	"context"
	"fmt"
	"os"
)

func (c *Cli) runImage(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: shareall image <name> <path>")
	}

	data, err := c.api.DownloadImage(ctx, args[0])
	if err != nil {
		return c.reportError(err)
	}

	if err := os.WriteFile(args[1], data, 0644); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}

	c.io.Printf("✓ Saved %d bytes to %s\n", len(data), args[1])
	return nil
}
