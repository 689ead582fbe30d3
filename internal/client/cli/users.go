package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/iudanet/shareall/internal/client/api"
)

const defaultPageSize = 10

func (c *Cli) runUsers(ctx context.Context, args []string) error {
	page, size := 0, defaultPageSize

	if len(args) > 2 {
		return fmt.Errorf("usage: shareall users [page] [size]")
	}
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return fmt.Errorf("invalid page %q", args[0])
		}
		page = n
	}
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid size %q", args[1])
		}
		size = n
	}

	// Вошедший пользователь не видит себя в списке
	var creds *api.Credentials
	auth, err := c.currentAuth(ctx)
	switch {
	case err == nil:
		cr := credentials(auth)
		creds = &cr
	case !errors.Is(err, errNotAuthenticated):
		c.io.Printf("Warning: %v\n", err)
	}

	result, err := c.api.ListUsers(ctx, page, size, creds)
	if err != nil {
		return c.reportError(err)
	}

	if len(result.Content) == 0 {
		c.io.Println("No users found.")
	} else {
		c.io.Printf("%-6s %-32s %s\n", "ID", "USERNAME", "DISPLAY NAME")
		for _, user := range result.Content {
			c.io.Printf("%-6d %-32s %s\n", user.ID, user.Username, user.DisplayName)
		}
	}

	c.io.Println()
	c.io.Printf("Page %d of %d (%d users total)\n", result.Number+1, max(result.TotalPages, 1), result.TotalElements)
	if result.HasNext {
		c.io.Printf("Next page: shareall users %d %d\n", result.Number+1, result.Size)
	}

	return nil
}

func (c *Cli) runUser(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: shareall user <username>")
	}

	user, err := c.api.GetUser(ctx, args[0])
	if err != nil {
		return c.reportError(err)
	}

	printUser(c, user)
	return nil
}
