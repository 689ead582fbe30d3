package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	pkgapi "github.com/iudanet/shareall/pkg/api"
)

func (c *Cli) runPost(ctx context.Context, args []string) error {
	content := strings.Join(args, " ")
	if content == "" {
		var err error
		content, err = c.io.ReadInput("Post: ")
		if err != nil {
			return fmt.Errorf("failed to read post: %w", err)
		}
	}

	auth, err := c.currentAuth(ctx)
	if err != nil {
		return err
	}

	post, err := c.api.CreatePost(ctx, pkgapi.PostRequest{Content: &content}, credentials(auth))
	if err != nil {
		return c.reportError(err)
	}

	c.io.Printf("✓ Post %d published at %s\n", post.ID, time.UnixMilli(post.Timestamp).UTC().Format(time.RFC3339))
	return nil
}
