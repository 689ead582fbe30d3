package cli

import (
	"context"
	"encoding/base64"
	"flag"
	"fmt"
	"os"

	pkgapi "github.com/iudanet/shareall/pkg/api"
)

// maxImageFileSize ограничивает размер изображения до кодирования в base64
const maxImageFileSize = 5 << 20

func (c *Cli) runUpdate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	fs.SetOutput(c.io)
	name := fs.String("name", "", "New display name (default: current)")
	imagePath := fs.String("image", "", "Path to PNG or JPEG profile image")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	auth, err := c.currentAuth(ctx)
	if err != nil {
		return err
	}

	// displayName обязателен, без флага отправляется текущее значение
	displayName := *name
	if displayName == "" {
		displayName = auth.DisplayName
	}

	req := pkgapi.UserUpdateRequest{DisplayName: &displayName}

	if *imagePath != "" {
		info, err := os.Stat(*imagePath)
		if err != nil {
			return fmt.Errorf("failed to read image: %w", err)
		}
		if info.Size() > maxImageFileSize {
			return fmt.Errorf("image is too large: %d bytes, limit %d", info.Size(), maxImageFileSize)
		}

		data, err := os.ReadFile(*imagePath)
		if err != nil {
			return fmt.Errorf("failed to read image: %w", err)
		}
		encoded := base64.StdEncoding.EncodeToString(data)
		req.Image = &encoded
	}

	user, err := c.api.UpdateUser(ctx, auth.UserID, req, credentials(auth))
	if err != nil {
		return c.reportError(err)
	}

	auth.DisplayName = user.DisplayName
	if err := c.store.SaveAuth(ctx, auth); err != nil {
		return fmt.Errorf("failed to save auth data: %w", err)
	}

	c.io.Println("✓ Profile updated")
	printUser(c, user)

	return nil
}
