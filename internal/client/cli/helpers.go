package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/iudanet/shareall/internal/client/api"
	"github.com/iudanet/shareall/internal/client/storage"
	pkgapi "github.com/iudanet/shareall/pkg/api"
)

// errNotAuthenticated возвращается командам, которым нужен вход
var errNotAuthenticated = errors.New("not authenticated. Please run 'shareall login' first")

// currentAuth возвращает сохраненные учетные данные для текущего сервера
func (c *Cli) currentAuth(ctx context.Context) (*storage.AuthData, error) {
	auth, err := c.store.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return nil, errNotAuthenticated
		}
		return nil, fmt.Errorf("failed to get auth data: %w", err)
	}

	// Учетные данные одного сервера не отправляются на другой
	if auth.ServerURL != "" && auth.ServerURL != c.api.BaseURL() {
		return nil, fmt.Errorf("logged in to %s, not %s. Please run 'shareall login' again", auth.ServerURL, c.api.BaseURL())
	}

	return auth, nil
}

func credentials(auth *storage.AuthData) api.Credentials {
	return api.Credentials{Username: auth.Username, Password: auth.Password}
}

// reportError печатает ошибки полей и подсказку для 401
func (c *Cli) reportError(err error) error {
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) {
		return err
	}

	if len(apiErr.ValidationErrors) > 0 {
		fields := make([]string, 0, len(apiErr.ValidationErrors))
		for field := range apiErr.ValidationErrors {
			fields = append(fields, field)
		}
		sort.Strings(fields)

		c.io.Println("Validation failed:")
		for _, field := range fields {
			c.io.Printf("  %s: %s\n", field, apiErr.ValidationErrors[field])
		}
		return errors.New(apiErr.Message)
	}

	if errors.Is(err, api.ErrUnauthorized) {
		return errors.New("invalid credentials. Please run 'shareall login' again")
	}

	return err
}

func printUser(c *Cli, user *pkgapi.UserView) {
	c.io.Printf("ID:           %d\n", user.ID)
	c.io.Printf("Username:     %s\n", user.Username)
	c.io.Printf("Display name: %s\n", user.DisplayName)
	if user.Image != nil {
		c.io.Printf("Image:        %s\n", *user.Image)
	} else {
		c.io.Println("Image:        -")
	}
}
