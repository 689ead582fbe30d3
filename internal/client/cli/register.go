package cli

import (
	"context"
	"fmt"

	pkgapi "github.com/iudanet/shareall/pkg/api"
)

func (c *Cli) runRegister(ctx context.Context) error {
	c.io.Println("=== Registration ===")
	c.io.Println()

	username, err := c.io.ReadInput("Username: ")
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}

	displayName, err := c.io.ReadInput("Display name: ")
	if err != nil {
		return fmt.Errorf("failed to read display name: %w", err)
	}

	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	// Подтверждение пароля
	confirmPassword, err := c.io.ReadPassword("Confirm password: ")
	if err != nil {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}

	if password != confirmPassword {
		return fmt.Errorf("passwords do not match")
	}

	c.io.Println()
	c.io.Println("Registering user...")

	// Проверка полей выполняется сервером, пустые значения отправляются как есть
	resp, err := c.api.Register(ctx, pkgapi.RegisterRequest{
		Username:    &username,
		DisplayName: &displayName,
		Password:    &password,
	})
	if err != nil {
		return c.reportError(err)
	}

	c.io.Println()
	c.io.Printf("✓ %s\n", resp.Message)
	c.io.Println("Please run 'shareall login' to start using the service.")

	return nil
}
