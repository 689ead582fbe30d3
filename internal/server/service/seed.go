package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/iudanet/shareall/pkg/api"
)

// Seed регистрирует тестовых пользователей user1..userN с именами display1..displayN
// Уже существующие пользователи пропускаются
func (s *AccountService) Seed(ctx context.Context, count int, password string) error {
	created := 0
	for i := 1; i <= count; i++ {
		username := fmt.Sprintf("user%d", i)
		displayName := fmt.Sprintf("display%d", i)

		_, err := s.Register(ctx, api.RegisterRequest{
			Username:    &username,
			DisplayName: &displayName,
			Password:    &password,
		})
		if err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				if _, taken := verr.Fields["username"]; taken && len(verr.Fields) == 1 {
					continue
				}
			}
			return fmt.Errorf("failed to seed %s: %w", username, err)
		}
		created++
	}

	s.logger.InfoContext(ctx, "seed users created", slog.Int("created", created), slog.Int("requested", count))
	return nil
}
