package handlers

import (
	"context"

	"github.com/iudanet/shareall/internal/models"
)

// contextKey тип для ключей контекста
type contextKey string

// UserKey ключ для хранения аутентифицированного пользователя в контексте
const UserKey contextKey = "user"

// WithUser возвращает контекст с аутентифицированным пользователем
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, UserKey, user)
}

// UserFromContext извлекает пользователя из контекста запроса
// Для анонимного запроса возвращает nil, false
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(UserKey).(*models.User)
	return user, ok && user != nil
}
