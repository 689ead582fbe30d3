package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/iudanet/shareall/internal/models"
	"github.com/iudanet/shareall/internal/server/auth"
	"github.com/iudanet/shareall/internal/server/handlers"
)

// Authenticator проверяет пару username/password
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
}

// BasicAuth создает middleware для проверки HTTP Basic учетных данных
// Без заголовка Authorization запрос продолжается анонимно.
// Некорректный заголовок или неверные учетные данные дают 401 без WWW-Authenticate.
// Каждая неудачная попытка расходует токен limiter по IP на любом маршруте;
// пока токенов нет, запросы с Authorization получают 429 до проверки пароля.
// limiter может быть nil
func BasicAuth(logger *slog.Logger, authenticator Authenticator, limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if r.Header.Get("Authorization") == "" {
				next.ServeHTTP(w, r)
				return
			}

			ip := getClientIP(r)
			guard := limiter
			if charged(r) {
				guard = nil
			}
			if guard != nil && guard.Exhausted(ip) {
				rateLimited(logger, w, r, ip)
				return
			}

			username, password, ok := r.BasicAuth()
			if !ok {
				logger.WarnContext(ctx, "invalid Authorization header format", slog.String("path", r.URL.Path))
				unauthorized(w, r)
				return
			}

			user, err := authenticator.Authenticate(ctx, username, password)
			if err != nil {
				if errors.Is(err, auth.ErrInvalidCredentials) {
					logger.WarnContext(ctx, "authentication failed", slog.String("username", username))
					if guard != nil {
						guard.Charge(ip)
					}
					unauthorized(w, r)
					return
				}
				logger.ErrorContext(ctx, "authentication error", slog.Any("error", err))
				handlers.WriteError(w, r, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError), nil)
				return
			}

			logger.DebugContext(ctx, "user authenticated",
				slog.Int64("user_id", user.ID),
				slog.String("username", user.Username))

			next.ServeHTTP(w, r.WithContext(handlers.WithUser(ctx, user)))
		})
	}
}

// RequireAuth отклоняет анонимные запросы с 401
func RequireAuth(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := handlers.UserFromContext(r.Context()); !ok {
				logger.DebugContext(r.Context(), "anonymous request rejected", slog.String("path", r.URL.Path))
				unauthorized(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSelf пропускает запрос, только если path параметр param равен id вызывающего
// Нечисловой id дает 404, чужой id дает 403. Тело запроса не читается
func RequireSelf(logger *slog.Logger, param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			user, ok := handlers.UserFromContext(ctx)
			if !ok {
				unauthorized(w, r)
				return
			}

			id, err := strconv.ParseInt(r.PathValue(param), 10, 64)
			if err != nil {
				handlers.WriteError(w, r, http.StatusNotFound, http.StatusText(http.StatusNotFound), nil)
				return
			}

			if id != user.ID {
				logger.WarnContext(ctx, "access to foreign account denied",
					slog.Int64("user_id", user.ID),
					slog.Int64("target_id", id))
				handlers.WriteError(w, r, http.StatusForbidden, http.StatusText(http.StatusForbidden), nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter, r *http.Request) {
	handlers.WriteError(w, r, http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized), nil)
}
