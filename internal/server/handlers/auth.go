package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/iudanet/shareall/internal/models"
	"github.com/iudanet/shareall/internal/server/storage"
	"github.com/iudanet/shareall/pkg/api"
)

// MsgUserSaved сообщение об успешной регистрации
const MsgUserSaved = "User saved successfully"

// AccountService определяет операции над аккаунтами, доступные handlers
type AccountService interface {
	Register(ctx context.Context, req api.RegisterRequest) (*models.User, error)
	ListUsers(ctx context.Context, caller *models.User, req storage.PageRequest) (*storage.Page[models.User], error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateProfile(ctx context.Context, id int64, req *api.UserUpdateRequest) (*models.User, error)
}

// AuthHandler обрабатывает регистрацию и вход
type AuthHandler struct {
	logger   *slog.Logger
	accounts AccountService
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, accounts AccountService) *AuthHandler {
	return &AuthHandler{
		logger:   logger,
		accounts: accounts,
	}
}

// Register обрабатывает POST /api/1.0/users
// Регистрация нового пользователя
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Парсим request body
	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode register request", slog.Any("error", err))
		writeDecodeError(w, r, err)
		return
	}

	user, err := h.accounts.Register(ctx, req)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}

	h.logger.InfoContext(ctx, "user registered successfully",
		slog.String("username", user.Username),
		slog.Int64("user_id", user.ID))

	sendJSON(h.logger, w, api.GenericResponse{Message: MsgUserSaved}, http.StatusOK)
}

// Login обрабатывает POST /api/1.0/login
// Учетные данные уже проверены middleware, здесь возвращается представление вызывающего
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := UserFromContext(ctx)
	if !ok {
		WriteError(w, r, http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized), nil)
		return
	}

	h.logger.InfoContext(ctx, "user logged in successfully",
		slog.String("username", user.Username),
		slog.Int64("user_id", user.ID))

	sendJSON(h.logger, w, ToUserView(user), http.StatusOK)
}
