package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/iudanet/shareall/internal/server/storage"
	"github.com/iudanet/shareall/pkg/api"
)

// UserHandler обрабатывает запросы к пользователям
type UserHandler struct {
	logger   *slog.Logger
	accounts AccountService
}

// NewUserHandler создает новый handler пользователей
func NewUserHandler(logger *slog.Logger, accounts AccountService) *UserHandler {
	return &UserHandler{
		logger:   logger,
		accounts: accounts,
	}
}

// List обрабатывает GET /api/1.0/users?page=&size=
// Аутентифицированный вызывающий не попадает в выборку
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	pageReq := ParsePageRequest(r)
	caller, _ := UserFromContext(ctx)

	page, err := h.accounts.ListUsers(ctx, caller, pageReq)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}

	sendJSON(h.logger, w, ToPageView(page), http.StatusOK)
}

// Get обрабатывает GET /api/1.0/users/{username}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.accounts.GetByUsername(r.Context(), r.PathValue("username"))
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}

	sendJSON(h.logger, w, ToUserView(user), http.StatusOK)
}

// Update обрабатывает PUT /api/1.0/users/{id}
// Тело запроса необязательно; его отсутствие дает ошибку валидации displayName
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		WriteError(w, r, http.StatusNotFound, http.StatusText(http.StatusNotFound), nil)
		return
	}

	var req *api.UserUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.WarnContext(ctx, "failed to decode update request", slog.Any("error", err))
		writeDecodeError(w, r, err)
		return
	}

	user, err := h.accounts.UpdateProfile(ctx, id, req)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}

	sendJSON(h.logger, w, ToUserView(user), http.StatusOK)
}

// ParsePageRequest извлекает page и size из query
// Некорректные значения заменяются значениями по умолчанию
func ParsePageRequest(r *http.Request) storage.PageRequest {
	query := r.URL.Query()

	page, err := strconv.Atoi(query.Get("page"))
	if err != nil {
		page = 0
	}

	size, err := strconv.Atoi(query.Get("size"))
	if err != nil {
		size = storage.DefaultPageSize
	}

	return storage.NewPageRequest(page, size)
}
