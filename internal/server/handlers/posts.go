package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/iudanet/shareall/internal/models"
	"github.com/iudanet/shareall/pkg/api"
)

// PostService определяет операции над публикациями
type PostService interface {
	CreatePost(ctx context.Context, author *models.User, req api.PostRequest) (*models.Post, error)
}

// PostHandler обрабатывает запросы публикаций
type PostHandler struct {
	logger *slog.Logger
	posts  PostService
}

// NewPostHandler создает новый handler публикаций
func NewPostHandler(logger *slog.Logger, posts PostService) *PostHandler {
	return &PostHandler{
		logger: logger,
		posts:  posts,
	}
}

// Create обрабатывает POST /api/1.0/posts
// Автор и время публикации назначаются сервером
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	author, _ := UserFromContext(ctx)

	var req api.PostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode post request", slog.Any("error", err))
		WriteError(w, r, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	post, err := h.posts.CreatePost(ctx, author, req)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}

	sendJSON(h.logger, w, ToPostView(post), http.StatusOK)
}
