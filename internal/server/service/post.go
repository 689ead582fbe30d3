package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/iudanet/shareall/internal/models"
	"github.com/iudanet/shareall/internal/server/storage"
	"github.com/iudanet/shareall/internal/validation"
	"github.com/iudanet/shareall/pkg/api"
)

// PostService создает публикации от имени аутентифицированного пользователя
type PostService struct {
	logger *slog.Logger
	posts  storage.PostStorage
	now    func() time.Time
}

// NewPostService создает сервис публикаций
func NewPostService(logger *slog.Logger, posts storage.PostStorage) *PostService {
	return &PostService{
		logger: logger,
		posts:  posts,
		now:    time.Now,
	}
}

// CreatePost проверяет содержимое и сохраняет публикацию
// Время публикации назначается сервером
func (s *PostService) CreatePost(ctx context.Context, author *models.User, req api.PostRequest) (*models.Post, error) {
	if author == nil {
		return nil, ErrUnauthenticated
	}

	if errs := validation.ValidatePost(req); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	post := &models.Post{
		Content:   *req.Content,
		UserID:    author.ID,
		Timestamp: s.now().UTC(),
	}

	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.logger.InfoContext(ctx, "post created",
		slog.Int64("post_id", post.ID),
		slog.Int64("user_id", author.ID))

	return post, nil
}
