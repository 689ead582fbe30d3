package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/shareall/internal/models"
	"github.com/iudanet/shareall/internal/server/storage"
)

// CreatePost stores a new post
func (s *Storage) CreatePost(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (content, timestamp, user_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	if err := s.db.QueryRowContext(ctx, query, post.Content, post.Timestamp, post.UserID).Scan(&post.ID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

// GetPostByID retrieves post by ID
func (s *Storage) GetPostByID(ctx context.Context, id int64) (*models.Post, error) {
	query := `SELECT id, content, timestamp, user_id FROM posts WHERE id = $1`

	post := &models.Post{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(&post.ID, &post.Content, &post.Timestamp, &post.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrPostNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return post, nil
}

// CountPosts returns total number of posts
func (s *Storage) CountPosts(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}
