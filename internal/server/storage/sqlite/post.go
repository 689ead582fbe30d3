package sqlite

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
	query := `INSERT INTO posts (content, timestamp, user_id) VALUES (?, ?, ?)`

	result, err := s.db.ExecContext(ctx, query, post.Content, post.Timestamp, post.UserID)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get post id: %w", err)
	}
	post.ID = id

	return nil
}

// GetPostByID retrieves post by ID
func (s *Storage) GetPostByID(ctx context.Context, id int64) (*models.Post, error) {
	query := `SELECT id, content, timestamp, user_id FROM posts WHERE id = ?`

	post := &models.Post{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&post.ID,
		&post.Content,
		&post.Timestamp,
		&post.UserID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return post, nil
}

// CountPosts returns total number of posts
func (s *Storage) CountPosts(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return count, nil
}
