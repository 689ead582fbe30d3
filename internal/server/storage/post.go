package storage

import (
	"context"

	"github.com/iudanet/shareall/internal/models"
)

// PostStorage defines interface for post persistence
type PostStorage interface {
	// CreatePost stores a new post and assigns its ID
	CreatePost(ctx context.Context, post *models.Post) error

	// GetPostByID retrieves post by ID
	// Returns ErrPostNotFound if post doesn't exist
	GetPostByID(ctx context.Context, id int64) (*models.Post, error)

	// CountPosts returns total number of posts
	CountPosts(ctx context.Context) (int64, error)
}
