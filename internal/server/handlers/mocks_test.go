package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iudanet/shareall/internal/models"
	"github.com/iudanet/shareall/internal/server/storage"
	"github.com/iudanet/shareall/pkg/api"
)

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// mockAccountService позволяет задать поведение каждой операции
type mockAccountService struct {
	registerFunc      func(ctx context.Context, req api.RegisterRequest) (*models.User, error)
	listFunc          func(ctx context.Context, caller *models.User, req storage.PageRequest) (*storage.Page[models.User], error)
	getByUsernameFunc func(ctx context.Context, username string) (*models.User, error)
	updateFunc        func(ctx context.Context, id int64, req *api.UserUpdateRequest) (*models.User, error)
}

func (m *mockAccountService) Register(ctx context.Context, req api.RegisterRequest) (*models.User, error) {
	return m.registerFunc(ctx, req)
}

func (m *mockAccountService) ListUsers(ctx context.Context, caller *models.User, req storage.PageRequest) (*storage.Page[models.User], error) {
	return m.listFunc(ctx, caller, req)
}

func (m *mockAccountService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.getByUsernameFunc(ctx, username)
}

func (m *mockAccountService) UpdateProfile(ctx context.Context, id int64, req *api.UserUpdateRequest) (*models.User, error) {
	return m.updateFunc(ctx, id, req)
}

// mockPostService позволяет задать поведение CreatePost
type mockPostService struct {
	createFunc func(ctx context.Context, author *models.User, req api.PostRequest) (*models.Post, error)
}

func (m *mockPostService) CreatePost(ctx context.Context, author *models.User, req api.PostRequest) (*models.Post, error) {
	return m.createFunc(ctx, author, req)
}

// decodeError читает тело ошибки
func decodeError(t *testing.T, body io.Reader) api.ErrorResponse {
	t.Helper()
	var resp api.ErrorResponse
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp
}
