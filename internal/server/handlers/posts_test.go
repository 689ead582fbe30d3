package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/shareall/internal/models"
	"github.com/iudanet/shareall/internal/server/service"
	"github.com/iudanet/shareall/internal/validation"
	"github.com/iudanet/shareall/pkg/api"
)

func TestPostHandler_Create(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	author := &models.User{ID: 5, Username: "user1"}

	posts := &mockPostService{
		createFunc: func(ctx context.Context, a *models.User, req api.PostRequest) (*models.Post, error) {
			if a == nil {
				return nil, service.ErrUnauthenticated
			}
			if req.Content == nil {
				return nil, service.NewValidationError("content", validation.MsgNull)
			}
			return &models.Post{ID: 9, Content: *req.Content, UserID: a.ID, Timestamp: created}, nil
		},
	}
	handler := NewPostHandler(setupTestLogger(), posts)

	t.Run("created", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/1.0/posts", bytes.NewBufferString(`{"content":"hello world post"}`))
		req = req.WithContext(WithUser(req.Context(), author))
		w := httptest.NewRecorder()

		handler.Create(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var view api.PostView
		require.NoError(t, json.NewDecoder(w.Body).Decode(&view))
		assert.Equal(t, int64(9), view.ID)
		assert.Equal(t, int64(5), view.UserID)
		assert.Equal(t, created.UnixMilli(), view.Timestamp)
	})

	t.Run("null content", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/1.0/posts", bytes.NewBufferString(`{}`))
		req = req.WithContext(WithUser(req.Context(), author))
		w := httptest.NewRecorder()

		handler.Create(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeError(t, w.Body)
		assert.Equal(t, validation.MsgNull, resp.ValidationErrors["content"])
	})

	t.Run("anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/1.0/posts", bytes.NewBufferString(`{"content":"hello world post"}`))
		w := httptest.NewRecorder()

		handler.Create(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
