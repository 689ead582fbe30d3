package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/shareall/internal/models"
	"github.com/iudanet/shareall/internal/server/service"
	"github.com/iudanet/shareall/internal/server/storage"
	"github.com/iudanet/shareall/internal/validation"
	"github.com/iudanet/shareall/pkg/api"
)

func TestParsePageRequest(t *testing.T) {
	tests := []struct {
		query    string
		expected storage.PageRequest
	}{
		{query: "", expected: storage.PageRequest{Page: 0, Size: 10}},
		{query: "?size=500", expected: storage.PageRequest{Page: 0, Size: 100}},
		{query: "?size=-1", expected: storage.PageRequest{Page: 0, Size: 10}},
		{query: "?page=-1", expected: storage.PageRequest{Page: 0, Size: 10}},
		{query: "?page=2&size=5", expected: storage.PageRequest{Page: 2, Size: 5}},
		{query: "?page=abc&size=xyz", expected: storage.PageRequest{Page: 0, Size: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/1.0/users"+tt.query, nil)
			assert.Equal(t, tt.expected, ParsePageRequest(req))
		})
	}
}

func TestUserHandler_List(t *testing.T) {
	var gotCaller *models.User
	var gotReq storage.PageRequest

	accounts := &mockAccountService{
		listFunc: func(ctx context.Context, caller *models.User, req storage.PageRequest) (*storage.Page[models.User], error) {
			gotCaller = caller
			gotReq = req
			items := []models.User{
				{ID: 2, Username: "user2", DisplayName: "display2", Password: "hash"},
				{ID: 3, Username: "user3", DisplayName: "display3", Image: "img"},
			}
			return storage.NewPage(items, 3, req), nil
		},
	}
	handler := NewUserHandler(setupTestLogger(), accounts)

	caller := &models.User{ID: 1, Username: "user1"}
	req := httptest.NewRequest(http.MethodGet, "/api/1.0/users?page=0&size=2", nil)
	req = req.WithContext(WithUser(req.Context(), caller))
	w := httptest.NewRecorder()

	handler.List(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, caller, gotCaller)
	assert.Equal(t, storage.PageRequest{Page: 0, Size: 2}, gotReq)

	var page api.Page[api.UserView]
	require.NoError(t, json.NewDecoder(w.Body).Decode(&page))
	assert.Len(t, page.Content, 2)
	assert.Equal(t, 2, page.NumberOfElements)
	assert.Equal(t, int64(3), page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
	assert.True(t, page.First)
	assert.False(t, page.Last)
	assert.True(t, page.HasNext)
	assert.False(t, page.HasPrevious)
	assert.Nil(t, page.Content[0].Image)
	require.NotNil(t, page.Content[1].Image)
	assert.Equal(t, "img", *page.Content[1].Image)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestUserHandler_ListAnonymous(t *testing.T) {
	accounts := &mockAccountService{
		listFunc: func(ctx context.Context, caller *models.User, req storage.PageRequest) (*storage.Page[models.User], error) {
			assert.Nil(t, caller)
			return storage.NewPage[models.User](nil, 0, req), nil
		},
	}
	handler := NewUserHandler(setupTestLogger(), accounts)

	w := httptest.NewRecorder()
	handler.List(w, httptest.NewRequest(http.MethodGet, "/api/1.0/users", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"content":[]`)
}

func TestUserHandler_Get(t *testing.T) {
	accounts := &mockAccountService{
		getByUsernameFunc: func(ctx context.Context, username string) (*models.User, error) {
			if username == "user1" {
				return &models.User{ID: 1, Username: "user1", DisplayName: "display1"}, nil
			}
			return nil, &service.NotFoundError{Message: username + " not found"}
		},
	}
	handler := NewUserHandler(setupTestLogger(), accounts)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/1.0/users/{username}", handler.Get)

	t.Run("existing user", func(t *testing.T) {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/1.0/users/user1", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var view api.UserView
		require.NoError(t, json.NewDecoder(w.Body).Decode(&view))
		assert.Equal(t, "user1", view.Username)
	})

	t.Run("unknown user", func(t *testing.T) {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/1.0/users/ghost", nil))

		require.Equal(t, http.StatusNotFound, w.Code)
		resp := decodeError(t, w.Body)
		assert.Equal(t, "ghost not found", resp.Message)
		assert.Equal(t, "/api/1.0/users/ghost", resp.URL)
	})
}

func TestUserHandler_Update(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		body           string
		updateErr      error
		expectedStatus int
		expectNilReq   bool
	}{
		{
			name:           "successful update",
			path:           "/api/1.0/users/1",
			body:           `{"displayName":"new-name"}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "empty body",
			path:           "/api/1.0/users/1",
			body:           "",
			updateErr:      service.NewValidationError("displayName", validation.MsgNull),
			expectedStatus: http.StatusBadRequest,
			expectNilReq:   true,
		},
		{
			name:           "null body",
			path:           "/api/1.0/users/1",
			body:           "null",
			updateErr:      service.NewValidationError("displayName", validation.MsgNull),
			expectedStatus: http.StatusBadRequest,
			expectNilReq:   true,
		},
		{
			name:           "invalid image",
			path:           "/api/1.0/users/1",
			body:           `{"displayName":"new-name","image":"R0lGODlh"}`,
			updateErr:      service.NewValidationError("image", validation.MsgImageType),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed JSON",
			path:           "/api/1.0/users/1",
			body:           `{"displayName":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "non numeric id",
			path:           "/api/1.0/users/abc",
			body:           `{"displayName":"new-name"}`,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			accounts := &mockAccountService{
				updateFunc: func(ctx context.Context, id int64, req *api.UserUpdateRequest) (*models.User, error) {
					called = true
					assert.Equal(t, int64(1), id)
					if tt.expectNilReq {
						assert.Nil(t, req)
					}
					if tt.updateErr != nil {
						return nil, tt.updateErr
					}
					return &models.User{ID: id, Username: "user1", DisplayName: *req.DisplayName}, nil
				},
			}
			handler := NewUserHandler(setupTestLogger(), accounts)

			mux := http.NewServeMux()
			mux.HandleFunc("PUT /api/1.0/users/{id}", handler.Update)

			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodPut, tt.path, bytes.NewBufferString(tt.body)))

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusOK {
				var view api.UserView
				require.NoError(t, json.NewDecoder(w.Body).Decode(&view))
				assert.Equal(t, "new-name", view.DisplayName)
				return
			}

			resp := decodeError(t, w.Body)
			if tt.updateErr != nil {
				assert.True(t, called)
				assert.Equal(t, MsgValidationError, resp.Message)
				assert.NotEmpty(t, resp.ValidationErrors)
			} else {
				assert.False(t, called)
			}
		})
	}
}
