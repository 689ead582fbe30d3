package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iudanet/shareall/internal/server/images"
)

// mockImageStore отдает изображения из памяти
type mockImageStore struct {
	files   map[string][]byte
	openErr error
}

func (m *mockImageStore) Save(ctx context.Context, data []byte) (string, error) {
	return "", errors.New("not implemented")
}

func (m *mockImageStore) Delete(ctx context.Context, name string) error {
	return nil
}

func (m *mockImageStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if m.openErr != nil {
		return nil, m.openErr
	}
	data, ok := m.files[name]
	if !ok {
		return nil, images.ErrImageNotFound
	}
	return io.NopCloser(strings.NewReader(string(data))), nil
}

func TestImageHandler_Profile(t *testing.T) {
	png := "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00"
	name := images.NewName()

	tests := []struct {
		name           string
		openErr        error
		path           string
		expectedStatus int
	}{
		{name: "existing image", path: "/images/profile/" + name, expectedStatus: http.StatusOK},
		{name: "missing image", path: "/images/profile/" + images.NewName(), expectedStatus: http.StatusNotFound},
		{name: "store failure", path: "/images/profile/" + name, openErr: errors.New("io error"), expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockImageStore{files: map[string][]byte{name: []byte(png)}, openErr: tt.openErr}
			handler := NewImageHandler(setupTestLogger(), store)

			mux := http.NewServeMux()
			mux.HandleFunc("GET /images/profile/{name}", handler.Profile)

			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
				assert.Equal(t, "max-age=31536000", w.Header().Get("Cache-Control"))
				assert.Equal(t, png, w.Body.String())
			}
		})
	}
}
