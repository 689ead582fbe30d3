package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/iudanet/shareall/internal/client/api"
	"github.com/iudanet/shareall/internal/client/iocli"
	"github.com/iudanet/shareall/internal/client/storage"
	pkgapi "github.com/iudanet/shareall/pkg/api"
)

const testServerURL = "http://localhost:8080"

// newTestIO возвращает IOMock, который отдает ввод по очереди и пишет вывод в буфер
func newTestIO(t *testing.T, inputs []string, passwords []string) (*iocli.IOMock, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}

	next := func(queue *[]string) (string, error) {
		if len(*queue) == 0 {
			return "", io.EOF
		}
		value := (*queue)[0]
		*queue = (*queue)[1:]
		return value, nil
	}

	mock := &iocli.IOMock{
		PrintlnFunc: func(a ...any) { fmt.Fprintln(out, a...) },
		PrintfFunc:  func(format string, a ...any) { fmt.Fprintf(out, format, a...) },
		WriteFunc:   func(p []byte) (int, error) { return out.Write(p) },
		ReadInputFunc: func(prompt string) (string, error) {
			return next(&inputs)
		},
		ReadPasswordFunc: func(prompt string) (string, error) {
			return next(&passwords)
		},
	}
	return mock, out
}

// mockAPI реализует API через функции-заглушки
type mockAPI struct {
	RegisterFunc      func(ctx context.Context, req pkgapi.RegisterRequest) (*pkgapi.GenericResponse, error)
	LoginFunc         func(ctx context.Context, creds api.Credentials) (*pkgapi.UserView, error)
	ListUsersFunc     func(ctx context.Context, page, size int, creds *api.Credentials) (*pkgapi.Page[pkgapi.UserView], error)
	GetUserFunc       func(ctx context.Context, username string) (*pkgapi.UserView, error)
	UpdateUserFunc    func(ctx context.Context, id int64, req pkgapi.UserUpdateRequest, creds api.Credentials) (*pkgapi.UserView, error)
	CreatePostFunc    func(ctx context.Context, req pkgapi.PostRequest, creds api.Credentials) (*pkgapi.PostView, error)
	DownloadImageFunc func(ctx context.Context, name string) ([]byte, error)
	baseURL           string
}

func (m *mockAPI) BaseURL() string {
	if m.baseURL == "" {
		return testServerURL
	}
	return m.baseURL
}

func (m *mockAPI) Register(ctx context.Context, req pkgapi.RegisterRequest) (*pkgapi.GenericResponse, error) {
	return m.RegisterFunc(ctx, req)
}

func (m *mockAPI) Login(ctx context.Context, creds api.Credentials) (*pkgapi.UserView, error) {
	return m.LoginFunc(ctx, creds)
}

func (m *mockAPI) ListUsers(ctx context.Context, page, size int, creds *api.Credentials) (*pkgapi.Page[pkgapi.UserView], error) {
	return m.ListUsersFunc(ctx, page, size, creds)
}

func (m *mockAPI) GetUser(ctx context.Context, username string) (*pkgapi.UserView, error) {
	return m.GetUserFunc(ctx, username)
}

func (m *mockAPI) UpdateUser(ctx context.Context, id int64, req pkgapi.UserUpdateRequest, creds api.Credentials) (*pkgapi.UserView, error) {
	return m.UpdateUserFunc(ctx, id, req, creds)
}

func (m *mockAPI) CreatePost(ctx context.Context, req pkgapi.PostRequest, creds api.Credentials) (*pkgapi.PostView, error) {
	return m.CreatePostFunc(ctx, req, creds)
}

func (m *mockAPI) DownloadImage(ctx context.Context, name string) ([]byte, error) {
	return m.DownloadImageFunc(ctx, name)
}

// memAuthStorage хранит учетные данные в памяти
type memAuthStorage struct {
	auth *storage.AuthData
	err  error
	mu   sync.Mutex
}

func (m *memAuthStorage) SaveAuth(ctx context.Context, auth *storage.AuthData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	copied := *auth
	m.auth = &copied
	return nil
}

func (m *memAuthStorage) GetAuth(ctx context.Context) (*storage.AuthData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.auth == nil {
		return nil, storage.ErrAuthNotFound
	}
	copied := *m.auth
	return &copied, nil
}

func (m *memAuthStorage) DeleteAuth(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if m.auth == nil {
		return storage.ErrAuthNotFound
	}
	m.auth = nil
	return nil
}

func (m *memAuthStorage) IsAuthenticated(ctx context.Context) (bool, error) {
	auth, err := m.GetAuth(ctx)
	if err != nil {
		return false, nil
	}
	return auth != nil, nil
}

func loggedIn() *memAuthStorage {
	return &memAuthStorage{auth: &storage.AuthData{
		Username:    "user1",
		Password:    "P4ssword",
		DisplayName: "display1",
		ServerURL:   testServerURL,
		UserID:      1,
	}}
}

func strPtr(s string) *string {
	return &s
}
