package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/iudanet/shareall/internal/models"
	"github.com/iudanet/shareall/internal/server/images"
	"github.com/iudanet/shareall/internal/server/storage"
)

var (
	pngBytes  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	jpegBytes = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00")
	gifBytes  = []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00")
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockUserStorage хранит пользователей в памяти
type mockUserStorage struct {
	users     map[int64]*models.User
	getErr    error
	createErr error
	updateErr error
	nextID    int64
	mu        sync.Mutex
}

func newMockUserStorage() *mockUserStorage {
	return &mockUserStorage{users: make(map[int64]*models.User)}
}

func (m *mockUserStorage) CreateUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.createErr != nil {
		return m.createErr
	}
	for _, u := range m.users {
		if u.Username == user.Username {
			return storage.ErrUserAlreadyExists
		}
	}
	m.nextID++
	user.ID = m.nextID
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, u := range m.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (m *mockUserStorage) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.getErr != nil {
		return nil, m.getErr
	}
	u, ok := m.users[id]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *mockUserStorage) ListUsers(ctx context.Context, exclude string, req storage.PageRequest) (*storage.Page[models.User], error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	all := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		if exclude != "" && u.Username == exclude {
			continue
		}
		all = append(all, *u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	start := min(req.Offset(), len(all))
	end := min(start+req.Size, len(all))
	return storage.NewPage(all[start:end], int64(len(all)), req), nil
}

func (m *mockUserStorage) UpdateUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.users[user.ID]; !ok {
		return storage.ErrUserNotFound
	}
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

// mockPostStorage хранит публикации в памяти
type mockPostStorage struct {
	posts     []models.Post
	createErr error
}

func (m *mockPostStorage) CreatePost(ctx context.Context, post *models.Post) error {
	if m.createErr != nil {
		return m.createErr
	}
	post.ID = int64(len(m.posts) + 1)
	m.posts = append(m.posts, *post)
	return nil
}

func (m *mockPostStorage) GetPostByID(ctx context.Context, id int64) (*models.Post, error) {
	if id <= 0 || int(id) > len(m.posts) {
		return nil, storage.ErrPostNotFound
	}
	p := m.posts[id-1]
	return &p, nil
}

func (m *mockPostStorage) CountPosts(ctx context.Context) (int64, error) {
	return int64(len(m.posts)), nil
}

// mockImageStore хранит изображения в памяти
type mockImageStore struct {
	files     map[string][]byte
	saveErr   error
	deleteErr error
	deleted   []string
}

func newMockImageStore() *mockImageStore {
	return &mockImageStore{files: make(map[string][]byte)}
}

func (m *mockImageStore) Save(ctx context.Context, data []byte) (string, error) {
	if m.saveErr != nil {
		return "", m.saveErr
	}
	name := images.NewName()
	m.files[name] = data
	return name, nil
}

func (m *mockImageStore) Delete(ctx context.Context, name string) error {
	m.deleted = append(m.deleted, name)
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.files, name)
	return nil
}

func (m *mockImageStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	data, ok := m.files[name]
	if !ok {
		return nil, images.ErrImageNotFound
	}
	return io.NopCloser(strings.NewReader(string(data))), nil
}

// failingHasher всегда возвращает ошибку
type failingHasher struct{}

func (failingHasher) Hash(string) (string, error) {
	return "", errors.New("hash failure")
}
