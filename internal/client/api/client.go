// Package api implements HTTP client for the shareall server.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/iudanet/shareall/pkg/api"
)

const apiPrefix = "/api/1.0"

// ErrUnauthorized возвращается при 401 от сервера
var ErrUnauthorized = errors.New("unauthorized")

// Credentials учетные данные для Basic аутентификации
type Credentials struct {
	Username string
	Password string
}

// APIError представляет ответ сервера со статусом 4xx/5xx
type APIError struct {
	ValidationErrors map[string]string
	Message          string
	Status           int
}

// Error форматирует ошибку вместе с ошибками полей в стабильном порядке
func (e *APIError) Error() string {
	if len(e.ValidationErrors) == 0 {
		return fmt.Sprintf("server error (%d): %s", e.Status, e.Message)
	}

	fields := make([]string, 0, len(e.ValidationErrors))
	for field := range e.ValidationErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e.ValidationErrors[field])
	}
	return fmt.Sprintf("server error (%d): %s (%s)", e.Status, e.Message, strings.Join(parts, "; "))
}

// Is позволяет сравнивать 401 с ErrUnauthorized через errors.Is
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient создает новый API клиент
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// BaseURL возвращает адрес сервера
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Register регистрирует нового пользователя
func (c *Client) Register(ctx context.Context, req api.RegisterRequest) (*api.GenericResponse, error) {
	var resp api.GenericResponse
	err := c.doRequest(ctx, http.MethodPost, apiPrefix+"/users", nil, req, &resp)
	if err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return &resp, nil
}

// Login проверяет учетные данные и возвращает профиль пользователя
func (c *Client) Login(ctx context.Context, creds Credentials) (*api.UserView, error) {
	var resp api.UserView
	err := c.doRequest(ctx, http.MethodPost, apiPrefix+"/login", &creds, nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// ListUsers получает страницу пользователей
// С учетными данными сервер исключает текущего пользователя из выборки
func (c *Client) ListUsers(ctx context.Context, page, size int, creds *Credentials) (*api.Page[api.UserView], error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))

	var resp api.Page[api.UserView]
	err := c.doRequest(ctx, http.MethodGet, apiPrefix+"/users?"+query.Encode(), creds, nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("list users request failed: %w", err)
	}
	return &resp, nil
}

// GetUser получает пользователя по username
func (c *Client) GetUser(ctx context.Context, username string) (*api.UserView, error) {
	var resp api.UserView
	err := c.doRequest(ctx, http.MethodGet, apiPrefix+"/users/"+url.PathEscape(username), nil, nil, &resp)
	if err != nil {
		return nil, fmt.Errorf("get user request failed: %w", err)
	}
	return &resp, nil
}

// UpdateUser обновляет профиль пользователя с идентификатором id
func (c *Client) UpdateUser(ctx context.Context, id int64, req api.UserUpdateRequest, creds Credentials) (*api.UserView, error) {
	var resp api.UserView
	path := fmt.Sprintf("%s/users/%d", apiPrefix, id)
	err := c.doRequest(ctx, http.MethodPut, path, &creds, req, &resp)
	if err != nil {
		return nil, fmt.Errorf("update user request failed: %w", err)
	}
	return &resp, nil
}

// CreatePost публикует текст от имени пользователя
func (c *Client) CreatePost(ctx context.Context, req api.PostRequest, creds Credentials) (*api.PostView, error) {
	var resp api.PostView
	err := c.doRequest(ctx, http.MethodPost, apiPrefix+"/posts", &creds, req, &resp)
	if err != nil {
		return nil, fmt.Errorf("create post request failed: %w", err)
	}
	return &resp, nil
}

// DownloadImage загружает изображение профиля по имени
func (c *Client) DownloadImage(ctx context.Context, name string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/images/profile/"+url.PathEscape(name), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp.StatusCode, data)
	}

	return data, nil
}

// doRequest выполняет HTTP запрос
// creds == nil означает анонимный запрос
func (c *Client) doRequest(ctx context.Context, method, path string, creds *Credentials, body, result interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if creds != nil {
		req.SetBasicAuth(creds.Username, creds.Password)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, respBody)
	}

	// Декодируем успешный ответ
	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// decodeError разбирает ErrorResponse; тело не в JSON попадает в Message как есть
func decodeError(status int, body []byte) error {
	var errResp api.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		return &APIError{
			Status:           status,
			Message:          errResp.Message,
			ValidationErrors: errResp.ValidationErrors,
		}
	}

	message := strings.TrimSpace(string(body))
	if message == "" {
		message = http.StatusText(status)
	}
	return &APIError{Status: status, Message: message}
}
