package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"

	"github.com/iudanet/shareall/internal/models"
	"github.com/iudanet/shareall/internal/server/images"
	"github.com/iudanet/shareall/internal/server/storage"
	"github.com/iudanet/shareall/internal/validation"
	"github.com/iudanet/shareall/pkg/api"
)

// PasswordHasher produces one-way password hashes
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// AccountService управляет регистрацией и профилями пользователей
type AccountService struct {
	logger *slog.Logger
	users  storage.UserStorage
	hasher PasswordHasher
	images images.Store
	detect validation.TypeDetector
}

// NewAccountService создает сервис аккаунтов
func NewAccountService(logger *slog.Logger, users storage.UserStorage, hasher PasswordHasher, store images.Store) *AccountService {
	return &AccountService{
		logger: logger,
		users:  users,
		hasher: hasher,
		images: store,
		detect: images.DetectType,
	}
}

// Register проверяет и сохраняет нового пользователя
// Пароль хешируется до сохранения
func (s *AccountService) Register(ctx context.Context, req api.RegisterRequest) (*models.User, error) {
	errs := validation.ValidateRegistration(req)

	// Уникальность проверяется только для корректного username
	if _, bad := errs["username"]; !bad {
		_, err := s.users.GetUserByUsername(ctx, *req.Username)
		switch {
		case err == nil:
			if errs == nil {
				errs = validation.FieldErrors{}
			}
			errs["username"] = validation.MsgUsernameInUse
		case !errors.Is(err, storage.ErrUserNotFound):
			return nil, fmt.Errorf("failed to check username: %w", err)
		}
	}

	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	hash, err := s.hasher.Hash(*req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:    *req.Username,
		DisplayName: *req.DisplayName,
		Password:    hash,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		// Проигравший гонку на уникальном ключе получает ту же ошибку, что и при проверке
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			return nil, NewValidationError("username", validation.MsgUsernameInUse)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.String("username", user.Username),
		slog.Int64("user_id", user.ID))

	return user, nil
}

// ListUsers возвращает страницу пользователей
// Аутентифицированный вызывающий исключается из выборки
func (s *AccountService) ListUsers(ctx context.Context, caller *models.User, req storage.PageRequest) (*storage.Page[models.User], error) {
	exclude := ""
	if caller != nil {
		exclude = caller.Username
	}

	page, err := s.users.ListUsers(ctx, exclude, req)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return page, nil
}

// GetByUsername возвращает пользователя по точному совпадению username
func (s *AccountService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, &NotFoundError{Message: username + " not found"}
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// UpdateProfile обновляет отображаемое имя и, если передано, изображение профиля
// При ошибке валидации ничего не сохраняется и изображение не записывается
func (s *AccountService) UpdateProfile(ctx context.Context, id int64, req *api.UserUpdateRequest) (*models.User, error) {
	if req == nil {
		req = &api.UserUpdateRequest{}
	}

	if errs := validation.ValidateUserUpdate(*req, s.detect); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, &NotFoundError{Message: fmt.Sprintf("user %d not found", id)}
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.DisplayName = *req.DisplayName

	previousImage := user.Image
	newImage := ""
	if req.Image != nil {
		data, err := base64.StdEncoding.DecodeString(*req.Image)
		if err != nil {
			return nil, NewValidationError("image", validation.MsgImageType)
		}

		newImage, err = s.images.Save(ctx, data)
		if err != nil {
			return nil, fmt.Errorf("failed to save profile image: %w", err)
		}
		user.Image = newImage
	}

	if err := s.users.UpdateUser(ctx, user); err != nil {
		if newImage != "" {
			s.deleteImage(ctx, newImage)
		}
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, &NotFoundError{Message: fmt.Sprintf("user %d not found", id)}
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	if newImage != "" && previousImage != "" {
		s.deleteImage(ctx, previousImage)
	}

	s.logger.InfoContext(ctx, "profile updated",
		slog.Int64("user_id", user.ID),
		slog.Bool("image_replaced", newImage != ""))

	return user, nil
}

// deleteImage удаляет изображение; ошибка только логируется
func (s *AccountService) deleteImage(ctx context.Context, name string) {
	if err := s.images.Delete(ctx, name); err != nil {
		s.logger.WarnContext(ctx, "failed to delete profile image",
			slog.String("image", name),
			slog.Any("error", err))
	}
}
