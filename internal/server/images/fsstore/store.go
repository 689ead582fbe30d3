// Package fsstore implements images.Store on the local filesystem.
package fsstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/iudanet/shareall/internal/server/images"
)

// maxNameAttempts ограничивает число попыток при коллизии имени
const maxNameAttempts = 5

var _ images.Store = (*Store)(nil)

// Store хранит изображения в каталоге {uploadPath}/{profileFolder}
type Store struct {
	logger *slog.Logger
	dir    string
}

// New создает хранилище и необходимые каталоги
// Каталог вложений создается заранее, как и каталог профилей
func New(logger *slog.Logger, uploadPath, profileFolder, attachmentsFolder string) (*Store, error) {
	profileDir := filepath.Join(uploadPath, profileFolder)

	for _, dir := range []string{uploadPath, profileDir, filepath.Join(uploadPath, attachmentsFolder)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return &Store{logger: logger, dir: profileDir}, nil
}

// Dir возвращает каталог изображений профиля
func (s *Store) Dir() string {
	return s.dir
}

// Save записывает изображение под новым случайным именем
func (s *Store) Save(ctx context.Context, data []byte) (string, error) {
	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		name := images.NewName()

		// O_EXCL гарантирует, что существующий файл не будет перезаписан
		f, err := os.OpenFile(s.path(name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil {
			if errors.Is(err, fs.ErrExist) {
				s.logger.WarnContext(ctx, "image name collision, retrying", slog.String("name", name))
				continue
			}
			return "", fmt.Errorf("failed to create image file: %w", err)
		}

		if _, err := f.Write(data); err != nil {
			_ = f.Close()
			_ = os.Remove(s.path(name))
			return "", fmt.Errorf("failed to write image: %w", err)
		}

		if err := f.Close(); err != nil {
			_ = os.Remove(s.path(name))
			return "", fmt.Errorf("failed to close image file: %w", err)
		}

		s.logger.DebugContext(ctx, "image saved", slog.String("name", name), slog.Int("bytes", len(data)))
		return name, nil
	}

	return "", fmt.Errorf("failed to allocate image name after %d attempts", maxNameAttempts)
}

// Delete удаляет изображение; отсутствие файла не считается ошибкой
func (s *Store) Delete(ctx context.Context, name string) error {
	if !images.ValidName(name) {
		return images.ErrInvalidName
	}

	if err := os.Remove(s.path(name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete image: %w", err)
	}

	s.logger.DebugContext(ctx, "image deleted", slog.String("name", name))
	return nil
}

// Open открывает сохраненное изображение для чтения
func (s *Store) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if !images.ValidName(name) {
		return nil, images.ErrImageNotFound
	}

	f, err := os.Open(s.path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, images.ErrImageNotFound
		}
		return nil, fmt.Errorf("failed to open image: %w", err)
	}

	return f, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}
