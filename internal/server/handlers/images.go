package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/iudanet/shareall/internal/server/images"
)

// maxImageAge время кэширования изображений профиля, имена никогда не переиспользуются
const maxImageAge = "max-age=31536000"

// ImageHandler отдает сохраненные изображения профиля
type ImageHandler struct {
	logger *slog.Logger
	store  images.Store
}

// NewImageHandler создает новый handler изображений
func NewImageHandler(logger *slog.Logger, store images.Store) *ImageHandler {
	return &ImageHandler{
		logger: logger,
		store:  store,
	}
}

// Profile обрабатывает GET /images/profile/{name}
// Content-Type определяется по содержимому файла
func (h *ImageHandler) Profile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rc, err := h.store.Open(ctx, r.PathValue("name"))
	if err != nil {
		if errors.Is(err, images.ErrImageNotFound) {
			WriteError(w, r, http.StatusNotFound, http.StatusText(http.StatusNotFound), nil)
			return
		}
		h.logger.ErrorContext(ctx, "failed to open image", slog.Any("error", err))
		WriteError(w, r, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError), nil)
		return
	}
	defer func() {
		if err := rc.Close(); err != nil {
			h.logger.WarnContext(ctx, "failed to close image", slog.Any("error", err))
		}
	}()

	data, err := io.ReadAll(rc)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to read image", slog.Any("error", err))
		WriteError(w, r, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError), nil)
		return
	}

	w.Header().Set("Content-Type", images.DetectType(data))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", maxImageAge)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.WarnContext(ctx, "failed to write image", slog.Any("error", err))
	}
}
