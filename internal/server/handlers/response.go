package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/shareall/internal/server/service"
	"github.com/iudanet/shareall/pkg/api"
)

// MsgValidationError сообщение для ответа с ошибками полей
const MsgValidationError = "Validation error"

// sendJSON отправляет JSON ответ
func sendJSON(logger *slog.Logger, w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// WriteError отправляет тело ошибки {timestamp, status, message, url, validationErrors?}
// Используется также middleware, поэтому не требует логгера
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int, message string, fields map[string]string) {
	resp := api.ErrorResponse{
		Timestamp: time.Now().UnixMilli(),
		Status:    statusCode,
		Message:   message,
		URL:       r.URL.Path,
	}
	if len(fields) > 0 {
		resp.ValidationErrors = fields
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(resp)
}

// writeServiceError преобразует ошибку сервиса в HTTP ответ
// Текст внутренних ошибок клиенту не передается
func writeServiceError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *service.ValidationError
	var notFoundErr *service.NotFoundError

	switch {
	case errors.As(err, &validationErr):
		WriteError(w, r, http.StatusBadRequest, MsgValidationError, validationErr.Fields)
	case errors.As(err, &notFoundErr):
		WriteError(w, r, http.StatusNotFound, notFoundErr.Message, nil)
	case errors.Is(err, service.ErrUnauthenticated):
		WriteError(w, r, http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized), nil)
	default:
		logger.ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.Any("error", err))
		WriteError(w, r, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError), nil)
	}
}

// writeDecodeError отвечает на тело, которое не удалось прочитать как JSON
func writeDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		WriteError(w, r, http.StatusRequestEntityTooLarge, http.StatusText(http.StatusRequestEntityTooLarge), nil)
		return
	}
	WriteError(w, r, http.StatusBadRequest, "invalid request body", nil)
}
