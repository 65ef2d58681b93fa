package httperrors

import (
	"errors"
	"net/http"

	"github.com/sir_venger/upload_lite/internal/models"
)

// Status сопоставляет ошибку загрузки HTTP-статусу.
func Status(err error) int {
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, models.ErrNotMultipart), errors.Is(err, models.ErrReadBody):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Write отдаёт клиенту текст ошибки с подходящим статусом.
func Write(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), Status(err))
}
