package delivery_http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"personal-site-service/internal/custom_errors"
	"personal-site-service/internal/model"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type listResponse struct {
	Items any            `json:"items"`
	Meta  model.PageMeta `json:"meta"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("Failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError translates service sentinels into HTTP statuses. Unknown
// errors collapse into a plain 500 so internals never leak.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	errorType := "internal_error"
	message := "internal error"

	switch {
	case errors.Is(err, custom_errors.ErrPostNotFound),
		errors.Is(err, custom_errors.ErrBookmarkNotFound),
		errors.Is(err, custom_errors.ErrPhotoNotFound),
		errors.Is(err, custom_errors.ErrCategoryNotFound),
		errors.Is(err, custom_errors.ErrTagNotFound):
		status = http.StatusNotFound
		errorType = "not_found"
		message = err.Error()
	case errors.Is(err, custom_errors.ErrOwnerRequired):
		status = http.StatusUnauthorized
		errorType = "unauthorized"
		message = err.Error()
	case errors.Is(err, custom_errors.ErrForbidden):
		status = http.StatusForbidden
		errorType = "forbidden"
		message = err.Error()
	case errors.Is(err, custom_errors.ErrPostAlreadyExists),
		errors.Is(err, custom_errors.ErrBookmarkAlreadyExists),
		errors.Is(err, custom_errors.ErrCategoryAlreadyExists),
		errors.Is(err, custom_errors.ErrTagAlreadyExists):
		status = http.StatusConflict
		errorType = "conflict"
		message = err.Error()
	case errors.Is(err, custom_errors.ErrValidationFailed),
		errors.Is(err, custom_errors.ErrInvalidContentKind),
		errors.Is(err, custom_errors.ErrNoUpdateRows):
		status = http.StatusBadRequest
		errorType = "validation_error"
		message = err.Error()
	}

	writeJSON(w, status, errorResponse{Error: errorType, Message: message})
}

func writeValidationError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation_error", Message: message})
}
