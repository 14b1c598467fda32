package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"resume-intake/internal/domain"
	apperrors "resume-intake/pkg/errors"
)

type contextKey string

const userContextKey contextKey = "user"

// GetUserFromContext extracts the session user from request context
func GetUserFromContext(r *http.Request) (*domain.SessionUser, bool) {
	user, ok := r.Context().Value(userContextKey).(*domain.SessionUser)
	return user, ok
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response (helper function)
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// toAppError maps domain failures onto the HTTP error taxonomy.
func toAppError(err error) *apperrors.AppError {
	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return apperrors.NewValidationError("Unsupported file type")
	case errors.Is(err, domain.ErrFileTooLarge):
		return apperrors.NewValidationError("File too large")
	case errors.Is(err, domain.ErrResumeNotFound):
		return apperrors.NewNotFoundError("Resume not found")
	case errors.Is(err, domain.ErrUnauthorized):
		return apperrors.NewUnauthorizedError("Unauthorized")
	default:
		return apperrors.NewInternalError("Internal server error", err)
	}
}

func writeAppError(w http.ResponseWriter, logger domain.Logger, err error) {
	appErr := toAppError(err)
	if apperrors.IsType(appErr, apperrors.ErrorTypeInternal) {
		logger.Error("Request failed", err)
	}
	writeError(w, apperrors.GetStatusCode(appErr), appErr.Message)
}
