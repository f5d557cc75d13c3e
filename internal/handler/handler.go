package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Syxh0wN/api-food-delivery-sub001/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// writeDomainError maps a service-layer error to an HTTP response.
// DomainError codes get stable statuses; anything else is a 500 unless it
// looks like a request validation failure.
func writeDomainError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		writeError(w, domainStatus(domainErr), domainErr.Code, domainErr.Message, logger)
		return
	}

	if looksLikeValidation(err) {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidRequest, err.Error(), logger)
		return
	}

	writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", logger)
}

// looksLikeValidation reports whether a plain error reads like a request
// validation failure rather than an infrastructure fault.
func looksLikeValidation(err error) bool {
	msg := err.Error()
	for _, marker := range []string{"required", "must", "cannot", "invalid", "is nil"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// domainStatus maps a domain error code to an HTTP status.
func domainStatus(err *model.DomainError) int {
	switch err.Code {
	case model.ErrCodeNotFound:
		return http.StatusNotFound
	case model.ErrCodeDuplicateCode, model.ErrCodeUsageExceeded:
		return http.StatusConflict
	case model.ErrCodeInvalidDateRange, model.ErrCodeStoreNotFound:
		return http.StatusBadRequest
	default:
		return http.StatusUnprocessableEntity
	}
}
