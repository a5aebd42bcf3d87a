package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"evault/internal/core/domain"
	"evault/internal/logging"
	"evault/internal/storage"
)

// APIError is the error payload returned by every endpoint.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, APIError{Code: code, Message: msg})
}

// writeServiceError translates vault errors into responses. Parse and
// verification details never reach the client.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "EV-404", "file not found")
		return
	}

	kind, ok := domain.KindOf(err)
	if !ok {
		logging.L.Error("vault operation failed", zap.String("path", r.URL.Path), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "EV-500", "internal error")
		return
	}

	switch kind {
	case domain.KindConfiguration:
		writeError(w, http.StatusServiceUnavailable, "EV-503", "server encryption key not configured")
	case domain.KindValidation:
		var e *domain.Error
		errors.As(err, &e)
		writeError(w, http.StatusBadRequest, "EV-400", e.Message)
	case domain.KindFormat:
		writeError(w, http.StatusUnprocessableEntity, "EV-422", "cannot read file")
	case domain.KindAuthentication:
		writeError(w, http.StatusUnprocessableEntity, "EV-422", "decryption failed: data may be corrupted or tampered")
	}
	logging.L.Warn("vault operation rejected", zap.String("path", r.URL.Path), zap.Stringer("kind", kind))
}
