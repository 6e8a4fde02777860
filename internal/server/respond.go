package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"lunchbot/internal/service"
)

// writeJSON sends a JSON payload with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError maps a service error to the API's status contract:
// 403 bad password, 404 not found, 409 already exists, 500 anything
// else. Validation problems never reach here; handlers reject them
// with 400 before calling the services.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
	case errors.Is(err, service.ErrUnauthorized):
		writeJSON(w, http.StatusForbidden, errorBody("wrong password"))
	case errors.Is(err, service.ErrAlreadyExists):
		writeJSON(w, http.StatusConflict, errorBody("group already exists"))
	default:
		slog.Error("Request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

// badRequest rejects a request with 400 and a message naming what is
// missing or malformed.
func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorBody(msg))
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}
