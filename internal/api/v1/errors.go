package v1

import (
	"encoding/json"
	"errors"
	"net/http"

	"kpiboard/internal/store"
)

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string, fields map[string]string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message, Fields: fields}})
}

// writeServiceError distinguishes missing rows from everything else.
func writeServiceError(w http.ResponseWriter, err error, notFoundMessage, internalMessage string) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", notFoundMessage, nil)
		return
	}
	writeError(w, http.StatusInternalServerError, "INTERNAL", internalMessage, nil)
}
