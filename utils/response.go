package utils

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"restaurant-api/apperrors"
)

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// errorResponse is the JSON body for failed requests.
type errorResponse struct {
	Error  string                 `json:"error"`
	Fields []apperrors.FieldError `json:"fields,omitempty"`
}

// WriteError maps err onto its HTTP status and writes the error body.
// Unclassified errors surface as 500 with a generic message; the cause is
// logged, not leaked.
func WriteError(w http.ResponseWriter, err error) {
	status := apperrors.HTTPStatus(err)

	resp := errorResponse{Error: err.Error()}
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		resp.Fields = appErr.Fields
	}
	if status == http.StatusInternalServerError {
		slog.Error("internal error", "error", err)
		resp = errorResponse{Error: "Internal server error."}
	}

	WriteJSON(w, status, resp)
}
