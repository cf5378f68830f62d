// Package api provides HTTP handlers for the Forge API.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/projectforgeai/forge-server/internal/flow"
	"github.com/projectforgeai/forge-server/internal/store"
)

// Handler provides common handler utilities.
type Handler struct {
	repo store.Repository
}

// NewHandler creates a new Handler with common dependencies.
func NewHandler(repo store.Repository) *Handler {
	return &Handler{repo: repo}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// GenerationError maps generation-pipeline failures onto HTTP status codes:
// invalid input is the caller's fault, a failed model call is an upstream
// fault, and everything else is ours.
func GenerationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, flow.ErrInvalidInput):
		Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, flow.ErrGenerationFailed):
		Error(w, http.StatusBadGateway, "generation failed, please try again")
	default:
		Error(w, http.StatusInternalServerError, "internal error")
	}
}

// decodeBody decodes a JSON request body into v.
func decodeBody(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
