package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nugen/evgb/internal/codec/mcflux"
	"github.com/nugen/evgb/internal/pipeline"
	"github.com/nugen/evgb/internal/storage"
)

// Error types reported in the JSON error body.
const (
	ErrTypeInvalidRequest = "invalid_request_error"
	ErrTypeNotFound       = "not_found_error"
	ErrTypeUnauthorized   = "authentication_error"
	ErrTypeTimeout        = "timeout_error"
	ErrTypeServer         = "server_error"
)

// APIError is an error with its HTTP rendering.
type APIError struct {
	Status  int    `json:"-"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (e *APIError) Error() string { return e.Type + ": " + e.Message }

type errorBody struct {
	Error *APIError `json:"error"`
}

// toAPIError maps domain errors onto HTTP statuses.
func toAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	status, typ := http.StatusInternalServerError, ErrTypeServer
	switch {
	case errors.Is(err, storage.ErrNotFound):
		status, typ = http.StatusNotFound, ErrTypeNotFound
	case errors.Is(err, storage.ErrInvalidEvent),
		errors.Is(err, pipeline.ErrMissingRecord),
		errors.Is(err, mcflux.ErrUnknownDriverKind),
		errors.Is(err, mcflux.ErrMissingPayload):
		status, typ = http.StatusBadRequest, ErrTypeInvalidRequest
	case errors.Is(err, context.DeadlineExceeded):
		status, typ = http.StatusGatewayTimeout, ErrTypeTimeout
	default:
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status, typ = http.StatusRequestEntityTooLarge, ErrTypeInvalidRequest
			break
		}
		var se *pipeline.StageError
		if errors.As(err, &se) && se.Stage == pipeline.StageDecode {
			status, typ = http.StatusBadRequest, ErrTypeInvalidRequest
		}
	}
	return &APIError{Status: status, Type: typ, Message: err.Error()}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := toAPIError(err)
	AddError(r.Context(), err)
	writeJSON(w, apiErr.Status, errorBody{Error: apiErr})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
