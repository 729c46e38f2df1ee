package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	ledgercore "financepro/internal/ledger"
)

// ErrorResponse is the standard error format for REST API responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// WriteError writes a JSON error response.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, ErrorResponse{Error: message})
}

// WriteDomainError maps engine errors to HTTP statuses: rejected input is
// 400, missing records 404, uncovered debits 422, referenced accounts 409.
// Anything else is a storage failure.
func WriteDomainError(w http.ResponseWriter, err error) {
	var (
		validation   *ledgercore.ValidationError
		notFound     *ledgercore.NotFoundError
		acctNotFound *ledgercore.AccountNotFoundError
		insufficient *ledgercore.InsufficientFundsError
		inUse        *ledgercore.AccountInUseError
	)
	switch {
	case errors.As(err, &validation):
		WriteError(w, http.StatusBadRequest, validation.Error())
	case errors.As(err, &notFound):
		WriteError(w, http.StatusNotFound, notFound.Error())
	case errors.As(err, &acctNotFound):
		WriteError(w, http.StatusNotFound, acctNotFound.Error())
	case errors.As(err, &insufficient):
		WriteError(w, http.StatusUnprocessableEntity, insufficient.Error())
	case errors.As(err, &inUse):
		WriteError(w, http.StatusConflict, inUse.Error())
	default:
		WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// RequireMethod validates the HTTP method and returns true if it matches.
// If it doesn't match, it writes a 405 response and returns false.
func RequireMethod(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, m := range methods {
		if r.Method == m {
			return true
		}
	}
	w.Header().Set("Allow", strings.Join(methods, ", "))
	WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	return false
}

// DecodeJSON reads and decodes JSON from the request body into v.
// Returns false and writes a 400 error if decoding fails.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if r.Body == nil {
		WriteError(w, http.StatusBadRequest, "Request body is required")
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return false
	}
	return true
}

// PathParam extracts a path parameter from the URL path. For a pattern like
// /api/goals/{id}/contribute, calling PathParam(r, "/api/goals/", "/contribute")
// extracts the {id} part.
func PathParam(r *http.Request, prefix, suffix string) string {
	path := r.URL.Path
	if !strings.HasPrefix(path, prefix) {
		return ""
	}
	rest := path[len(prefix):]
	if suffix != "" {
		idx := strings.Index(rest, suffix)
		if idx < 0 {
			return rest
		}
		return rest[:idx]
	}
	if idx := strings.Index(rest, "/"); idx >= 0 {
		return rest[:idx]
	}
	return rest
}
