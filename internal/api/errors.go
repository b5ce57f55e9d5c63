package api

import (
	"errors"
	"net/http"

	"matchbook/internal/matching"
)

// mapError maps service errors to HTTP status codes and wire error bodies.
// Validation failures and symbol mismatches are client errors; everything
// else is internal.
func mapError(err error) (int, ErrorResponse) {
	var validationErr *matching.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, ErrorResponse{Error: validationErr.Error()}
	}

	var mismatchErr *matching.SymbolMismatchError
	if errors.As(err, &mismatchErr) {
		return http.StatusBadRequest, ErrorResponse{Error: mismatchErr.Error()}
	}

	return http.StatusInternalServerError, ErrorResponse{Error: "internal error"}
}
