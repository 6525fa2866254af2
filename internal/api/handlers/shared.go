// Package handlers implements the HTTP endpoints. Handlers stay thin: decode
// and validate the request, call one service method, translate the result or
// error into the response envelope.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/RX5950XT/portfolio-visualizer/internal/api/response"
	"github.com/RX5950XT/portfolio-visualizer/internal/apperrors"
	"github.com/RX5950XT/portfolio-visualizer/internal/validation"
)

// decodeJSON decodes the request body into dst, responding with 400 and
// returning false on malformed JSON
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid JSON body", err.Error())
		return false
	}
	return true
}

// respondValidationError sends the per-field messages of a validation failure
func respondValidationError(w http.ResponseWriter, err error) {
	var vErr *validation.Error
	if errors.As(err, &vErr) {
		response.RespondError(w, http.StatusBadRequest, "validation failed", vErr.Fields)
		return
	}
	response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
}

// respondServiceError maps service errors onto HTTP statuses. Unrecognized
// errors become a generic 500 so internals never leak to the client.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrHoldingNotFound),
		errors.Is(err, apperrors.ErrPortfolioNotFound),
		errors.Is(err, apperrors.ErrTransactionNotFound),
		errors.Is(err, apperrors.ErrCashBalanceNotFound):
		response.RespondError(w, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, apperrors.ErrInsufficientShares),
		errors.Is(err, apperrors.ErrMissingRequiredField),
		errors.Is(err, apperrors.ErrInvalidUUID),
		errors.Is(err, apperrors.ErrEmptyID):
		response.RespondError(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, apperrors.ErrInvalidPassword),
		errors.Is(err, apperrors.ErrUnauthenticated):
		response.RespondError(w, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, apperrors.ErrForbidden):
		response.RespondError(w, http.StatusForbidden, err.Error(), nil)
	default:
		response.RespondError(w, http.StatusInternalServerError, "internal server error", nil)
	}
}
