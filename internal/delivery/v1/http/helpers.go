package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"

	"github.com/DRSN-tech/fitting-backend/pkg/e"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	case errors.Is(err, e.ErrMissingFields):
		return http.StatusBadRequest, e.ErrMissingFields.Error()
	case errors.Is(err, e.ErrEmptyQueryVector):
		return http.StatusBadRequest, e.ErrEmptyQueryVector.Error()
	case errors.Is(err, e.ErrInvalidVectorDim):
		return http.StatusBadRequest, e.ErrInvalidVectorDim.Error()
	case errors.Is(err, e.ErrVectorUnparseable):
		return http.StatusBadRequest, e.ErrVectorUnparseable.Error()
	case errors.Is(err, e.ErrInvalidPosition):
		return http.StatusBadRequest, e.ErrInvalidPosition.Error()
	case errors.Is(err, e.ErrNoPositions):
		return http.StatusBadRequest, e.ErrNoPositions.Error()
	case errors.Is(err, e.ErrTooManyWarmUpIDs):
		return http.StatusBadRequest, e.ErrTooManyWarmUpIDs.Error()
	case errors.Is(err, e.ErrInvalidPrice):
		return http.StatusBadRequest, e.ErrInvalidPrice.Error()
	case errors.Is(err, e.ErrCacheDisabled):
		return http.StatusConflict, e.ErrCacheDisabled.Error()
	case errors.Is(err, pgx.ErrNoRows):
		return http.StatusNotFound, "product not found"
	case errors.Is(err, e.ErrStoreNotConfigured):
		return http.StatusServiceUnavailable, e.ErrStoreNotConfigured.Error()
	case errors.Is(err, e.ErrCatalogUnavailable):
		return http.StatusServiceUnavailable, e.ErrCatalogUnavailable.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
