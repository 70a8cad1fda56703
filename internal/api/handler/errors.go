package handler

import (
	"net/http"

	"gameledger/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest      = apierr.CodeInvalidRequest
	CodeInvalidRecord       = apierr.CodeInvalidRecord
	CodeDuplicateGame       = apierr.CodeDuplicateGame
	CodeInsufficientPayment = apierr.CodeInsufficientPayment
	CodeNotOwner            = apierr.CodeNotOwner
	CodeNotAdmin            = apierr.CodeNotAdmin
	CodeAlreadyAdmin        = apierr.CodeAlreadyAdmin
	CodeAdminNotFound       = apierr.CodeAdminNotFound
	CodeGameNotFound        = apierr.CodeGameNotFound
	CodePlayerNotFound      = apierr.CodePlayerNotFound
	CodeUnauthorized        = apierr.CodeUnauthorized
	CodeInternalError       = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return apierr.NewUnauthorizedError()
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return apierr.NewInternalError()
}
