package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"gameledger/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeInvalidRecord       = "INVALID_RECORD"
	CodeDuplicateGame       = "DUPLICATE_GAME"
	CodeInsufficientPayment = "INSUFFICIENT_PAYMENT"
	CodeNotOwner            = "NOT_OWNER"
	CodeNotAdmin            = "NOT_ADMIN"
	CodeAlreadyAdmin        = "ALREADY_ADMIN"
	CodeAdminNotFound       = "ADMIN_NOT_FOUND"
	CodeGameNotFound        = "GAME_NOT_FOUND"
	CodePlayerNotFound      = "PLAYER_NOT_FOUND"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrEmptyGameID),
		errors.Is(err, model.ErrInvalidAttempts),
		errors.Is(err, model.ErrGuessCountMismatch),
		errors.Is(err, model.ErrTargetOutOfRange),
		errors.Is(err, model.ErrGuessOutOfRange),
		errors.Is(err, model.ErrInvalidDifficulty):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRecord, err.Error()}}
	case errors.Is(err, model.ErrDuplicateGame):
		return &httpError{http.StatusConflict, APIError{CodeDuplicateGame, "Game record already exists"}}
	case errors.Is(err, model.ErrInsufficientPayment):
		return &httpError{http.StatusPaymentRequired, APIError{CodeInsufficientPayment, "Attached payment does not cover the storage charge"}}
	case errors.Is(err, model.ErrNotOwner):
		return &httpError{http.StatusForbidden, APIError{CodeNotOwner, "Only the owner can perform this action"}}
	case errors.Is(err, model.ErrNotAdmin):
		return &httpError{http.StatusForbidden, APIError{CodeNotAdmin, "Only an admin or the owner can perform this action"}}
	case errors.Is(err, model.ErrAlreadyAdmin):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyAdmin, "Account is already an admin"}}
	case errors.Is(err, model.ErrAdminNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeAdminNotFound, "Account is not an admin"}}
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game record not found"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Caller identity required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
