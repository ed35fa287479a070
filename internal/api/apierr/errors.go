package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/squadup/squadup/internal/model"
	"github.com/squadup/squadup/internal/services/auth"
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
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeProfileNotFound    = "PROFILE_NOT_FOUND"
	CodeGameNotFound       = "GAME_NOT_FOUND"
	CodeGameLinkNotFound   = "GAME_LINK_NOT_FOUND"
	CodePostNotFound       = "POST_NOT_FOUND"
	CodeMatchNotFound      = "MATCH_NOT_FOUND"
	CodeNotPostAuthor      = "NOT_POST_AUTHOR"
	CodeNotMatchTarget     = "NOT_MATCH_TARGET"
	CodeNotMatchParty      = "NOT_MATCH_PARTY"
	CodeSelfMatch          = "SELF_MATCH"
	CodeInvalidDecision    = "INVALID_DECISION"
	CodeUsernameExists     = "USERNAME_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInternalError      = "INTERNAL_ERROR"
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

// toHTTPError converts an error to an httpError.
//
// Status mapping follows the domain taxonomy: missing-identity errors are
// 401, authorization errors are 403, missing records are 404, and bad
// input is 400. Duplicate creations never reach here: creating something
// that already exists returns the existing record, not an error.
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	// Identity
	case errors.Is(err, model.ErrNotAuthenticated):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}

	// Missing records
	case errors.Is(err, model.ErrUserNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeUserNotFound, "User not found"}}
	case errors.Is(err, model.ErrProfileNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeProfileNotFound, "Profile not found"}}
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrUserGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameLinkNotFound, "Game link not found"}}
	case errors.Is(err, model.ErrPostNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePostNotFound, "Post not found"}}
	case errors.Is(err, model.ErrMatchNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeMatchNotFound, "Match not found"}}

	// Authorization
	case errors.Is(err, model.ErrNotPostAuthor):
		return &httpError{http.StatusForbidden, APIError{CodeNotPostAuthor, "Only the post author can do this"}}
	case errors.Is(err, model.ErrNotMatchTarget):
		return &httpError{http.StatusForbidden, APIError{CodeNotMatchTarget, "Only the invited user can respond"}}
	case errors.Is(err, model.ErrNotMatchParty):
		return &httpError{http.StatusForbidden, APIError{CodeNotMatchParty, "Not a party to this match"}}
	case errors.Is(err, model.ErrNotProfileOwner):
		return &httpError{http.StatusForbidden, APIError{CodeForbidden, "Only the profile owner can do this"}}

	// Bad input
	case errors.Is(err, model.ErrSelfMatch):
		return &httpError{http.StatusBadRequest, APIError{CodeSelfMatch, "Cannot match with yourself"}}
	case errors.Is(err, model.ErrInvalidDecision):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidDecision, "Decision must be accepted or declined"}}
	case errors.Is(err, model.ErrValidation):
		return &httpError{http.StatusBadRequest, APIError{CodeValidationFailed, err.Error()}}

	// Auth service errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, auth.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}

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
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
