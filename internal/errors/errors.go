package errors

import (
	"errors"
	"net/http"
	"strings"
)

var (
	// ErrUnauthenticated is returned when a request carries no valid token.
	ErrUnauthenticated = errors.New("unauthorized")
	// ErrAccessDenied is returned when the actor lacks privilege or ownership.
	ErrAccessDenied = errors.New("access denied")
	// ErrInvalidCredentials is returned when login fails on the password check.
	ErrInvalidCredentials = errors.New("login failed, wrong username or password")
	// ErrUserNotFound is returned when a user id or username resolves to nothing.
	ErrUserNotFound = errors.New("user not found")
	// ErrCategoryNotFound is returned when a category id resolves to nothing.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrEntryNotFound is returned when an entry id resolves to nothing.
	ErrEntryNotFound = errors.New("entry not found")
	// ErrSuggestionNotFound is returned when a suggestion id resolves to nothing.
	ErrSuggestionNotFound = errors.New("suggestion not found")
	// ErrUsernameTaken is returned when the requested username already exists.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrEmailTaken is returned when the requested email already exists.
	ErrEmailTaken = errors.New("email already exists")
	// ErrUserConflict is the normalized outcome of a store-level duplicate on users.
	ErrUserConflict = errors.New("username or email already exists")
	// ErrCategoryTitleTaken is returned when the category title already exists.
	ErrCategoryTitleTaken = errors.New("category title already exists")
	// ErrCategoryMissing is returned when a write references a nonexistent category.
	ErrCategoryMissing = errors.New("category does not exist")
)

// ValidationError carries every violated field constraint at once.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Fields, "; ")
}

// ErrorResponse represents a standardized error response body.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Code    string   `json:"code"`
	Details []string `json:"details,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Details    []string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to an ErrorResponse body.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error:   e.Message,
		Code:    e.Code,
		Details: e.Details,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var verr *ValidationError
	if errors.As(err, &verr) {
		httpErr := NewHTTPError(http.StatusBadRequest, "validation failed", "VALIDATION_FAILED")
		httpErr.Details = verr.Fields
		return httpErr
	}

	switch {
	case errors.Is(err, ErrUnauthenticated):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNAUTHORIZED")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrAccessDenied):
		return NewHTTPError(http.StatusForbidden, err.Error(), "ACCESS_DENIED")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrCategoryNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "CATEGORY_NOT_FOUND")
	case errors.Is(err, ErrEntryNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "ENTRY_NOT_FOUND")
	case errors.Is(err, ErrSuggestionNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "SUGGESTION_NOT_FOUND")
	case errors.Is(err, ErrUsernameTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "USERNAME_TAKEN")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrUserConflict):
		return NewHTTPError(http.StatusConflict, err.Error(), "USER_CONFLICT")
	case errors.Is(err, ErrCategoryTitleTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "CATEGORY_TITLE_TAKEN")
	case errors.Is(err, ErrCategoryMissing):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "CATEGORY_MISSING")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
