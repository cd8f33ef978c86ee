package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrInvalidCredentials      = errors.New("invalid username or password")
	ErrInvalidToken            = errors.New("invalid or expired token")
	ErrUnauthorized            = errors.New("unauthorized access")
	ErrInsufficientPermissions = errors.New("insufficient permissions")

	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserInactive      = errors.New("user account is inactive")
	ErrInvalidUserRole   = errors.New("invalid user role")

	ErrInvalidInput = errors.New("invalid input data")
	ErrWeakPassword = errors.New("password does not meet requirements")

	ErrTokenExpired = errors.New("verification token has expired")
	ErrTokenUsed    = errors.New("verification token has already been used")
)

// Error codes shared by all use cases. Handlers map them onto HTTP statuses.
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeConflict   = "CONFLICT"
	CodeAuth       = "AUTH_ERROR"
	CodeInternal   = "INTERNAL_ERROR"
)

type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewValidationError(message string, err error) *AppError {
	return NewAppError(CodeValidation, message, err)
}

func NewNotFoundError(message string) *AppError {
	return NewAppError(CodeNotFound, message, nil)
}

func NewConflictError(message string) *AppError {
	return NewAppError(CodeConflict, message, nil)
}

// HTTPStatus resolves the status code a handler should answer with. Plain
// errors fall through to 500 so persistence failures are never mistaken for
// client mistakes.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case CodeValidation:
			return http.StatusBadRequest
		case CodeNotFound:
			return http.StatusNotFound
		case CodeConflict:
			return http.StatusConflict
		case CodeAuth:
			return http.StatusUnauthorized
		}
		return http.StatusInternalServerError
	}

	switch {
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrInsufficientPermissions):
		return http.StatusForbidden
	case errors.Is(err, ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUserAlreadyExists),
		errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrTokenUsed):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrWeakPassword):
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}
