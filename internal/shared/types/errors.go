package types

import (
	"errors"
	"fmt"
)

var (
	ErrNotAuthenticated  = errors.New("Not authenticated")
	ErrNoAccountsFound   = errors.New("no AWS accounts configured. Add one with 'aws-cost-console accounts add'")
	ErrAccountNotFound   = errors.New("the requested AWS account was not found")
	ErrNoAccountSelected = errors.New("no AWS account selected")
	ErrNotImplemented    = errors.New("not implemented")
)

// APIError é uma resposta não-2xx do backend. Message é exibida ao usuário sem alterações.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError cria um APIError.
func NewAPIError(status int, message string) *APIError {
	return &APIError{StatusCode: status, Message: message}
}

// ErrorMessage returns the user-facing text of err: the backend message for API errors,
// err.Error() otherwise.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// ValidationError carries a form validation message for the user.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, a ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, a...)}
}
