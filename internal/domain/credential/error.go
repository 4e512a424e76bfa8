package credential

import "errors"

var (
	ErrNotFound   = errors.New("email not found")
	ErrValidation = errors.New("invalid input")
	ErrConnection = errors.New("database connection failed")
	ErrStore      = errors.New("database error")

	ErrEmailRequired    = &ValidationError{Message: "email and password are required"}
	ErrPasswordRequired = &ValidationError{Message: "email and password are required"}
)

// ValidationError carries a message safe to show to the client.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
