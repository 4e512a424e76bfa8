package response

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error is the body of every failed request: {"status":"error","message":...}.
type Error struct {
	Status  string `json:"status" example:"error"`
	Message string `json:"message" example:"Database error"`
	code    int
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) GetStatus() int {
	return e.code
}

// NewError replaces huma.NewError so framework errors share the envelope.
// Body validation failures are reported as 400 rather than 422.
func NewError(status int, msg string, errs ...error) huma.StatusError {
	if status == http.StatusUnprocessableEntity {
		status = http.StatusBadRequest
	}

	details := make([]string, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			details = append(details, err.Error())
		}
	}
	if len(details) > 0 {
		msg = msg + ": " + strings.Join(details, "; ")
	}

	return &Error{
		Status:  StatusError,
		Message: msg,
		code:    status,
	}
}

// WriteHTTP sends the error envelope from plain net/http handlers.
func WriteHTTP(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(NewError(status, msg))
}
