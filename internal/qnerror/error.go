package qnerror

import "net/http"

type (
	// A QNError represents the error format rendered by the quicknotes API.
	QNError struct {
		HTTPCode   int `json:"-"`
		FieldError err `json:"error"`
	}

	err struct {
		Tag     string `json:"tag,omitempty"`
		Message string `json:"message"`
	}
)

// StatusCode returns the HTTP status code.
func StatusCode(err error) int {
	if qnerr, ok := err.(*QNError); ok {
		return qnerr.HTTPCode
	}
	return http.StatusInternalServerError
}

// New returns a new QNError with the given message.
func New(message string) *QNError {
	return &QNError{FieldError: err{Message: message}}
}

// NewWithTagCode returns a new QNError with the given code, tag and message.
func NewWithTagCode(code int, tag, message string) *QNError {
	return &QNError{HTTPCode: code, FieldError: err{Tag: tag, Message: message}}
}

// Error implements error interface.
func (e *QNError) Error() string {
	return e.FieldError.Message
}
