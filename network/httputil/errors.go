package httputil

import (
	"net/http"
)

// HasErrorCode is implemented by errors written to HTTP clients.
type HasErrorCode interface {
	StatusCode() int
}

// DefaultJsonError is the JSON body of every error response.
type DefaultJsonError struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// StatusCode returns the error's underlying error code.
func (e *DefaultJsonError) StatusCode() int {
	return e.Code
}

// Error returns the underlying error message.
func (e *DefaultJsonError) Error() string {
	return e.Message
}

// HandleError writes an error response with message and code.
func HandleError(w http.ResponseWriter, message string, code int) {
	errJson := &DefaultJsonError{
		Message: message,
		Code:    code,
	}
	WriteError(w, errJson)
}
