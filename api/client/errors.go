package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

// ErrMalformedHostname is returned when the host given to NewClient is neither a URL nor host:port.
var ErrMalformedHostname = errors.New("hostname must include port, separated by one colon, like example.com:3500")

// ErrorResponse is a non 200 response of the server.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *ErrorResponse) Error() string {
	return fmt.Sprintf("HTTP request unsuccessful (%d): %s", e.Code, e.Message)
}

// StatusCode returns the HTTP status of the response.
func (e *ErrorResponse) StatusCode() int {
	return e.Code
}

// Non200Err decodes the error body of r.
func Non200Err(r *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<16))
	if err != nil {
		body = nil
	}
	e := &ErrorResponse{}
	if len(body) == 0 || json.Unmarshal(body, e) != nil || e.Message == "" {
		e.Message = string(body)
		if e.Message == "" {
			e.Message = http.StatusText(r.StatusCode)
		}
	}
	e.Code = r.StatusCode
	return e
}
