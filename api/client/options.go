package client

import (
	"net/http"
	"time"
)

type ReqOption func(*http.Request)

// WithHeader sets a request header.
func WithHeader(key, value string) ReqOption {
	return func(req *http.Request) {
		req.Header.Set(key, value)
	}
}

func withJSONContent() ReqOption {
	return WithHeader("Content-Type", "application/json")
}

// ClientOpt is a functional option for the Client type (http.Client wrapper)
type ClientOpt func(*Client)

// WithTimeout sets the .Timeout attribute of the wrapped http.Client.
func WithTimeout(timeout time.Duration) ClientOpt {
	return func(c *Client) {
		c.hc.Timeout = timeout
	}
}

// WithCustomTransport replaces the underlying http's transport with a custom one.
func WithCustomTransport(t http.RoundTripper) ClientOpt {
	return func(c *Client) {
		c.hc.Transport = t
	}
}

// WithPrincipal sets the caller identity sent in the X-Principal header.
func WithPrincipal(principal string) ClientOpt {
	return func(c *Client) {
		c.principal = principal
	}
}
