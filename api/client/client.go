// Package client is an HTTP client for the dAPI server JSON API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
)

const principalHeader = "X-Principal"

// Client is a wrapper object around the HTTP client.
type Client struct {
	hc        *http.Client
	baseURL   *url.URL
	principal string
}

// NewClient constructs a new client with the provided options (ex WithTimeout).
// `host` is the base host + port used to construct request urls. This value can be
// a URL string, or NewClient will assume an http endpoint if just `host:port` is used.
func NewClient(host string, opts ...ClientOpt) (*Client, error) {
	u, err := urlForHost(host)
	if err != nil {
		return nil, err
	}
	c := &Client{
		hc:      &http.Client{},
		baseURL: u,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Principal returns the caller identity sent with every request.
func (c *Client) Principal() string {
	return c.principal
}

// BaseURL returns the base url of the client
func (c *Client) BaseURL() *url.URL {
	return c.baseURL
}

func urlForHost(h string) (*url.URL, error) {
	// try to parse as url (being permissive)
	u, err := url.Parse(h)
	if err == nil && u.Host != "" {
		return u, nil
	}
	// try to parse as host:port
	host, port, err := net.SplitHostPort(h)
	if err != nil {
		return nil, ErrMalformedHostname
	}
	return &url.URL{Host: net.JoinHostPort(host, port), Scheme: "http"}, nil
}

// Get is a generic, opinionated GET function. A non nil out receives the decoded JSON body.
func (c *Client) Get(ctx context.Context, path string, out interface{}, opts ...ReqOption) error {
	return c.do(ctx, http.MethodGet, path, nil, out, opts...)
}

// Post sends in as a JSON body. A non nil out receives the decoded JSON response.
func (c *Client) Post(ctx context.Context, path string, in, out interface{}, opts ...ReqOption) error {
	body, err := json.Marshal(in)
	if err != nil {
		return errors.Wrap(err, "could not encode request body")
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(body), out, append(opts, withJSONContent())...)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out interface{}, opts ...ReqOption) error {
	ref, err := url.Parse(path)
	if err != nil {
		return errors.Wrapf(err, "invalid path %s", path)
	}
	u := c.baseURL.ResolveReference(ref)
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return err
	}
	if c.principal != "" {
		req.Header.Set(principalHeader, c.principal)
	}
	for _, o := range opts {
		o(req)
	}
	r, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := r.Body.Close(); closeErr != nil {
			log.WithError(closeErr).Debug("Could not close response body")
		}
	}()
	if r.StatusCode != http.StatusOK {
		return Non200Err(r)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		return errors.Wrap(err, "error reading http response body")
	}
	return nil
}
