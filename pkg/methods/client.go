package methods

import (
	"context"
	"io"
	"net/http"
)

// Client sends requests by HTTP verb.
// It holds no state besides its two collaborators and is as safe for
// concurrent use as they are.
type Client struct {
	sender  RequestSender
	builder RequestBuilder
}

// New creates a Client that builds requests with builder and sends them with sender.
func New(sender RequestSender, builder RequestBuilder) *Client {
	return &Client{
		sender:  sender,
		builder: builder,
	}
}

// Get sends a GET request.
func (c *Client) Get(ctx context.Context, target string, header http.Header) (*http.Response, error) {
	return c.Send(ctx, http.MethodGet, target, header, nil)
}

// Head sends a HEAD request.
func (c *Client) Head(ctx context.Context, target string, header http.Header) (*http.Response, error) {
	return c.Send(ctx, http.MethodHead, target, header, nil)
}

// Trace sends a TRACE request.
func (c *Client) Trace(ctx context.Context, target string, header http.Header) (*http.Response, error) {
	return c.Send(ctx, http.MethodTrace, target, header, nil)
}

// Post sends a POST request.
func (c *Client) Post(ctx context.Context, target string, header http.Header, body io.Reader) (*http.Response, error) {
	return c.Send(ctx, http.MethodPost, target, header, body)
}

// Put sends a PUT request.
func (c *Client) Put(ctx context.Context, target string, header http.Header, body io.Reader) (*http.Response, error) {
	return c.Send(ctx, http.MethodPut, target, header, body)
}

// Patch sends a PATCH request.
func (c *Client) Patch(ctx context.Context, target string, header http.Header, body io.Reader) (*http.Response, error) {
	return c.Send(ctx, http.MethodPatch, target, header, body)
}

// Delete sends a DELETE request.
func (c *Client) Delete(ctx context.Context, target string, header http.Header, body io.Reader) (*http.Response, error) {
	return c.Send(ctx, http.MethodDelete, target, header, body)
}

// Options sends an OPTIONS request.
func (c *Client) Options(ctx context.Context, target string, header http.Header, body io.Reader) (*http.Response, error) {
	return c.Send(ctx, http.MethodOptions, target, header, body)
}

// Send builds a request with any HTTP method and sends it.
// Builder errors are returned before anything reaches the sender.
func (c *Client) Send(ctx context.Context, method, target string, header http.Header, body io.Reader) (*http.Response, error) {
	req, err := c.builder.Build(ctx, method, target, header, body)
	if err != nil {
		return nil, err
	}
	return c.SendRequest(req)
}

// SendRequest forwards req to the underlying sender.
func (c *Client) SendRequest(req *http.Request) (*http.Response, error) {
	return c.sender.Do(req)
}

// Do is SendRequest under the RequestSender name.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.SendRequest(req)
}

var _ RequestSender = (*Client)(nil)
