package methods

import (
	"context"
	"io"
	"net/http"
)

// RequestSender dispatches a built request.
// The standard *http.Client satisfies this interface.
type RequestSender interface {
	// Do sends an HTTP request and returns an HTTP response.
	Do(req *http.Request) (*http.Response, error)
}

// RequestBuilder constructs requests from their parts.
type RequestBuilder interface {
	// Build returns a request for method and target carrying header and body.
	// A nil header means no headers and a nil body means no body.
	// Invalid input should be reported as a *ConstructionError.
	Build(ctx context.Context, method, target string, header http.Header, body io.Reader) (*http.Request, error)
}
