// Package httpmethods sends HTTP requests through one call per method.
//
// Example usage:
//
//	client, err := httpmethods.NewDefault(http.DefaultClient,
//	    request.WithBaseURL("https://api.example.com/v1/"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	resp, err := client.Get(ctx, "users/42", http.Header{"Accept": {"application/json"}})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer resp.Body.Close()
//
// Callers that need their own request construction or transport use New with
// any RequestBuilder and RequestSender. See pkg/methods for the full contract.
package httpmethods

import (
	"fmt"

	"github.com/bft-labs/httpmethods/pkg/methods"
	"github.com/bft-labs/httpmethods/pkg/request"
	"github.com/bft-labs/httpmethods/pkg/transport"
)

// Client exposes Get, Head, Trace, Post, Put, Patch, Delete, Options, Send
// and SendRequest.
type Client = methods.Client

// RequestSender exchanges a built request for a response.
type RequestSender = methods.RequestSender

// RequestBuilder turns method, target, headers and body into a request.
type RequestBuilder = methods.RequestBuilder

// ConstructionError is returned when a request cannot be built.
type ConstructionError = methods.ConstructionError

// TransportError is returned when a built request cannot be exchanged.
type TransportError = methods.TransportError

// New returns a Client over the given sender and builder.
func New(sender RequestSender, builder RequestBuilder) *Client {
	return methods.New(sender, builder)
}

// NewDefault wires a request.Factory and a transport.Sender around client.
// A nil client gets an *http.Client with transport.DefaultTimeout.
func NewDefault(client transport.HTTPClient, opts ...request.Option) (*Client, error) {
	if err := checkVersions(); err != nil {
		return nil, err
	}
	factory, err := request.NewFactory(opts...)
	if err != nil {
		return nil, err
	}
	return methods.New(transport.New(client), factory), nil
}

type moduleVersion struct {
	name, version, min string
}

func modules() []moduleVersion {
	return []moduleVersion{
		{"methods", methods.Version, methods.MinCompatibleVersion},
		{"request", request.Version, request.MinCompatibleVersion},
		{"transport", transport.Version, transport.MinCompatibleVersion},
	}
}

// checkVersions fails when a bundled package reports a version below its
// own minimum compatible version.
func checkVersions() error {
	for _, m := range modules() {
		if !atLeast(m.version, m.min) {
			return fmt.Errorf("package %s version %s is below minimum compatible version %s", m.name, m.version, m.min)
		}
	}
	return nil
}

// atLeast compares "major.minor.patch" strings. Missing parts count as zero.
func atLeast(version, min string) bool {
	var v, m [3]int
	_, _ = fmt.Sscanf(version, "%d.%d.%d", &v[0], &v[1], &v[2])
	_, _ = fmt.Sscanf(min, "%d.%d.%d", &m[0], &m[1], &m[2])
	for i := range v {
		if v[i] != m[i] {
			return v[i] > m[i]
		}
	}
	return true
}
