package request

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/http/httpguts"

	"github.com/bft-labs/httpmethods/pkg/methods"
)

// Causes wrapped by the *methods.ConstructionError values Build returns.
var (
	ErrInvalidMethod = errors.New("invalid method")
	ErrInvalidTarget = errors.New("invalid target")
	ErrInvalidHeader = errors.New("invalid header")
)

// Factory builds *http.Request values. It is immutable after construction
// and safe for concurrent use.
type Factory struct {
	base *url.URL
}

// NewFactory creates a Factory. It fails only when WithBaseURL is given
// something that is not an absolute URL.
func NewFactory(opts ...Option) (*Factory, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	f := &Factory{}
	if o.baseURL != "" {
		base, err := url.Parse(o.baseURL)
		if err != nil {
			return nil, fmt.Errorf("base url: %w", err)
		}
		if !base.IsAbs() || base.Host == "" {
			return nil, fmt.Errorf("base url %q must be absolute", o.baseURL)
		}
		f.base = base
	}
	return f, nil
}

// Build implements methods.RequestBuilder.
// The header map is copied, so later changes by the caller do not leak into
// the request. A "Host" header sets the request's Host field.
func (f *Factory) Build(ctx context.Context, method, target string, header http.Header, body io.Reader) (*http.Request, error) {
	fail := func(err error) (*http.Request, error) {
		return nil, &methods.ConstructionError{Method: method, Target: target, Err: err}
	}

	if method == "" || !httpguts.ValidHeaderFieldName(method) {
		return fail(ErrInvalidMethod)
	}

	u, err := f.resolve(target)
	if err != nil {
		return fail(err)
	}

	for name, values := range header {
		if !httpguts.ValidHeaderFieldName(name) {
			return fail(fmt.Errorf("%w: name %q", ErrInvalidHeader, name))
		}
		for _, v := range values {
			if !httpguts.ValidHeaderFieldValue(v) {
				return fail(fmt.Errorf("%w: value for %s", ErrInvalidHeader, name))
			}
		}
	}

	if ctx == nil {
		ctx = context.Background()
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fail(err)
	}

	if header != nil {
		req.Header = header.Clone()
	}
	if host := req.Header.Get("Host"); host != "" {
		req.Host = host
		req.Header.Del("Host")
	}
	return req, nil
}

func (f *Factory) resolve(target string) (*url.URL, error) {
	if strings.TrimSpace(target) == "" && f.base == nil {
		return nil, fmt.Errorf("%w: empty", ErrInvalidTarget)
	}
	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTarget, err)
	}
	if f.base != nil && !u.IsAbs() {
		u = f.base.ResolveReference(u)
	}
	return u, nil
}

var _ methods.RequestBuilder = (*Factory)(nil)
