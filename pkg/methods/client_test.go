package methods_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/httpmethods/pkg/methods"
)

type buildCall struct {
	ctx    context.Context
	method string
	target string
	header http.Header
	body   io.Reader
}

// recordingBuilder records Build calls and returns a fixed request or error.
type recordingBuilder struct {
	mu    sync.Mutex
	calls []buildCall
	req   *http.Request
	err   error
}

func (b *recordingBuilder) Build(ctx context.Context, method, target string, header http.Header, body io.Reader) (*http.Request, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, buildCall{ctx: ctx, method: method, target: target, header: header, body: body})
	if b.err != nil {
		return nil, b.err
	}
	return b.req, nil
}

// recordingSender records the requests it receives.
type recordingSender struct {
	mu   sync.Mutex
	reqs []*http.Request
	resp *http.Response
	err  error
}

func (s *recordingSender) Do(req *http.Request) (*http.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reqs = append(s.reqs, req)
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func newFixture(t *testing.T) (*methods.Client, *recordingSender, *recordingBuilder) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, "http://example.test/built", nil)
	require.NoError(t, err)

	sender := &recordingSender{resp: &http.Response{StatusCode: http.StatusTeapot}}
	builder := &recordingBuilder{req: req}
	return methods.New(sender, builder), sender, builder
}

type ctxKey struct{}

func TestClient_BodylessVerbs(t *testing.T) {
	tests := []struct {
		method string
		call   func(*methods.Client, context.Context, string, http.Header) (*http.Response, error)
	}{
		{http.MethodGet, (*methods.Client).Get},
		{http.MethodHead, (*methods.Client).Head},
		{http.MethodTrace, (*methods.Client).Trace},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			client, sender, builder := newFixture(t)
			ctx := context.WithValue(context.Background(), ctxKey{}, tt.method)
			header := http.Header{"Accept": {"text/plain"}}

			resp, err := tt.call(client, ctx, "/foo", header)
			require.NoError(t, err)

			require.Len(t, builder.calls, 1)
			call := builder.calls[0]
			assert.Equal(t, tt.method, call.method)
			assert.Equal(t, "/foo", call.target)
			assert.Equal(t, header, call.header)
			assert.Nil(t, call.body)
			assert.Equal(t, ctx, call.ctx)

			require.Len(t, sender.reqs, 1)
			assert.Same(t, builder.req, sender.reqs[0])
			assert.Same(t, sender.resp, resp)
		})
	}
}

func TestClient_BodyVerbs(t *testing.T) {
	tests := []struct {
		method string
		call   func(*methods.Client, context.Context, string, http.Header, io.Reader) (*http.Response, error)
	}{
		{http.MethodPost, (*methods.Client).Post},
		{http.MethodPut, (*methods.Client).Put},
		{http.MethodPatch, (*methods.Client).Patch},
		{http.MethodDelete, (*methods.Client).Delete},
		{http.MethodOptions, (*methods.Client).Options},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			client, sender, builder := newFixture(t)
			header := http.Header{"Content-Type": {"application/json"}}
			body := strings.NewReader(`{"k":"v"}`)

			resp, err := tt.call(client, context.Background(), "/bar", header, body)
			require.NoError(t, err)

			require.Len(t, builder.calls, 1)
			call := builder.calls[0]
			assert.Equal(t, tt.method, call.method)
			assert.Equal(t, "/bar", call.target)
			assert.Equal(t, header, call.header)
			assert.Same(t, body, call.body)

			require.Len(t, sender.reqs, 1)
			assert.Same(t, builder.req, sender.reqs[0])
			assert.Same(t, sender.resp, resp)
		})

		t.Run(tt.method+" without body", func(t *testing.T) {
			client, _, builder := newFixture(t)

			_, err := tt.call(client, context.Background(), "/bar", nil, nil)
			require.NoError(t, err)

			require.Len(t, builder.calls, 1)
			assert.Nil(t, builder.calls[0].header)
			assert.Nil(t, builder.calls[0].body)
		})
	}
}

func TestClient_SendMatchesBuildThenSendRequest(t *testing.T) {
	client, sender, builder := newFixture(t)
	body := strings.NewReader("payload")
	header := http.Header{"X-Custom": {"1"}}

	resp, err := client.Send(context.Background(), "PROPFIND", "dav://x", header, body)
	require.NoError(t, err)

	require.Len(t, builder.calls, 1)
	assert.Equal(t, "PROPFIND", builder.calls[0].method)
	assert.Equal(t, "dav://x", builder.calls[0].target)
	assert.Equal(t, header, builder.calls[0].header)
	assert.Same(t, body, builder.calls[0].body)

	direct, err := client.SendRequest(builder.req)
	require.NoError(t, err)
	assert.Same(t, direct, resp)
	require.Len(t, sender.reqs, 2)
	assert.Same(t, sender.reqs[0], sender.reqs[1])
}

func TestClient_SendRequestPassthrough(t *testing.T) {
	client, sender, builder := newFixture(t)
	req, err := http.NewRequest(http.MethodPut, "http://example.test/direct", strings.NewReader("x"))
	require.NoError(t, err)
	req.Header.Set("X-Before", "1")

	resp, err := client.SendRequest(req)
	require.NoError(t, err)

	assert.Empty(t, builder.calls)
	require.Len(t, sender.reqs, 1)
	assert.Same(t, req, sender.reqs[0])
	assert.Same(t, sender.resp, resp)
	assert.Equal(t, http.Header{"X-Before": {"1"}}, req.Header)
}

func TestClient_BuilderErrorSkipsSender(t *testing.T) {
	client, sender, builder := newFixture(t)
	buildErr := &methods.ConstructionError{Method: "GET", Target: "::bad", Err: errors.New("missing scheme")}
	builder.err = buildErr

	resp, err := client.Get(context.Background(), "::bad", nil)

	assert.Nil(t, resp)
	assert.Same(t, buildErr, err)
	assert.Empty(t, sender.reqs)
}

func TestClient_SenderErrorPropagatesUnchanged(t *testing.T) {
	client, sender, _ := newFixture(t)
	sendErr := &methods.TransportError{Method: "POST", URL: "http://example.test", Err: errors.New("connection refused")}
	sender.err = sendErr

	resp, err := client.Post(context.Background(), "/x", nil, nil)

	assert.Nil(t, resp)
	assert.Same(t, sendErr, err)

	var te *methods.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "connection refused", te.Err.Error())
}

func TestClient_SenderReturnsResponseAndError(t *testing.T) {
	resp := &http.Response{StatusCode: http.StatusFound}
	sendErr := errors.New("stopped after redirects")
	client := methods.New(senderFunc(func(*http.Request) (*http.Response, error) {
		return resp, sendErr
	}), &recordingBuilder{req: httpRequest(t)})

	got, err := client.Get(context.Background(), "/", nil)

	assert.Same(t, resp, got)
	assert.Same(t, sendErr, err)
}

func TestClient_IsRequestSender(t *testing.T) {
	inner, sender, _ := newFixture(t)

	var rs methods.RequestSender = inner
	outerBuilder := &recordingBuilder{req: httpRequest(t)}
	outer := methods.New(rs, outerBuilder)

	resp, err := outer.Delete(context.Background(), "/nested", nil, nil)
	require.NoError(t, err)

	require.Len(t, sender.reqs, 1)
	assert.Same(t, outerBuilder.req, sender.reqs[0])
	assert.Same(t, sender.resp, resp)
}

func TestClient_ConcurrentUse(t *testing.T) {
	client, sender, builder := newFixture(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = client.Get(context.Background(), "/c", nil)
		}()
	}
	wg.Wait()

	assert.Len(t, builder.calls, 16)
	assert.Len(t, sender.reqs, 16)
}

func TestErrors_Unwrap(t *testing.T) {
	cause := errors.New("cause")

	ce := &methods.ConstructionError{Method: "GET", Target: "/x", Err: cause}
	assert.ErrorIs(t, ce, cause)
	assert.Equal(t, "build GET /x: cause", ce.Error())

	te := &methods.TransportError{Method: "GET", URL: "http://h/x", Err: cause}
	assert.ErrorIs(t, te, cause)
	assert.Equal(t, "send GET http://h/x: cause", te.Error())
}

type senderFunc func(*http.Request) (*http.Response, error)

func (f senderFunc) Do(req *http.Request) (*http.Response, error) { return f(req) }

func httpRequest(t *testing.T) *http.Request {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, "http://example.test/", nil)
	require.NoError(t, err)
	return req
}
