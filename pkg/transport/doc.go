// Package transport provides the default request sender for methods.Client.
//
// A [Sender] dispatches requests through an injected [HTTPClient] (the
// standard *http.Client satisfies it), logs every exchange and, when given a
// tracer, records each one as an OpenTelemetry client span. Failures are
// reported as *methods.TransportError.
//
//	sender := transport.New(&http.Client{Timeout: 10 * time.Second},
//	    transport.WithLogger(logger),
//	    transport.WithTracer(otel.Tracer("httpmethods")),
//	    transport.WithPropagation(true),
//	)
//
// With propagation enabled the W3C trace context is injected into a clone of
// the outgoing request; the caller's request is never modified.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package transport
