package transport

import (
	"errors"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/bft-labs/httpmethods/pkg/log"
	"github.com/bft-labs/httpmethods/pkg/methods"
)

var errNilRequest = errors.New("nil request")

// Sender implements methods.RequestSender over an HTTPClient.
// It is safe for concurrent use when the HTTPClient is.
type Sender struct {
	client    HTTPClient
	logger    log.Logger
	tracer    trace.Tracer
	propagate bool
}

// New creates a Sender. A nil client is replaced by an *http.Client with
// DefaultTimeout (or the WithTimeout value).
func New(client HTTPClient, opts ...Option) *Sender {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if client == nil {
		client = &http.Client{Timeout: o.timeout}
	}
	return &Sender{
		client:    client,
		logger:    o.logger,
		tracer:    o.tracer,
		propagate: o.propagate,
	}
}

// Do sends req. A non-nil error is always a *methods.TransportError; the
// response, if the client returned one alongside the error, is passed back too.
// Non-2xx statuses are responses, not errors.
func (s *Sender) Do(req *http.Request) (*http.Response, error) {
	if req == nil || req.URL == nil {
		return nil, &methods.TransportError{Err: errNilRequest}
	}

	target := req.URL.Redacted()
	out := req
	var span trace.Span
	if s.tracer != nil {
		ctx, sp := s.tracer.Start(req.Context(), req.Method,
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(
				attribute.String("http.request.method", req.Method),
				attribute.String("url.full", target),
			),
		)
		span = sp
		out = req.WithContext(ctx)
	}
	if s.propagate {
		out = out.Clone(out.Context())
		otel.GetTextMapPropagator().Inject(out.Context(), propagation.HeaderCarrier(out.Header))
	}

	s.logger.Debug("sending request",
		log.String("method", req.Method),
		log.String("url", target),
	)

	start := time.Now()
	resp, err := s.client.Do(out)
	elapsed := time.Since(start)

	if err != nil {
		if span != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			span.End()
		}
		s.logger.Warn("request failed",
			log.String("method", req.Method),
			log.String("url", target),
			log.Duration("elapsed", elapsed),
			log.Err(err),
		)
		return resp, &methods.TransportError{Method: req.Method, URL: target, Err: err}
	}

	if span != nil {
		span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
		if resp.StatusCode >= 400 {
			span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}
	s.logger.Debug("received response",
		log.String("method", req.Method),
		log.String("url", target),
		log.Int("status", resp.StatusCode),
		log.Int64("content_length", resp.ContentLength),
		log.Duration("elapsed", elapsed),
	)
	return resp, nil
}

var _ methods.RequestSender = (*Sender)(nil)
