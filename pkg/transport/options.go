package transport

import (
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/bft-labs/httpmethods/pkg/log"
)

// DefaultTimeout bounds a whole exchange when New builds its own client.
const DefaultTimeout = 30 * time.Second

// Option configures optional behavior of a Sender.
type Option func(*options)

type options struct {
	logger    log.Logger
	tracer    trace.Tracer
	propagate bool
	timeout   time.Duration
}

func defaultOptions() options {
	return options{
		logger:  log.NewNoopLogger(),
		timeout: DefaultTimeout,
	}
}

// WithLogger sets the logger for exchange and failure lines.
// If not provided, a no-op logger is used.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithTracer records each exchange as a client span.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) {
		o.tracer = tracer
	}
}

// WithPropagation injects the active trace context into outgoing headers
// using the global text map propagator.
func WithPropagation(enabled bool) Option {
	return func(o *options) {
		o.propagate = enabled
	}
}

// WithTimeout sets the timeout of the client New creates when none is given.
// It has no effect on a caller-supplied client.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}
