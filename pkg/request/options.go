package request

// Option configures a Factory.
type Option func(*options)

type options struct {
	baseURL string
}

// WithBaseURL resolves relative targets against base, which must be an
// absolute URL. Absolute targets are used as given.
func WithBaseURL(base string) Option {
	return func(o *options) {
		o.baseURL = base
	}
}
