package cliconfig

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bft-labs/httpmethods/internal/tracing"
	"github.com/bft-labs/httpmethods/pkg/log"
)

// DefaultTimeout bounds a whole exchange unless overridden.
const DefaultTimeout = 30 * time.Second

// Config holds CLI configuration for httpmethods.
type Config struct {
	BaseURL string
	Timeout time.Duration

	// Headers are added to every request the CLI sends. -H flags win over them.
	Headers map[string]string

	LogLevel string
	NoColor  bool
	Include  bool

	OTLPEndpoint string
	OTLPProtocol string
	OTLPInsecure bool
	ServiceName  string
	SampleRate   float64
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Timeout:      DefaultTimeout,
		Headers:      map[string]string{},
		LogLevel:     "info",
		OTLPProtocol: "grpc",
		ServiceName:  "httpmethods",
		SampleRate:   1.0,
	}
}

// Validate checks the configuration for errors and normalizes derived values.
func (c *Config) Validate() error {
	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil {
			return fmt.Errorf("base-url: %w", err)
		}
		if !u.IsAbs() || u.Host == "" {
			return fmt.Errorf("base-url %q must be an absolute URL", c.BaseURL)
		}
		// Relative targets resolve below the base path, not beside it.
		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}
		c.BaseURL = u.String()
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	}

	switch strings.ToLower(c.OTLPProtocol) {
	case "", "grpc", "http":
	default:
		return fmt.Errorf("otlp-protocol must be grpc or http, got %q", c.OTLPProtocol)
	}

	if c.SampleRate < 0 || c.SampleRate > 1 {
		return fmt.Errorf("sample-rate must be between 0 and 1")
	}

	return nil
}

// Tracing returns the tracer provider configuration.
func (c Config) Tracing() tracing.Config {
	return tracing.Config{
		Endpoint:    c.OTLPEndpoint,
		Protocol:    c.OTLPProtocol,
		Insecure:    c.OTLPInsecure,
		ServiceName: c.ServiceName,
		SampleRate:  c.SampleRate,
	}
}

// configSetter applies configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setFloat takes a pointer so that an explicit 0 in a file is honored.
func (s *configSetter) setFloat(flag string, value *float64, dst *float64) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

func (s *configSetter) setFloatFromString(flag, value string, dst *float64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = f
	return nil
}

// setBoolFromString accepts "true" and "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}

// mergeHeaders layers values over dst under canonical names, so "accept" from
// one source and "Accept" from another land on the same key. Headers merge
// rather than replace, so no changed-flag check applies here.
func mergeHeaders(dst *map[string]string, values map[string]string) {
	if len(values) == 0 {
		return
	}
	if *dst == nil {
		*dst = make(map[string]string, len(values))
	}
	for k, v := range values {
		(*dst)[http.CanonicalHeaderKey(k)] = v
	}
}
