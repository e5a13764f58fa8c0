package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables
// (HTTPMETHODS_*, plus the standard OTEL_* names for tracing).
// It respects flags that have been explicitly set (changed map).
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("base-url", os.Getenv("HTTPMETHODS_BASE_URL"), &cfg.BaseURL)
	s.setString("log-level", os.Getenv("HTTPMETHODS_LOG_LEVEL"), &cfg.LogLevel)
	if err := s.setDuration("timeout", os.Getenv("HTTPMETHODS_TIMEOUT"), &cfg.Timeout); err != nil {
		return err
	}
	s.setBoolFromString("no-color", os.Getenv("HTTPMETHODS_NO_COLOR"), &cfg.NoColor)
	s.setBoolFromString("include", os.Getenv("HTTPMETHODS_INCLUDE"), &cfg.Include)

	if raw := os.Getenv("HTTPMETHODS_HEADERS"); raw != "" {
		headers, err := ParseHeaderList(raw)
		if err != nil {
			return err
		}
		mergeHeaders(&cfg.Headers, headers)
	}

	s.setString("otlp-endpoint", os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"), &cfg.OTLPEndpoint)
	s.setString("otlp-endpoint", os.Getenv("HTTPMETHODS_OTLP_ENDPOINT"), &cfg.OTLPEndpoint)
	s.setString("otlp-protocol", os.Getenv("HTTPMETHODS_OTLP_PROTOCOL"), &cfg.OTLPProtocol)
	s.setBoolFromString("otlp-insecure", os.Getenv("HTTPMETHODS_OTLP_INSECURE"), &cfg.OTLPInsecure)
	s.setString("service-name", os.Getenv("OTEL_SERVICE_NAME"), &cfg.ServiceName)
	if err := s.setFloatFromString("sample-rate", os.Getenv("HTTPMETHODS_SAMPLE_RATE"), &cfg.SampleRate); err != nil {
		return err
	}

	return nil
}
