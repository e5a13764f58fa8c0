package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	BaseURL  string            `toml:"base_url"`
	Timeout  string            `toml:"timeout"`
	Headers  map[string]string `toml:"headers"`
	LogLevel string            `toml:"log_level"`
	NoColor  *bool             `toml:"no_color"`
	Include  *bool             `toml:"include"`
	Tracing  FileTracingConfig `toml:"tracing"`
}

// FileTracingConfig is the [tracing] table.
type FileTracingConfig struct {
	Endpoint    string   `toml:"endpoint"`
	Protocol    string   `toml:"protocol"`
	Insecure    *bool    `toml:"insecure"`
	ServiceName string   `toml:"service_name"`
	SampleRate  *float64 `toml:"sample_rate"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.httpmethods/config.toml, or "" when the home
// directory is unknown.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".httpmethods", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("base-url", fc.BaseURL, &cfg.BaseURL)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	if err := s.setDuration("timeout", fc.Timeout, &cfg.Timeout); err != nil {
		return err
	}
	s.setBool("no-color", fc.NoColor, &cfg.NoColor)
	s.setBool("include", fc.Include, &cfg.Include)
	mergeHeaders(&cfg.Headers, fc.Headers)

	s.setString("otlp-endpoint", fc.Tracing.Endpoint, &cfg.OTLPEndpoint)
	s.setString("otlp-protocol", fc.Tracing.Protocol, &cfg.OTLPProtocol)
	s.setBool("otlp-insecure", fc.Tracing.Insecure, &cfg.OTLPInsecure)
	s.setString("service-name", fc.Tracing.ServiceName, &cfg.ServiceName)
	s.setFloat("sample-rate", fc.Tracing.SampleRate, &cfg.SampleRate)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
