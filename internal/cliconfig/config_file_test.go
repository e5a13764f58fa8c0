package cliconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyFileConfig(t *testing.T) {
	trueVal := true
	zero := 0.0

	tests := []struct {
		name     string
		fc       FileConfig
		changed  map[string]bool
		initial  Config
		expected Config
		wantErr  bool
	}{
		{
			name: "applies all fields",
			fc: FileConfig{
				BaseURL:  "https://api.example.com",
				Timeout:  "5s",
				Headers:  map[string]string{"Accept": "application/json"},
				LogLevel: "debug",
				NoColor:  &trueVal,
				Include:  &trueVal,
				Tracing: FileTracingConfig{
					Endpoint:    "collector:4318",
					Protocol:    "http",
					Insecure:    &trueVal,
					ServiceName: "svc",
					SampleRate:  &zero,
				},
			},
			changed: map[string]bool{},
			initial: DefaultConfig(),
			expected: Config{
				BaseURL:      "https://api.example.com",
				Timeout:      5 * time.Second,
				Headers:      map[string]string{"Accept": "application/json"},
				LogLevel:     "debug",
				NoColor:      true,
				Include:      true,
				OTLPEndpoint: "collector:4318",
				OTLPProtocol: "http",
				OTLPInsecure: true,
				ServiceName:  "svc",
				SampleRate:   0,
			},
		},
		{
			name:    "respects changed flags",
			fc:      FileConfig{BaseURL: "https://file.example.com", Timeout: "1m"},
			changed: map[string]bool{"base-url": true},
			initial: Config{BaseURL: "https://flag.example.com", Timeout: time.Second},
			expected: Config{
				BaseURL: "https://flag.example.com",
				Timeout: time.Minute,
			},
		},
		{
			name:     "merges headers into existing",
			fc:       FileConfig{Headers: map[string]string{"B": "file"}},
			changed:  map[string]bool{},
			initial:  Config{Headers: map[string]string{"A": "default"}},
			expected: Config{Headers: map[string]string{"A": "default", "B": "file"}},
		},
		{
			name:    "invalid duration",
			fc:      FileConfig{Timeout: "not-a-duration"},
			changed: map[string]bool{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.initial
			err := ApplyFileConfig(&cfg, tt.fc, tt.changed)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg)
		})
	}
}

func TestLoadFileConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	tomlContent := `
base_url = "https://api.example.com/v1"
timeout = "10s"
log_level = "warn"
include = true

[headers]
Accept = "application/json"
X-Team = "core"

[tracing]
endpoint = "localhost:4317"
insecure = true
sample_rate = 0.25
`
	require.NoError(t, os.WriteFile(configPath, []byte(tomlContent), 0644))

	fc, err := LoadFileConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com/v1", fc.BaseURL)
	assert.Equal(t, "10s", fc.Timeout)
	assert.Equal(t, "warn", fc.LogLevel)
	require.NotNil(t, fc.Include)
	assert.True(t, *fc.Include)
	assert.Nil(t, fc.NoColor)
	assert.Equal(t, map[string]string{"Accept": "application/json", "X-Team": "core"}, fc.Headers)
	assert.Equal(t, "localhost:4317", fc.Tracing.Endpoint)
	require.NotNil(t, fc.Tracing.SampleRate)
	assert.Equal(t, 0.25, *fc.Tracing.SampleRate)
}

func TestLoadFileConfig_InvalidFile(t *testing.T) {
	_, err := LoadFileConfig("/nonexistent/path/config.toml")
	assert.Error(t, err)
}

func TestLoadFileConfig_InvalidTOML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.toml")
	require.NoError(t, os.WriteFile(configPath, []byte("base_url = \"x\"\nthis is not valid toml\n"), 0644))

	_, err := LoadFileConfig(configPath)
	assert.Error(t, err)
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()
	if path != "" {
		assert.True(t, strings.HasSuffix(path, filepath.Join(".httpmethods", "config.toml")), path)
	}
}

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()
	existing := filepath.Join(tmpDir, "exists.txt")
	require.NoError(t, os.WriteFile(existing, []byte("test"), 0644))

	assert.True(t, FileExists(existing))
	assert.False(t, FileExists(filepath.Join(tmpDir, "nonexistent.txt")))
}
