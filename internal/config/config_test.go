package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 3*time.Second, cfg.Dashboard.RefreshInterval)
	assert.Equal(t, 30*time.Second, cfg.Dashboard.ClockInterval)
	assert.Equal(t, 5*time.Second, cfg.Alerts.Dwell)
	assert.Equal(t, 3, cfg.Alerts.MaxActive)
	assert.Equal(t, ":8090", cfg.API.Addr)
	assert.False(t, cfg.Storage.Enabled)
	assert.False(t, cfg.Kafka.Enabled)
	require.NoError(t, Validate(cfg))
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "biomon.yaml")
	content := `
log_level: debug
dashboard:
  refresh_interval: 1s
  timezone: UTC
alerts:
  max_active: 5
storage:
  enabled: true
  driver: sqlite
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, time.Second, cfg.Dashboard.RefreshInterval)
	assert.Equal(t, 30*time.Second, cfg.Dashboard.ClockInterval)
	assert.Equal(t, 5, cfg.Alerts.MaxActive)
	assert.Equal(t, 5*time.Second, cfg.Alerts.Dwell)
	assert.Equal(t, ":memory:", cfg.Storage.DSN)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestParseJSON(t *testing.T) {
	cfg, err := Parse([]byte(`{"log_level":"warn","api":{"enabled":true,"addr":":9999"}}`))
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, ":9999", cfg.API.Addr)
	assert.Equal(t, 3*time.Second, cfg.Dashboard.RefreshInterval)
	assert.Equal(t, 5*time.Second, cfg.Alerts.Dwell)
}

func TestParseJSONIntervals(t *testing.T) {
	tests := []struct {
		name    string
		content string
		refresh time.Duration
		clock   time.Duration
		dwell   time.Duration
	}{
		{
			name:    "duration strings",
			content: `{"dashboard":{"refresh_interval":"3s","clock_interval":"30s"},"alerts":{"dwell":"5s"}}`,
			refresh: 3 * time.Second,
			clock:   30 * time.Second,
			dwell:   5 * time.Second,
		},
		{
			name:    "milliseconds",
			content: `{"dashboard":{"refresh_interval":3000},"alerts":{"dwell":5000,"max_active":2}}`,
			refresh: 3 * time.Second,
			clock:   30 * time.Second,
			dwell:   5 * time.Second,
		},
		{
			name:    "null keeps defaults",
			content: `{"dashboard":{"refresh_interval":null,"timezone":"UTC"}}`,
			refresh: 3 * time.Second,
			clock:   30 * time.Second,
			dwell:   5 * time.Second,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.refresh, cfg.Dashboard.RefreshInterval)
			assert.Equal(t, tt.clock, cfg.Dashboard.ClockInterval)
			assert.Equal(t, tt.dwell, cfg.Alerts.Dwell)
		})
	}

	cfg, err := Parse([]byte(`{"dashboard":{"refresh_interval":1500,"timezone":"UTC","seed":7}}`))
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, cfg.Dashboard.RefreshInterval)
	assert.Equal(t, "UTC", cfg.Dashboard.Timezone)
	assert.Equal(t, uint64(7), cfg.Dashboard.Seed)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", "   "},
		{"bad yaml", "dashboard: [unterminated"},
		{"api without addr", "api:\n  enabled: true\n  addr: \"\"\n"},
		{"kafka without brokers", "kafka:\n  enabled: true\n"},
		{"unknown driver", "storage:\n  enabled: true\n  driver: mysql\n"},
		{"bad timezone", "dashboard:\n  timezone: Mars/Olympus\n"},
		{"json bad duration", `{"dashboard":{"refresh_interval":"soon"}}`},
		{"json fractional millis", `{"alerts":{"dwell":1.5}}`},
		{"yaml sub-millisecond", "dashboard:\n  refresh_interval: 3000\n"},
		{"yaml sub-millisecond dwell", "alerts:\n  dwell: 1us\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content))
			assert.Error(t, err)
		})
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvPath, "")
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	t.Setenv(EnvPath, filepath.Join(t.TempDir(), "missing.yaml"))
	_, err = FromEnv()
	assert.Error(t, err)
}
