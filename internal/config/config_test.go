package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chngfilter/pkg/contracts/domain"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFrom(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		file        string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults with no file and no env",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
				assert.Equal(t, int64(DefaultMaxUploadBytes), cfg.Server.MaxUploadBytes)
				assert.True(t, cfg.Security.RateLimit.Enabled)
				assert.Equal(t, 100.0, cfg.Security.RateLimit.RPS)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "console", cfg.Logging.Output)
				assert.Equal(t, domain.DefaultColumns(), cfg.Columns.Domain())
				assert.Equal(t, "none", cfg.Telemetry.TraceExporter)
				assert.True(t, cfg.Telemetry.MetricsEnabled)
			},
		},
		{
			name: "environment overrides defaults",
			env: map[string]string{
				"CHNG_SERVER_PORT":              "9090",
				"CHNG_SERVER_READ_TIMEOUT":      "5s",
				"CHNG_LOGGING_LEVEL":            "debug",
				"CHNG_COLUMNS_CHANGE":           "CHANGE_PCT",
				"CHNG_SECURITY_RATE_LIMIT_RPS":  "5",
				"CHNG_TELEMETRY_TRACE_EXPORTER": "stdout",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "CHANGE_PCT", cfg.Columns.Change)
				assert.Equal(t, domain.DefaultSymbolColumn, cfg.Columns.Symbol)
				assert.Equal(t, 5.0, cfg.Security.RateLimit.RPS)
				assert.Equal(t, "stdout", cfg.Telemetry.TraceExporter)
			},
		},
		{
			name: "file overrides defaults",
			file: `
server:
  port: 7070
  max_upload_bytes: 1024
logging:
  level: warn
columns:
  symbol: TICKER
paths:
  output_dir: /tmp/exports
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 7070, cfg.Server.Port)
				assert.Equal(t, int64(1024), cfg.Server.MaxUploadBytes)
				assert.Equal(t, "warn", cfg.Logging.Level)
				assert.Equal(t, "TICKER", cfg.Columns.Symbol)
				assert.Equal(t, domain.DefaultChangeColumn, cfg.Columns.Change)
				assert.Equal(t, "/tmp/exports", cfg.Paths.OutputDir)
				// Untouched sections keep their defaults.
				assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
			},
		},
		{
			name: "environment overrides file",
			env:  map[string]string{"CHNG_SERVER_PORT": "6060"},
			file: "server:\n  port: 7070\n",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 6060, cfg.Server.Port)
			},
		},
		{
			name:    "invalid port",
			env:     map[string]string{"CHNG_SERVER_PORT": "70000"},
			wantErr: true,
		},
		{
			name:    "unparseable env value",
			env:     map[string]string{"CHNG_SERVER_PORT": "eighty"},
			wantErr: true,
		},
		{
			name:    "invalid log level",
			env:     map[string]string{"CHNG_LOGGING_LEVEL": "verbose"},
			wantErr: true,
		},
		{
			name:    "empty change column",
			file:    "columns:\n  change: \" \"\n",
			wantErr: true,
		},
		{
			name:    "unknown trace exporter",
			env:     map[string]string{"CHNG_TELEMETRY_TRACE_EXPORTER": "jaeger"},
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			file:    "server: [",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.file != "" {
				path = writeConfigFile(t, tt.file)
			}

			cfg, err := LoadFrom(path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.validateCfg(t, cfg)
		})
	}
}

func TestLoadFrom_MissingFile(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate_NormalizesFormat(t *testing.T) {
	cfg := Default()
	cfg.Logging.Format = "xml"
	require.NoError(t, cfg.validate())
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestGetConfigFilePath_Env(t *testing.T) {
	t.Setenv("CHNG_CONFIG_FILE", "/etc/chngfilter.yaml")
	assert.Equal(t, "/etc/chngfilter.yaml", getConfigFilePath())
}

func TestServerConfig_Addr(t *testing.T) {
	assert.Equal(t, ":8080", Default().Server.Addr())
	assert.Equal(t, "127.0.0.1:9000", ServerConfig{Host: "127.0.0.1", Port: 9000}.Addr())
}
