package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zbxreport/internal/logger"
)

func validConfig() *Config {
	return &Config{
		Zabbix: ZabbixConfig{
			Server:   "zbx.example.com/zabbix",
			Username: "reporter",
			Password: "secret",
			Timeout:  30 * time.Second,
		},
		Report: ReportConfig{
			Hosts:    []string{"web01"},
			DaysBack: 31,
			Timezone: "Asia/Yekaterinburg",
			Output:   "/tmp/server_metrics.xlsx",
		},
		Archive: ArchiveConfig{
			Driver: "sqlite",
		},
		Log: logger.Config{
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     28,
			Level:      "info",
		},
	}
}

// TestLoadConfigDefaults tests the built-in defaults
func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.Zabbix.Timeout)
	assert.Empty(t, cfg.Zabbix.Server)
	assert.Empty(t, cfg.Report.Hosts)
	assert.Equal(t, 31, cfg.Report.DaysBack)
	assert.Equal(t, "Asia/Yekaterinburg", cfg.Report.Timezone)
	assert.Equal(t, "/tmp/server_metrics.xlsx", cfg.Report.Output)
	assert.False(t, cfg.Archive.Enabled)
	assert.Equal(t, "sqlite", cfg.Archive.Driver)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 100, cfg.Log.MaxSize)
}

// TestLoadConfigFile tests loading a YAML config file
func TestLoadConfigFile(t *testing.T) {
	content := `
zabbix:
  server: zbx.example.com/zabbix
  username: reporter
  password: secret
  timeout: 10s
report:
  hosts:
    - "KDC (192.168.8.3)"
    - "web01"
  days_back: 7
  timezone: Europe/Moscow
  output: /tmp/report.csv
archive:
  enabled: true
  driver: postgres
  dsn: postgres://archive@localhost/zbxreport
log:
  level: debug
  file: /var/log/zbxreport/zbxreport.log
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "zbx.example.com/zabbix", cfg.Zabbix.Server)
	assert.Equal(t, "reporter", cfg.Zabbix.Username)
	assert.Equal(t, 10*time.Second, cfg.Zabbix.Timeout)
	assert.Equal(t, []string{"KDC (192.168.8.3)", "web01"}, cfg.Report.Hosts)
	assert.Equal(t, 7, cfg.Report.DaysBack)
	assert.Equal(t, "Europe/Moscow", cfg.Report.Timezone)
	assert.Equal(t, "/tmp/report.csv", cfg.Report.Output)
	assert.True(t, cfg.Archive.Enabled)
	assert.Equal(t, "postgres", cfg.Archive.Driver)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/var/log/zbxreport/zbxreport.log", cfg.Log.File)

	require.NoError(t, cfg.Validate())
}

// TestLoadConfigMissingFile tests the error for an unreadable file
func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

// TestLoadConfigEnvOverride tests environment variable binding
func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("ZBXREPORT_ZABBIX_PASSWORD", "hunter2")
	t.Setenv("ZBXREPORT_REPORT_TIMEZONE", "UTC")
	t.Setenv("ZBXREPORT_REPORT_HOSTS", "web01,db01")
	t.Setenv("ZBXREPORT_REPORT_DAYS_BACK", "3")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "hunter2", cfg.Zabbix.Password)
	assert.Equal(t, "UTC", cfg.Report.Timezone)
	assert.Equal(t, []string{"web01", "db01"}, cfg.Report.Hosts)
	assert.Equal(t, 3, cfg.Report.DaysBack)
}

// TestValidate tests validation of resolved configurations
func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:    "missing server",
			mutate:  func(c *Config) { c.Zabbix.Server = "" },
			wantErr: "server is required",
		},
		{
			name:    "missing username",
			mutate:  func(c *Config) { c.Zabbix.Username = "" },
			wantErr: "username is required",
		},
		{
			name:    "missing password",
			mutate:  func(c *Config) { c.Zabbix.Password = "" },
			wantErr: "password is required",
		},
		{
			name:    "no hosts",
			mutate:  func(c *Config) { c.Report.Hosts = nil },
			wantErr: "hosts is required",
		},
		{
			name:    "blank host",
			mutate:  func(c *Config) { c.Report.Hosts = []string{"web01", ""} },
			wantErr: "required",
		},
		{
			name:    "negative days back",
			mutate:  func(c *Config) { c.Report.DaysBack = -1 },
			wantErr: "days_back must be at least 0",
		},
		{
			name:    "unknown timezone",
			mutate:  func(c *Config) { c.Report.Timezone = "Not/AZone" },
			wantErr: "timezone must be a valid IANA timezone",
		},
		{
			name:    "unsupported output extension",
			mutate:  func(c *Config) { c.Report.Output = "/tmp/report.txt" },
			wantErr: "output must end in .xlsx or .csv",
		},
		{
			name: "archive without dsn",
			mutate: func(c *Config) {
				c.Archive.Enabled = true
				c.Archive.DSN = ""
			},
			wantErr: "archive DSN is required",
		},
		{
			name: "archive bad driver",
			mutate: func(c *Config) {
				c.Archive.Enabled = true
				c.Archive.Driver = "oracle"
				c.Archive.DSN = "oracle://archive"
			},
			wantErr: "unsupported archive driver",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Log.Level = "verbose" },
			wantErr: "invalid log level",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)

			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

// TestValidateDisabledArchive tests that a disabled archive skips DSN checks
func TestValidateDisabledArchive(t *testing.T) {
	cfg := validConfig()
	cfg.Archive.Enabled = false
	cfg.Archive.DSN = ""

	assert.NoError(t, cfg.Validate())
}
