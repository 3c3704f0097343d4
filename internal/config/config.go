package config

import (
	"fmt"
	"strings"
	"time"

	"zbxreport/internal/logger"
	"zbxreport/internal/validator"

	"github.com/spf13/viper"
)

// Config represents the complete report tool configuration
type Config struct {
	Zabbix  ZabbixConfig  `mapstructure:"zabbix"`
	Report  ReportConfig  `mapstructure:"report"`
	Archive ArchiveConfig `mapstructure:"archive"`
	Log     logger.Config `mapstructure:"log"`
}

// ZabbixConfig represents the API connection configuration
type ZabbixConfig struct {
	Server   string        `mapstructure:"server" validate:"required"`
	Username string        `mapstructure:"username" validate:"required"`
	Password string        `mapstructure:"password" validate:"required"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// ReportConfig represents the report collection parameters
type ReportConfig struct {
	Hosts    []string `mapstructure:"hosts" validate:"required,min=1,dive,required"`
	DaysBack int      `mapstructure:"days_back" validate:"gte=0"`
	Timezone string   `mapstructure:"timezone" validate:"required,timezone"`
	Output   string   `mapstructure:"output" validate:"required,outputext"`
}

// ArchiveConfig represents the optional report archive database
type ArchiveConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Driver  string `mapstructure:"driver"`
	DSN     string `mapstructure:"dsn"`
}

// LoadConfig loads configuration from an optional file and the environment.
// Credentials may still be missing afterwards; call Validate once they are
// resolved.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("ZBXREPORT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")

		// Read config file
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// setDefaults sets default values for configuration.
// Every key gets a default so environment overrides bind during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("zabbix.server", "")
	v.SetDefault("zabbix.username", "")
	v.SetDefault("zabbix.password", "")
	v.SetDefault("zabbix.timeout", 30*time.Second)

	v.SetDefault("report.hosts", []string{})
	v.SetDefault("report.days_back", 31)
	v.SetDefault("report.timezone", "Asia/Yekaterinburg")
	v.SetDefault("report.output", "/tmp/server_metrics.xlsx")

	v.SetDefault("archive.enabled", false)
	v.SetDefault("archive.driver", "sqlite")
	v.SetDefault("archive.dsn", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 28)
	v.SetDefault("log.compress", false)
}

// Validate validates the fully resolved configuration
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	if c.Archive.Enabled {
		if err := validateArchiveConfig(&c.Archive); err != nil {
			return fmt.Errorf("invalid archive config: %w", err)
		}
	}

	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("invalid log config: %w", err)
	}

	return nil
}

// validateArchiveConfig validates the archive configuration
func validateArchiveConfig(cfg *ArchiveConfig) error {
	switch cfg.Driver {
	case "sqlite", "mysql", "postgres":
		if cfg.DSN == "" {
			return fmt.Errorf("archive DSN is required")
		}
	default:
		return fmt.Errorf("unsupported archive driver: %s", cfg.Driver)
	}
	return nil
}
