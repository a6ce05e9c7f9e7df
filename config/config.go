package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all application settings. Values come from
// labstock.yaml in the working directory or ~/.labstock, overridable
// through LABSTOCK_* environment variables.
type Config struct {
	SpreadsheetID   string `mapstructure:"spreadsheet_id"`
	SpreadsheetName string `mapstructure:"spreadsheet_name"`
	CredentialsFile string `mapstructure:"credentials_file"`

	MirrorDSN string `mapstructure:"mirror_dsn"`

	CameraDevice   int `mapstructure:"camera_device"`
	ScanIntervalMS int `mapstructure:"scan_interval_ms"`

	ExportDir string `mapstructure:"export_dir"`

	SMTPHost        string `mapstructure:"smtp_host"`
	SMTPPort        int    `mapstructure:"smtp_port"`
	SMTPUser        string `mapstructure:"smtp_user"`
	SMTPPassword    string `mapstructure:"smtp_password"`
	NotifyRecipient string `mapstructure:"notify_recipient"`

	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`
}

const configName = "labstock"

// Every key needs a default, even an empty one: viper.Unmarshal only
// sees keys it knows about, and AutomaticEnv alone does not register
// them.
func setDefaults(v *viper.Viper) {
	v.SetDefault("spreadsheet_id", "")
	v.SetDefault("spreadsheet_name", "Common Stock")
	v.SetDefault("credentials_file", "gs_credentials.json")
	v.SetDefault("mirror_dsn", "./labstock.db?_journal_mode=WAL&_busy_timeout=5000")
	v.SetDefault("camera_device", 0)
	v.SetDefault("scan_interval_ms", 100)
	v.SetDefault("export_dir", "exports")
	v.SetDefault("smtp_host", "")
	v.SetDefault("smtp_port", 465)
	v.SetDefault("smtp_user", "")
	v.SetDefault("smtp_password", "")
	v.SetDefault("notify_recipient", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "app.log")
}

// Load reads the configuration. A missing config file is not an error;
// defaults and environment variables still apply.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.labstock")
	v.SetEnvPrefix("LABSTOCK")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}
