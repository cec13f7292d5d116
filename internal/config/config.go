package config

import (
	"fmt"
	"strings"

	"github.com/bstardust/phonfo/internal/logger"
	"github.com/bstardust/phonfo/pkg/common"
	"github.com/spf13/viper"
)

// Output formats
const (
	OutputText = "text"
	OutputJSON = "json"
)

// EnvPrefix is the prefix for environment overrides, e.g. PHONFO_LOG_LEVEL
const EnvPrefix = "PHONFO"

// Config represents the application configuration
type Config struct {
	LogLevel string       `mapstructure:"log_level"`
	Report   ReportConfig `mapstructure:"report"`
}

// ReportConfig controls what the report prints
type ReportConfig struct {
	Output     string `mapstructure:"output"`
	ShowEXIF   bool   `mapstructure:"show_exif"`
	ShowRawGPS bool   `mapstructure:"show_raw_gps"`
	// MaxFileSize caps the bytes read from disk, 0 disables the check
	MaxFileSize int64 `mapstructure:"max_file_size"`
}

// New creates a new configuration with default values
func New() *Config {
	return &Config{
		LogLevel: "warn",
		Report: ReportConfig{
			Output:      OutputText,
			ShowEXIF:    true,
			ShowRawGPS:  true,
			MaxFileSize: 512 << 20,
		},
	}
}

// SetDefaults registers the defaults of New on v
func SetDefaults(v *viper.Viper) {
	d := New()
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("report.output", d.Report.Output)
	v.SetDefault("report.show_exif", d.Report.ShowEXIF)
	v.SetDefault("report.show_raw_gps", d.Report.ShowRawGPS)
	v.SetDefault("report.max_file_size", d.Report.MaxFileSize)
}

// NewViper returns a viper instance with defaults and environment overrides
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads an optional config file into v and decodes the result
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, common.NewConfigError(fmt.Sprintf("reading %s: %v", path, err))
		}
		logger.Debug("Loaded config from %s", v.ConfigFileUsed())
	}

	cfg := New()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, common.NewConfigError(err.Error())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks option values
func (c *Config) Validate() error {
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return common.NewConfigError(err.Error())
	}

	c.Report.Output = strings.ToLower(c.Report.Output)
	switch c.Report.Output {
	case OutputText, OutputJSON:
	default:
		return common.NewConfigError(fmt.Sprintf("unknown output format %q (want %s or %s)", c.Report.Output, OutputText, OutputJSON))
	}

	if c.Report.MaxFileSize < 0 {
		return common.NewConfigError("max file size must not be negative")
	}
	return nil
}
