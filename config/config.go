package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/wprescue/wp-rescue/internal/logging"
)

// Config is the full runtime configuration. The original tool compiled its
// paths and allow-list in as constants; here they are read once at startup
// and passed down explicitly.
type Config struct {
	Server struct {
		Host string `mapstructure:"host" json:"host,omitempty"`
		Port int64  `mapstructure:"port" json:"port,omitempty" validate:"min=1,max=65535"`
	} `mapstructure:"server" json:"server"`
	WordPress WordPressConfig `mapstructure:"wordpress" json:"wordpress" validate:"required"`
	// AllowedIPs is the literal client-address allow-list. No CIDR ranges and
	// no proxy-header trust; the peer address must match exactly.
	AllowedIPs []string          `mapstructure:"allowed_ips" json:"allowed_ips" validate:"required,min=1,dive,ip"`
	LogFormat  logging.LogFormat `mapstructure:"log_format" json:"log_format,omitempty"`
	Metrics    struct {
		Enabled bool `mapstructure:"enabled" json:"enabled,omitempty"`
	} `mapstructure:"metrics" json:"metrics"`
}

// WordPressConfig locates the installation being rescued. Root is enough for
// a standard layout; the two overrides cover relocated wp-config.php files
// and non-standard content directories.
type WordPressConfig struct {
	Root        string `mapstructure:"root" json:"root" validate:"required"`
	ConfigPath  string `mapstructure:"config_path" json:"config_path,omitempty"`
	PluginsPath string `mapstructure:"plugins_path" json:"plugins_path,omitempty"`
}

// ConfigFile returns the wp-config.php path, defaulting to the standard
// location under the root.
func (w WordPressConfig) ConfigFile() string {
	if w.ConfigPath != "" {
		return w.ConfigPath
	}
	return filepath.Join(w.Root, "wp-config.php")
}

// PluginsDir returns the plugins directory, defaulting to
// wp-content/plugins under the root.
func (w WordPressConfig) PluginsDir() string {
	if w.PluginsPath != "" {
		return w.PluginsPath
	}
	return filepath.Join(w.Root, "wp-content", "plugins")
}

func GetConfigure() (*Config, error) {
	configName := os.Getenv("WP_RESCUE_CONFIG_NAME")
	if configName == "" {
		configName = "rescue"
	}
	return ReadConfig(configName)
}

func ReadConfig(configName string) (*Config, error) {
	viper.SetConfigName(configName)
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("server.host", "127.0.0.1")
	viper.SetDefault("server.port", 8787)
	viper.SetDefault("allowed_ips", []string{"127.0.0.1", "::1"})
	viper.SetDefault("log_format", string(logging.FormatText))
	viper.SetDefault("metrics.enabled", true)

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("fail to reading config file, %w", err)
	}
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks structural constraints plus the log format, which
// mapstructure passes through unchecked.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	format := c.LogFormat
	if err := (&format).UnmarshalText([]byte(c.LogFormat)); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	c.LogFormat = format
	return nil
}
