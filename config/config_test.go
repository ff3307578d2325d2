package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wprescue/wp-rescue/internal/logging"
)

func validConfig() *Config {
	cfg := &Config{}
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 8787
	cfg.WordPress.Root = "/var/www/html"
	cfg.AllowedIPs = []string{"127.0.0.1", "::1"}
	cfg.LogFormat = logging.FormatText
	return cfg
}

func TestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})

	t.Run("empty allow-list rejected", func(t *testing.T) {
		cfg := validConfig()
		cfg.AllowedIPs = nil
		assert.Error(t, cfg.Validate())
	})

	t.Run("non-IP entry rejected", func(t *testing.T) {
		cfg := validConfig()
		cfg.AllowedIPs = []string{"office-router"}
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing wordpress root rejected", func(t *testing.T) {
		cfg := validConfig()
		cfg.WordPress.Root = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("bad log format rejected", func(t *testing.T) {
		cfg := validConfig()
		cfg.LogFormat = "xml"
		assert.Error(t, cfg.Validate())
	})

	t.Run("log format normalized", func(t *testing.T) {
		cfg := validConfig()
		cfg.LogFormat = "JSON"
		require.NoError(t, cfg.Validate())
		assert.Equal(t, logging.FormatJSON, cfg.LogFormat)
	})
}

func TestWordPressPaths(t *testing.T) {
	wp := WordPressConfig{Root: "/var/www/html"}
	assert.Equal(t, filepath.Join("/var/www/html", "wp-config.php"), wp.ConfigFile())
	assert.Equal(t, filepath.Join("/var/www/html", "wp-content", "plugins"), wp.PluginsDir())

	wp.ConfigPath = "/etc/wp/wp-config.php"
	wp.PluginsPath = "/srv/plugins"
	assert.Equal(t, "/etc/wp/wp-config.php", wp.ConfigFile())
	assert.Equal(t, "/srv/plugins", wp.PluginsDir())
}
