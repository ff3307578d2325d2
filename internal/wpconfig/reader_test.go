package wpconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Credentials
	}{
		{
			name: "full config",
			content: `<?php
define( 'DB_NAME', 'wordpress' );
define( 'DB_USER', 'wp' );
define( 'DB_PASSWORD', 's3cret' );
define( 'DB_HOST', 'db.internal:3306' );
$table_prefix = 'site1_';
`,
			want: Credentials{
				Host:        "db.internal:3306",
				Name:        "wordpress",
				User:        "wp",
				Password:    "s3cret",
				TablePrefix: "site1_",
			},
		},
		{
			name: "missing host and prefix take defaults",
			content: `<?php
define('DB_NAME', 'wp_test');
define('DB_USER', 'root');
define('DB_PASSWORD', '');
`,
			want: Credentials{
				Host:        "localhost",
				Name:        "wp_test",
				User:        "root",
				Password:    "",
				TablePrefix: "wp_",
			},
		},
		{
			name:    "empty content",
			content: "",
			want: Credentials{
				Host:        "localhost",
				TablePrefix: "wp_",
			},
		},
		{
			name: "reordered and partially malformed",
			content: `$table_prefix = 'x_';
define( 'DB_PASSWORD' 'broken-no-comma' );
define( 'DB_USER', 'admin' );
`,
			want: Credentials{
				Host:        "localhost",
				User:        "admin",
				TablePrefix: "x_",
			},
		},
		{
			name:    "double quoted constant name",
			content: `define( "DB_NAME", 'quoted' );`,
			want: Credentials{
				Host:        "localhost",
				Name:        "quoted",
				TablePrefix: "wp_",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.content))
		})
	}
}

func TestFileSource(t *testing.T) {
	t.Run("existing file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "wp-config.php")
		err := os.WriteFile(path, []byte(`<?php
define('DB_NAME', 'wp_test');
define('DB_USER', 'root');
`), 0o600)
		require.NoError(t, err)

		creds, err := NewFileSource(path).Credentials()
		require.NoError(t, err)
		assert.Equal(t, "wp_test", creds.Name)
		assert.Equal(t, "root", creds.User)
		assert.Equal(t, "localhost", creds.Host)
		assert.Equal(t, "wp_", creds.TablePrefix)
	})

	t.Run("missing file yields defaults, not an error", func(t *testing.T) {
		creds, err := NewFileSource(filepath.Join(t.TempDir(), "nope.php")).Credentials()
		require.NoError(t, err)
		assert.Equal(t, Credentials{Host: "localhost", TablePrefix: "wp_"}, creds)
	})
}
