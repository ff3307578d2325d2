package wpconfig

import (
	"os"
	"regexp"
)

const (
	// DefaultHost is assumed when wp-config.php has no DB_HOST define.
	DefaultHost = "localhost"
	// DefaultTablePrefix is assumed when $table_prefix is not declared.
	DefaultTablePrefix = "wp_"
)

// Credentials are the database settings extracted from wp-config.php.
// They live for one request only and are never cached.
type Credentials struct {
	Host        string
	Name        string
	User        string
	Password    string
	TablePrefix string
}

// Source yields database credentials for the current request.
type Source interface {
	Credentials() (Credentials, error)
}

var (
	reDBName     = regexp.MustCompile(`define\s*\(\s*['"]DB_NAME['"]\s*,\s*'([^']*)'`)
	reDBUser     = regexp.MustCompile(`define\s*\(\s*['"]DB_USER['"]\s*,\s*'([^']*)'`)
	reDBPassword = regexp.MustCompile(`define\s*\(\s*['"]DB_PASSWORD['"]\s*,\s*'([^']*)'`)
	reDBHost     = regexp.MustCompile(`define\s*\(\s*['"]DB_HOST['"]\s*,\s*'([^']*)'`)
	rePrefix     = regexp.MustCompile(`\$table_prefix\s*=\s*'([^']*)'`)
)

// Parse extracts database credentials from wp-config.php content. Every field
// is matched independently, so a malformed or reordered file still yields
// whatever does match. Missing declarations produce empty strings except
// DB_HOST and $table_prefix, which take their WordPress defaults. Values are
// not validated; a wrong database name simply fails at connect time.
func Parse(content string) Credentials {
	creds := Credentials{
		Host:        DefaultHost,
		TablePrefix: DefaultTablePrefix,
	}
	if m := reDBName.FindStringSubmatch(content); m != nil {
		creds.Name = m[1]
	}
	if m := reDBUser.FindStringSubmatch(content); m != nil {
		creds.User = m[1]
	}
	if m := reDBPassword.FindStringSubmatch(content); m != nil {
		creds.Password = m[1]
	}
	if m := reDBHost.FindStringSubmatch(content); m != nil {
		creds.Host = m[1]
	}
	if m := rePrefix.FindStringSubmatch(content); m != nil {
		creds.TablePrefix = m[1]
	}
	return creds
}

// FileSource reads credentials from a wp-config.php on disk.
type FileSource struct {
	Path string
}

var _ Source = (*FileSource)(nil)

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Credentials re-reads the file on every call so that a config edited while
// the tool is running is picked up on the next request. A missing or
// unreadable file is treated as empty content, never as an error; the
// resulting credentials fail at connect time instead.
func (s *FileSource) Credentials() (Credentials, error) {
	content, err := os.ReadFile(s.Path)
	if err != nil {
		return Parse(""), nil
	}
	return Parse(string(content)), nil
}
