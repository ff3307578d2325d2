package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"

	"github.com/wprescue/wp-rescue/internal/storage"
	"github.com/wprescue/wp-rescue/internal/wpconfig"
)

var _ storage.Connector = (*Connector)(nil)
var _ storage.OptionStore = (*Backend)(nil)

const connectTimeout = 5 * time.Second

// Table prefixes are interpolated into query text (identifiers cannot be
// bound), so anything beyond WordPress's own prefix alphabet is rejected.
var validPrefix = regexp.MustCompile(`^[A-Za-z0-9_]*$`)

// Connector opens request-scoped connections to the WordPress database.
type Connector struct {
	logger *logrus.Logger
}

func NewConnector(logger *logrus.Logger) *Connector {
	return &Connector{logger: logger}
}

// Connect dials the database described by creds and verifies the connection
// with a ping. Callers treat a failure here as degraded read-only mode, so
// the error is returned as-is rather than retried.
func (c *Connector) Connect(ctx context.Context, creds wpconfig.Credentials) (storage.OptionStore, error) {
	if !validPrefix.MatchString(creds.TablePrefix) {
		return nil, fmt.Errorf("invalid table prefix %q", creds.TablePrefix)
	}

	cfg := mysql.NewConfig()
	cfg.User = creds.User
	cfg.Passwd = creds.Password
	cfg.Net = "tcp"
	cfg.Addr = creds.Host
	cfg.DBName = creds.Name

	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}

	return &Backend{db: db, prefix: creds.TablePrefix, logger: c.logger}, nil
}

// Backend reads and writes the active_plugins option over one live
// connection.
type Backend struct {
	db     *sql.DB
	prefix string
	logger *logrus.Logger
}

func (b *Backend) Close() error {
	return b.db.Close()
}

func (b *Backend) optionsTable() string {
	return b.prefix + "options"
}
