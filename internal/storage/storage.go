package storage

import (
	"context"

	"github.com/wprescue/wp-rescue/internal/wpconfig"
)

// OptionStore is the slice of the WordPress options table this tool touches:
// the single active_plugins row.
type OptionStore interface {
	// ActivePlugins returns the stored plugin file keys. A missing row or an
	// undecodable stored value is an empty list, not an error.
	ActivePlugins(ctx context.Context) ([]string, error)
	// SaveActivePlugins replaces the stored list with keys.
	SaveActivePlugins(ctx context.Context, keys []string) error
	Close() error
}

// Connector opens a store from per-request credentials. The connection is
// request-scoped: opened at request start, closed at request end, never
// pooled across requests.
type Connector interface {
	Connect(ctx context.Context, creds wpconfig.Credentials) (OptionStore, error)
}
