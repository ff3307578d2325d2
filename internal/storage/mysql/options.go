package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/wprescue/wp-rescue/internal/phpserial"
)

// ActivePluginsOption is the option_name of the row holding the list of
// active plugin entry files.
const ActivePluginsOption = "active_plugins"

// ActivePlugins reads the active_plugins row. A missing row or a value that
// does not decode as a PHP string array yields an empty list: the tool
// prefers rendering an all-inactive page over refusing to load.
func (b *Backend) ActivePlugins(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf(
		`SELECT option_value FROM %s WHERE option_name = ? LIMIT 1`,
		b.optionsTable(),
	)

	var raw string
	err := b.db.QueryRowContext(ctx, query, ActivePluginsOption).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s option: %w", ActivePluginsOption, err)
	}

	keys, err := phpserial.UnmarshalStringSlice(raw)
	if err != nil {
		b.logger.WithError(err).Warnf("stored %s value is not a plugin list, treating as empty", ActivePluginsOption)
		return nil, nil
	}
	return keys, nil
}

// SaveActivePlugins re-encodes keys values-only and updates the row in
// place. One UPDATE, no transaction; a concurrent writer wins or loses on
// raw ordering, same as the platform itself.
func (b *Backend) SaveActivePlugins(ctx context.Context, keys []string) error {
	query := fmt.Sprintf(
		`UPDATE %s SET option_value = ? WHERE option_name = ?`,
		b.optionsTable(),
	)

	_, err := b.db.ExecContext(ctx, query, phpserial.MarshalStringSlice(keys), ActivePluginsOption)
	if err != nil {
		return fmt.Errorf("failed to update %s option: %w", ActivePluginsOption, err)
	}
	return nil
}
