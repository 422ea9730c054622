package repositories

import (
	"context"
	"fmt"

	"lotrblog/app/config"
	"lotrblog/app/logger"
)

// Open connects the backend selected by cfg.Driver. SQL backends are
// migrated before they are returned.
func Open(ctx context.Context, cfg config.Storage, log *logger.Logger) (Store, error) {
	switch cfg.Driver {
	case config.DriverBadger:
		store, err := NewBadgerStore(cfg.BadgerDir, log)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.DriverSQLite, config.DriverPostgres:
		db, err := OpenSQL(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			return nil, err
		}
		return NewSQLStore(db), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

// OpenSQL opens the SQL connection for the sqlite or postgres driver
// without migrating it.
func OpenSQL(ctx context.Context, cfg config.Storage, log *logger.Logger) (*DB, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return NewConnectSQLite(ctx, cfg.DSN, log)
	case config.DriverPostgres:
		return NewConnectPostgres(ctx, cfg.DSN, log)
	default:
		return nil, fmt.Errorf("%w: %q is not an sql driver", ErrUnknownDriver, cfg.Driver)
	}
}
