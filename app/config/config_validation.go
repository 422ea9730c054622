package config

// applyDriverDefaults fills in settings whose default depends on the merged
// driver. Postgres has no default DSN.
func (cfg *StructuredConfig) applyDriverDefaults() {
	if cfg.Storage.Driver == DriverSQLite && cfg.Storage.DSN == "" {
		cfg.Storage.DSN = DefaultSQLiteDSN
	}
}

// validate checks the merged config before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	switch cfg.Storage.Driver {
	case DriverSQLite, DriverPostgres:
		if cfg.Storage.DSN == "" {
			return ErrInvalidStorageConfigs
		}
	case DriverBadger:
		if cfg.Storage.BadgerDir == "" {
			return ErrInvalidStorageConfigs
		}
	default:
		return ErrInvalidStorageConfigs
	}

	return nil
}
