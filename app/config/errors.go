package config

import "errors"

var (
	// ErrInvalidServerConfigs indicates a missing listen address.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidStorageConfigs indicates an unknown driver or a driver
	// without its DSN or data directory.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
)
