// Package config loads the server configuration from defaults,
// environment variables and command-line flags.
package config

import "time"

// Supported storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverBadger   = "badger"
)

// DefaultSQLiteDSN is used when the sqlite driver is selected without a DSN.
const DefaultSQLiteDSN = "data/lotr.db3"

// StructuredConfig is the top-level configuration container. Values are
// merged from defaults, environment variables and flags, in that order,
// with later non-zero values winning.
type StructuredConfig struct {
	App     App     `envPrefix:"APP_"`
	Server  Server  `envPrefix:"SERVER_"`
	Storage Storage `envPrefix:"STORAGE_"`
}

// App holds process-wide settings.
type App struct {
	// LogLevel is a zerolog level name (debug, info, warn, error).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Server holds the HTTP listener settings.
type Server struct {
	// HTTPAddress is the listen address in host:port form.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds the context of every request. Zero disables it.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ShutdownTimeout bounds graceful shutdown.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`

	// CORSOrigins lists allowed origins. Empty disables CORS handling.
	// Env: SERVER_CORS_ORIGINS (comma separated)
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`
}

// Storage selects and locates the persistence backend.
type Storage struct {
	// Driver is one of sqlite, postgres or badger.
	// Env: STORAGE_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the SQL data source name (file path for sqlite).
	// Env: STORAGE_DSN
	DSN string `env:"DSN"`

	// BadgerDir is the badger data directory.
	// Env: STORAGE_BADGER_DIR
	BadgerDir string `env:"BADGER_DIR"`
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			LogLevel: "info",
		},
		Server: Server{
			HTTPAddress:     ":4000",
			ShutdownTimeout: 5 * time.Second,
		},
		Storage: Storage{
			Driver:    DriverSQLite,
			BadgerDir: "data/badger",
		},
	}
}

// GetStructuredConfig loads defaults, then env, then the given flags, and
// validates the result.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(args).
		build()
}
