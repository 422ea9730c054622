package config

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"
)

// ParseFlags parses serve flags into a partial config. Unset flags stay
// zero so they never override other sources.
//
// Flags:
//
//	-a                 listen address host:port
//	-log-level         zerolog level name
//	-request-timeout   per-request timeout (e.g. 5s)
//	-shutdown-timeout  graceful shutdown timeout
//	-cors-origins      comma separated allowed origins
//	-driver            sqlite, postgres or badger
//	-d                 database DSN
//	-badger-dir        badger data directory
func ParseFlags(args []string) (*StructuredConfig, error) {
	var (
		address         string
		logLevel        string
		requestTimeout  time.Duration
		shutdownTimeout time.Duration
		corsOrigins     string
		driver          string
		dsn             string
		badgerDir       string
	)

	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&address, "a", "", "Net address host:port")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g. 5s)")
	fs.DurationVar(&shutdownTimeout, "shutdown-timeout", 0, "Shutdown timeout (e.g. 5s)")
	fs.StringVar(&corsOrigins, "cors-origins", "", "Comma separated CORS origins")
	fs.StringVar(&driver, "driver", "", "Storage driver: sqlite, postgres or badger")
	fs.StringVar(&dsn, "d", "", "Database DSN")
	fs.StringVar(&badgerDir, "badger-dir", "", "Badger data directory")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	var origins []string
	if corsOrigins != "" {
		for _, origin := range strings.Split(corsOrigins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				origins = append(origins, origin)
			}
		}
	}

	return &StructuredConfig{
		App: App{
			LogLevel: logLevel,
		},
		Server: Server{
			HTTPAddress:     address,
			RequestTimeout:  requestTimeout,
			ShutdownTimeout: shutdownTimeout,
			CORSOrigins:     origins,
		},
		Storage: Storage{
			Driver:    driver,
			DSN:       dsn,
			BadgerDir: badgerDir,
		},
	}, nil
}
