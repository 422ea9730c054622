package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"lotrblog/app/commands"
	"lotrblog/app/config"
	"lotrblog/app/logger"
	"lotrblog/app/repositories"
	"lotrblog/app/routes"
	"lotrblog/app/server"
)

const CliVersion = "1.0.0"

var exit = os.Exit

func main() {
	RealMain()
}

// RealMain dispatches the subcommand named in os.Args.
func RealMain() {
	if len(os.Args) < 2 {
		printHelp()
		exit(1)
		return
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("lotrblog version %s\n", CliVersion)
	case "serve":
		if code := serve(os.Args[2:]); code != 0 {
			exit(code)
		}
	case "db":
		if code := commands.HandleCommand(context.Background(), os.Args[2:]); code != 0 {
			exit(code)
		}
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		exit(1)
	}
}

func printHelp() {
	helpText := `Usage: lotrblog <command> [options]
Commands:
  help                           Display this help message.
  version                        Show version information.
  serve [options]                Run the posts API server.
        -a <host:port>           Listen address (SERVER_ADDRESS, default :4000)
        -driver <name>           sqlite, postgres or badger (STORAGE_DRIVER)
        -d <dsn>                 SQL data source (STORAGE_DSN)
        -badger-dir <dir>        Badger directory (STORAGE_BADGER_DIR)
        -log-level <level>       Log level (APP_LOG_LEVEL)
        -request-timeout <dur>   Per-request timeout (SERVER_REQUEST_TIMEOUT)
        -shutdown-timeout <dur>  Graceful shutdown timeout (SERVER_SHUTDOWN_TIMEOUT)
        -cors-origins <list>     Allowed CORS origins (SERVER_CORS_ORIGINS)
  db migrate [options]           Apply the SQL schema migrations.
  db backup <file> [options]     Back up the badger database.
  db restore <file> [options]    Restore the badger database from a backup.
`
	fmt.Println(helpText)
}

// serve runs the API until SIGINT or SIGTERM and returns the exit code.
func serve(args []string) int {
	cfg, err := config.GetStructuredConfig(args)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return 1
	}

	log := logger.NewLogger("server", cfg.App.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := repositories.Open(ctx, cfg.Storage, log)
	if err != nil {
		log.Err(err).Str("driver", cfg.Storage.Driver).Msg("failed to open store")
		return 1
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Err(err).Msg("failed to close store")
		}
	}()

	srv := server.NewServer(routes.Setup(store, cfg.Server, log), cfg.Server, log)
	if err := srv.Run(ctx); err != nil {
		log.Err(err).Msg("server stopped with error")
		return 1
	}
	return 0
}
