// Package commands implements the "db" maintenance subcommands.
package commands

import (
	"context"
	"fmt"
	"os"

	"lotrblog/app/config"
	"lotrblog/app/logger"
	"lotrblog/app/repositories"
)

// HandleCommand runs a db subcommand and returns the process exit code.
// Flags follow the subcommand and its file argument:
//
//	db migrate [flags]
//	db backup <file> [flags]
//	db restore <file> [flags]
func HandleCommand(ctx context.Context, args []string) int {
	if len(args) < 1 {
		printDBHelp()
		return 1
	}

	cmd := args[0]
	switch cmd {
	case "migrate":
		cfg, log, ok := load(args[1:])
		if !ok {
			return 1
		}
		return migrate(ctx, cfg.Storage, log)
	case "backup", "restore":
		if len(args) < 2 {
			fmt.Printf("Error: backup file path required for %s\n", cmd)
			return 1
		}
		cfg, _, ok := load(args[2:])
		if !ok {
			return 1
		}
		if cmd == "backup" {
			return backup(cfg.Storage, args[1])
		}
		return restore(cfg.Storage, args[1])
	case "help":
		printDBHelp()
		return 0
	default:
		fmt.Printf("Unknown db command: %s\n\n", cmd)
		printDBHelp()
		return 1
	}
}

func printDBHelp() {
	helpText := `Usage: lotrblog db <command> [options]

Commands:
  migrate                         Apply the schema migrations (sqlite, postgres)
  backup <file>                   Write a backup of the badger database to file
  restore <file>                  Load a badger backup from file
  help                            Display this help message
`
	fmt.Println(helpText)
}

func load(args []string) (*config.StructuredConfig, *logger.Logger, bool) {
	cfg, err := config.GetStructuredConfig(args)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return nil, nil, false
	}
	return cfg, logger.NewLogger("db", cfg.App.LogLevel), true
}

// migrate applies pending migrations to the configured SQL database.
func migrate(ctx context.Context, cfg config.Storage, log *logger.Logger) int {
	if cfg.Driver == config.DriverBadger {
		fmt.Println("The badger driver has no schema to migrate")
		return 0
	}

	db, err := repositories.OpenSQL(ctx, cfg, log)
	if err != nil {
		fmt.Printf("Failed to open database: %v\n", err)
		return 1
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		fmt.Printf("Failed to migrate database: %v\n", err)
		return 1
	}

	fmt.Println("Database migrated successfully")
	return 0
}

// backup writes a full badger backup to backupFile.
func backup(cfg config.Storage, backupFile string) int {
	if cfg.Driver != config.DriverBadger {
		fmt.Printf("Backup is only supported for the badger driver, not %q\n", cfg.Driver)
		return 1
	}
	if _, err := os.Stat(cfg.BadgerDir); os.IsNotExist(err) {
		fmt.Println("No database exists to backup")
		return 1
	}

	db, err := repositories.OpenBadgerDB(cfg.BadgerDir)
	if err != nil {
		fmt.Printf("Failed to open database: %v\n", err)
		return 1
	}
	defer db.Close()

	f, err := os.Create(backupFile)
	if err != nil {
		fmt.Printf("Failed to create backup file: %v\n", err)
		return 1
	}
	defer f.Close()

	if _, err := db.Backup(f, 0); err != nil {
		fmt.Printf("Failed to backup database: %v\n", err)
		return 1
	}

	fmt.Printf("Database backed up successfully to %s\n", backupFile)
	return 0
}

// restore loads a badger backup into the configured directory.
func restore(cfg config.Storage, backupFile string) int {
	if cfg.Driver != config.DriverBadger {
		fmt.Printf("Restore is only supported for the badger driver, not %q\n", cfg.Driver)
		return 1
	}
	if _, err := os.Stat(backupFile); os.IsNotExist(err) {
		fmt.Printf("Backup file does not exist: %s\n", backupFile)
		return 1
	}

	if err := os.MkdirAll(cfg.BadgerDir, 0o755); err != nil {
		fmt.Printf("Failed to create database directory: %v\n", err)
		return 1
	}

	db, err := repositories.OpenBadgerDB(cfg.BadgerDir)
	if err != nil {
		fmt.Printf("Failed to open database: %v\n", err)
		return 1
	}
	defer db.Close()

	f, err := os.Open(backupFile)
	if err != nil {
		fmt.Printf("Failed to open backup file: %v\n", err)
		return 1
	}
	defer f.Close()

	if err := db.Load(f, 4); err != nil {
		fmt.Printf("Failed to restore database: %v\n", err)
		return 1
	}

	fmt.Println("Database restored successfully")
	return 0
}
