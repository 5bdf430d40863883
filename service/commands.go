package service

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"yatube/app/config"
	"yatube/app/repositories"
)

// HandleCommand runs a subcommand and returns its exit code.
func HandleCommand(args []string) int {
	if len(args) < 1 {
		PrintHelp()
		return 1
	}

	cmd := args[0]
	switch cmd {
	case "serve":
		return RunAppServer(args[1:])
	case "clean":
		return clean()
	case "init":
		return initDb()
	case "backup":
		file := ""
		if len(args) > 1 {
			file = args[1]
		}
		return backup(file)
	case "restore":
		if len(args) < 2 {
			fmt.Println("Error: backup file path required for restore")
			return 1
		}
		return restore(args[1])
	case "user":
		return userCommand(args[1:])
	case "group":
		return groupCommand(args[1:])
	case "post":
		return postCommand(args[1:])
	case "cache":
		return cacheCommand(args[1:])
	case "help":
		PrintHelp()
		return 0
	default:
		fmt.Printf("Unknown command: %s\n\n", cmd)
		PrintHelp()
		return 1
	}
}

// PrintHelp prints help for the subcommands.
func PrintHelp() {
	helpText := `Usage: yatube <command> [options]

Commands:
  serve                                  Run the blog service
  init                                   Initialize a new empty database
  clean                                  Remove the badger database
  backup [file]                          Create a backup of the badger database
  restore <file>                         Restore the badger database from a backup
  user create <username> <password>      Create a user
  user delete <username>                 Delete a user with their posts, comments and follows
  user list                              List users
  group create <slug> <title> [description]
                                         Create a group
  group delete <slug>                    Delete a group, its posts become ungrouped
  post delete <id>                       Delete a post with its comments and image
  cache clear                            Drop every cached page
  version                                Show version information
  help                                   Display this help message
`
	fmt.Println(helpText)
}

// clean removes the badger database.
func clean() int {
	if cfg.Storage != config.StorageBadger {
		fmt.Printf("Error: %v\n", errBadgerOnly)
		return 1
	}
	if _, err := os.Stat(cfg.BadgerPath); os.IsNotExist(err) {
		fmt.Println("Database is already clean (does not exist)")
		return 0
	}

	if !confirm("Are you sure you want to clean the database? This cannot be undone.") {
		fmt.Println("Operation cancelled")
		return 0
	}

	if err := os.RemoveAll(cfg.BadgerPath); err != nil {
		fmt.Printf("Failed to clean database: %v\n", err)
		return 1
	}
	fmt.Println("Database cleaned successfully")
	return 0
}

// initDb creates an empty badger database or migrates the SQL schema.
func initDb() int {
	if cfg.Storage == config.StorageBadger {
		if _, err := os.Stat(cfg.BadgerPath); err == nil {
			fmt.Println("Database already exists. Use 'clean' first if you want to reinitialize.")
			return 0
		}
	}

	store, _, err := openStore()
	if err != nil {
		fmt.Printf("Failed to initialize database: %v\n", err)
		return 1
	}
	defer store.Close()

	fmt.Println("Database initialized successfully")
	return 0
}

// backup writes a full badger backup to file, or to a timestamped file in
// data/backups when file is empty.
func backup(file string) int {
	if cfg.Storage != config.StorageBadger {
		fmt.Printf("Error: %v\n", errBadgerOnly)
		return 1
	}
	if _, err := os.Stat(cfg.BadgerPath); os.IsNotExist(err) {
		fmt.Println("No database exists to backup")
		return 1
	}

	if file == "" {
		backupDir := filepath.Join(filepath.Dir(cfg.BadgerPath), "backups")
		if err := os.MkdirAll(backupDir, 0755); err != nil {
			fmt.Printf("Failed to create backup directory: %v\n", err)
			return 1
		}
		file = filepath.Join(backupDir, fmt.Sprintf("backup_%d.db", time.Now().Unix()))
	}

	store, db, err := openStore()
	if err != nil {
		fmt.Printf("Failed to open database: %v\n", err)
		return 1
	}
	defer store.Close()

	f, err := os.Create(file)
	if err != nil {
		fmt.Printf("Failed to create backup file: %v\n", err)
		return 1
	}
	defer f.Close()

	if err := repositories.BackupBadger(db, f); err != nil {
		fmt.Printf("Failed to backup database: %v\n", err)
		return 1
	}

	fmt.Printf("Database backed up successfully to %s\n", file)
	return 0
}

// restore replaces the badger database with the contents of backupFile.
func restore(backupFile string) int {
	if cfg.Storage != config.StorageBadger {
		fmt.Printf("Error: %v\n", errBadgerOnly)
		return 1
	}
	fi, err := os.Stat(backupFile)
	if os.IsNotExist(err) {
		fmt.Printf("Backup file does not exist: %s\n", backupFile)
		return 1
	}
	if err != nil {
		fmt.Printf("Failed to stat backup file: %v\n", err)
		return 1
	}
	if fi.Size() == 0 {
		fmt.Printf("Backup file is empty: %s\n", backupFile)
		return 1
	}

	if _, err := os.Stat(cfg.BadgerPath); err == nil {
		if !confirm("Existing database found. Do you want to replace it?") {
			fmt.Println("Operation cancelled")
			return 1
		}
		if err := os.RemoveAll(cfg.BadgerPath); err != nil {
			fmt.Printf("Failed to remove existing database: %v\n", err)
			return 1
		}
	}

	store, db, err := openStore()
	if err != nil {
		fmt.Printf("Failed to open database: %v\n", err)
		return 1
	}
	defer store.Close()

	f, err := os.Open(backupFile)
	if err != nil {
		fmt.Printf("Failed to open backup file: %v\n", err)
		return 1
	}
	defer f.Close()

	if err := repositories.RestoreBadger(db, f); err != nil {
		fmt.Printf("Failed to restore database: %v\n", err)
		return 1
	}

	fmt.Println("Database restored successfully")
	return 0
}
