package service

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"yatube/app/config"
	"yatube/app/repositories"

	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
)

// cfg is the configuration every command runs with. main replaces it with
// the loaded one, tests with their own.
var cfg = config.Default()

// SetConfig sets the configuration used by the commands.
func SetConfig(c config.Config) {
	cfg = c
}

var errBadgerOnly = errors.New("this command needs STORAGE=badger")

// openStore opens the configured storage backend. db is nil for SQL storage.
func openStore() (store *repositories.Store, db *badger.DB, err error) {
	if cfg.Storage == config.StorageSQL {
		gdb, err := repositories.OpenGorm(cfg.SQLDriver, cfg.SQLDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := repositories.Migrate(gdb); err != nil {
			return nil, nil, err
		}
		return repositories.NewGormStore(gdb), nil, nil
	}

	if err := os.MkdirAll(cfg.BadgerPath, 0755); err != nil {
		return nil, nil, errors.Wrap(err, "create database directory")
	}
	db, err = repositories.OpenBadger(cfg.BadgerPath)
	if err != nil {
		return nil, nil, err
	}
	return repositories.NewBadgerStore(db), db, nil
}

// confirm asks a yes/no question on stdin, defaulting to no.
func confirm(question string) bool {
	fmt.Printf("%s [y/N] ", question)
	response, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	response = strings.TrimSpace(response)
	return response == "y" || response == "Y"
}
