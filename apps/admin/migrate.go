package main

import (
	"errors"

	"github.com/trezcool/goose"

	appfs "github.com/trezcool/studysync/fs"
)

var gooseRunFunc = goose.RunFS // mockable

var errNoDatabase = errors.New("no database configured; migrations need DATABASE_URL")

func (cli *commandLine) migrate(args []string) error {
	if cli.sqlDB == nil {
		return errNoDatabase
	}
	arguments := make([]string, 0)
	if len(args) > 1 {
		arguments = append(arguments, args[1:]...)
	}
	return gooseRunFunc(args[0], cli.sqlDB.DB, appfs.FS, "migrations", arguments...)
}
