package main

import (
	"context"

	"github.com/trezcool/elevate/storage/database"
)

var (
	defaultRunMigrationsFunc = database.RunMigrations
	runMigrationsFunc        = defaultRunMigrationsFunc // mockable
)

func (cli *commandLine) migrate(args []string) error {
	return runMigrationsFunc(context.Background(), cli.db, args[0], args[1:]...)
}
