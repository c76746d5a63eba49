package main

import (
	"context"
	"log"
	"os"

	"github.com/trezcool/elevate/core"
	"github.com/trezcool/elevate/core/profile"
	emailsvc "github.com/trezcool/elevate/services/email"
	logsvc "github.com/trezcool/elevate/services/logger"
	"github.com/trezcool/elevate/storage/database"
	sqlxrepos "github.com/trezcool/elevate/storage/database/sqlx"
)

func main() {
	conf := core.NewConfig()
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up DB
	ctx := context.Background()
	db, err := database.Open(conf)
	if err != nil {
		logger.Fatal("opening database", err)
	}
	defer db.Close()
	if err = database.Ping(ctx, db); err != nil {
		logger.Fatal("pinging database", err)
	}

	validate, translator := core.NewValidator()
	profile.InitValidators(validate, translator)

	// start CLI
	cli := commandLine{
		db: db.DB,
		profileSvc: profile.NewService(
			conf,
			sqlxrepos.NewProfileRepository(db),
			emailsvc.NewConsoleService(conf, logger),
			logger,
		),
		validate: validate,
		out:      os.Stdout,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error("command failed", err)
		}
		_ = db.Close()
		os.Exit(1)
	}
}
