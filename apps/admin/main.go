package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/studysync/core"
	filekv "github.com/trezcool/studysync/storage/kv/file"
	pgkv "github.com/trezcool/studysync/storage/kv/postgres"
	"github.com/trezcool/studysync/storage/localdata"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	workDir, err := os.Getwd()
	errAndDie(err)
	conf := core.NewConfig(workDir)
	stdLogger := core.NewStdLogger(logger)

	// set up the key-value store; Postgres when configured, a JSON file
	// in the data dir otherwise
	var kv core.KeyValueStore
	var sqlDB *sqlx.DB
	if conf.DatabaseURL != "" {
		sqlDB, err = pgkv.Open(conf)
		errAndDie(err)
		defer func() { _ = sqlDB.Close() }()
		errAndDie(pgkv.Migrate(sqlDB))
		kv = pgkv.NewStore(sqlDB, stdLogger)
	} else {
		kv, err = filekv.NewStore(filepath.Join(conf.DataDir, "studysync.json"), stdLogger)
		errAndDie(err)
	}

	// start CLI
	cli := commandLine{
		db:    localdata.Open(kv, stdLogger),
		sqlDB: sqlDB,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
