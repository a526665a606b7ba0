package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	echoapi "github.com/trezcool/studysync/apps/api/echo"
	"github.com/trezcool/studysync/core"
	"github.com/trezcool/studysync/core/course"
	"github.com/trezcool/studysync/core/group"
	"github.com/trezcool/studysync/core/nav"
	"github.com/trezcool/studysync/core/session"
	"github.com/trezcool/studysync/core/settings"
	"github.com/trezcool/studysync/core/task"
	dummyassist "github.com/trezcool/studysync/services/assist/dummy"
	openaiassist "github.com/trezcool/studysync/services/assist/openai"
	emailsvc "github.com/trezcool/studysync/services/email"
	logsvc "github.com/trezcool/studysync/services/logger"
	filekv "github.com/trezcool/studysync/storage/kv/file"
	pgkv "github.com/trezcool/studysync/storage/kv/postgres"
	"github.com/trezcool/studysync/storage/localdata"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	workDir, err := os.Getwd()
	if err != nil {
		log.Fatalf("getting work dir: %v", err)
	}
	conf := core.NewConfig(workDir)

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up the key-value store; Postgres when configured, a JSON file
	// in the data dir otherwise
	kv, closeKV, err := setUpKV(conf, logger)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up store: %v", err), err)
	}
	defer closeKV()

	db := localdata.Open(kv, logger)

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf, logger)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	var assistSvc core.AssistService
	if conf.Assist.APIKey != "" {
		assistSvc = openaiassist.NewService(conf, logger)
	} else {
		assistSvc = dummyassist.NewService()
	}

	settingsSvc := settings.NewService(localdata.NewSettingsRepository(db))
	courseSvc := course.NewService(localdata.NewCourseRepository(db), assistSvc)
	taskSvc := task.NewService(localdata.NewTaskRepository(db))
	groupSvc := group.NewService(localdata.NewGroupRepository(db), settingsSvc, mailSvc, conf.StudentEmailDomain)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:        conf,
			Logger:      logger,
			Session:     session.New(),
			Router:      nav.NewRouter(),
			CourseSvc:   courseSvc,
			TaskSvc:     taskSvc,
			GroupSvc:    groupSvc,
			SettingsSvc: settingsSvc,
			Validate:    validate,
			Translator:  translator,
		},
	)
	server.Start()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func setUpKV(conf *core.Config, logger core.Logger) (core.KeyValueStore, func(), error) {
	if conf.DatabaseURL != "" {
		db, err := pgkv.Open(conf)
		if err != nil {
			return nil, nil, err
		}
		if err = pgkv.Migrate(db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return pgkv.NewStore(db, logger), func() { _ = db.Close() }, nil
	}

	store, err := filekv.NewStore(filepath.Join(conf.DataDir, "studysync.json"), logger)
	if err != nil {
		return nil, nil, err
	}
	return store, func() {}, nil
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
