package main

import (
	"github.com/pkg/errors"

	"github.com/trezcool/studysync/core/group"
	"github.com/trezcool/studysync/core/settings"
	"github.com/trezcool/studysync/storage/localdata"
)

const (
	demoStudentNo   = "22-12345"
	demoDisplayName = "Student"
	demoGroupName   = "Study Group A"
)

// seed loads a demo group and default preferences; existing data is kept.
func (cli *commandLine) seed() error {
	settingsSvc := settings.NewService(localdata.NewSettingsRepository(cli.db))
	if s := settingsSvc.Get(); s.DisplayName == "" {
		name := demoDisplayName
		if _, err := settingsSvc.Save(settings.UpdateSettings{DisplayName: &name}); err != nil {
			return errors.Wrap(err, "seeding settings")
		}
	}

	groupSvc := group.NewService(localdata.NewGroupRepository(cli.db), settingsSvc, nil, "")
	if _, err := groupSvc.Create(demoGroupName, demoStudentNo); err != nil && err != group.ErrNameTaken {
		return errors.Wrap(err, "seeding group")
	}
	return nil
}
