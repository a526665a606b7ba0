package main

import (
	"github.com/trezcool/studysync/storage/localdata"
)

// setPassword replaces the stored password hash directly, bypassing the
// old-password check of the settings page.
func (cli *commandLine) setPassword(pwd string) error {
	repo := localdata.NewSettingsRepository(cli.db)
	s := repo.GetSettings()
	if err := s.SetPassword(pwd); err != nil {
		return err
	}
	return repo.SaveSettings(s)
}
