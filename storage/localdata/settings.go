package localdata

import "github.com/trezcool/studysync/core/settings"

type settingsRepository struct {
	db *DB
}

func NewSettingsRepository(db *DB) settings.Repository {
	return &settingsRepository{db: db}
}

func (repo *settingsRepository) GetSettings() settings.Settings {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.db.settings
}

func (repo *settingsRepository) SaveSettings(s settings.Settings) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.settings = s
	repo.db.persist(settingsKey, repo.db.settings)
	return nil
}
