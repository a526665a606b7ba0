package localdata

import "github.com/trezcool/studysync/core/course"

type courseRepository struct {
	db *DB
}

func NewCourseRepository(db *DB) course.Repository {
	return &courseRepository{db: db}
}

func (repo *courseRepository) GetNote(key string) string {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.db.notes[key]
}

func (repo *courseRepository) SetNote(key, text string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.notes[key] = text
	repo.db.persist(notesKey, repo.db.notes)
	return nil
}

func (repo *courseRepository) GetSubmission(key string) (string, bool) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	fileName, ok := repo.db.submissions[key]
	return fileName, ok
}

func (repo *courseRepository) SetSubmission(key, fileName string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.submissions[key] = fileName
	repo.db.persist(assignmentsKey, repo.db.submissions)
	return nil
}

func (repo *courseRepository) ClearSubmission(key string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	delete(repo.db.submissions, key)
	repo.db.persist(assignmentsKey, repo.db.submissions)
	return nil
}
