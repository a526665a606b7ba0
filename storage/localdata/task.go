package localdata

import "github.com/trezcool/studysync/core/task"

type taskRepository struct {
	db *DB
}

func NewTaskRepository(db *DB) task.Repository {
	return &taskRepository{db: db}
}

func (repo *taskRepository) ListTasks() ([]task.Task, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return append([]task.Task(nil), repo.db.tasks...), nil
}

func (repo *taskRepository) AddTask(t task.Task) (task.Task, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.tasks = append(repo.db.tasks, t)
	repo.db.persist(sharedTasksKey, repo.db.tasks)
	return t, nil
}

func (repo *taskRepository) GetTask(id string) (task.Task, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, t := range repo.db.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return task.Task{}, task.ErrNotFound
}

func (repo *taskRepository) UpdateTask(t task.Task) (task.Task, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for i := range repo.db.tasks {
		if repo.db.tasks[i].ID == t.ID {
			repo.db.tasks[i] = t
			repo.db.persist(sharedTasksKey, repo.db.tasks)
			return t, nil
		}
	}
	return task.Task{}, task.ErrNotFound
}
