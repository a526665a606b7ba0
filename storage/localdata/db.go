package localdata

import (
	"sync"

	"github.com/google/uuid"

	"github.com/trezcool/studysync/core"
	"github.com/trezcool/studysync/core/group"
	"github.com/trezcool/studysync/core/settings"
	"github.com/trezcool/studysync/core/task"
)

// Storage keys; stable across sessions and releases.
const (
	notesKey       = "studysync_notes"
	assignmentsKey = "studysync_assignments"
	sharedTasksKey = "studysync_shared_tasks"
	groupsKey      = "studysync_groups_data"
	membersKey     = "studysync_group_members"
	filesKey       = "studysync_group_files"
	chatsKey       = "studysync_group_chats"
	settingsKey    = "studysync_settings"
)

// DB owns every persisted collection in memory and mirrors the owning
// collection to the key-value store synchronously on every mutation.
// Persistence failures are logged and never roll back the in-memory effect.
type DB struct {
	mutex  sync.RWMutex
	kv     core.KeyValueStore
	logger core.Logger

	notes       map[string]string
	submissions map[string]string
	tasks       []task.Task
	groups      []group.Group
	members     map[string][]group.Member
	files       map[string][]group.File
	chats       map[string][]group.ChatMessage
	settings    settings.Settings
}

// Open loads all collections from the store, falling back to defaults for
// missing or corrupt keys. The shared task list seeds the demo tasks on a
// fresh profile.
func Open(kv core.KeyValueStore, logger core.Logger) *DB {
	db := &DB{
		kv:          kv,
		logger:      logger,
		notes:       make(map[string]string),
		submissions: make(map[string]string),
		tasks:       seedTasks(),
		groups:      make([]group.Group, 0),
		members:     make(map[string][]group.Member),
		files:       make(map[string][]group.File),
		chats:       make(map[string][]group.ChatMessage),
	}
	kv.Load(notesKey, &db.notes)
	kv.Load(assignmentsKey, &db.submissions)
	kv.Load(sharedTasksKey, &db.tasks)
	kv.Load(groupsKey, &db.groups)
	kv.Load(membersKey, &db.members)
	kv.Load(filesKey, &db.files)
	kv.Load(chatsKey, &db.chats)
	kv.Load(settingsKey, &db.settings)
	return db
}

func seedTasks() []task.Task {
	return []task.Task{
		{ID: uuid.New().String(), Title: "Math Homework", DueDate: "2023-09-17", Completed: true},
		{ID: uuid.New().String(), Title: "Science Quiz", DueDate: "2023-09-18"},
		{ID: uuid.New().String(), Title: "English Essay", DueDate: "2023-09-20", Completed: true},
	}
}

// persist mirrors one collection; best-effort by contract.
func (db *DB) persist(key string, val interface{}) {
	if err := db.kv.Save(key, val); err != nil {
		db.logger.Warn("persisting "+key+" failed; in-memory state kept", err)
	}
}

// Reset clears every collection (tasks back to the demo seeds) and persists.
func (db *DB) Reset() {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	db.notes = make(map[string]string)
	db.submissions = make(map[string]string)
	db.tasks = seedTasks()
	db.groups = make([]group.Group, 0)
	db.members = make(map[string][]group.Member)
	db.files = make(map[string][]group.File)
	db.chats = make(map[string][]group.ChatMessage)
	db.settings = settings.Settings{}

	db.persist(notesKey, db.notes)
	db.persist(assignmentsKey, db.submissions)
	db.persist(sharedTasksKey, db.tasks)
	db.persist(groupsKey, db.groups)
	db.persist(membersKey, db.members)
	db.persist(filesKey, db.files)
	db.persist(chatsKey, db.chats)
	db.persist(settingsKey, db.settings)
}
