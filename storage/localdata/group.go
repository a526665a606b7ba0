package localdata

import (
	"strings"

	"github.com/trezcool/studysync/core/group"
)

type groupRepository struct {
	db *DB
}

func NewGroupRepository(db *DB) group.Repository {
	return &groupRepository{db: db}
}

func (repo *groupRepository) ListGroups() ([]group.Group, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return append([]group.Group(nil), repo.db.groups...), nil
}

func (repo *groupRepository) GetGroup(id string) (group.Group, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, g := range repo.db.groups {
		if g.ID == id {
			return g, nil
		}
	}
	return group.Group{}, group.ErrNotFound
}

func (repo *groupRepository) GetGroupByName(name string) (group.Group, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, g := range repo.db.groups {
		if strings.EqualFold(g.Name, name) {
			return g, nil
		}
	}
	return group.Group{}, group.ErrNotFound
}

func (repo *groupRepository) CreateGroup(g group.Group, creator group.Member) (group.Group, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.groups = append(repo.db.groups, g)
	repo.db.members[g.ID] = []group.Member{creator}
	repo.db.persist(groupsKey, repo.db.groups)
	repo.db.persist(membersKey, repo.db.members)
	return g, nil
}

func (repo *groupRepository) DeleteGroup(id string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	kept := repo.db.groups[:0]
	for _, g := range repo.db.groups {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	repo.db.groups = kept
	delete(repo.db.members, id)
	delete(repo.db.files, id)
	delete(repo.db.chats, id)

	repo.db.persist(groupsKey, repo.db.groups)
	repo.db.persist(membersKey, repo.db.members)
	repo.db.persist(filesKey, repo.db.files)
	repo.db.persist(chatsKey, repo.db.chats)
	return nil
}

func (repo *groupRepository) ListMembers(groupID string) ([]group.Member, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return append([]group.Member(nil), repo.db.members[groupID]...), nil
}

func (repo *groupRepository) AddMember(groupID string, m group.Member) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.members[groupID] = append(repo.db.members[groupID], m)
	repo.db.persist(membersKey, repo.db.members)
	return nil
}

func (repo *groupRepository) RemoveMember(groupID, studentID string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	members := repo.db.members[groupID]
	kept := members[:0]
	for _, m := range members {
		if m.StudentID != studentID {
			kept = append(kept, m)
		}
	}
	repo.db.members[groupID] = kept
	repo.db.persist(membersKey, repo.db.members)
	return nil
}

func (repo *groupRepository) ListFiles(groupID string) ([]group.File, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return append([]group.File(nil), repo.db.files[groupID]...), nil
}

func (repo *groupRepository) AddFile(groupID string, f group.File) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	// most-recent-first
	repo.db.files[groupID] = append([]group.File{f}, repo.db.files[groupID]...)
	repo.db.persist(filesKey, repo.db.files)
	return nil
}

func (repo *groupRepository) RemoveFile(groupID, fileID string) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	files := repo.db.files[groupID]
	kept := files[:0]
	for _, f := range files {
		if f.ID != fileID {
			kept = append(kept, f)
		}
	}
	repo.db.files[groupID] = kept
	repo.db.persist(filesKey, repo.db.files)
	return nil
}

func (repo *groupRepository) ListMessages(groupID string) ([]group.ChatMessage, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return append([]group.ChatMessage(nil), repo.db.chats[groupID]...), nil
}

func (repo *groupRepository) AddMessage(groupID string, m group.ChatMessage) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.chats[groupID] = append(repo.db.chats[groupID], m)
	repo.db.persist(chatsKey, repo.db.chats)
	return nil
}
