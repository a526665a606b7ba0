package testutil

import (
	"io/ioutil"
	"log"
	"testing"

	"github.com/google/uuid"

	"github.com/trezcool/studysync/core"
	"github.com/trezcool/studysync/core/group"
	inmemkv "github.com/trezcool/studysync/storage/kv/inmem"
	"github.com/trezcool/studysync/storage/localdata"
)

// NewLogger returns a quiet logger for tests.
func NewLogger() core.Logger {
	return core.NewStdLogger(log.New(ioutil.Discard, "", 0))
}

// OpenDB opens a portal state store over a fresh in-memory key-value store.
func OpenDB(t *testing.T) (*localdata.DB, *inmemkv.Store) {
	t.Helper()
	kv := inmemkv.NewStore()
	return localdata.Open(kv, NewLogger()), kv
}

// CreateGroup seeds a group with its creator as admin plus any extra members.
func CreateGroup(t *testing.T, db *localdata.DB, name, creatorID string, members ...string) group.Group {
	t.Helper()
	repo := localdata.NewGroupRepository(db)
	g, err := repo.CreateGroup(
		group.Group{ID: uuid.New().String(), Name: name, CreatorID: creatorID},
		group.Member{StudentID: creatorID, Role: group.RoleAdmin},
	)
	if err != nil {
		t.Fatalf("CreateGroup() failed: %v", err)
	}
	for _, m := range members {
		if err = repo.AddMember(g.ID, group.Member{StudentID: m, Role: group.RoleMember}); err != nil {
			t.Fatalf("CreateGroup() adding member failed: %v", err)
		}
	}
	return g
}
