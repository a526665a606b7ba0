package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/studysync/core/group"
	"github.com/trezcool/studysync/core/session"
	emailsvc "github.com/trezcool/studysync/services/email"
	testutil "github.com/trezcool/studysync/tests"
)

func TestGroups_createAndRetrieve(t *testing.T) {
	server, _ := setup(t)
	token := logInStudent(t, server, "22-12345")

	g := createGroup(t, server, token, "Math Club")
	require.NotEmpty(t, g.ID)
	assert.Equal(t, "Math Club", g.Name)
	assert.Equal(t, "22-12345", g.CreatorID)

	req, rec := newAuthRequest(http.MethodGet, "/v1/groups/"+g.ID, token)
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var detail group.Detail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	require.Len(t, detail.Members, 1)
	assert.Equal(t, "22-12345", detail.Members[0].StudentID)
	assert.Equal(t, group.RoleAdmin, detail.Members[0].Role)

	req, rec = newAuthRequest(http.MethodGet, "/v1/groups/no-such-group", token)
	server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// a body without group_name never reaches the service
	req, rec = newAuthRequest(http.MethodPost, "/v1/groups", token, marchallObj(t, map[string]string{}))
	server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGroups_duplicateNameIsCaseInsensitive(t *testing.T) {
	server, _ := setup(t)
	token := logInStudent(t, server, "22-12345")
	createGroup(t, server, token, "Math Club")

	req, rec := newAuthRequest(http.MethodPost, "/v1/groups", token, marchallObj(t, map[string]string{"group_name": "math club"}))
	server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusConflict, rec.Code)

	req, rec = newAuthRequest(http.MethodGet, "/v1/groups", token)
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var groups []group.Group
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &groups))
	assert.Len(t, groups, 1)
}

func TestGroups_deleteRequiresCreator(t *testing.T) {
	server, deps := setup(t)
	token := logInStudent(t, server, "22-12345")
	g := createGroup(t, server, token, "Math Club")

	otherToken := getToken(t, deps.Conf, session.RoleStudent, "22-54321")
	req, rec := newAuthRequest(http.MethodDelete, "/v1/groups/"+g.ID, otherToken)
	server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req, rec = newAuthRequest(http.MethodDelete, "/v1/groups/"+g.ID, token)
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	req, rec = newAuthRequest(http.MethodGet, "/v1/groups/"+g.ID, token)
	server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGroups_invite(t *testing.T) {
	server, _ := setup(t)
	token := logInStudent(t, server, "22-12345")
	g := createGroup(t, server, token, "Math Club")

	req, rec := newAuthRequest(http.MethodPost, "/v1/groups/"+g.ID+"/invite", token, marchallObj(t, map[string]string{"student_no": "not-a-student"}))
	server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req, rec = newAuthRequest(http.MethodPost, "/v1/groups/"+g.ID+"/invite", token, marchallObj(t, map[string]string{"student_no": "22-54321"}))
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	var m group.Member
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	assert.Equal(t, group.RoleMember, m.Role)

	// inviting the same student again conflicts
	req, rec = newAuthRequest(http.MethodPost, "/v1/groups/"+g.ID+"/invite", token, marchallObj(t, map[string]string{"student_no": "22-54321"}))
	server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGroups_inviteNotifiesWhenEnabled(t *testing.T) {
	server, _ := setup(t)
	token := logInStudent(t, server, "22-12345")
	g := createGroup(t, server, token, "Math Club")

	// notifications are off by default
	req, rec := newAuthRequest(http.MethodPost, "/v1/groups/"+g.ID+"/invite", token, marchallObj(t, map[string]string{"student_no": "22-11111"}))
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Empty(t, emailsvc.SentMessages)

	req, rec = newAuthRequest(http.MethodPut, "/v1/settings", token, marchallObj(t, map[string]interface{}{"email_notifications": true}))
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req, rec = newAuthRequest(http.MethodPost, "/v1/groups/"+g.ID+"/invite", token, marchallObj(t, map[string]string{"student_no": "22-54321"}))
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, emailsvc.SentMessages, 1)
	assert.Equal(t, "22-54321@students.test", emailsvc.SentMessages[0].To[0].Address)
}

func TestGroups_leave(t *testing.T) {
	server, deps := setup(t)
	token := logInStudent(t, server, "22-12345")
	g := testutil.CreateGroup(t, testDB, "Math Club", "22-12345", "22-54321")

	memberToken := getToken(t, deps.Conf, session.RoleStudent, "22-54321")
	req, rec := newAuthRequest(http.MethodPost, "/v1/groups/"+g.ID+"/leave", memberToken)
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	// leaving again is a no-op
	req, rec = newAuthRequest(http.MethodPost, "/v1/groups/"+g.ID+"/leave", memberToken)
	server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	req, rec = newAuthRequest(http.MethodGet, "/v1/groups/"+g.ID, token)
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var detail group.Detail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Len(t, detail.Members, 1)
}

func TestGroups_files(t *testing.T) {
	server, deps := setup(t)
	token := logInStudent(t, server, "22-12345")
	g := createGroup(t, server, token, "Math Club")

	upload := func(name string) group.File {
		req, rec := newAuthRequest(http.MethodPost, "/v1/groups/"+g.ID+"/files", token, marchallObj(t, map[string]string{"file_name": name}))
		server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code)
		var f group.File
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &f))
		return f
	}
	a := upload("a.pdf")
	upload("b.pdf")

	// most-recent-first
	req, rec := newAuthRequest(http.MethodGet, "/v1/groups/"+g.ID, token)
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var detail group.Detail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	require.Len(t, detail.Files, 2)
	assert.Equal(t, "b.pdf", detail.Files[0].Name)
	assert.Equal(t, "a.pdf", detail.Files[1].Name)

	// neither uploader nor creator: forbidden
	otherToken := getToken(t, deps.Conf, session.RoleStudent, "22-54321")
	req, rec = newAuthRequest(http.MethodDelete, "/v1/groups/"+g.ID+"/files/"+a.ID, otherToken)
	server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req, rec = newAuthRequest(http.MethodDelete, "/v1/groups/"+g.ID+"/files/"+a.ID, token)
	server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestGroups_chat(t *testing.T) {
	server, _ := setup(t)
	token := logInStudent(t, server, "22-12345")
	g := createGroup(t, server, token, "Math Club")

	req, rec := newAuthRequest(http.MethodPost, "/v1/groups/"+g.ID+"/messages", token, marchallObj(t, map[string]string{"message": "   "}))
	server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req, rec = newAuthRequest(http.MethodPost, "/v1/groups/"+g.ID+"/messages", token, marchallObj(t, map[string]string{}))
	server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	for _, text := range []string{"hello", "world"} {
		req, rec = newAuthRequest(http.MethodPost, "/v1/groups/"+g.ID+"/messages", token, marchallObj(t, map[string]string{"message": text}))
		server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	// oldest-first
	req, rec = newAuthRequest(http.MethodGet, "/v1/groups/"+g.ID, token)
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var detail group.Detail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	require.Len(t, detail.Messages, 2)
	assert.Equal(t, "hello", detail.Messages[0].Message)
	assert.Equal(t, "world", detail.Messages[1].Message)
	assert.Equal(t, "22-12345", detail.Messages[0].SenderID)
}
