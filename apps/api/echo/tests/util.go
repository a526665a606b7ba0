package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	. "github.com/trezcool/studysync/apps/api/echo"
	"github.com/trezcool/studysync/core"
	"github.com/trezcool/studysync/core/course"
	"github.com/trezcool/studysync/core/group"
	"github.com/trezcool/studysync/core/nav"
	"github.com/trezcool/studysync/core/session"
	"github.com/trezcool/studysync/core/settings"
	"github.com/trezcool/studysync/core/task"
	dummyassist "github.com/trezcool/studysync/services/assist/dummy"
	emailsvc "github.com/trezcool/studysync/services/email"
	"github.com/trezcool/studysync/storage/localdata"
	testutil "github.com/trezcool/studysync/tests"
)

var (
	testDB *localdata.DB // state store behind the server built by setup

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
)

func testConfig() *core.Config {
	return &core.Config{
		Env:                "TEST",
		TestMode:           true,
		AppName:            "StudySync",
		SecretKey:          []byte("test-secret-key"),
		StudentEmailDomain: "students.test",
		Server:             core.ServerConfig{JWTExpirationDelta: time.Hour},
	}
}

func setup(t *testing.T) (Server, ServerDeps) {
	t.Helper()
	emailsvc.ClearSentMessages()

	conf := testConfig()
	logger := testutil.NewLogger()
	db, _ := testutil.OpenDB(t)
	testDB = db

	mailSvc := emailsvc.NewConsoleService(conf, logger)
	settingsSvc := settings.NewService(localdata.NewSettingsRepository(db))

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)

	deps := ServerDeps{
		Conf:        conf,
		Logger:      logger,
		Session:     session.New(),
		Router:      nav.NewRouter(),
		CourseSvc:   course.NewService(localdata.NewCourseRepository(db), dummyassist.NewService()),
		TaskSvc:     task.NewService(localdata.NewTaskRepository(db)),
		GroupSvc:    group.NewService(localdata.NewGroupRepository(db), settingsSvc, mailSvc, conf.StudentEmailDomain),
		SettingsSvc: settingsSvc,
		Validate:    validate,
		Translator:  translator,
	}
	return NewServer(deps), deps
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

// logInStudent drives the login flow for a student and moves the router onto
// the dashboard. Returns the issued token.
func logInStudent(t *testing.T, server Server, studentNo string) string {
	t.Helper()

	req, rec := newRequest(http.MethodPost, "/v1/session/role", marchallObj(t, map[string]string{"role": session.RoleStudent}))
	server.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("choosing role failed: %v %v", rec.Code, rec.Body.String())
	}

	req, rec = newRequest(http.MethodPost, "/v1/session/login", marchallObj(t, map[string]string{"id": studentNo, "password": "pass1234"}))
	server.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %v %v", rec.Code, rec.Body.String())
	}
	var res struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decoding login response: %v", err)
	}

	req, rec = newAuthRequest(http.MethodPost, "/v1/nav/continue", res.Token)
	server.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("continuing to dashboard failed: %v %v", rec.Code, rec.Body.String())
	}
	return res.Token
}

// createGroup creates a group over the API and fails the test on anything
// but a 201.
func createGroup(t *testing.T, server Server, token, name string) group.Group {
	t.Helper()
	req, rec := newAuthRequest(http.MethodPost, "/v1/groups", token, marchallObj(t, map[string]string{"group_name": name}))
	server.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("creating group failed: %v %v", rec.Code, rec.Body.String())
	}
	var g group.Group
	if err := json.Unmarshal(rec.Body.Bytes(), &g); err != nil {
		t.Fatalf("decoding group: %v", err)
	}
	return g
}

// getToken forges a token for an arbitrary identity, bypassing the session
// machine; used to exercise permission checks.
func getToken(t *testing.T, conf *core.Config, role, studentNo string) string {
	t.Helper()
	claims := &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    conf.AppName,
			Subject:   studentNo,
			Audience:  "StudentPortal",
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
		Role:      role,
		StudentNo: studentNo,
	}
	token, err := GenerateToken(claims, conf)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
