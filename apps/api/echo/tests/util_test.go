package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/darasahq/darasa/apps/api/echo"
	"github.com/darasahq/darasa/core/classroom"
	"github.com/darasahq/darasa/core/coursework"
	"github.com/darasahq/darasa/core/report"
	"github.com/darasahq/darasa/core/user"
	emailsvc "github.com/darasahq/darasa/services/email"
	dummydb "github.com/darasahq/darasa/storage/database/dummy"
)

var (
	usrRepo    user.Repository
	classRepo  classroom.Repository
	courseRepo coursework.Repository
	reportRepo report.Repository

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
	errForbidden    = httpErr{Error: "permission denied"}
)

// setup builds a Server on a fresh in-memory store.
func setup(t *testing.T) Server {
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	usrRepo = dummydb.NewUserRepository(db)
	classRepo = dummydb.NewClassroomRepository(db)
	courseRepo = dummydb.NewCourseworkRepository(db)
	reportRepo = dummydb.NewReportRepository(db)

	// set up services
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	usrSvc := user.NewServiceMock(usrRepo, mailSvc, conf)
	classSvc := classroom.NewService(classRepo)
	courseSvc := coursework.NewService(courseRepo, classSvc)
	reportSvc := report.NewService(reportRepo, classSvc)

	// set up server
	return NewServer(
		ServerDeps{
			Conf:       conf,
			Logger:     testLogger{},
			UserSvc:    usrSvc,
			ClassSvc:   classSvc,
			CourseSvc:  courseSvc,
			ReportSvc:  reportSvc,
			Validate:   validate,
			Translator: translator,
		},
	)
}

type httpErr struct {
	Error string `json:"error"`
}

type fieldErrs struct {
	Error map[string]string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("x-auth-token", token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, usr user.User) string {
	claims := GetUserClaims(usr)
	token, err := GenerateToken(claims)
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

// nolint
func marchallList(t *testing.T, objs ...interface{}) []byte {
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList() failed: %v", err)
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
