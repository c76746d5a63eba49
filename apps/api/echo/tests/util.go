package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/trezcool/elevate/apps/api/echo"
	"github.com/trezcool/elevate/core"
	"github.com/trezcool/elevate/core/profile"
	"github.com/trezcool/elevate/core/subject"
	emailsvc "github.com/trezcool/elevate/services/email"
	"github.com/trezcool/elevate/storage/database/inmem"
	"github.com/trezcool/elevate/tests"
)

type app struct {
	*Server
	conf        *core.Config
	profileRepo profile.Repository
	fileRepo    subject.Repository
	store       *fakeStore
	mail        *emailsvc.ConsoleService
}

func setup(t *testing.T) *app {
	t.Helper()
	conf := testutil.NewConfig()
	logger := testutil.NewLogger()

	// set up DB & repos
	db := inmemdb.Open()
	a := &app{
		conf:        conf,
		profileRepo: inmemdb.NewProfileRepository(db),
		fileRepo:    inmemdb.NewFileRepository(db),
		store:       new(fakeStore),
		mail:        emailsvc.NewConsoleServiceMock(conf),
	}

	validate, translator := core.NewValidator()
	profile.InitValidators(validate, translator)

	// set up server
	a.Server = NewServer(ServerDeps{
		Conf:           conf,
		Logger:         logger,
		ProfileSvc:     profile.NewService(conf, a.profileRepo, a.mail, logger),
		SubjectSvc:     subject.NewService(a.fileRepo, a.store, logger),
		Validate:       validate,
		Translator:     translator,
		DisableReqLogs: true,
	})
	return a
}

type fakeStore struct {
	mu      sync.Mutex
	objects map[string]string
	err     error
}

func (fs *fakeStore) Put(ctx context.Context, key, contentType string, size int64, body io.Reader) (string, error) {
	if fs.err != nil {
		return "", fs.err
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if fs.objects == nil {
		fs.objects = make(map[string]string)
	}
	fs.objects[key] = string(b)
	return "https://files.elevate.test/" + key, nil
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func marshalObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshalObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, fmt.Errorf("%v: %s", err, b1)
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, fmt.Errorf("%v: %s", err, b2)
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	if _, ok := j1.([]interface{}); !ok {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func runTests(t *testing.T, a *app, tests []httpTest) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			a.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
