package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-task-tracker/internal/application"
	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
	"github.com/oksasatya/go-task-tracker/internal/infrastructure/memory"
	handlers "github.com/oksasatya/go-task-tracker/internal/interface/http"
	"github.com/oksasatya/go-task-tracker/internal/router"
	"github.com/oksasatya/go-task-tracker/internal/router/modules"
	"github.com/oksasatya/go-task-tracker/pkg/helpers"
	"github.com/oksasatya/go-task-tracker/pkg/validation"
)

// newTestRouter assembles the real route surface over in-memory repositories.
// No redis is wired, so the rate limiters pass everything through.
func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	validation.Init()

	users := memory.NewUserRepository()
	tasks := memory.NewTaskRepository()
	jwt := helpers.NewJWTManager("testsecret", time.Hour)

	authH := handlers.NewAuthHandler(application.NewAuthService(users, jwt, nil), nil)
	taskH := handlers.NewTaskHandler(application.NewTaskService(tasks, nil), nil)

	r := gin.New()
	reg := router.NewRegistry(r)
	reg.Add(modules.NewAuthModule(authH))
	reg.Add(modules.NewTaskModule(taskH, jwt))
	reg.RegisterAll()
	return r
}

func doJSON(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerBody(email string) map[string]any {
	return map[string]any{
		"first_name": "John",
		"last_name":  "Doe",
		"phone":      "0123456789",
		"email":      email,
		"dob":        "1990-01-01",
		"password":   "secret1",
	}
}

func registerAndLogin(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	if w := doJSON(r, http.MethodPost, "/auth/register", "", registerBody(email)); w.Code != http.StatusCreated {
		t.Fatalf("register: status = %d, body %s", w.Code, w.Body.String())
	}
	w := doJSON(r, http.MethodPost, "/auth/login", "", map[string]any{"email": email, "password": "secret1"})
	if w.Code != http.StatusOK {
		t.Fatalf("login: status = %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.AccessToken == "" {
		t.Fatalf("login response %s has no access_token", w.Body.String())
	}
	return resp.AccessToken
}

func listTasks(t *testing.T, r *gin.Engine, token string) []map[string]any {
	t.Helper()
	w := doJSON(r, http.MethodGet, "/task/tasks", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: status = %d, body %s", w.Code, w.Body.String())
	}
	var tasks []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &tasks); err != nil {
		t.Fatalf("list body %s does not decode: %v", w.Body.String(), err)
	}
	return tasks
}

func TestRegisterLoginCreateListDeleteFlow(t *testing.T) {
	r := newTestRouter()
	token := registerAndLogin(t, r, "a@x.com")

	w := doJSON(r, http.MethodPost, "/task/tasks", token, map[string]any{"title": "buy milk"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status = %d, body %s", w.Code, w.Body.String())
	}
	var created struct {
		Message string `json:"message"`
		Task    struct {
			ID     int64  `json:"id"`
			Title  string `json:"title"`
			Status string `json:"status"`
		} `json:"task"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("create body %s does not decode: %v", w.Body.String(), err)
	}
	if created.Task.ID == 0 || created.Task.Title != "buy milk" || created.Task.Status != "pending" {
		t.Fatalf("unexpected created task: %+v", created.Task)
	}

	tasks := listTasks(t, r, token)
	if len(tasks) != 1 {
		t.Fatalf("list has %d tasks, want 1", len(tasks))
	}

	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/task/tasks/%d", created.Task.ID), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: status = %d, body %s", w.Code, w.Body.String())
	}

	if tasks = listTasks(t, r, token); len(tasks) != 0 {
		t.Fatalf("list after delete has %d tasks, want 0", len(tasks))
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	r := newTestRouter()
	if w := doJSON(r, http.MethodPost, "/auth/register", "", registerBody("a@x.com")); w.Code != http.StatusCreated {
		t.Fatalf("first register: status = %d", w.Code)
	}
	w := doJSON(r, http.MethodPost, "/auth/register", "", registerBody("a@x.com"))
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate register: status = %d, want 409", w.Code)
	}
}

func TestRegisterValidationErrors(t *testing.T) {
	r := newTestRouter()
	body := registerBody("bad-email")
	body["phone"] = "123"   // not 10 chars
	body["password"] = "ab" // under 6 chars
	w := doJSON(r, http.MethodPost, "/auth/register", "", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var resp struct {
		Errors map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("body %s does not decode: %v", w.Body.String(), err)
	}
	for _, field := range []string{"email", "phone", "password"} {
		if _, ok := resp.Errors[field]; !ok {
			t.Fatalf("errors %v missing field %q", resp.Errors, field)
		}
	}
}

// Unknown email and wrong password must produce byte-identical bodies.
func TestLoginFailureBodiesAreUniform(t *testing.T) {
	r := newTestRouter()
	if w := doJSON(r, http.MethodPost, "/auth/register", "", registerBody("a@x.com")); w.Code != http.StatusCreated {
		t.Fatalf("register: status = %d", w.Code)
	}

	wrongPwd := doJSON(r, http.MethodPost, "/auth/login", "", map[string]any{"email": "a@x.com", "password": "nope123"})
	noUser := doJSON(r, http.MethodPost, "/auth/login", "", map[string]any{"email": "b@x.com", "password": "secret1"})

	if wrongPwd.Code != http.StatusUnauthorized || noUser.Code != http.StatusUnauthorized {
		t.Fatalf("statuses = %d/%d, want 401/401", wrongPwd.Code, noUser.Code)
	}
	if wrongPwd.Body.String() != noUser.Body.String() {
		t.Fatalf("failure bodies differ: %s vs %s", wrongPwd.Body.String(), noUser.Body.String())
	}
}

// unavailableUserRepo fails every call the way a lost DB connection would.
type unavailableUserRepo struct{}

func (unavailableUserRepo) Create(context.Context, *entity.User) error { return errConnRefused }
func (unavailableUserRepo) GetByID(context.Context, int64) (*entity.User, error) {
	return nil, errConnRefused
}
func (unavailableUserRepo) GetByEmail(context.Context, string) (*entity.User, error) {
	return nil, errConnRefused
}

var errConnRefused = errors.New("connection refused")

// A storage outage during login must surface as an opaque 500, not as a
// credential rejection.
func TestLoginStorageFailureReturns500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	validation.Init()

	jwt := helpers.NewJWTManager("testsecret", time.Hour)
	authH := handlers.NewAuthHandler(application.NewAuthService(unavailableUserRepo{}, jwt, nil), nil)

	r := gin.New()
	reg := router.NewRegistry(r)
	reg.Add(modules.NewAuthModule(authH))
	reg.RegisterAll()

	w := doJSON(r, http.MethodPost, "/auth/login", "", map[string]any{"email": "a@x.com", "password": "secret1"})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	var resp struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("body %s does not decode: %v", w.Body.String(), err)
	}
	if resp.Message != "login failed" {
		t.Fatalf("message = %q, want %q", resp.Message, "login failed")
	}
}

func TestTaskEndpointsRequireToken(t *testing.T) {
	r := newTestRouter()
	tests := []struct {
		method, path string
	}{
		{http.MethodPost, "/task/tasks"},
		{http.MethodGet, "/task/tasks"},
		{http.MethodGet, "/task/tasks/1"},
		{http.MethodPut, "/task/tasks/1"},
		{http.MethodDelete, "/task/tasks/1"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := doJSON(r, tt.method, tt.path, "", nil)
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", w.Code)
			}
		})
	}
}

func TestPartialUpdateLeavesOtherFieldsUntouched(t *testing.T) {
	r := newTestRouter()
	token := registerAndLogin(t, r, "a@x.com")

	w := doJSON(r, http.MethodPost, "/task/tasks", token, map[string]any{"title": "buy milk", "description": "2 liters"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status = %d", w.Code)
	}
	var created struct {
		Task struct {
			ID int64 `json:"id"`
		} `json:"task"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &created)

	w = doJSON(r, http.MethodPut, fmt.Sprintf("/task/tasks/%d", created.Task.ID), token, map[string]any{"status": "completed"})
	if w.Code != http.StatusOK {
		t.Fatalf("update: status = %d, body %s", w.Code, w.Body.String())
	}

	w = doJSON(r, http.MethodGet, fmt.Sprintf("/task/tasks/%d", created.Task.ID), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get: status = %d", w.Code)
	}
	var got struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Status      string `json:"status"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("get body %s does not decode: %v", w.Body.String(), err)
	}
	if got.Status != "completed" {
		t.Fatalf("status = %q, want completed", got.Status)
	}
	if got.Title != "buy milk" || got.Description != "2 liters" {
		t.Fatalf("untouched fields changed: %+v", got)
	}
}

func TestUpdateRejectsUnknownStatus(t *testing.T) {
	r := newTestRouter()
	token := registerAndLogin(t, r, "a@x.com")

	w := doJSON(r, http.MethodPost, "/task/tasks", token, map[string]any{"title": "buy milk"})
	var created struct {
		Task struct {
			ID int64 `json:"id"`
		} `json:"task"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &created)

	w = doJSON(r, http.MethodPut, fmt.Sprintf("/task/tasks/%d", created.Task.ID), token, map[string]any{"status": "done"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestMissingTaskReturns404(t *testing.T) {
	r := newTestRouter()
	token := registerAndLogin(t, r, "a@x.com")

	tests := []struct {
		method, path string
		body         any
	}{
		{http.MethodGet, "/task/tasks/99", nil},
		{http.MethodPut, "/task/tasks/99", map[string]any{"title": "x"}},
		{http.MethodDelete, "/task/tasks/99", nil},
		{http.MethodGet, "/task/tasks/not-a-number", nil},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := doJSON(r, tt.method, tt.path, token, tt.body)
			if w.Code != http.StatusNotFound {
				t.Fatalf("status = %d, want 404", w.Code)
			}
		})
	}
}

func TestListNeverLeaksAcrossUsers(t *testing.T) {
	r := newTestRouter()
	tokenA := registerAndLogin(t, r, "a@x.com")

	bodyB := registerBody("b@x.com")
	bodyB["first_name"] = "Jane"
	bodyB["dob"] = "1992-02-02"
	if w := doJSON(r, http.MethodPost, "/auth/register", "", bodyB); w.Code != http.StatusCreated {
		t.Fatalf("register B: status = %d", w.Code)
	}
	w := doJSON(r, http.MethodPost, "/auth/login", "", map[string]any{"email": "b@x.com", "password": "secret1"})
	var loginB struct {
		AccessToken string `json:"access_token"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &loginB)

	if w := doJSON(r, http.MethodPost, "/task/tasks", tokenA, map[string]any{"title": "task A"}); w.Code != http.StatusCreated {
		t.Fatalf("create A: status = %d", w.Code)
	}

	if tasks := listTasks(t, r, loginB.AccessToken); len(tasks) != 0 {
		t.Fatalf("user B sees %d tasks of user A, want 0", len(tasks))
	}
	if tasks := listTasks(t, r, tokenA); len(tasks) != 1 {
		t.Fatalf("user A sees %d tasks, want 1", len(tasks))
	}
}
