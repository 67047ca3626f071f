package v1

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Keerti2504/todo-simple/internal/services"
	"github.com/Keerti2504/todo-simple/internal/storage"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	logger := zerolog.Nop()

	users, err := storage.OpenUserStore(logger, filepath.Join(dir, "users.json"))
	if err != nil {
		t.Fatalf("open user store: %v", err)
	}
	todoStore, err := storage.OpenTodoStore(logger, filepath.Join(dir, "todos.json"))
	if err != nil {
		t.Fatalf("open todo store: %v", err)
	}

	authService := services.NewAuthService(logger, users, []byte("test-signing-key"), 2*time.Hour)
	todoService := services.NewTodoService(logger, todoStore)
	h := New(logger, authService, todoService)

	router := gin.New()
	router.GET("/health", h.HandleHealth)

	api := router.Group("/api")
	api.POST("/signup", h.HandleSignup)
	api.POST("/login", h.HandleLogin)

	todos := api.Group("/todos", h.HandleAuthMiddleware)
	todos.POST("", h.HandleCreateTodo)
	todos.GET("", h.HandleGetTodos)
	todos.PUT("/:id", h.HandleUpdateTodo)
	todos.DELETE("/:id", h.HandleDeleteTodo)

	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
}

func signupAndLogin(t *testing.T, router *gin.Engine, username, password string) string {
	t.Helper()

	w := doRequest(t, router, http.MethodPost, "/api/signup", "", gin.H{
		"username": username,
		"password": password,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("signup status = %d, want 201 (body %s)", w.Code, w.Body.String())
	}

	w = doRequest(t, router, http.MethodPost, "/api/login", "", gin.H{
		"username": username,
		"password": password,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	decodeBody(t, w, &resp)
	if resp.Token == "" {
		t.Fatal("expected non-empty token")
	}
	return resp.Token
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Status string `json:"status"`
	}
	decodeBody(t, w, &resp)
	if resp.Status != "ok" {
		t.Fatalf("status = %q, want %q", resp.Status, "ok")
	}
}

func TestSignup(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/api/signup", "", gin.H{
		"username": "alice",
		"password": "secret",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
	var resp struct {
		Message string `json:"message"`
	}
	decodeBody(t, w, &resp)
	if resp.Message != "user created" {
		t.Fatalf("message = %q, want %q", resp.Message, "user created")
	}

	// Same username again conflicts.
	w = doRequest(t, router, http.MethodPost, "/api/signup", "", gin.H{
		"username": "alice",
		"password": "other",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate signup status = %d, want 409", w.Code)
	}

	w = doRequest(t, router, http.MethodPost, "/api/signup", "", gin.H{
		"username": "bob",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing password status = %d, want 400", w.Code)
	}
}

func TestLogin(t *testing.T) {
	router := newTestRouter(t)
	signupAndLogin(t, router, "alice", "secret")

	w := doRequest(t, router, http.MethodPost, "/api/login", "", gin.H{
		"username": "alice",
		"password": "wrong",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password status = %d, want 401", w.Code)
	}

	w = doRequest(t, router, http.MethodPost, "/api/login", "", gin.H{
		"username": "mallory",
		"password": "whatever",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unknown user status = %d, want 401", w.Code)
	}
}

func TestTodosRequireAuth(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/todos", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no header status = %d, want 401", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/todos", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("malformed header status = %d, want 401", rec.Code)
	}

	w = doRequest(t, router, http.MethodGet, "/api/todos", "not-a-token", nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("bad token status = %d, want 403", w.Code)
	}
}

func TestTodoLifecycle(t *testing.T) {
	router := newTestRouter(t)
	token := signupAndLogin(t, router, "alice", "secret")

	// Fresh account starts with a literal empty array.
	w := doRequest(t, router, http.MethodGet, "/api/todos", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", w.Code)
	}
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Fatalf("body = %q, want []", w.Body.String())
	}

	w = doRequest(t, router, http.MethodPost, "/api/todos", token, gin.H{
		"title":    "Buy milk",
		"priority": "high",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201 (body %s)", w.Code, w.Body.String())
	}
	var created todoResponse
	decodeBody(t, w, &created)
	if created.ID == "" {
		t.Fatal("expected non-empty id")
	}
	if created.Done {
		t.Fatal("expected done = false")
	}
	if created.Priority != "high" {
		t.Fatalf("priority = %q, want %q", created.Priority, "high")
	}
	if created.User != "alice" {
		t.Fatalf("user = %q, want %q", created.User, "alice")
	}

	w = doRequest(t, router, http.MethodGet, "/api/todos", token, nil)
	var listed []todoResponse
	decodeBody(t, w, &listed)
	if len(listed) != 1 || listed[0].ID != created.ID {
		t.Fatalf("listed = %+v, want the created todo", listed)
	}

	w = doRequest(t, router, http.MethodPut, "/api/todos/"+created.ID, token, gin.H{
		"done": true,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, want 200", w.Code)
	}
	var updated todoResponse
	decodeBody(t, w, &updated)
	if !updated.Done {
		t.Fatal("expected done = true")
	}
	if updated.Title != "Buy milk" {
		t.Fatalf("title = %q, want unchanged", updated.Title)
	}

	w = doRequest(t, router, http.MethodDelete, "/api/todos/"+created.ID, token, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Fatalf("delete body = %q, want empty", w.Body.String())
	}

	w = doRequest(t, router, http.MethodGet, "/api/todos", token, nil)
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Fatalf("body = %q, want [] after deletion", w.Body.String())
	}
}

func TestCreateTodoValidationOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	token := signupAndLogin(t, router, "alice", "secret")

	w := doRequest(t, router, http.MethodPost, "/api/todos", token, gin.H{
		"priority": "high",
		"dueDate":  "2026-01-01",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing title status = %d, want 400", w.Code)
	}
	var resp struct {
		Error string `json:"error"`
	}
	decodeBody(t, w, &resp)
	if resp.Error != "title required" {
		t.Fatalf("error = %q, want %q", resp.Error, "title required")
	}

	w = doRequest(t, router, http.MethodPost, "/api/todos", token, gin.H{
		"title":    "x",
		"priority": "urgent",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad priority status = %d, want 400", w.Code)
	}

	w = doRequest(t, router, http.MethodPost, "/api/todos", token, gin.H{
		"title":   "x",
		"dueDate": "someday",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad due date status = %d, want 400", w.Code)
	}
}

func TestUpdateTodoOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	token := signupAndLogin(t, router, "alice", "secret")

	w := doRequest(t, router, http.MethodPut, "/api/todos/no-such-id", token, gin.H{
		"done": true,
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing id status = %d, want 404", w.Code)
	}

	w = doRequest(t, router, http.MethodPost, "/api/todos", token, gin.H{
		"title":   "keep me",
		"dueDate": "2026-01-01",
	})
	var created todoResponse
	decodeBody(t, w, &created)

	// An empty patch returns the todo unchanged.
	w = doRequest(t, router, http.MethodPut, "/api/todos/"+created.ID, token, gin.H{})
	if w.Code != http.StatusOK {
		t.Fatalf("empty patch status = %d, want 200", w.Code)
	}
	var unchanged todoResponse
	decodeBody(t, w, &unchanged)
	if unchanged != created {
		t.Fatalf("got %+v, want %+v", unchanged, created)
	}

	// A bad due date in a patch is ignored, not rejected.
	w = doRequest(t, router, http.MethodPut, "/api/todos/"+created.ID, token, gin.H{
		"dueDate": "someday",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("bad due date patch status = %d, want 200", w.Code)
	}
	var updated todoResponse
	decodeBody(t, w, &updated)
	if updated.DueDate != "2026-01-01" {
		t.Fatalf("dueDate = %q, want unchanged", updated.DueDate)
	}
}

func TestTodosAreOwnerScopedOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	aliceToken := signupAndLogin(t, router, "alice", "secret")
	bobToken := signupAndLogin(t, router, "bob", "hunter2")

	w := doRequest(t, router, http.MethodPost, "/api/todos", aliceToken, gin.H{
		"title": "alice's secret plan",
	})
	var created todoResponse
	decodeBody(t, w, &created)

	w = doRequest(t, router, http.MethodGet, "/api/todos", bobToken, nil)
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Fatalf("bob sees %q, want []", w.Body.String())
	}

	w = doRequest(t, router, http.MethodPut, "/api/todos/"+created.ID, bobToken, gin.H{
		"done": true,
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("bob update status = %d, want 404", w.Code)
	}

	w = doRequest(t, router, http.MethodDelete, "/api/todos/"+created.ID, bobToken, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("bob delete status = %d, want 404", w.Code)
	}

	// Alice's todo survived bob's attempts.
	w = doRequest(t, router, http.MethodGet, "/api/todos", aliceToken, nil)
	var listed []todoResponse
	decodeBody(t, w, &listed)
	if len(listed) != 1 || listed[0].ID != created.ID {
		t.Fatalf("alice's list = %+v, want her todo intact", listed)
	}
}
