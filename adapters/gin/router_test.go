package todogin_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	todogin "github.com/alfredasare/cloud-dev-final-project/adapters/gin"
	"github.com/alfredasare/cloud-dev-final-project/auth"
	memorystore "github.com/alfredasare/cloud-dev-final-project/storage/memory"
	authtest "github.com/alfredasare/cloud-dev-final-project/testing"
	"github.com/alfredasare/cloud-dev-final-project/todo"
)

type fakeSigner struct{}

func (fakeSigner) SignedUploadURL(_ context.Context, key string) (string, error) {
	return "https://bucket.s3.amazonaws.com/" + key + "?signature=abc", nil
}

func (fakeSigner) ObjectURL(key string) string {
	return "https://bucket.s3.amazonaws.com/" + key
}

type env struct {
	router *gin.Engine
	issuer *authtest.Issuer
	header string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	issuer := authtest.NewIssuer(t)
	t.Cleanup(issuer.Close)

	log := logrus.New()
	log.SetOutput(io.Discard)

	verifier := auth.NewVerifier(auth.NewCertCache(auth.NewHTTPKeyFetcher(issuer.JWKSURL(), nil)))
	svc := todo.NewService(memorystore.NewTodoStore(), fakeSigner{}, log)

	return &env{
		router: todogin.Router(svc, verifier, nil, log),
		issuer: issuer,
		header: "Bearer " + issuer.SignToken("auth0|u1"),
	}
}

func (e *env) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		buf = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Authorization", e.header)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *env) create(t *testing.T, name, dueDate string) todo.Item {
	t.Helper()
	w := e.do(t, http.MethodPost, "/todos", todo.CreateRequest{Name: name, DueDate: dueDate})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Item todo.Item `json:"item"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	return resp.Item
}

func TestRouter_RequiresToken(t *testing.T) {
	e := newEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/todos", nil)
	req.Header.Set("Authorization", "Bearer "+e.issuer.SignHS256Token("u1"))
	w = httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for HS256 token, got %d", w.Code)
	}
}

func TestRouter_CreateAndList(t *testing.T) {
	e := newEnv(t)

	item := e.create(t, "Buy milk", "2024-01-01")
	if item.Name != "Buy milk" || item.Done || item.UserID != "auth0|u1" {
		t.Errorf("unexpected created item: %+v", item)
	}

	w := e.do(t, http.MethodGet, "/todos", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", w.Code)
	}
	var resp struct {
		Items []todo.Item `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].TodoID != item.TodoID {
		t.Errorf("unexpected items: %+v", resp.Items)
	}
}

func TestRouter_CreateRejectsMissingName(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodPost, "/todos", map[string]string{"dueDate": "2024-01-01"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing name, got %d", w.Code)
	}
}

func TestRouter_Update(t *testing.T) {
	e := newEnv(t)
	item := e.create(t, "old", "2024-01-01")

	w := e.do(t, http.MethodPatch, "/todos/"+item.TodoID, todo.UpdateRequest{
		Name:    "new",
		DueDate: "2024-02-02",
		Done:    true,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Item todo.Item `json:"item"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode update response: %v", err)
	}
	if resp.Item.Name != "new" || !resp.Item.Done {
		t.Errorf("update not applied: %+v", resp.Item)
	}

	w = e.do(t, http.MethodPatch, "/todos/missing", todo.UpdateRequest{Name: "x"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing item, got %d", w.Code)
	}
}

func TestRouter_Delete(t *testing.T) {
	e := newEnv(t)
	item := e.create(t, "x", "")

	w := e.do(t, http.MethodDelete, "/todos/"+item.TodoID, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", w.Code)
	}
	w = e.do(t, http.MethodDelete, "/todos/"+item.TodoID, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", w.Code)
	}
}

func TestRouter_AttachmentURL(t *testing.T) {
	e := newEnv(t)
	item := e.create(t, "x", "")

	w := e.do(t, http.MethodPost, "/todos/"+item.TodoID+"/attachment", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("attachment: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		UploadURL string `json:"uploadUrl"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode attachment response: %v", err)
	}
	if resp.UploadURL != "https://bucket.s3.amazonaws.com/"+item.TodoID+"?signature=abc" {
		t.Errorf("unexpected upload url %q", resp.UploadURL)
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	e := newEnv(t)

	req := httptest.NewRequest(http.MethodOptions, "/todos", nil)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS origin header")
	}
}
