package ui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_Login_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" || r.Method != http.MethodPost {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if body["email"] != "a@example.com" {
			t.Fatalf("unexpected email: %s", body["email"])
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"message":"Login successful","data":{"user":{"id":1,"username":"alice","email":"a@example.com"},"token":"tok"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	user, token, err := client.Login(context.Background(), "a@example.com", "Passw0rd")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token != "tok" || user.Username != "alice" {
		t.Fatalf("unexpected result: %+v %s", user, token)
	}
}

func TestClient_SendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok123" {
			t.Fatalf("expected bearer header, got %q", got)
		}
		w.Write([]byte(`{"success":true,"data":{"todos":[],"pagination":{"current_page":1,"total_pages":0,"total_items":0,"items_per_page":10}}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	client.SetToken("tok123")

	page, err := client.ListTodos(context.Background(), 1, 10, FilterAll)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.Pagination.TotalItems != 0 || len(page.Todos) != 0 {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestClient_ListFilterQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("is_done") != "false" || q.Get("page") != "2" || q.Get("limit") != "5" {
			t.Fatalf("unexpected query: %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"success":true,"data":{"todos":[],"pagination":{"current_page":2,"total_pages":2,"total_items":6,"items_per_page":5}}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	if _, err := client.ListTodos(context.Background(), 2, 5, FilterPending); err != nil {
		t.Fatalf("list failed: %v", err)
	}
}

func TestClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"message":"Invalid credentials"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, _, err := client.Login(context.Background(), "a@example.com", "bad")
	if err == nil {
		t.Fatalf("expected error")
	}
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected APIError, got %T", err)
	}
	if !apiErr.Unauthorized() {
		t.Fatalf("expected Unauthorized() true for 401")
	}
	if apiErr.Error() != "Invalid credentials" {
		t.Fatalf("unexpected message: %s", apiErr.Error())
	}
}

func TestClient_ValidationErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"message":"Validation failed","errors":[{"field":"title","message":"title is required"}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.CreateTodo(context.Background(), "", "")
	if err == nil {
		t.Fatalf("expected error")
	}
	if err.Error() != "title is required" {
		t.Fatalf("expected field message, got %q", err.Error())
	}
}

func TestSessionStore_RoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	store, err := NewSessionStore()
	if err != nil {
		t.Fatalf("store init failed: %v", err)
	}

	// No file yet.
	if sess, err := store.Load(); err != nil || sess != nil {
		t.Fatalf("expected no session, got %+v err=%v", sess, err)
	}

	if err := store.Save(SavedSession{Token: "tok", Username: "alice"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	sess, err := store.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if sess == nil || sess.Token != "tok" || sess.Username != "alice" {
		t.Fatalf("unexpected session: %+v", sess)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if sess, _ := store.Load(); sess != nil {
		t.Fatalf("expected cleared session, got %+v", sess)
	}
	// Clearing twice is fine.
	if err := store.Clear(); err != nil {
		t.Fatalf("second clear failed: %v", err)
	}
}
