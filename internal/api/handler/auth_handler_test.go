package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/taskloop/todo-system/internal/api/middleware"
	"github.com/taskloop/todo-system/internal/core/domain"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, username, email, password string) (*domain.User, string, error)
	loginFn    func(ctx context.Context, email, password string) (*domain.User, string, error)
}

func (s *stubAuthService) Register(ctx context.Context, username, email, password string) (*domain.User, string, error) {
	return s.registerFn(ctx, username, email, password)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) ResolveToken(ctx context.Context, token string) (*domain.User, error) {
	return nil, domain.ErrInvalidToken
}

func newTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, email, password string) (*domain.User, string, error) {
			if username != "alice" || email != "a@example.com" {
				t.Fatalf("unexpected args: %s %s", username, email)
			}
			return &domain.User{ID: 1, Username: username, Email: email}, "token123", nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/auth/register",
		`{"username":"alice","email":"a@example.com","password":"Passw0rd"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	resp := decodeEnvelope(t, rec)
	if resp["success"] != true {
		t.Fatalf("expected success envelope, got %+v", resp)
	}
	data, ok := resp["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data in response")
	}
	if data["token"] != "token123" {
		t.Fatalf("expected token, got %v", data["token"])
	}
	user, ok := data["user"].(map[string]any)
	if !ok || user["username"] != "alice" {
		t.Fatalf("unexpected user payload: %+v", data["user"])
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Fatalf("password hash leaked into response")
	}
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, email, password string) (*domain.User, string, error) {
			t.Fatalf("should not be called")
			return nil, "", nil
		},
	}
	h := NewAuthHandler(stub)

	cases := []struct {
		name string
		body string
	}{
		{"short username", `{"username":"ab","email":"a@example.com","password":"Passw0rd"}`},
		{"bad username chars", `{"username":"has space","email":"a@example.com","password":"Passw0rd"}`},
		{"bad email", `{"username":"alice","email":"nope","password":"Passw0rd"}`},
		{"short password", `{"username":"alice","email":"a@example.com","password":"Ab1"}`},
		{"weak password", `{"username":"alice","email":"a@example.com","password":"alllowercase"}`},
		{"missing fields", `{}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestContext(t, http.MethodPost, "/api/auth/register", tc.body)

			err := h.Register(c)
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if len(ve.Fields) == 0 {
				t.Fatalf("expected field detail in validation error")
			}
		})
	}
}

func TestAuthHandler_Register_Conflict(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, email, password string) (*domain.User, string, error) {
			return nil, "", domain.ErrUserExists
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/api/auth/register",
		`{"username":"bob","email":"b@example.com","password":"Passw0rd"}`)

	if err := h.Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, email, password string) (*domain.User, string, error) {
			t.Fatalf("should not be called")
			return nil, "", nil
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/api/auth/register", "not-json")

	err := h.Register(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*domain.User, string, error) {
			if email != "alice@example.com" || password != "Passw0rd" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return &domain.User{ID: 1, Username: "alice"}, "token123", nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"Passw0rd"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	resp := decodeEnvelope(t, rec)
	data, ok := resp["data"].(map[string]any)
	if !ok || data["token"] != "token123" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*domain.User, string, error) {
			return nil, "", domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"bad"}`)

	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Profile(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, rec := newTestContext(t, http.MethodGet, "/api/auth/profile", "")
	c.Set(middleware.UserKey, &domain.User{ID: 7, Username: "carol", Email: "c@example.com"})

	if err := h.Profile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	resp := decodeEnvelope(t, rec)
	data, ok := resp["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data in response")
	}
	user, ok := data["user"].(map[string]any)
	if !ok || user["username"] != "carol" {
		t.Fatalf("unexpected user payload: %+v", data)
	}
}

func TestAuthHandler_Profile_NoUser(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newTestContext(t, http.MethodGet, "/api/auth/profile", "")

	err := h.Profile(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}
