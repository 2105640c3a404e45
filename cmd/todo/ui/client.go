package ui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// User mirrors the account object returned by the API.
type User struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Todo mirrors the todo object returned by the API.
type Todo struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsDone      bool      `json:"is_done"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Pagination mirrors the list metadata returned by the API.
type Pagination struct {
	CurrentPage  int   `json:"current_page"`
	TotalPages   int   `json:"total_pages"`
	TotalItems   int64 `json:"total_items"`
	ItemsPerPage int   `json:"items_per_page"`
}

// TodoPage is one page of todos plus its metadata.
type TodoPage struct {
	Todos      []Todo     `json:"todos"`
	Pagination Pagination `json:"pagination"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// envelope is the wire format shared by every API response.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []fieldError    `json:"errors"`
}

// APIError carries the HTTP status and server message of a failed call.
type APIError struct {
	Status  int
	Message string
	Fields  []fieldError
}

func (e *APIError) Error() string {
	if len(e.Fields) > 0 {
		parts := make([]string, 0, len(e.Fields))
		for _, f := range e.Fields {
			parts = append(parts, f.Message)
		}
		return strings.Join(parts, "; ")
	}
	return e.Message
}

// Unauthorized reports whether the call was rejected for a missing or bad
// session. Callers should drop the saved token and return to the login view.
func (e *APIError) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// Client is a thin HTTP client for the todo API.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken installs the bearer token used on authenticated calls.
func (c *Client) SetToken(token string) { c.token = token }

// Token returns the currently installed bearer token.
func (c *Client) Token() string { return c.token }

type authResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Register creates an account and returns it with a fresh session token.
func (c *Client) Register(ctx context.Context, username, email, password string) (*User, string, error) {
	body := map[string]string{"username": username, "email": email, "password": password}
	var out authResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", body, &out); err != nil {
		return nil, "", err
	}
	return &out.User, out.Token, nil
}

// Login authenticates and returns the account with a fresh session token.
func (c *Client) Login(ctx context.Context, email, password string) (*User, string, error) {
	body := map[string]string{"email": email, "password": password}
	var out authResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &out); err != nil {
		return nil, "", err
	}
	return &out.User, out.Token, nil
}

// Profile fetches the account behind the installed token. Used at startup to
// check whether a persisted session is still valid.
func (c *Client) Profile(ctx context.Context) (*User, error) {
	var out struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Filter selects which todos ListTodos returns.
type Filter int

const (
	FilterAll Filter = iota
	FilterPending
	FilterCompleted
)

func (f Filter) String() string {
	switch f {
	case FilterPending:
		return "pending"
	case FilterCompleted:
		return "completed"
	default:
		return "all"
	}
}

// ListTodos fetches one page of the caller's todos.
func (c *Client) ListTodos(ctx context.Context, page, limit int, filter Filter) (*TodoPage, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	switch filter {
	case FilterPending:
		q.Set("is_done", "false")
	case FilterCompleted:
		q.Set("is_done", "true")
	}

	path := "/api/todos"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out TodoPage
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateTodo creates a todo and returns the stored record.
func (c *Client) CreateTodo(ctx context.Context, title, description string) (*Todo, error) {
	body := map[string]any{"title": title, "description": description}
	var out struct {
		Todo Todo `json:"todo"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/todos", body, &out); err != nil {
		return nil, err
	}
	return &out.Todo, nil
}

// UpdateTodo applies a partial update. Nil pointers leave the field unchanged.
func (c *Client) UpdateTodo(ctx context.Context, id uint, title, description *string, isDone *bool) (*Todo, error) {
	body := map[string]any{}
	if title != nil {
		body["title"] = *title
	}
	if description != nil {
		body["description"] = *description
	}
	if isDone != nil {
		body["is_done"] = *isDone
	}

	var out struct {
		Todo Todo `json:"todo"`
	}
	path := fmt.Sprintf("/api/todos/%d", id)
	if err := c.do(ctx, http.MethodPut, path, body, &out); err != nil {
		return nil, err
	}
	return &out.Todo, nil
}

// DeleteTodo removes a todo and returns its final state.
func (c *Client) DeleteTodo(ctx context.Context, id uint) (*Todo, error) {
	var out struct {
		DeletedTodo Todo `json:"deleted_todo"`
	}
	path := fmt.Sprintf("/api/todos/%d", id)
	if err := c.do(ctx, http.MethodDelete, path, nil, &out); err != nil {
		return nil, err
	}
	return &out.DeletedTodo, nil
}

// do performs a request, unwraps the response envelope and decodes the data
// payload into out (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response (%s): %w", resp.Status, err)
	}

	if !env.Success {
		return &APIError{Status: resp.StatusCode, Message: env.Message, Fields: env.Errors}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode payload: %w", err)
		}
	}
	return nil
}
