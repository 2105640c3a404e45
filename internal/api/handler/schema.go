package handler

import "github.com/taskloop/todo-system/internal/core/domain"

// --- Auth request / response types ---

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50,username"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,password"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// authData is the payload for register/login: the account plus its session token.
type authData struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

type profileData struct {
	User *domain.User `json:"user"`
}

// --- Todo request / response types ---

type createTodoRequest struct {
	Title       string `json:"title"       validate:"required,max=200"`
	Description string `json:"description" validate:"omitempty,max=1000"`
	IsDone      bool   `json:"is_done"`
}

// updateTodoRequest is a partial update; nil pointers mean "leave unchanged".
type updateTodoRequest struct {
	Title       *string `json:"title"       validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	IsDone      *bool   `json:"is_done"`
}

type todoData struct {
	Todo *domain.Todo `json:"todo"`
}

type deletedTodoData struct {
	DeletedTodo *domain.Todo `json:"deleted_todo"`
}

// paginationResponse is the metadata accompanying every list response.
type paginationResponse struct {
	CurrentPage  int   `json:"current_page"`
	TotalPages   int   `json:"total_pages"`
	TotalItems   int64 `json:"total_items"`
	ItemsPerPage int   `json:"items_per_page"`
}

type listTodosData struct {
	Todos      []*domain.Todo     `json:"todos"`
	Pagination paginationResponse `json:"pagination"`
}
