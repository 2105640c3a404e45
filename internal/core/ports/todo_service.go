package ports

import (
	"context"

	"github.com/taskloop/todo-system/internal/core/domain"
)

// ListTodosInput carries the caller-supplied list parameters. Zero values for
// Page and Limit select the defaults (1 and 10).
type ListTodosInput struct {
	Filter domain.TodoFilter
	Page   int
	Limit  int
}

// ListTodosResult is returned by List. TotalPages is ceil(Total/Limit) so the
// pagination metadata is self-consistent with the filtered set.
type ListTodosResult struct {
	Items      []*domain.Todo
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// CreateTodoInput carries the data for a new todo.
type CreateTodoInput struct {
	Title       string
	Description string
	IsDone      bool
}

// UpdateTodoInput is a partial update: nil pointers mean "leave unchanged".
// Supplying no fields at all is rejected with domain.ErrNoUpdatableFields.
type UpdateTodoInput struct {
	Title       *string
	Description *string
	IsDone      *bool
}

// TodoService defines the use-case operations for todos. Every operation is
// invoked with the authenticated caller's user id and never crosses tenants.
type TodoService interface {
	List(ctx context.Context, ownerID uint, input ListTodosInput) (*ListTodosResult, error)
	Get(ctx context.Context, ownerID, id uint) (*domain.Todo, error)
	Create(ctx context.Context, ownerID uint, input CreateTodoInput) (*domain.Todo, error)
	Update(ctx context.Context, ownerID, id uint, input UpdateTodoInput) (*domain.Todo, error)
	Delete(ctx context.Context, ownerID, id uint) (*domain.Todo, error)
}
